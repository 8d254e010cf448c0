package ports

import "depsolver/internal/types"

// CandidateTablePort loads a candidate table, its selection policy, and
// its base-package set from some external source (a file, a resolver
// service, ...).
type CandidateTablePort interface {
	Load(path string) ([]types.Candidate, types.Policy, map[string]struct{}, error)
}
