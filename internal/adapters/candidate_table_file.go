package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"depsolver/internal/types"
)

// candidateTableFile is the on-disk shape of a resolution: a flat list
// of candidates, the selection policy, and the base-package set the
// upstream resolver already knows about.
type candidateTableFile struct {
	Policy       types.Policy      `yaml:"policy"`
	BasePackages []string          `yaml:"base_packages,omitempty"`
	Candidates   []types.Candidate `yaml:"candidates"`
}

// CandidateTableFileAdapter loads a candidate table from a YAML file.
type CandidateTableFileAdapter struct{}

// NewCandidateTableFileAdapter constructs the adapter.
func NewCandidateTableFileAdapter() CandidateTableFileAdapter {
	return CandidateTableFileAdapter{}
}

// Load reads candidates, the selection policy, and the base-package set
// from path.
func (a CandidateTableFileAdapter) Load(path string) ([]types.Candidate, types.Policy, map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("candidate table file not found").
			WithCause(err)
	}

	var table candidateTableFile
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse candidate table yaml").
			WithCause(err)
	}

	base := make(map[string]struct{}, len(table.BasePackages))
	for _, name := range table.BasePackages {
		base[name] = struct{}{}
	}

	for i := range table.Candidates {
		c := &table.Candidates[i]
		if len(c.DepTypesList) > 0 {
			c.DepTypes = make(map[string]struct{}, len(c.DepTypesList))
			for _, t := range c.DepTypesList {
				c.DepTypes[t] = struct{}{}
			}
		}
	}

	return table.Candidates, table.Policy, base, nil
}

// BasePackagePredicate adapts a base-package set into a ports.BasePackages
// function.
func BasePackagePredicate(base map[string]struct{}) func(string) bool {
	return func(name string) bool {
		_, ok := base[name]
		return ok
	}
}
