// Package types holds the data model shared across the solver core:
// candidates, constraints, the ILP problem, and failure reports.
package types

// CandidateKind is the fixed set of ways a candidate can be obtained.
// Non-goals (spec.md §1) exclude any kind outside this set.
type CandidateKind string

const (
	CandidateInstalled CandidateKind = "installed"
	CandidateCran      CandidateKind = "cran"
	CandidateBioc      CandidateKind = "bioc"
	CandidateStandard  CandidateKind = "standard"
	CandidateGithub    CandidateKind = "github"
	CandidateURL       CandidateKind = "url"
	CandidateLocal     CandidateKind = "local"
	CandidateDeps      CandidateKind = "deps"
)

// Platform is either "source" or a binary platform tag.
type Platform string

// PlatformSource marks a candidate that must be built from source.
const PlatformSource Platform = "source"

// Status is the resolver's outcome for a candidate.
type Status string

const (
	StatusOK     Status = "OK"
	StatusFailed Status = "FAILED"
)

// ConstraintOp is a version comparison operator, or ConstraintOpNone for
// an unconstrained (bare name) reference.
type ConstraintOp string

const (
	ConstraintOpNone ConstraintOp = ""
	ConstraintOpEq   ConstraintOp = "=="
	ConstraintOpNe   ConstraintOp = "!="
	ConstraintOpLt   ConstraintOp = "<"
	ConstraintOpLte  ConstraintOp = "<="
	ConstraintOpGt   ConstraintOp = ">"
	ConstraintOpGte  ConstraintOp = ">="
)

// DepEdge is one dependency declared by a candidate: a reference to
// another package, the dependency kind ("depends", "imports",
// "linkingto", "suggests", ...), and an optional version constraint.
type DepEdge struct {
	Ref     string       `yaml:"ref"`
	Package string       `yaml:"package"`
	Type    string       `yaml:"type"`
	Op      ConstraintOp `yaml:"op,omitempty"`
	Version string       `yaml:"version,omitempty"`
}

// Candidate is one possible way to obtain one version of one package,
// as produced by the upstream resolver. Read-only to the solver.
type Candidate struct {
	Ref      string        `yaml:"ref"`
	Package  string        `yaml:"package"`
	Version  string        `yaml:"version,omitempty"`
	Kind     CandidateKind `yaml:"kind"`
	Platform Platform      `yaml:"platform,omitempty"`
	Mirror   string        `yaml:"mirror,omitempty"`
	Direct   bool          `yaml:"direct,omitempty"`
	Status   Status        `yaml:"status"`
	Deps     []DepEdge     `yaml:"deps,omitempty"`

	// DepTypes is the set of dependency kinds this candidate wishes to
	// honor; edges whose Type is absent here are filtered out during
	// problem construction.
	DepTypes map[string]struct{} `yaml:"-"`

	// DepTypesList is the wire form of DepTypes (yaml.v3 cannot target a
	// map[string]struct{} directly); CandidateTableFileAdapter.Load folds it in.
	DepTypesList []string `yaml:"dep_types,omitempty"`

	// RepoType hints which registry an installed candidate originated
	// from ("cran", "bioc", ...). Only meaningful when Kind == CandidateInstalled.
	RepoType string `yaml:"repo_type,omitempty"`

	// Error is the resolver's opaque diagnostic, set only when Status == StatusFailed.
	Error string `yaml:"error,omitempty"`
}
