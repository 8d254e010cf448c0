package types

// DummyCost is the objective coefficient assigned to every slack
// (dummy) variable. An objective value at or above DummyCost-1 means at
// least one slack variable was forced to 1, i.e. the resolution is
// infeasible for some direct package.
const DummyCost = 1_000_000_000

// ConstraintRelOp is the relational operator of a linear constraint.
type ConstraintRelOp string

const (
	RelEq  ConstraintRelOp = "=="
	RelLte ConstraintRelOp = "<="
	RelGte ConstraintRelOp = ">="
)

// ConstraintKind identifies which Problem Builder phase emitted a
// constraint. The Blame Tracer scans constraints by this discriminator.
type ConstraintKind string

const (
	ConstraintExactlyOnce     ConstraintKind = "exactly-once"
	ConstraintAtMostOnce      ConstraintKind = "at-most-once"
	ConstraintSatisfyRefs     ConstraintKind = "satisfy-refs"
	ConstraintDependency      ConstraintKind = "dependency"
	ConstraintOkResolution    ConstraintKind = "ok-resolution"
	ConstraintPreferInstalled ConstraintKind = "prefer-installed"
	ConstraintPreferBinary    ConstraintKind = "prefer-binary"
)

// DependencyNote is the Note payload carried by a ConstraintDependency
// constraint: everything the Blame Tracer needs to replay it without
// re-deriving candidate lookups.
type DependencyNote struct {
	// Upstream is the 1-indexed variable id of the depending candidate.
	Upstream int
	// DepRef is the ref of the required package, as declared in the edge.
	DepRef string
	// Candidates lists every 1-indexed variable id for the dependency's package.
	Candidates []int
	// GoodCand lists the 1-indexed variable ids that satisfy the dependency.
	GoodCand []int
	// Message is a pre-rendered human-readable description of the requirement.
	Message string
}

// Constraint is one linear constraint over {0,1} variables:
// sum(Coef[i] * x[Vars[i]]) Op RHS.
type Constraint struct {
	Vars []int
	Coef []int
	Op   ConstraintRelOp
	RHS  int
	Kind ConstraintKind

	// Note carries data the Blame Tracer needs: an int (1-indexed
	// variable id of the direct candidate) for satisfy-refs, or a
	// *DependencyNote for dependency constraints. Nil otherwise.
	Note any
}

// Problem is the ILP encoding of a candidate table plus policy.
// Variables 1..NumCandidates are candidates; NumCandidates+1..Total are
// one slack variable per direct package.
type Problem struct {
	NumCandidates int
	NumDirect     int
	Total         int
	Obj           []int
	Conds         []Constraint

	// RuledOut holds the 1-indexed variable ids statically forced to 0.
	RuledOut map[int]struct{}
}
