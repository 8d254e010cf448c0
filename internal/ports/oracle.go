package ports

import (
	"context"

	"depsolver/internal/types"
)

// OracleResult is the raw outcome of one ILP oracle invocation.
// Status == 0 means the oracle found an optimum; any other value is a
// solver-internal failure.
type OracleResult struct {
	Status   int
	ObjVal   int
	Solution []bool
}

// Oracle is a thin adapter over an external mixed-integer minimizer.
// Implementations own no state across calls and perform no bounding,
// warm-starting, or heuristics beyond what the underlying library does.
type Oracle interface {
	Solve(ctx context.Context, problem *types.Problem) (OracleResult, error)
}

// BasePackages reports whether name is a language-runtime package that
// must never appear in a dependency constraint.
type BasePackages func(name string) bool
