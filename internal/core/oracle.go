package core

import (
	"context"
	"fmt"

	"github.com/crillab/gophersat/solver"

	"depsolver/internal/ports"
	"depsolver/internal/types"
)

// GophersatOracle is the default ILP Oracle (spec.md §4.2): every
// constraint this Problem Builder emits has all-±1 coefficients over
// {0,1} variables, so each reduces to a handful of CNF clauses, and a
// weighted minimization over those clauses is exactly what gophersat's
// optimizing SAT solver performs. This mirrors how the teacher's
// apt_solver.go drives the very same library for the same kind of
// problem: pick one version per package, weighted by preference, subject
// to implication constraints from dependencies.
type GophersatOracle struct{}

// NewGophersatOracle constructs the default oracle.
func NewGophersatOracle() GophersatOracle {
	return GophersatOracle{}
}

// Solve implements ports.Oracle.
func (GophersatOracle) Solve(ctx context.Context, problem *types.Problem) (ports.OracleResult, error) {
	if problem.Total == 0 {
		return ports.OracleResult{Status: 0, ObjVal: 0, Solution: []bool{}}, nil
	}
	if ctx.Err() != nil {
		return ports.OracleResult{}, ctx.Err()
	}

	var clauses [][]int
	for _, cond := range problem.Conds {
		cs, err := constraintToClauses(cond)
		if err != nil {
			return ports.OracleResult{}, err
		}
		clauses = append(clauses, cs...)
	}

	pb := solver.ParseSliceNb(clauses, problem.Total)
	lits := make([]solver.Lit, problem.Total)
	weights := make([]int, problem.Total)
	for i := 0; i < problem.Total; i++ {
		lits[i] = solver.IntToLit(int32(i + 1)) //nolint:gosec // bounded by problem.Total, well within int32
		weights[i] = problem.Obj[i]
	}
	pb.SetCostFunc(lits, weights)

	sat := solver.New(pb)
	cost := sat.Minimize()
	if cost < 0 {
		// No model at all: every exactly-once constraint admits its own
		// slack variable, so a well-formed Problem is always satisfiable.
		// Reaching UNSAT here means the oracle itself failed, not that
		// the resolution is infeasible (that is detected via cost, below).
		return ports.OracleResult{Status: 1}, nil
	}

	model := sat.Model()
	solution := make([]bool, problem.Total)
	for i := 0; i < problem.Total && i < len(model); i++ {
		solution[i] = model[i]
	}
	return ports.OracleResult{Status: 0, ObjVal: cost, Solution: solution}, nil
}

// constraintToClauses translates one Problem constraint into CNF
// clauses. It covers exactly the shapes the Problem Builder produces;
// anything else is a programmer error in the builder, not a runtime
// condition to recover from.
func constraintToClauses(c types.Constraint) ([][]int, error) {
	switch {
	case c.Op == types.RelEq && c.RHS == 1 && allOnes(c.Coef):
		clauses := pairwiseAtMostOne(c.Vars)
		clauses = append(clauses, append([]int{}, c.Vars...))
		return clauses, nil
	case c.Op == types.RelLte && c.RHS == 1 && allOnes(c.Coef):
		return pairwiseAtMostOne(c.Vars), nil
	case c.Op == types.RelEq && c.RHS == 0:
		clauses := make([][]int, 0, len(c.Vars))
		for _, v := range c.Vars {
			clauses = append(clauses, []int{-v})
		}
		return clauses, nil
	case c.Op == types.RelLte && c.RHS == 0 && len(c.Coef) >= 1 && c.Coef[0] == 1 && allNegOnesAfterFirst(c.Coef):
		clause := append([]int{-c.Vars[0]}, c.Vars[1:]...)
		return [][]int{clause}, nil
	default:
		return nil, fmt.Errorf("oracle: unsupported constraint shape kind=%s op=%s rhs=%d", c.Kind, c.Op, c.RHS)
	}
}

func allOnes(coef []int) bool {
	for _, c := range coef {
		if c != 1 {
			return false
		}
	}
	return true
}

func allNegOnesAfterFirst(coef []int) bool {
	for _, c := range coef[1:] {
		if c != -1 {
			return false
		}
	}
	return true
}

func pairwiseAtMostOne(vars []int) [][]int {
	var clauses [][]int
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			clauses = append(clauses, []int{-vars[i], -vars[j]})
		}
	}
	return clauses
}
