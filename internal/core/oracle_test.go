package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolver/internal/types"
)

func TestConstraintToClausesExactlyOnce(t *testing.T) {
	c := types.Constraint{Vars: []int{1, 2, 3}, Coef: []int{1, 1, 1}, Op: types.RelEq, RHS: 1}
	clauses, err := constraintToClauses(c)
	require.NoError(t, err)
	require.Contains(t, clauses, []int{1, 2, 3})
	require.Contains(t, clauses, []int{-1, -2})
	require.Contains(t, clauses, []int{-1, -3})
	require.Contains(t, clauses, []int{-2, -3})
}

func TestConstraintToClausesAtMostOnce(t *testing.T) {
	c := types.Constraint{Vars: []int{4, 5}, Coef: []int{1, 1}, Op: types.RelLte, RHS: 1}
	clauses, err := constraintToClauses(c)
	require.NoError(t, err)
	require.Equal(t, [][]int{{-4, -5}}, clauses)
}

func TestConstraintToClausesUnitZero(t *testing.T) {
	c := types.Constraint{Vars: []int{7}, Coef: []int{1}, Op: types.RelEq, RHS: 0}
	clauses, err := constraintToClauses(c)
	require.NoError(t, err)
	require.Equal(t, [][]int{{-7}}, clauses)
}

func TestConstraintToClausesDependencyImplication(t *testing.T) {
	c := types.Constraint{Vars: []int{1, 2, 3}, Coef: []int{1, -1, -1}, Op: types.RelLte, RHS: 0}
	clauses, err := constraintToClauses(c)
	require.NoError(t, err)
	require.Equal(t, [][]int{{-1, 2, 3}}, clauses)
}

func TestConstraintToClausesDependencyNoGoodCand(t *testing.T) {
	c := types.Constraint{Vars: []int{1}, Coef: []int{1}, Op: types.RelLte, RHS: 0}
	clauses, err := constraintToClauses(c)
	require.NoError(t, err)
	require.Equal(t, [][]int{{-1}}, clauses)
}

func TestConstraintToClausesUnsupportedShape(t *testing.T) {
	c := types.Constraint{Vars: []int{1, 2}, Coef: []int{2, 3}, Op: types.RelGte, RHS: 4}
	_, err := constraintToClauses(c)
	require.Error(t, err)
}

func TestGophersatOracleSolveTrivialChoosesCheaperCandidate(t *testing.T) {
	// One direct package "A" with two candidates plus its slack; the
	// objective prefers the installed (cost 0) candidate over the
	// source build (cost 5), mirroring the lazy policy's coefficients.
	problem := &types.Problem{
		NumCandidates: 2,
		NumDirect:     1,
		Total:         3,
		Obj:           []int{0, 5, types.DummyCost},
		Conds: []types.Constraint{
			{Vars: []int{1, 2, 3}, Coef: []int{1, 1, 1}, Op: types.RelEq, RHS: 1, Kind: types.ConstraintExactlyOnce},
		},
		RuledOut: map[int]struct{}{},
	}

	oracle := NewGophersatOracle()
	result, err := oracle.Solve(context.Background(), problem)
	require.NoError(t, err)
	require.Equal(t, 0, result.Status)
	require.True(t, result.Solution[0], "cheaper installed candidate should be selected")
	require.False(t, result.Solution[1])
	require.False(t, result.Solution[2], "slack should stay unused when a real candidate satisfies the package")
}

func TestGophersatOracleSolveInfeasibleFallsBackToSlack(t *testing.T) {
	// The only candidate for the direct package is ruled out, so the
	// solver must fall back to the slack variable at DUMMY_COST.
	problem := &types.Problem{
		NumCandidates: 1,
		NumDirect:     1,
		Total:         2,
		Obj:           []int{0, types.DummyCost},
		Conds: []types.Constraint{
			{Vars: []int{1, 2}, Coef: []int{1, 1}, Op: types.RelEq, RHS: 1, Kind: types.ConstraintExactlyOnce},
			{Vars: []int{1}, Coef: []int{1}, Op: types.RelEq, RHS: 0, Kind: types.ConstraintOkResolution},
		},
		RuledOut: map[int]struct{}{1: {}},
	}

	oracle := NewGophersatOracle()
	result, err := oracle.Solve(context.Background(), problem)
	require.NoError(t, err)
	require.Equal(t, 0, result.Status)
	require.GreaterOrEqual(t, result.ObjVal, types.DummyCost-1)
	require.True(t, result.Solution[1])
}
