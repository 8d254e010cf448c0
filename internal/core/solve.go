package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"depsolver/internal/ports"
	"depsolver/internal/types"
)

// Solver orchestrates one resolution run: build the Problem, invoke the
// ILP Oracle, and, when the result is infeasible, replay the Blame
// Tracer to produce a structured failure report.
type Solver struct {
	Oracle       ports.Oracle
	BasePackages ports.BasePackages

	// StaleCheck, if set, reports whether the candidate table handed to
	// Solve has been invalidated since it was produced (e.g. the
	// upstream library index moved on). A true result aborts the call.
	StaleCheck func() bool
}

// NewSolver builds a Solver around the given oracle. basePackages may
// be nil, meaning no package is treated as base-provided.
func NewSolver(oracle ports.Oracle, basePackages ports.BasePackages) Solver {
	return Solver{Oracle: oracle, BasePackages: basePackages}
}

// Solve runs the full pipeline of spec.md §4 over candidates under the
// given policy, returning either a selected subset or a failure report.
func (s Solver) Solve(ctx context.Context, candidates []types.Candidate, policy types.Policy) (types.SolutionResult, error) {
	if s.Oracle == nil {
		return types.SolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("solve called without a configured ILP oracle")
	}
	if s.StaleCheck != nil && s.StaleCheck() {
		return types.SolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("candidate table is stale; re-resolve before solving")
	}
	switch policy {
	case types.PolicyLazy, types.PolicyUpgrade:
	default:
		return types.SolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown policy %q", policy))
	}
	basePackages := s.BasePackages
	if basePackages == nil {
		basePackages = func(string) bool { return false }
	}

	problem, err := BuildProblem(ctx, candidates, BuildOptions{Policy: policy, BasePackages: basePackages})
	if err != nil {
		return types.SolutionResult{}, err
	}

	oracleResult, err := s.Oracle.Solve(ctx, problem)
	if err != nil {
		return types.SolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("oracle failed").
			WithCause(err)
	}
	if oracleResult.Status != 0 {
		return types.SolutionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("oracle could not produce a model")
	}

	log.Ctx(ctx).Debug().
		Int("candidates", problem.NumCandidates).
		Int("objective", oracleResult.ObjVal).
		Msg("resolution solved")

	if oracleResult.ObjVal >= types.DummyCost-1 {
		report := TraceFailure(problem, candidates, oracleResult.Solution)
		return types.SolutionResult{
			Status:      types.SolveFailed,
			Problem:     problem,
			RawSolution: oracleResult.Solution,
			Failures:    &report,
		}, nil
	}

	selected := map[int]struct{}{}
	for i, on := range oracleResult.Solution {
		if on && i < problem.NumCandidates {
			selected[i+1] = struct{}{}
		}
	}

	return types.SolutionResult{
		Status:          types.SolveOK,
		SelectedIndices: selected,
		Problem:         problem,
		RawSolution:     oracleResult.Solution,
	}, nil
}
