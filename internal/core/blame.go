package core

import (
	"fmt"

	"depsolver/internal/types"
)

// candidateState is the Blame Tracer's per-candidate state machine
// (spec.md §4.3).
type candidateState string

const (
	stateMaybeGood     candidateState = "maybe-good"
	stateInstalled     candidateState = "installed"
	stateFailedRes     candidateState = "failed-res"
	stateSatisfyDirect candidateState = "satisfy-direct"
	stateConflict      candidateState = "conflict"
	stateDepFailed     candidateState = "dep-failed"
	stateCouldBe       candidateState = "could-be"
)

func isFailureState(s candidateState) bool {
	switch s {
	case stateFailedRes, stateSatisfyDirect, stateConflict, stateDepFailed:
		return true
	default:
		return false
	}
}

func failureTypeFor(s candidateState) types.FailureType {
	switch s {
	case stateFailedRes:
		return types.FailureFailedRes
	case stateSatisfyDirect:
		return types.FailureSatisfyDirect
	case stateConflict:
		return types.FailureConflict
	case stateDepFailed:
		return types.FailureDepFailed
	default:
		return ""
	}
}

type blameEntry struct {
	state candidateState
	notes []string
}

// depPair is one replayed dependency constraint, kept mutable across the
// transitive closure's worklist iteration.
type depPair struct {
	upstream int // 0-indexed candidate
	good     map[int]struct{}
	ref      string
	message  string
}

// TraceFailure replays the Problem's constraints against the oracle's
// raw solution and reconstructs per-candidate blame, invoked only when
// the objective indicates infeasibility (spec.md §4.3).
func TraceFailure(problem *types.Problem, candidates []types.Candidate, solution []bool) types.FailureReport {
	n := problem.NumCandidates
	state := make([]blameEntry, n)
	for i := range state {
		state[i].state = stateMaybeGood
	}

	// 1. solver choices
	for i := 0; i < n && i < len(solution); i++ {
		if solution[i] {
			state[i].state = stateInstalled
		}
	}

	// 2. ok-resolution
	for _, cond := range problem.Conds {
		if cond.Kind != types.ConstraintOkResolution {
			continue
		}
		for _, v := range cond.Vars {
			idx := v - 1
			if idx < 0 || idx >= n || state[idx].state == stateInstalled {
				continue
			}
			state[idx].state = stateFailedRes
			msg := candidates[idx].Error
			if msg == "" {
				msg = fmt.Sprintf("resolution failed for %s", candidates[idx].Ref)
			}
			state[idx].notes = append(state[idx].notes, msg)
		}
	}

	// 3. satisfy-refs
	for _, cond := range problem.Conds {
		if cond.Kind != types.ConstraintSatisfyRefs {
			continue
		}
		for _, v := range cond.Vars {
			idx := v - 1
			if idx < 0 || idx >= n || state[idx].state == stateInstalled {
				continue
			}
			state[idx].state = stateSatisfyDirect
			directRef := ""
			if directVar, ok := cond.Note.(int); ok {
				directRef = refOf(candidates, directVar)
			}
			state[idx].notes = append(state[idx].notes, fmt.Sprintf("conflicts with direct request %s", directRef))
		}
	}

	// 4. at-most-once conflicts
	for _, cond := range problem.Conds {
		if cond.Kind != types.ConstraintAtMostOnce {
			continue
		}
		winner := -1
		for _, v := range cond.Vars {
			idx := v - 1
			if idx >= 0 && idx < len(solution) && solution[idx] {
				winner = idx
				break
			}
		}
		if winner < 0 {
			continue
		}
		for _, v := range cond.Vars {
			idx := v - 1
			if idx == winner || idx < 0 || idx >= n || state[idx].state != stateMaybeGood {
				continue
			}
			state[idx].state = stateConflict
			state[idx].notes = append(state[idx].notes, fmt.Sprintf("superseded by %s", candidates[winner].Ref))
		}
	}

	// 5. dependency transitive closure
	downstream := map[int][]string{}
	var pairs []depPair
	for _, cond := range problem.Conds {
		if cond.Kind != types.ConstraintDependency {
			continue
		}
		note, ok := cond.Note.(*types.DependencyNote)
		if !ok {
			continue
		}
		good := map[int]struct{}{}
		for _, v := range note.GoodCand {
			good[v-1] = struct{}{}
		}
		pairs = append(pairs, depPair{upstream: note.Upstream - 1, good: good, ref: note.DepRef, message: note.Message})
	}

	markDepFailed := func(p *depPair) bool {
		if len(p.good) > 0 || state[p.upstream].state != stateMaybeGood {
			return false
		}
		state[p.upstream].state = stateDepFailed
		state[p.upstream].notes = append(state[p.upstream].notes, fmt.Sprintf("Cannot install dependency %s", p.ref))
		if p.message != "" {
			state[p.upstream].notes = append(state[p.upstream].notes, p.message)
		}
		downstream[p.upstream] = append(downstream[p.upstream], p.ref)
		return true
	}

	for i := range pairs {
		markDepFailed(&pairs[i])
	}
	for changed := true; changed; {
		changed = false
		for i := range pairs {
			p := &pairs[i]
			for idx := range p.good {
				if idx >= 0 && idx < n && isFailureState(state[idx].state) {
					delete(p.good, idx)
				}
			}
			if markDepFailed(p) {
				changed = true
			}
		}
	}

	// 6. remaining maybe-good candidates become could-be
	for i := range state {
		if state[i].state == stateMaybeGood {
			state[i].state = stateCouldBe
		}
	}

	return renderFailureReport(candidates, state, downstream)
}

// renderFailureReport traverses from every direct failed candidate,
// depth-first through downstream, deduplicating by candidate index.
func renderFailureReport(candidates []types.Candidate, state []blameEntry, downstream map[int][]string) types.FailureReport {
	refIdx := map[string]int{}
	for i, c := range candidates {
		refIdx[c.Ref] = i
	}

	var order []int
	visited := make([]bool, len(candidates))
	var visit func(i int)
	visit = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		order = append(order, i)
		for _, ref := range downstream[i] {
			if j, ok := refIdx[ref]; ok && isFailureState(state[j].state) {
				visit(j)
			}
		}
	}
	for i, c := range candidates {
		if c.Direct && isFailureState(state[i].state) {
			visit(i)
		}
	}
	for i := range candidates {
		if isFailureState(state[i].state) && !visited[i] {
			visit(i)
		}
	}

	report := types.FailureReport{}
	for _, i := range order {
		report.Failures = append(report.Failures, types.FailedCandidate{
			Index:          i + 1,
			Ref:            candidates[i].Ref,
			Package:        candidates[i].Package,
			FailureType:    failureTypeFor(state[i].state),
			FailureMessage: state[i].notes,
			FailureDown:    downstream[i],
		})
	}
	return report
}
