package core

import (
	"fmt"
	"strings"

	"depsolver/internal/types"
)

// RenderProblem produces the stable textual rendering described in
// spec.md §6: one line per candidate ref, followed by one line per
// constraint.
func RenderProblem(problem *types.Problem, candidates []types.Candidate) string {
	var b strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d: %s\n", i+1, c.Ref)
	}
	for _, cond := range problem.Conds {
		b.WriteString(renderConstraint(cond, candidates))
		b.WriteString("\n")
	}
	return b.String()
}

func renderConstraint(c types.Constraint, candidates []types.Candidate) string {
	switch c.Kind {
	case types.ConstraintExactlyOnce:
		return fmt.Sprintf("exactly-once: %s == 1", varList(c.Vars))
	case types.ConstraintAtMostOnce:
		return fmt.Sprintf("at-most-once: %s <= 1", varList(c.Vars))
	case types.ConstraintSatisfyRefs:
		directRef := ""
		if idx, ok := c.Note.(int); ok {
			directRef = refOf(candidates, idx)
		}
		return fmt.Sprintf("satisfy-refs: %s == 0 (conflicts with %s)", varList(c.Vars), directRef)
	case types.ConstraintOkResolution:
		return fmt.Sprintf("ok-resolution: %s == 0", varList(c.Vars))
	case types.ConstraintPreferInstalled:
		return fmt.Sprintf("prefer-installed: %s == 0", varList(c.Vars))
	case types.ConstraintPreferBinary:
		return fmt.Sprintf("prefer-binary: %s == 0", varList(c.Vars))
	case types.ConstraintDependency:
		if note, ok := c.Note.(*types.DependencyNote); ok {
			return fmt.Sprintf("dependency: %s", note.Message)
		}
		return "dependency: <unrendered>"
	default:
		return fmt.Sprintf("%s: %s %s %d", c.Kind, varList(c.Vars), c.Op, c.RHS)
	}
}

func varList(vars []int) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = fmt.Sprintf("x%d", v)
	}
	return strings.Join(parts, " + ")
}

func refOf(candidates []types.Candidate, varID int) string {
	idx := varID - 1
	if idx < 0 || idx >= len(candidates) {
		return ""
	}
	return candidates[idx].Ref
}

// dependencyMessage pre-renders the human-readable description carried
// by a dependency constraint's Note, reused later by both RenderProblem
// and the Blame Tracer.
func dependencyMessage(c types.Candidate, dep types.DepEdge) string {
	if dep.Op != types.ConstraintOpNone && dep.Version != "" {
		return fmt.Sprintf("%s requires %s (%s %s)", c.Ref, dep.Package, dep.Op, dep.Version)
	}
	return fmt.Sprintf("%s requires %s", c.Ref, dep.Package)
}
