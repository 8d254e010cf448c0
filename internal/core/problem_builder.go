package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolver/internal/ports"
	"depsolver/internal/types"
)

// BuildOptions configures one Problem Builder invocation.
type BuildOptions struct {
	Policy       types.Policy
	BasePackages ports.BasePackages
}

// BuildProblem encodes candidates and policy as an ILP Problem, applying
// the seven ordered phases of spec.md §4.1. Phases are commutative in
// outcome but all seven always run, in order.
func BuildProblem(ctx context.Context, candidates []types.Candidate, opts BuildOptions) (*types.Problem, error) {
	for _, c := range candidates {
		assert.NotEmpty(ctx, c.Ref, "candidate ref must be set")
		assert.NotEmpty(ctx, c.Package, "candidate package must be set")
	}

	directPackages := directPackageNames(candidates)
	n := len(candidates)
	d := len(directPackages)

	// 4.1.1 objective coefficients
	candidateObj, err := buildObjective(candidates, opts.Policy)
	if err != nil {
		return nil, err
	}
	obj := make([]int, n+d)
	copy(obj, candidateObj)
	for i := n; i < n+d; i++ {
		obj[i] = types.DummyCost
	}

	problem := &types.Problem{
		NumCandidates: n,
		NumDirect:     d,
		Total:         n + d,
		Obj:           obj,
		RuledOut:      map[int]struct{}{},
	}

	// 4.1.2 cardinality constraints
	addCardinalityConstraints(problem, candidates, directPackages)

	// 4.1.3 direct-ref satisfaction
	addDirectRefConstraints(problem, candidates)

	// 4.1.4 resolution failures
	addResolutionFailureConstraints(problem, candidates)

	// 4.1.5 prefer installed
	addPreferInstalledConstraints(problem, candidates)

	// 4.1.6 prefer binaries
	addPreferBinaryConstraints(problem, candidates)

	// 4.1.7 dependency constraints
	addDependencyConstraints(problem, candidates, opts.BasePackages)

	return problem, nil
}

// directPackageNames returns, in candidate-table order of first
// appearance, every package name with at least one direct candidate.
func directPackageNames(candidates []types.Candidate) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range candidates {
		if !c.Direct || seen[c.Package] {
			continue
		}
		seen[c.Package] = true
		out = append(out, c.Package)
	}
	return out
}

// packageOrder returns every package name in candidate-table order of
// first appearance, along with the 1-indexed variable ids of its candidates.
func packageOrder(candidates []types.Candidate) ([]string, map[string][]int) {
	seen := map[string]bool{}
	var order []string
	byPackage := map[string][]int{}
	for i, c := range candidates {
		if !seen[c.Package] {
			seen[c.Package] = true
			order = append(order, c.Package)
		}
		byPackage[c.Package] = append(byPackage[c.Package], i+1)
	}
	return order, byPackage
}

// --- 4.1.1 objective coefficients ---

func buildObjective(candidates []types.Candidate, policy types.Policy) ([]int, error) {
	switch policy {
	case types.PolicyLazy:
		return lazyObjective(candidates), nil
	case types.PolicyUpgrade:
		return upgradeObjective(candidates), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown policy: %q", policy))
	}
}

func lazyObjective(candidates []types.Candidate) []int {
	obj := make([]int, len(candidates))
	for i, c := range candidates {
		switch {
		case c.Kind == types.CandidateInstalled:
			obj[i] = 0
		case c.Platform == types.PlatformSource:
			obj[i] = 5
		default:
			obj[i] = 1
		}
	}
	return obj
}

// upgradeBase is the starting coefficient assigned to every candidate
// before per-package ranking overwrites it, capped well below
// DummyCost so a large-but-feasible table is never mistaken for an
// infeasible one (§7/§8).
func upgradeBase(n int) int {
	base := (n + 1) * 100
	if base > types.DummyCost/2 || base < 0 {
		base = types.DummyCost / 2
	}
	return base
}

func upgradeObjective(candidates []types.Candidate) []int {
	n := len(candidates)
	obj := make([]int, n)
	if n == 0 {
		return obj
	}
	base := upgradeBase(n)
	for i := range obj {
		obj[i] = base
	}

	byPackage := map[string][]int{}
	var pkgOrder []string
	seen := map[string]bool{}
	for i, c := range candidates {
		if !seen[c.Package] {
			seen[c.Package] = true
			pkgOrder = append(pkgOrder, c.Package)
		}
		byPackage[c.Package] = append(byPackage[c.Package], i)
	}

	for _, pkg := range pkgOrder {
		idxs := byPackage[pkg]
		var okIdx []int
		for _, i := range idxs {
			if candidates[i].Status == types.StatusOK && candidates[i].Version != "" {
				okIdx = append(okIdx, i)
			}
		}
		if len(okIdx) == 0 {
			continue
		}
		sort.SliceStable(okIdx, func(a, b int) bool {
			return compareVersions(candidates[okIdx[a]].Version, candidates[okIdx[b]].Version) < 0
		})
		ranks := competitionRanks(okIdx, candidates)
		maxRank := ranks[len(ranks)-1]
		minCoef := 0
		coefs := make([]int, len(okIdx))
		for k := range okIdx {
			coefs[k] = (maxRank - ranks[k] + 1) * 100
			if k == 0 || coefs[k] < minCoef {
				minCoef = coefs[k]
			}
		}
		for k, i := range okIdx {
			obj[i] = coefs[k] - minCoef
		}
	}

	for i, c := range candidates {
		switch {
		case c.Kind == types.CandidateInstalled:
			obj[i] += 1
		case c.Platform == types.PlatformSource:
			obj[i] += 3
		default:
			obj[i] += 2
		}
	}

	globalMin := obj[0]
	for _, v := range obj {
		if v < globalMin {
			globalMin = v
		}
	}
	for i := range obj {
		obj[i] -= globalMin
	}
	return obj
}

// competitionRanks assigns standard competition ranks (1,1,3,4,...) to
// sortedIdx, which must already be sorted ascending by version: tied
// versions share the lower rank.
func competitionRanks(sortedIdx []int, candidates []types.Candidate) []int {
	ranks := make([]int, len(sortedIdx))
	rank := 1
	for k := 0; k < len(sortedIdx); {
		j := k
		for j < len(sortedIdx) && compareVersions(candidates[sortedIdx[j]].Version, candidates[sortedIdx[k]].Version) == 0 {
			j++
		}
		for t := k; t < j; t++ {
			ranks[t] = rank
		}
		rank += j - k
		k = j
	}
	return ranks
}

// --- 4.1.2 cardinality constraints ---

func addCardinalityConstraints(problem *types.Problem, candidates []types.Candidate, directPackages []string) {
	directIndex := map[string]int{}
	for idx, name := range directPackages {
		directIndex[name] = idx
	}
	pkgOrder, byPackage := packageOrder(candidates)

	for _, pkg := range pkgOrder {
		vars := byPackage[pkg]
		if slot, ok := directIndex[pkg]; ok {
			slack := problem.NumCandidates + slot + 1
			allVars := append(append([]int{}, vars...), slack)
			coef := onesLike(allVars)
			problem.Conds = append(problem.Conds, types.Constraint{
				Vars: allVars, Coef: coef, Op: types.RelEq, RHS: 1,
				Kind: types.ConstraintExactlyOnce,
			})
			continue
		}
		coef := onesLike(vars)
		problem.Conds = append(problem.Conds, types.Constraint{
			Vars: append([]int{}, vars...), Coef: coef, Op: types.RelLte, RHS: 1,
			Kind: types.ConstraintAtMostOnce,
		})
	}
}

func onesLike(vars []int) []int {
	coef := make([]int, len(vars))
	for i := range coef {
		coef[i] = 1
	}
	return coef
}

// --- 4.1.3 direct-ref satisfaction ---

func addDirectRefConstraints(problem *types.Problem, candidates []types.Candidate) {
	for ci, c := range candidates {
		if !c.Direct {
			continue
		}
		for oi, o := range candidates {
			if oi == ci || o.Package != c.Package {
				continue
			}
			if SatisfiesRemote(c, o) {
				continue
			}
			v := oi + 1
			problem.Conds = append(problem.Conds, types.Constraint{
				Vars: []int{v}, Coef: []int{1}, Op: types.RelEq, RHS: 0,
				Kind: types.ConstraintSatisfyRefs, Note: ci + 1,
			})
		}
	}
}

// --- 4.1.4 resolution failures ---

func addResolutionFailureConstraints(problem *types.Problem, candidates []types.Candidate) {
	for i, c := range candidates {
		if c.Status != types.StatusFailed {
			continue
		}
		v := i + 1
		problem.Conds = append(problem.Conds, types.Constraint{
			Vars: []int{v}, Coef: []int{1}, Op: types.RelEq, RHS: 0,
			Kind: types.ConstraintOkResolution,
		})
		problem.RuledOut[v] = struct{}{}
	}
}

// --- 4.1.5 prefer installed ---

func addPreferInstalledConstraints(problem *types.Problem, candidates []types.Candidate) {
	for i, c := range candidates {
		if c.Kind != types.CandidateInstalled {
			continue
		}
		if c.RepoType != "cran" && c.RepoType != "bioc" {
			continue
		}
		for j, o := range candidates {
			if j == i || o.Package != c.Package || o.Version != c.Version {
				continue
			}
			switch o.Kind {
			case types.CandidateCran, types.CandidateBioc, types.CandidateStandard:
			default:
				continue
			}
			v := j + 1
			problem.Conds = append(problem.Conds, types.Constraint{
				Vars: []int{v}, Coef: []int{1}, Op: types.RelEq, RHS: 0,
				Kind: types.ConstraintPreferInstalled,
			})
			problem.RuledOut[v] = struct{}{}
		}
	}
}

// --- 4.1.6 prefer binaries ---

const preferBinaryMirrorMarker = "__linux__"

type binaryPartitionKey struct {
	kind    types.CandidateKind
	pkg     string
	version string
}

func addPreferBinaryConstraints(problem *types.Problem, candidates []types.Candidate) {
	var order []binaryPartitionKey
	groups := map[binaryPartitionKey][]int{}
	for i, c := range candidates {
		switch c.Kind {
		case types.CandidateCran, types.CandidateBioc, types.CandidateStandard:
		default:
			continue
		}
		key := binaryPartitionKey{c.Kind, c.Package, c.Version}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	for _, key := range order {
		members := groups[key]
		preferred := -1
		for _, idx := range members {
			if candidates[idx].Platform != types.PlatformSource {
				preferred = idx
				break
			}
		}
		if preferred < 0 {
			for _, idx := range members {
				if strings.Contains(candidates[idx].Mirror, preferBinaryMirrorMarker) {
					preferred = idx
					break
				}
			}
		}
		if preferred < 0 {
			continue
		}
		for _, idx := range members {
			if idx == preferred {
				continue
			}
			v := idx + 1
			problem.Conds = append(problem.Conds, types.Constraint{
				Vars: []int{v}, Coef: []int{1}, Op: types.RelEq, RHS: 0,
				Kind: types.ConstraintPreferBinary,
			})
			problem.RuledOut[v] = struct{}{}
		}
	}
}

// --- 4.1.7 dependency constraints ---

func addDependencyConstraints(problem *types.Problem, candidates []types.Candidate, basePackages ports.BasePackages) {
	_, byPackage := packageOrder(candidates)

	for ci, c := range candidates {
		if c.Status != types.StatusOK {
			continue
		}
		if _, ruled := problem.RuledOut[ci+1]; ruled {
			continue
		}
		for _, dep := range filterDeps(c, basePackages) {
			candIdx := byPackage[dep.Package]
			wanted := types.Candidate{Ref: dep.Ref, Package: dep.Package, Kind: refKind(dep.Ref)}
			var goodCand []int
			for _, v := range candIdx {
				o := candidates[v-1]
				if o.Status != types.StatusOK {
					continue
				}
				if !SatisfiesRemote(wanted, o) {
					continue
				}
				if dep.Op != types.ConstraintOpNone && dep.Version != "" {
					if !VersionSatisfies(o.Version, dep.Op, dep.Version) {
						continue
					}
				}
				goodCand = append(goodCand, v)
			}

			vars := append([]int{ci + 1}, goodCand...)
			coef := make([]int, len(vars))
			coef[0] = 1
			for k := 1; k < len(coef); k++ {
				coef[k] = -1
			}
			note := &types.DependencyNote{
				Upstream:   ci + 1,
				DepRef:     dep.Ref,
				Candidates: append([]int{}, candIdx...),
				GoodCand:   append([]int{}, goodCand...),
				Message:    dependencyMessage(c, dep),
			}
			problem.Conds = append(problem.Conds, types.Constraint{
				Vars: vars, Coef: coef, Op: types.RelLte, RHS: 0,
				Kind: types.ConstraintDependency, Note: note,
			})
		}
	}
}

// filterDeps applies the three filters of §4.1.7, plus the binary
// linkingto exclusion.
func filterDeps(c types.Candidate, basePackages ports.BasePackages) []types.DepEdge {
	var out []types.DepEdge
	for _, d := range c.Deps {
		if d.Ref == "R" {
			continue
		}
		if basePackages != nil && basePackages(d.Package) {
			continue
		}
		if _, ok := c.DepTypes[d.Type]; !ok {
			continue
		}
		if c.Platform != types.PlatformSource && d.Type == "linkingto" {
			continue
		}
		out = append(out, d)
	}
	return out
}
