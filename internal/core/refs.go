package core

import "depsolver/internal/types"

// SatisfiesRemote decides whether other is an acceptable substitute for
// wanted, per spec.md §4.1.3. The exact predicate is part of the
// resolver contract; this is the deterministic rule this solver commits
// to (see DESIGN.md's Open Question entry for the reasoning): identical
// refs always satisfy; a standard request accepts any registry
// candidate (cran, bioc, standard, or an installed package whose
// repotype is cran or bioc); a cran or
// bioc request additionally accepts an installed candidate that
// originated from that same registry; every other kind only accepts an
// identical ref.
func SatisfiesRemote(wanted, other types.Candidate) bool {
	if wanted.Ref == other.Ref {
		return true
	}
	switch wanted.Kind {
	case types.CandidateStandard:
		switch other.Kind {
		case types.CandidateCran, types.CandidateBioc, types.CandidateStandard:
			return true
		case types.CandidateInstalled:
			return other.RepoType == "cran" || other.RepoType == "bioc"
		default:
			return false
		}
	case types.CandidateCran:
		if other.Kind == types.CandidateCran {
			return true
		}
		return other.Kind == types.CandidateInstalled && other.RepoType == "cran"
	case types.CandidateBioc:
		if other.Kind == types.CandidateBioc {
			return true
		}
		return other.Kind == types.CandidateInstalled && other.RepoType == "bioc"
	default:
		// github, url, local, deps, installed: only an identical ref qualifies.
		return false
	}
}

// refKind infers the requested candidate kind from a dependency edge's
// ref, using the "<kind>::<identifier>" convention spec.md §3 shows in
// its examples (cran::Pkg, github::user/Pkg@sha). A ref with no
// recognized prefix is treated as a bare package name, i.e. a standard
// request against any registry.
func refKind(ref string) types.CandidateKind {
	for i := 0; i+1 < len(ref); i++ {
		if ref[i] == ':' && ref[i+1] == ':' {
			switch ref[:i] {
			case "cran":
				return types.CandidateCran
			case "bioc":
				return types.CandidateBioc
			case "github":
				return types.CandidateGithub
			case "url":
				return types.CandidateURL
			case "local":
				return types.CandidateLocal
			case "deps":
				return types.CandidateDeps
			case "installed":
				return types.CandidateInstalled
			case "standard":
				return types.CandidateStandard
			}
			break
		}
	}
	return types.CandidateStandard
}
