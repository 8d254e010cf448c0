package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"depsolver/internal/types"
)

func TestRefKind(t *testing.T) {
	tests := []struct {
		ref    string
		expect types.CandidateKind
	}{
		{"cran::Pkg", types.CandidateCran},
		{"bioc::Pkg", types.CandidateBioc},
		{"github::user/Pkg@sha", types.CandidateGithub},
		{"url::https://example.com/Pkg.tar.gz", types.CandidateURL},
		{"local::/tmp/Pkg", types.CandidateLocal},
		{"installed::Pkg", types.CandidateInstalled},
		{"standard::Pkg", types.CandidateStandard},
		{"Pkg", types.CandidateStandard},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.expect, refKind(tt.ref))
		})
	}
}

func TestSatisfiesRemote(t *testing.T) {
	tests := []struct {
		name   string
		wanted types.Candidate
		other  types.Candidate
		expect bool
	}{
		{
			name:   "identical ref always satisfies",
			wanted: types.Candidate{Ref: "cran::Pkg", Kind: types.CandidateCran},
			other:  types.Candidate{Ref: "cran::Pkg", Kind: types.CandidateCran},
			expect: true,
		},
		{
			name:   "standard accepts cran",
			wanted: types.Candidate{Ref: "Pkg", Kind: types.CandidateStandard},
			other:  types.Candidate{Ref: "cran::Pkg", Kind: types.CandidateCran},
			expect: true,
		},
		{
			name:   "standard accepts installed with matching repotype",
			wanted: types.Candidate{Ref: "Pkg", Kind: types.CandidateStandard},
			other:  types.Candidate{Ref: "installed::Pkg", Kind: types.CandidateInstalled, RepoType: "cran"},
			expect: true,
		},
		{
			name:   "standard rejects installed with mismatched repotype",
			wanted: types.Candidate{Ref: "Pkg", Kind: types.CandidateStandard},
			other:  types.Candidate{Ref: "installed::Pkg", Kind: types.CandidateInstalled, RepoType: "apt"},
			expect: false,
		},
		{
			name:   "cran rejects bioc",
			wanted: types.Candidate{Ref: "cran::Pkg", Kind: types.CandidateCran},
			other:  types.Candidate{Ref: "bioc::Pkg", Kind: types.CandidateBioc},
			expect: false,
		},
		{
			name:   "github requires identical ref",
			wanted: types.Candidate{Ref: "github::user/Pkg@sha1", Kind: types.CandidateGithub},
			other:  types.Candidate{Ref: "github::user/Pkg@sha2", Kind: types.CandidateGithub},
			expect: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, SatisfiesRemote(tt.wanted, tt.other))
		})
	}
}
