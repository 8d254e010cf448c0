package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolver/internal/types"
)

func TestRenderProblemIncludesCandidatesAndConstraints(t *testing.T) {
	candidates := []types.Candidate{
		okCandidate("cran::A@1.0", "A", "1.0", true),
	}
	problem, err := BuildProblem(context.Background(), candidates, BuildOptions{Policy: types.PolicyLazy})
	require.NoError(t, err)

	rendered := RenderProblem(problem, candidates)
	require.True(t, strings.Contains(rendered, "1: cran::A@1.0"))
	require.True(t, strings.Contains(rendered, "exactly-once"))
}
