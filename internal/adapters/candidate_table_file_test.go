package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsolver/internal/types"
)

const sampleTable = `
policy: lazy
base_packages:
  - base
  - utils
candidates:
  - ref: cran::A@1.0
    package: A
    version: "1.0"
    kind: cran
    platform: x86_64
    direct: true
    status: OK
    dep_types: ["depends", "imports"]
    deps:
      - ref: cran::B
        package: B
        type: depends
`

func TestCandidateTableFileAdapterLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))

	adapter := NewCandidateTableFileAdapter()
	candidates, policy, base, err := adapter.Load(path)
	require.NoError(t, err)

	assert.Equal(t, types.PolicyLazy, policy)
	_, ok := base["base"]
	assert.True(t, ok)

	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, "cran::A@1.0", c.Ref)
	assert.Equal(t, types.CandidateCran, c.Kind)
	_, hasDepends := c.DepTypes["depends"]
	assert.True(t, hasDepends)
	require.Len(t, c.Deps, 1)
	assert.Equal(t, "B", c.Deps[0].Package)
}

func TestCandidateTableFileAdapterMissingFile(t *testing.T) {
	adapter := NewCandidateTableFileAdapter()
	_, _, _, err := adapter.Load("/no/such/file.yaml")
	require.Error(t, err)
}

func TestBasePackagePredicate(t *testing.T) {
	pred := BasePackagePredicate(map[string]struct{}{"base": {}})
	assert.True(t, pred("base"))
	assert.False(t, pred("other"))
}
