package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"depsolver/internal/types"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		expect int
	}{
		{"equal", "1.2.3", "1.2.3", 0},
		{"shorter padded with zero ties", "1.2", "1.2.0", 0},
		{"later patch", "1.2.10", "1.2.9", 1},
		{"later minor", "1.3.0", "1.2.9", 1},
		{"earlier major", "0.9.9", "1.0.0", -1},
		{"non-numeric component treated as zero", "1.2.x", "1.2.0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, compareVersions(tt.a, tt.b))
		})
	}
}

func TestVersionSatisfies(t *testing.T) {
	tests := []struct {
		name   string
		v      string
		op     types.ConstraintOp
		req    string
		expect bool
	}{
		{"no op always satisfies", "1.0.0", types.ConstraintOpNone, "2.0.0", true},
		{"empty req always satisfies", "1.0.0", types.ConstraintOpGte, "", true},
		{"gte satisfied", "1.5.0", types.ConstraintOpGte, "1.2.0", true},
		{"gte violated", "1.1.0", types.ConstraintOpGte, "1.2.0", false},
		{"lt satisfied", "1.1.0", types.ConstraintOpLt, "1.2.0", true},
		{"eq satisfied", "1.2.0", types.ConstraintOpEq, "1.2.0", true},
		{"ne satisfied", "1.2.1", types.ConstraintOpNe, "1.2.0", true},
		{"gt violated on equal", "1.2.0", types.ConstraintOpGt, "1.2.0", false},
		{"lte satisfied on equal", "1.2.0", types.ConstraintOpLte, "1.2.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, VersionSatisfies(tt.v, tt.op, tt.req))
		})
	}
}
