package engine

import (
	"testing"

	"github.com/chazu/weightscan/pkg/overlap"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "kebab-case builtin",
			input:  `(has-group "Spine")`,
			expect: `(has_group "Spine")`,
		},
		{
			name:   "nested kebab-case",
			input:  `(and (cross-side) (> (verts) 3))`,
			expect: `(and (cross_side) (> (verts) 3))`,
		},
		{
			name:   "hyphen in string preserved",
			input:  `(has-group "Bip01 L-Hand")`,
			expect: `(has_group "Bip01 L-Hand")`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(> (verts) -1)`,
			expect: `(> (verts) -1)`,
		},
		{
			name:   "comment converted to // style",
			input:  ";; pick spine overlaps\n(has-group \"Spine\")",
			expect: "// pick spine overlaps\n(has_group \"Spine\")",
		},
		{
			name:   "escaped quote inside string",
			input:  `(has-group "a\"-b")`,
			expect: `(has_group "a\"-b")`,
		},
		{
			name:   "backtick string preserved",
			input:  "(group-matches `^L-`)",
			expect: "(group_matches `^L-`)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, preprocessSource(tt.input))
		})
	}
}

func TestSideOf(t *testing.T) {
	tests := map[string]string{
		"Bip01 L Thigh": "L",
		"Bip01 R Calf":  "R",
		"L Arm":         "L",
		"Hand R":        "R",
		"Bip01 Spine":   "",
		"Left":          "",
	}
	for name, want := range tests {
		assert.Equal(t, want, sideOf(name), name)
	}
}

func TestTruthy(t *testing.T) {
	ok, err := truthy(&zygo.SexpBool{Val: true})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = truthy(&zygo.SexpBool{Val: false})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = truthy(zygo.SexpNull)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = truthy(&zygo.SexpInt{Val: 3})
	assert.Error(t, err)
}

func TestFactsOf(t *testing.T) {
	assert.Equal(t, entryFacts{}, factsOf(nil))

	e := overlap.NewEntry(overlap.NewPair("B", "A"), 1, 2)
	e.Selected = true
	f := factsOf(e)
	assert.Equal(t, overlap.Pair{A: "A", B: "B"}, f.pair)
	assert.Equal(t, 2, f.count)
	assert.True(t, f.selected)
}
