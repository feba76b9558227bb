package model

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturingModel(t *testing.T) (*Model, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New("e_coli_core", WithLogger(logger), WithName("E. coli core")), buf
}

func TestModelAddReactions(t *testing.T) {
	m, _ := newCapturingModel(t)
	glc := NewMetabolite("glc", "Glucose", "e")
	r := NewReaction("EX_glc", "Exchange Glucose")
	require.NoError(t, r.AddMetabolites(map[*Metabolite]float64{glc: -1}))

	require.NoError(t, m.AddReactions(r))

	assert.True(t, m.HasReaction("EX_glc"))
	assert.True(t, m.HasMetabolite("glc"), "missing metabolites are added")
	assert.Same(t, m, r.Model())
	assert.Same(t, m, glc.Model())
	assert.Equal(t, "E. coli core", m.Name)

	got, ok := m.Reaction("EX_glc")
	require.True(t, ok)
	assert.Same(t, r, got)
}

func TestModelAddReactionsSkipsDuplicates(t *testing.T) {
	m, logs := newCapturingModel(t)
	first := NewReaction("R1", "first")
	second := NewReaction("R1", "second")

	require.NoError(t, m.AddReactions(first, second))
	require.NoError(t, m.AddReactions(NewReaction("R1", "third")))

	assert.Len(t, m.Reactions(), 1)
	r, _ := m.Reaction("R1")
	assert.Equal(t, "first", r.Name)
	assert.Contains(t, logs.String(), "ignoring reaction already in model")
}

func TestModelAddReactionsRebindsMetabolites(t *testing.T) {
	m, _ := newCapturingModel(t)
	own := NewMetabolite("atp_c", "ATP", "c")
	_, err := m.AddMetabolites(own)
	require.NoError(t, err)

	r := NewReaction("ATPM", "")
	require.NoError(t, r.AddMetabolites(map[*Metabolite]float64{NewMetabolite("atp_c", "ATP copy", "c"): -1}))
	require.NoError(t, m.AddReactions(r))

	assert.Equal(t, []*Metabolite{own}, r.Metabolites())
	assert.Len(t, m.Metabolites(), 1)
}

func TestModelAddReactionsValidatesFirst(t *testing.T) {
	m, _ := newCapturingModel(t)
	other := New("other")
	foreign := NewReaction("F", "")
	require.NoError(t, other.AddReactions(foreign))

	err := m.AddReactions(NewReaction("OK", ""), foreign)
	require.Error(t, err)
	assert.True(t, IsForeignReaction(err))
	assert.False(t, m.HasReaction("OK"), "nothing added when the batch is rejected")

	err = m.AddReactions(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(ErrCodeNilEntity))
}

func TestModelReactionJoinsLateMetabolites(t *testing.T) {
	m, _ := newCapturingModel(t)
	r := NewReaction("R", "")
	require.NoError(t, m.AddReactions(r))

	require.NoError(t, r.AddMetabolites(map[*Metabolite]float64{NewMetabolite("h2o_c", "H2O", "c"): 1}))
	assert.True(t, m.HasMetabolite("h2o_c"))
}

func TestModelAddMetabolitesSkipsDuplicates(t *testing.T) {
	m, logs := newCapturingModel(t)
	n, err := m.AddMetabolites(NewMetabolite("a", "", "c"), NewMetabolite("a", "", "c"), NewMetabolite("b", "", "c"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, logs.String(), "ignoring metabolite already in model")

	_, err = m.AddMetabolites(nil)
	assert.Error(t, err)
}

func TestModelRemoveReactions(t *testing.T) {
	m, _ := newCapturingModel(t)
	r1, r2 := NewReaction("R1", ""), NewReaction("R2", "")
	require.NoError(t, m.AddReactions(r1, r2))

	assert.Equal(t, 1, m.RemoveReactions("R1", "missing"))
	assert.False(t, m.HasReaction("R1"))
	assert.Nil(t, r1.Model())
	assert.Equal(t, []*Reaction{r2}, m.Reactions())
	assert.Equal(t, 0, m.RemoveReactions("R1"))
}

func TestModelBoundaryAndIndex(t *testing.T) {
	m, _ := newCapturingModel(t)
	glcE := NewMetabolite("glc__D_e", "D-Glucose", "e")
	glcC := NewMetabolite("glc__D_c", "D-Glucose", "c")

	ex := NewReaction("EX_glc__D_e", "")
	require.NoError(t, ex.AddMetabolites(map[*Metabolite]float64{glcE: -1}))
	tr := NewReaction("GLCt", "")
	require.NoError(t, tr.AddMetabolites(map[*Metabolite]float64{glcE: -1, glcC: 1}))
	require.NoError(t, m.AddReactions(ex, tr))

	assert.Equal(t, []*Reaction{ex}, m.Boundary())
	assert.Equal(t, []*Reaction{ex, tr}, m.ReactionsOf("glc__D_e"))

	idx := m.Index()
	assert.Equal(t, []string{"e", "c"}, idx.Keys())

	c, ok := idx.Get("e").Get("glc__D_e").Get("GLCt").Value()
	require.True(t, ok)
	assert.Equal(t, -1.0, c)

	c, ok = idx.Path("c", "glc__D_c", "GLCt").Value()
	require.True(t, ok)
	assert.Equal(t, 1.0, c)
}

func TestModelHash(t *testing.T) {
	build := func(bound float64) *Model {
		m := New("toy")
		a := NewMetabolite("a", "A", "c")
		r := NewReaction("R", "")
		require.NoError(t, r.AddMetabolites(map[*Metabolite]float64{a: -1}))
		require.NoError(t, r.SetBounds(0, bound))
		require.NoError(t, m.AddReactions(r))
		return m
	}

	h1, err := build(10).Hash()
	require.NoError(t, err)
	h2, err := build(10).Hash()
	require.NoError(t, err)
	h3, err := build(20).Hash()
	require.NoError(t, err)

	assert.Len(t, h1, 64)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3, "bounds change the digest")
}
