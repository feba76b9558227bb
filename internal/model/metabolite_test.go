package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fluxutil/internal/frozen"
)

func TestMetaboliteHash(t *testing.T) {
	a := NewMetabolite("glc", "Glucose", "e")
	a.Annotation = frozen.New(frozen.P("kegg", "C00031"), frozen.P("chebi", "CHEBI:4167"))

	b := NewMetabolite("glc", "Glucose", "e")
	b.Annotation = frozen.New(frozen.P("chebi", "CHEBI:4167"), frozen.P("kegg", "C00031"))

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	b.Charge = -1
	hc, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
	assert.Equal(t, "glc", a.String())
}
