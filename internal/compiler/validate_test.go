package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fluxutil/internal/model"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateCleanModel(t *testing.T) {
	v := compile(t, coreCUE)
	m, err := CompileModel(v.LookupPath(cue.ParsePath("model.core")))
	require.NoError(t, err)
	assert.Empty(t, Validate(m))
}

func TestValidateFindings(t *testing.T) {
	m := model.New("bad")
	assert.Equal(t, []string{ErrModelEmpty}, codes(Validate(m)))

	orphan := model.NewMetabolite("x", "", "")
	_, err := m.AddMetabolites(orphan)
	require.NoError(t, err)

	blocked := model.NewReaction("R", "")
	require.NoError(t, blocked.SetBounds(0, 0))
	require.NoError(t, m.AddReactions(blocked))

	errs := Validate(m)
	assert.ElementsMatch(t, []string{
		ErrReactionEmpty,
		ErrBlockedReaction,
		ErrMissingName,
		ErrNoCompartment,
		ErrMissingName,
		ErrOrphanMetabolite,
	}, codes(errs))
	assert.Contains(t, errs[0].Error(), "[E102] reaction.R.metabolites")
}
