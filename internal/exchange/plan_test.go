package exchange

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fluxutil/internal/model"
)

const samplePlan = `
model: core
exchanges:
  - metabolite: glc
    demand: false
    prefix: EX_
    bound: 10
  - metabolite: atp
`

func planModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("core")
	_, err := m.AddMetabolites(
		model.NewMetabolite("glc", "Glucose", "e"),
		model.NewMetabolite("atp", "ATP", "c"),
	)
	require.NoError(t, err)
	return m
}

func TestParsePlan(t *testing.T) {
	p, err := ParsePlan([]byte(samplePlan))
	require.NoError(t, err)

	assert.Equal(t, "core", p.Model)
	require.Len(t, p.Exchanges, 2)
	assert.Equal(t, "glc", p.Exchanges[0].Metabolite)
	require.NotNil(t, p.Exchanges[0].Demand)
	assert.False(t, *p.Exchanges[0].Demand)
	assert.Equal(t, 10.0, *p.Exchanges[0].Bound)
	assert.Nil(t, p.Exchanges[1].Prefix)
	assert.Empty(t, p.Exchanges[1].Options())
	assert.Len(t, p.Exchanges[0].Options(), 3)
}

func TestParsePlanErrors(t *testing.T) {
	_, err := ParsePlan([]byte("exchanges:\n  - demand: true\n"))
	assert.ErrorContains(t, err, "metabolite is required")

	_, err = ParsePlan([]byte("exchanges:\n  - metabolite: glc\n    colour: red\n"))
	assert.ErrorContains(t, err, "parse plan")
}

func TestPlanApply(t *testing.T) {
	p, err := ParsePlan([]byte(samplePlan))
	require.NoError(t, err)
	m := planModel(t)

	created, err := p.Apply(m)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, "EX_glc", created[0].ID)
	lb, ub := created[0].Bounds()
	assert.Equal(t, -10.0, lb)
	assert.Equal(t, 0.0, ub)

	assert.Equal(t, "DM_atp", created[1].ID)
	assert.Equal(t, "Demand ATP", created[1].Name)
	assert.True(t, m.HasReaction("DM_atp"))
}

func TestPlanApplyStopsAtFirstError(t *testing.T) {
	p := &Plan{Exchanges: []Entry{{Metabolite: "atp"}, {Metabolite: "nope"}, {Metabolite: "glc"}}}
	m := planModel(t)

	created, err := p.Apply(m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMetabolite)
	assert.Len(t, created, 1)
	assert.False(t, m.HasReaction("DM_glc"))

	created, err = (&Plan{Exchanges: []Entry{{Metabolite: "atp"}}}).Apply(m)
	assert.True(t, IsDuplicate(err))
	assert.Empty(t, created)
}

func TestPlanApplyModelMismatch(t *testing.T) {
	_, err := (&Plan{Model: "other"}).Apply(planModel(t))
	assert.ErrorContains(t, err, `plan targets model "other"`)
}

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePlan), 0o644))

	p, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Len(t, p.Exchanges, 2)

	_, err = LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read plan")
}
