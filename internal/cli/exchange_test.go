package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fluxutil/internal/exchange"
	"github.com/roach88/fluxutil/internal/store"
	"github.com/roach88/fluxutil/internal/testutil"
)

func TestExchangeDemandGolden(t *testing.T) {
	out, _, err := execute(t, "exchange", testutil.ModelDir(t), "pyr_c")
	require.NoError(t, err)
	assertGolden(t, "exchange_demand", out)
}

func TestExchangeUptakeJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "exchange", testutil.ModelDir(t), "f6p_c",
		"--uptake", "--prefix", "EX_", "--bound", "5")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   ExchangeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "core", resp.Data.Model)
	require.Len(t, resp.Data.Reactions, 1)

	r := resp.Data.Reactions[0]
	assert.Equal(t, "EX_f6p_c", r.ID)
	assert.Equal(t, "Exchange D-Fructose 6-phosphate", r.Name)
	assert.Equal(t, "f6p_c <--", r.Equation)
	assert.Equal(t, -5.0, r.LowerBound)
	assert.Equal(t, 0.0, r.UpperBound)
	assert.Empty(t, resp.Data.Events)
}

func TestExchangeDuplicate(t *testing.T) {
	out, _, err := execute(t, "exchange", testutil.ModelDir(t), "glc__D_e", "--prefix", "EX_")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, exchange.IsDuplicate(err))
	assert.Contains(t, out, ErrCodeDuplicateExchange)
}

func TestExchangeUnknownMetabolite(t *testing.T) {
	out, _, err := execute(t, "exchange", testutil.ModelDir(t), "atp_c")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, exchange.ErrUnknownMetabolite)
	assert.Contains(t, out, ErrCodeUnknownMetabolite)
}

func TestExchangeNeedsMetaboliteOrPlan(t *testing.T) {
	_, _, err := execute(t, "exchange", testutil.ModelDir(t))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte("exchanges: []\n"), 0o644))
	_, _, err = execute(t, "exchange", testutil.ModelDir(t), "pyr_c", "--plan", plan)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExchangePlan(t *testing.T) {
	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte(`model: core
exchanges:
  - metabolite: pyr_c
  - metabolite: f6p_c
    demand: false
    prefix: EX_
    bound: 20
`), 0o644))

	out, _, err := execute(t, "exchange", testutil.ModelDir(t), "--plan", plan)
	require.NoError(t, err)
	assert.Equal(t,
		"Added DM_pyr_c (Demand Pyruvate): pyr_c -->  [0, 1000]\n"+
			"Added EX_f6p_c (Exchange D-Fructose 6-phosphate): f6p_c <--  [-20, 0]\n",
		out)
}

func TestExchangeBadPlan(t *testing.T) {
	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte("exchanges:\n  - bogus: 1\n"), 0o644))

	out, _, err := execute(t, "exchange", testutil.ModelDir(t), "--plan", plan)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeInvalidPlan)
}

func TestExchangePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "models.db")
	opts := &ExchangeOptions{
		RootOptions: &RootOptions{Format: "text"},
		Prefix:      exchange.DefaultPrefix,
		Bound:       exchange.DefaultBound,
		DBPath:      dbPath,
		IDs:         testutil.NewSequenceGenerator(),
	}
	cmd, buf := testCommand()

	require.NoError(t, runExchange(context.Background(), opts, testutil.ModelDir(t), "pyr_c", cmd))
	assert.Equal(t,
		"Added DM_pyr_c (Demand Pyruvate): pyr_c -->  [0, 1000]\n"+
			"Recorded event 1 00000000-0000-7000-8000-000000000001\n",
		buf.String())

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	m, err := s.LoadModel(context.Background(), "core")
	require.NoError(t, err)
	assert.True(t, m.HasReaction("DM_pyr_c"))
	assert.Len(t, m.Reactions(), 4)

	events, err := s.ExchangeEvents(context.Background(), "core")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "DM_pyr_c", events[0].ReactionID)
	assert.True(t, events[0].Demand)
}
