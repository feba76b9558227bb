package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/fluxutil/internal/store"
)

// ShowResult is the success payload of the show command.
type ShowResult struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	ContentHash string                `json:"content_hash"`
	Reactions   []ReactionView        `json:"reactions"`
	Events      []store.ExchangeEvent `json:"events"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <db> <model-id>",
		Short: "Show a model saved in a store",
		Long: `Print the reactions of a model saved with "exchange --db" together
with the store's exchange log for it.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runShow(ctx context.Context, opts *RootOptions, dbPath, modelID string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	// Open would create a missing database.
	if _, err := os.Stat(dbPath); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath), err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, err.Error(), err)
	}
	defer s.Close()

	m, err := s.LoadModel(ctx, modelID, opts.modelOptions(cmd)...)
	if errors.Is(err, store.ErrModelNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeModelNotFound, fmt.Sprintf("model %q not found in %s", modelID, dbPath), err)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, err.Error(), err)
	}

	events, err := s.ExchangeEvents(ctx, modelID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, err.Error(), err)
	}

	hash, err := m.Hash()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), err)
	}

	result := ShowResult{
		ID:          m.ID,
		Name:        m.Name,
		ContentHash: hash,
		Reactions:   []ReactionView{},
		Events:      events,
	}
	for _, r := range m.Reactions() {
		result.Reactions = append(result.Reactions, newReactionView(r))
	}

	return formatter.Render(result, func(w io.Writer) error {
		fmt.Fprintf(w, "Model %s (%s)\n", result.ID, result.Name)
		fmt.Fprintf(w, "Hash  %s\n\n", result.ContentHash)

		rows := make([][]string, 0, len(result.Reactions))
		for _, r := range result.Reactions {
			rows = append(rows, []string{r.ID, formatFloat(r.LowerBound), formatFloat(r.UpperBound), r.Equation})
		}
		if err := formatter.Table([]string{"ID", "LOWER", "UPPER", "EQUATION"}, rows); err != nil {
			return err
		}

		if len(events) > 0 {
			fmt.Fprintf(w, "\n%d exchange event(s)\n", len(events))
			for _, ev := range events {
				kind := "uptake"
				if ev.Demand {
					kind = "demand"
				}
				fmt.Fprintf(w, "  %d  %s  %s  %s\n", ev.Seq, ev.ReactionID, kind, ev.ID)
			}
		}
		return nil
	})
}

// formatFloat matches fmt's %g verb.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
