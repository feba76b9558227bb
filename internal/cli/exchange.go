package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/fluxutil/internal/exchange"
	"github.com/roach88/fluxutil/internal/model"
	"github.com/roach88/fluxutil/internal/store"
)

// ExchangeOptions holds options for the exchange command.
type ExchangeOptions struct {
	*RootOptions
	ModelID string
	Uptake  bool
	Prefix  string
	Bound   float64
	DBPath  string
	Plan    string

	// IDs overrides the event ID generator. Tests set it for stable output.
	IDs store.IDGenerator
}

// ReactionView is the JSON form of a reaction.
type ReactionView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Equation   string  `json:"equation"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// ExchangeResult is the success payload of the exchange command.
type ExchangeResult struct {
	Model     string                `json:"model"`
	Reactions []ReactionView        `json:"reactions"`
	Events    []store.ExchangeEvent `json:"events,omitempty"`
}

func newReactionView(r *model.Reaction) ReactionView {
	lower, upper := r.Bounds()
	return ReactionView{
		ID:         r.ID,
		Name:       r.Name,
		Equation:   r.Equation(),
		LowerBound: lower,
		UpperBound: upper,
	}
}

// NewExchangeCommand creates the exchange command.
func NewExchangeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExchangeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exchange <model-dir> [metabolite-id]",
		Short: "Add an exchange or demand reaction for a metabolite",
		Long: `Add a boundary reaction "met -->" to a model.

By default a demand reaction DM_<met> with bounds (0, 1000) is added.
--uptake gives bounds (-1000, 0) instead. With --plan, the metabolite
argument is omitted and every exchange in the YAML plan is added.

With --db the resulting model is saved to a SQLite store and each new
reaction is appended to the store's exchange log.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var metID string
			if len(args) == 2 {
				metID = args[1]
			}
			return runExchange(cmd.Context(), opts, args[0], metID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ModelID, "model", "", "model ID (required when the directory defines several)")
	cmd.Flags().BoolVar(&opts.Uptake, "uptake", false, "allow uptake only: bounds (-bound, 0)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", exchange.DefaultPrefix, "reaction ID prefix")
	cmd.Flags().Float64Var(&opts.Bound, "bound", exchange.DefaultBound, "flux bound magnitude")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite store to save the model and log the exchange to")
	cmd.Flags().StringVar(&opts.Plan, "plan", "", "YAML file listing exchanges to add")

	return cmd
}

func runExchange(ctx context.Context, opts *ExchangeOptions, dir, metID string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	if (metID == "") == (opts.Plan == "") {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "give either a metabolite ID or --plan", nil)
	}

	var plan *exchange.Plan
	if opts.Plan != "" {
		p, err := exchange.LoadPlan(opts.Plan)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidPlan, err.Error(), err)
		}
		plan = p
	}

	loadResult, loadErrors := LoadModels(dir, LoadModeFailFast, logger)
	if len(loadErrors) > 0 {
		code, msg := firstLoadError(loadErrors)
		return formatter.Fail(ExitCommandError, code, msg, loadErrors[0])
	}

	modelID := opts.ModelID
	if modelID == "" && plan != nil {
		modelID = plan.Model
	}
	m, err := loadResult.Model(modelID)
	if err != nil {
		code, msg := firstLoadError([]error{err})
		return formatter.Fail(ExitCommandError, code, msg, err)
	}

	exOpts := []exchange.Option{
		exchange.WithDemand(!opts.Uptake),
		exchange.WithPrefix(opts.Prefix),
		exchange.WithBound(opts.Bound),
		exchange.WithLogger(logger),
	}

	var created []*model.Reaction
	if plan != nil {
		created, err = plan.Apply(m, exOpts...)
	} else {
		met, ok := m.Metabolite(metID)
		if !ok {
			err = fmt.Errorf("%w: %s", exchange.ErrUnknownMetabolite, metID)
		} else {
			var rxn *model.Reaction
			if rxn, err = exchange.AddExchange(m, met, exOpts...); err == nil {
				created = append(created, rxn)
			}
		}
	}
	if err != nil {
		return formatter.Fail(ExitFailure, exchangeErrorCode(err), err.Error(), err)
	}

	result := ExchangeResult{Model: m.ID}
	for _, r := range created {
		result.Reactions = append(result.Reactions, newReactionView(r))
	}

	if opts.DBPath != "" {
		events, err := persistExchanges(ctx, opts, m, created)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), err)
		}
		result.Events = events
		formatter.VerboseLog("Saved model %s to %s", m.ID, opts.DBPath)
	}

	return formatter.Render(result, func(w io.Writer) error {
		for _, r := range result.Reactions {
			fmt.Fprintf(w, "Added %s (%s): %s  [%g, %g]\n",
				r.ID, r.Name, r.Equation, r.LowerBound, r.UpperBound)
		}
		for _, ev := range result.Events {
			fmt.Fprintf(w, "Recorded event %d %s\n", ev.Seq, ev.ID)
		}
		return nil
	})
}

func persistExchanges(ctx context.Context, opts *ExchangeOptions, m *model.Model, created []*model.Reaction) ([]store.ExchangeEvent, error) {
	var storeOpts []store.Option
	if opts.IDs != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDs))
	}
	s, err := store.Open(opts.DBPath, storeOpts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err := s.SaveModel(ctx, m); err != nil {
		return nil, err
	}

	var events []store.ExchangeEvent
	for _, r := range created {
		ev, err := s.RecordExchange(ctx, m.ID, r)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func exchangeErrorCode(err error) string {
	switch {
	case exchange.IsDuplicate(err):
		return ErrCodeDuplicateExchange
	case errors.Is(err, exchange.ErrUnknownMetabolite):
		return ErrCodeUnknownMetabolite
	case model.IsBoundsError(err):
		return ErrCodeInvalidBounds
	default:
		return ErrCodeInvalidPlan
	}
}
