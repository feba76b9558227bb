package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fluxutil/internal/autoviv"
)

// IndexOptions holds options for the index command.
type IndexOptions struct {
	*RootOptions
	ModelID     string
	Compartment string
}

// IndexEntry is one leaf of the compartment index.
type IndexEntry struct {
	Compartment string  `json:"compartment"`
	Metabolite  string  `json:"metabolite"`
	Reaction    string  `json:"reaction"`
	Coefficient float64 `json:"coefficient"`
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "index <model-dir>",
		Short: "Print the compartment / metabolite / reaction index",
		Long: `Print where every metabolite is used, grouped by compartment:

  c
    g6p_c
      GLCpts  1
      PGI     -1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ModelID, "model", "", "model ID (required when the directory defines several)")
	cmd.Flags().StringVar(&opts.Compartment, "compartment", "", "only show this compartment")

	return cmd
}

func runIndex(opts *IndexOptions, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loadResult, loadErrors := LoadModels(dir, LoadModeFailFast, opts.Logger(cmd.ErrOrStderr()))
	if len(loadErrors) > 0 {
		code, msg := firstLoadError(loadErrors)
		return formatter.Fail(ExitCommandError, code, msg, loadErrors[0])
	}
	m, err := loadResult.Model(opts.ModelID)
	if err != nil {
		code, msg := firstLoadError([]error{err})
		return formatter.Fail(ExitCommandError, code, msg, err)
	}

	idx := m.Index()
	if opts.Compartment != "" && !idx.Has(opts.Compartment) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("compartment %q not used in model %s", opts.Compartment, m.ID), nil)
	}
	keep := func(compartment string) bool {
		return opts.Compartment == "" || compartment == opts.Compartment
	}

	if formatter.JSON() {
		entries := []IndexEntry{}
		idx.Walk(func(path []string, coeff float64) {
			if !keep(path[0]) {
				return
			}
			entries = append(entries, IndexEntry{
				Compartment: path[0],
				Metabolite:  path[1],
				Reaction:    path[2],
				Coefficient: coeff,
			})
		})
		return formatter.Success(entries)
	}

	for compartment, mets := range idx.All() {
		if !keep(compartment) {
			continue
		}
		label := compartment
		if label == "" {
			label = "(no compartment)"
		}
		fmt.Fprintln(formatter.Writer, label)
		printIndex(formatter, mets, 1)
	}
	return nil
}

func printIndex(formatter *OutputFormatter, n *autoviv.Node[string, float64], depth int) {
	indent := strings.Repeat("  ", depth)
	for k, child := range n.All() {
		if v, ok := child.Value(); ok {
			fmt.Fprintf(formatter.Writer, "%s%s  %g\n", indent, k, v)
			continue
		}
		fmt.Fprintf(formatter.Writer, "%s%s\n", indent, k)
		printIndex(formatter, child, depth+1)
	}
}
