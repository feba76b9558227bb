// Package exchange builds boundary reactions that let a metabolite leave
// (demand/sink) or enter (uptake) a model.
package exchange

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/roach88/fluxutil/internal/model"
)

const (
	// DefaultPrefix is the reaction ID prefix for demand reactions.
	DefaultPrefix = "DM_"

	// DefaultBound is the magnitude of the open flux bound.
	DefaultBound = 1000.0
)

// ErrDuplicateReaction is matched by *DuplicateError via errors.Is.
var ErrDuplicateReaction = errors.New("metabolite already has a demand reaction")

// DuplicateError reports that the target reaction ID is already taken.
type DuplicateError struct {
	ReactionID   string
	MetaboliteID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s (reaction=%s, metabolite=%s)", ErrDuplicateReaction, e.ReactionID, e.MetaboliteID)
}

// Is reports ErrDuplicateReaction as a match.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateReaction
}

// IsDuplicate reports whether err is a duplicate-reaction error.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateReaction)
}

// Host is what AddExchange needs from a model.
type Host interface {
	HasReaction(id string) bool
	AddReactions(rxns ...*model.Reaction) error
}

type options struct {
	demand bool
	prefix string
	bound  float64
	logger *slog.Logger
}

// Option customises AddExchange.
type Option func(*options)

// WithDemand selects a sink (true, the default) or an uptake (false).
func WithDemand(demand bool) Option {
	return func(o *options) { o.demand = demand }
}

// WithPrefix sets the reaction ID prefix. Default "DM_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithBound sets the bound magnitude. Default 1000.
func WithBound(bound float64) Option {
	return func(o *options) { o.bound = bound }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ReactionID returns the ID AddExchange would use.
func ReactionID(prefix string, met *model.Metabolite) string {
	return prefix + met.ID
}

// ReactionName returns "Demand <name>" for the default prefix and
// "Exchange <name>" for any other.
func ReactionName(prefix string, met *model.Metabolite) string {
	if prefix == DefaultPrefix {
		return "Demand " + met.Name
	}
	return "Exchange " + met.Name
}

// ErrNilHost is returned by AddExchange when the host is nil, including a
// nil *model.Model stored in the interface.
var ErrNilHost = errors.New("add exchange: nil model")

func nilHost(h Host) bool {
	if h == nil {
		return true
	}
	rv := reflect.ValueOf(h)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// AddExchange creates a reaction "met -->" and registers it with m.
//
// The reaction ID is prefix+met.ID. A demand reaction gets bounds
// (0, bound); an uptake gets (-bound, 0). If m already has a reaction with
// that ID, a *DuplicateError is returned and m is not touched.
func AddExchange(m Host, met *model.Metabolite, opts ...Option) (*model.Reaction, error) {
	o := options{
		demand: true,
		prefix: DefaultPrefix,
		bound:  DefaultBound,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if nilHost(m) {
		return nil, ErrNilHost
	}
	if met == nil {
		return nil, errors.New("add exchange: nil metabolite")
	}

	id := ReactionID(o.prefix, met)
	name := ReactionName(o.prefix, met)
	if m.HasReaction(id) {
		return nil, &DuplicateError{ReactionID: id, MetaboliteID: met.ID}
	}

	rxn := model.NewReaction(id, name)
	if err := rxn.AddMetabolites(map[*model.Metabolite]float64{met: -1}); err != nil {
		return nil, fmt.Errorf("add exchange %s: %w", id, err)
	}

	lower, upper := 0.0, o.bound
	if !o.demand {
		lower, upper = -o.bound, 0
	}
	if err := rxn.SetBounds(lower, upper); err != nil {
		return nil, fmt.Errorf("add exchange %s: %w", id, err)
	}

	if err := m.AddReactions(rxn); err != nil {
		return nil, fmt.Errorf("add exchange %s: %w", id, err)
	}

	o.logger.Info("exchange added",
		"reaction", id,
		"metabolite", met.ID,
		"demand", o.demand,
		"lower_bound", lower,
		"upper_bound", upper,
	)
	return rxn, nil
}
