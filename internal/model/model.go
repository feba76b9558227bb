package model

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fluxutil/internal/ir"
)

// Model owns a set of reactions and the metabolites they reference.
// Both collections keep insertion order and are indexed by ID.
type Model struct {
	ID   string
	Name string

	reactions     []*Reaction
	reactionIdx   map[string]*Reaction
	metabolites   []*Metabolite
	metaboliteIdx map[string]*Metabolite
	logger        *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for warnings such as skipped duplicates.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithName sets the display name.
func WithName(name string) Option {
	return func(m *Model) { m.Name = name }
}

// New creates an empty model.
func New(id string, opts ...Option) *Model {
	m := &Model{
		ID:            id,
		reactionIdx:   make(map[string]*Reaction),
		metaboliteIdx: make(map[string]*Metabolite),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Logger returns the model's logger.
func (m *Model) Logger() *slog.Logger {
	return m.logger
}

// HasReaction reports whether a reaction with this ID is registered.
func (m *Model) HasReaction(id string) bool {
	_, ok := m.reactionIdx[id]
	return ok
}

// Reaction returns the reaction with this ID.
func (m *Model) Reaction(id string) (*Reaction, bool) {
	r, ok := m.reactionIdx[id]
	return r, ok
}

// Reactions returns all reactions in insertion order.
func (m *Model) Reactions() []*Reaction {
	return append([]*Reaction(nil), m.reactions...)
}

// HasMetabolite reports whether a metabolite with this ID is registered.
func (m *Model) HasMetabolite(id string) bool {
	_, ok := m.metaboliteIdx[id]
	return ok
}

// Metabolite returns the metabolite with this ID.
func (m *Model) Metabolite(id string) (*Metabolite, bool) {
	met, ok := m.metaboliteIdx[id]
	return met, ok
}

// Metabolites returns all metabolites in insertion order.
func (m *Model) Metabolites() []*Metabolite {
	return append([]*Metabolite(nil), m.metabolites...)
}

// AddMetabolites registers metabolites. IDs already present are skipped
// with a warning. Returns the number added.
func (m *Model) AddMetabolites(mets ...*Metabolite) (int, error) {
	for _, met := range mets {
		if met == nil {
			return 0, &Error{Code: ErrCodeNilEntity, Message: "nil metabolite"}
		}
	}

	added := 0
	for _, met := range mets {
		if m.HasMetabolite(met.ID) {
			m.logger.Warn("ignoring metabolite already in model", "model", m.ID, "metabolite", met.ID)
			continue
		}
		m.addMetabolite(met)
		added++
	}
	return added, nil
}

func (m *Model) addMetabolite(met *Metabolite) {
	met.model = m
	m.metabolites = append(m.metabolites, met)
	m.metaboliteIdx[met.ID] = met
}

// AddReactions registers reactions in order.
//
// A reaction whose ID is already present is skipped with a warning.
// Metabolites a reaction references but the model lacks are added; where
// the model already has a metabolite with the same ID, the reaction is
// rebound to the model's instance. Input is validated before anything is
// mutated: a nil reaction or one owned by another model fails the whole
// batch.
func (m *Model) AddReactions(rxns ...*Reaction) error {
	for _, r := range rxns {
		if r == nil {
			return &Error{Code: ErrCodeNilEntity, Message: "nil reaction"}
		}
		if r.model != nil && r.model != m {
			return &Error{Code: ErrCodeForeignReaction, Message: "reaction belongs to model " + r.model.ID, ID: r.ID}
		}
	}

	seen := make(map[string]bool, len(rxns))
	for _, r := range rxns {
		if m.HasReaction(r.ID) || seen[r.ID] {
			m.logger.Warn("ignoring reaction already in model", "model", m.ID, "reaction", r.ID)
			continue
		}
		seen[r.ID] = true

		r.model = m
		m.adoptMetabolites(r)
		m.reactions = append(m.reactions, r)
		m.reactionIdx[r.ID] = r
		m.logger.Debug("reaction added", "model", m.ID, "reaction", r.ID)
	}
	return nil
}

// adoptMetabolites makes every participant of r a member of m.
func (m *Model) adoptMetabolites(r *Reaction) {
	for _, id := range r.order {
		if own, ok := m.metaboliteIdx[id]; ok {
			r.mets[id] = own
			continue
		}
		m.addMetabolite(r.mets[id])
	}
}

// RemoveReactions unregisters reactions by ID and returns how many were
// removed. Metabolites are left in place.
func (m *Model) RemoveReactions(ids ...string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if r, ok := m.reactionIdx[id]; ok {
			drop[id] = true
			r.model = nil
			delete(m.reactionIdx, id)
		}
	}
	if len(drop) == 0 {
		return 0
	}
	kept := m.reactions[:0]
	for _, r := range m.reactions {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	m.reactions = kept
	return len(drop)
}

// Boundary returns the reactions with a single participant.
func (m *Model) Boundary() []*Reaction {
	var out []*Reaction
	for _, r := range m.reactions {
		if r.IsBoundary() {
			out = append(out, r)
		}
	}
	return out
}

// ReactionsOf returns the reactions a metabolite participates in.
func (m *Model) ReactionsOf(metaboliteID string) []*Reaction {
	var out []*Reaction
	for _, r := range m.reactions {
		if _, ok := r.coeffs[metaboliteID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Hash digests the model identity with the hashes of its metabolites and
// reactions, in insertion order.
func (m *Model) Hash() (string, error) {
	mets := make(ir.Array, 0, len(m.metabolites))
	for _, met := range m.metabolites {
		h, err := met.Hash()
		if err != nil {
			return "", fmt.Errorf("metabolite %s: %w", met.ID, err)
		}
		mets = append(mets, ir.String(h))
	}
	rxns := make(ir.Array, 0, len(m.reactions))
	for _, r := range m.reactions {
		h, err := r.Hash()
		if err != nil {
			return "", fmt.Errorf("reaction %s: %w", r.ID, err)
		}
		rxns = append(rxns, ir.String(h))
	}
	return ir.Hash(ir.DomainModel, ir.NewObject(
		ir.O("id", ir.String(m.ID)),
		ir.O("name", ir.String(m.Name)),
		ir.O("metabolites", mets),
		ir.O("reactions", rxns),
	))
}
