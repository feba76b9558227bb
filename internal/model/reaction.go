package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/fluxutil/internal/frozen"
	"github.com/roach88/fluxutil/internal/ir"
	"github.com/roach88/fluxutil/internal/numeric"
)

// DefaultUpperBound is the flux ceiling given to new reactions.
const DefaultUpperBound = 1000.0

// Direction classifies a reaction by its flux bounds.
type Direction string

const (
	DirectionForward       Direction = "forward"
	DirectionReverse       Direction = "reverse"
	DirectionBidirectional Direction = "bidirectional"
	DirectionBlocked       Direction = "blocked"
)

// Reaction converts metabolites at a rate bounded by [lower, upper].
// Stoichiometric coefficients are negative for consumed metabolites and
// positive for produced ones.
type Reaction struct {
	ID         string
	Name       string
	Subsystem  string
	Annotation frozen.Map[string, string]

	lowerBound float64
	upperBound float64
	coeffs     map[string]float64
	mets       map[string]*Metabolite
	order      []string
	model      *Model
}

// NewReaction creates an irreversible reaction with bounds (0, DefaultUpperBound)
// and no participants.
func NewReaction(id, name string) *Reaction {
	return &Reaction{
		ID:         id,
		Name:       name,
		upperBound: DefaultUpperBound,
		coeffs:     make(map[string]float64),
		mets:       make(map[string]*Metabolite),
	}
}

// Model returns the owning model, or nil before registration.
func (r *Reaction) Model() *Model {
	return r.model
}

// AddMetabolites records stoichiometric participation. Coefficients are
// added to any existing ones; a metabolite whose coefficient sums to zero
// drops out of the reaction. New participants are appended in ID order so
// the result does not depend on map iteration.
func (r *Reaction) AddMetabolites(stoich map[*Metabolite]float64) error {
	for met := range stoich {
		if met == nil {
			return &Error{Code: ErrCodeNilEntity, Message: "nil metabolite in stoichiometry", ID: r.ID}
		}
	}

	mets := make([]*Metabolite, 0, len(stoich))
	for met := range stoich {
		mets = append(mets, met)
	}
	slices.SortFunc(mets, func(a, b *Metabolite) int { return strings.Compare(a.ID, b.ID) })

	var added []*Metabolite
	for _, met := range mets {
		id := met.ID
		cur, exists := r.coeffs[id]
		next := cur + stoich[met]
		switch {
		case next == 0:
			if exists {
				r.remove(id)
			}
		case exists:
			r.coeffs[id] = next
		default:
			r.coeffs[id] = next
			r.mets[id] = met
			r.order = append(r.order, id)
			added = append(added, met)
		}
	}

	if r.model != nil && len(added) > 0 {
		r.model.adoptMetabolites(r)
	}
	return nil
}

func (r *Reaction) remove(id string) {
	delete(r.coeffs, id)
	delete(r.mets, id)
	r.order = slices.DeleteFunc(r.order, func(x string) bool { return x == id })
}

// Coefficient returns the stoichiometric coefficient of a metabolite.
func (r *Reaction) Coefficient(metaboliteID string) (float64, bool) {
	c, ok := r.coeffs[metaboliteID]
	return c, ok
}

// Metabolites returns the participating metabolites in insertion order.
func (r *Reaction) Metabolites() []*Metabolite {
	out := make([]*Metabolite, len(r.order))
	for i, id := range r.order {
		out[i] = r.mets[id]
	}
	return out
}

// Stoichiometry returns an immutable snapshot keyed by metabolite ID.
func (r *Reaction) Stoichiometry() frozen.Map[string, float64] {
	return frozen.FromMap(r.coeffs)
}

// SetBounds sets the flux bounds. lower must not exceed upper; on error the
// existing bounds are kept.
func (r *Reaction) SetBounds(lower, upper float64) error {
	if lower > upper {
		return &Error{
			Code:    ErrCodeInvalidBounds,
			Message: fmt.Sprintf("lower bound %g exceeds upper bound %g", lower, upper),
			ID:      r.ID,
		}
	}
	r.lowerBound, r.upperBound = lower, upper
	return nil
}

// Bounds returns (lower, upper).
func (r *Reaction) Bounds() (float64, float64) {
	return r.lowerBound, r.upperBound
}

// LowerBound returns the lower flux bound.
func (r *Reaction) LowerBound() float64 { return r.lowerBound }

// UpperBound returns the upper flux bound.
func (r *Reaction) UpperBound() float64 { return r.upperBound }

// Reversible reports whether flux may run in both directions.
func (r *Reaction) Reversible() bool {
	return r.lowerBound < 0 && r.upperBound > 0
}

// Direction classifies the reaction by the sign of its bounds.
func (r *Reaction) Direction() Direction {
	switch {
	case r.lowerBound == 0 && r.upperBound == 0:
		return DirectionBlocked
	case numeric.IsPositive(r.lowerBound):
		return DirectionForward
	case !numeric.IsPositive(r.upperBound) || r.upperBound == 0:
		return DirectionReverse
	default:
		return DirectionBidirectional
	}
}

// IsBoundary reports whether the reaction has exactly one participant,
// i.e. it moves a metabolite across the system boundary.
func (r *Reaction) IsBoundary() bool {
	return len(r.order) == 1
}

// Hash is a content hash over identity, bounds and stoichiometry.
func (r *Reaction) Hash() (string, error) {
	stoich, err := r.Stoichiometry().CanonicalValue()
	if err != nil {
		return "", err
	}
	return ir.Hash(ir.DomainReaction, ir.NewObject(
		ir.O("id", ir.String(r.ID)),
		ir.O("name", ir.String(r.Name)),
		ir.O("subsystem", ir.String(r.Subsystem)),
		ir.O("lower_bound", ir.Float(r.lowerBound)),
		ir.O("upper_bound", ir.Float(r.upperBound)),
		ir.O("stoichiometry", stoich),
		ir.O("annotation", mustCanonical(r.Annotation)),
	))
}

// Equation renders the reaction as "2 a + b --> c", using <=> when
// reversible and <-- when reverse only.
func (r *Reaction) Equation() string {
	var lhs, rhs []string
	for _, id := range r.order {
		c := r.coeffs[id]
		term := id
		if abs := max(c, -c); abs != 1 {
			term = fmt.Sprintf("%g %s", abs, id)
		}
		if c < 0 {
			lhs = append(lhs, term)
		} else {
			rhs = append(rhs, term)
		}
	}

	arrow := "-->"
	switch r.Direction() {
	case DirectionBidirectional:
		arrow = "<=>"
	case DirectionReverse:
		arrow = "<--"
	}

	return strings.TrimSpace(strings.Join(lhs, " + ") + " " + arrow + " " + strings.Join(rhs, " + "))
}

func (r *Reaction) String() string {
	return r.ID + ": " + r.Equation()
}
