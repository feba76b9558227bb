package model

import (
	"github.com/roach88/fluxutil/internal/frozen"
	"github.com/roach88/fluxutil/internal/ir"
)

// Metabolite is a chemical species in a compartment.
type Metabolite struct {
	ID          string
	Name        string
	Compartment string
	Formula     string
	Charge      int
	Annotation  frozen.Map[string, string]

	model *Model
}

// NewMetabolite creates a metabolite with the given identity.
func NewMetabolite(id, name, compartment string) *Metabolite {
	return &Metabolite{ID: id, Name: name, Compartment: compartment}
}

// Model returns the owning model, or nil.
func (m *Metabolite) Model() *Model {
	return m.model
}

// Hash is a content hash over every field except the owning model.
func (m *Metabolite) Hash() (string, error) {
	return ir.Hash(ir.DomainMetabolite, ir.NewObject(
		ir.O("id", ir.String(m.ID)),
		ir.O("name", ir.String(m.Name)),
		ir.O("compartment", ir.String(m.Compartment)),
		ir.O("formula", ir.String(m.Formula)),
		ir.O("charge", ir.Int(m.Charge)),
		ir.O("annotation", mustCanonical(m.Annotation)),
	))
}

func (m *Metabolite) String() string {
	return m.ID
}

// mustCanonical converts a string-valued frozen map, which always has a
// canonical form.
func mustCanonical(a frozen.Map[string, string]) ir.Value {
	v, err := a.CanonicalValue()
	if err != nil {
		panic(err)
	}
	return v
}
