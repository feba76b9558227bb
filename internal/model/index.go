package model

import "github.com/roach88/fluxutil/internal/autoviv"

// Index builds a compartment -> metabolite -> reaction tree whose leaves
// hold stoichiometric coefficients. Metabolites without a compartment are
// filed under "".
func (m *Model) Index() *autoviv.Node[string, float64] {
	idx := autoviv.New[string, float64]()
	for _, r := range m.reactions {
		for _, id := range r.order {
			met := r.mets[id]
			idx.Get(met.Compartment).Get(id).Set(r.ID, r.coeffs[id])
		}
	}
	return idx
}
