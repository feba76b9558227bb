package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/fluxutil/internal/model"
)

// Validation error codes (E100-E199)
const (
	ErrModelEmpty       = "E101" // model has no reactions
	ErrReactionEmpty    = "E102" // reaction has no participants
	ErrNoCompartment    = "E103" // metabolite lacks a compartment
	ErrOrphanMetabolite = "E104" // metabolite used by no reaction
	ErrBlockedReaction  = "E105" // bounds (0, 0)
	ErrMissingName      = "E106" // reaction or metabolite has no display name
)

// ValidationError represents a model validation finding.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled model and returns every finding (it does not
// fail fast).
func Validate(m *model.Model) []ValidationError {
	var errs []ValidationError

	rxns := m.Reactions()
	if len(rxns) == 0 {
		errs = append(errs, ValidationError{
			Field:   "model." + m.ID,
			Message: "model defines no reactions",
			Code:    ErrModelEmpty,
		})
	}

	for _, r := range rxns {
		field := "reaction." + r.ID
		if len(r.Metabolites()) == 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".metabolites",
				Message: "reaction has no participants",
				Code:    ErrReactionEmpty,
			})
		}
		if r.Direction() == model.DirectionBlocked {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "reaction is blocked: both bounds are zero",
				Code:    ErrBlockedReaction,
			})
		}
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "reaction has no name",
				Code:    ErrMissingName,
			})
		}
	}

	for _, met := range m.Metabolites() {
		field := "metabolite." + met.ID
		if met.Compartment == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".compartment",
				Message: "metabolite has no compartment",
				Code:    ErrNoCompartment,
			})
		}
		if strings.TrimSpace(met.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "metabolite has no name",
				Code:    ErrMissingName,
			})
		}
		if len(m.ReactionsOf(met.ID)) == 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "metabolite is not used by any reaction",
				Code:    ErrOrphanMetabolite,
			})
		}
	}

	return errs
}
