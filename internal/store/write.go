package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/fluxutil/internal/model"
)

// ErrNilModel is returned when SaveModel is given a nil model.
var ErrNilModel = errors.New("nil model")

// SaveModel writes m, replacing any model previously saved under the same
// ID. The write is a single transaction. Exchange events are untouched.
func (s *Store) SaveModel(ctx context.Context, m *model.Model) error {
	if m == nil {
		return fmt.Errorf("save model: %w", ErrNilModel)
	}

	hash, err := m.Hash()
	if err != nil {
		return fmt.Errorf("save model %s: %w", m.ID, err)
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		// Child rows go with the parent via ON DELETE CASCADE.
		if _, err := tx.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, m.ID); err != nil {
			return fmt.Errorf("delete previous: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO models (id, name, content_hash) VALUES (?, ?, ?)
		`, m.ID, m.Name, hash); err != nil {
			return fmt.Errorf("insert model: %w", err)
		}

		for i, met := range m.Metabolites() {
			if err := writeMetabolite(ctx, tx, m.ID, i, met); err != nil {
				return err
			}
		}
		for i, r := range m.Reactions() {
			if err := writeReaction(ctx, tx, m.ID, i, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save model %s: %w", m.ID, err)
	}
	return nil
}

func writeMetabolite(ctx context.Context, tx *sql.Tx, modelID string, pos int, met *model.Metabolite) error {
	annotation, err := marshalAnnotation(met.Annotation)
	if err != nil {
		return fmt.Errorf("metabolite %s: %w", met.ID, err)
	}
	hash, err := met.Hash()
	if err != nil {
		return fmt.Errorf("metabolite %s: %w", met.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO metabolites
		(model_id, id, position, name, compartment, formula, charge, annotation, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		modelID,
		met.ID,
		pos,
		met.Name,
		met.Compartment,
		met.Formula,
		met.Charge,
		annotation,
		hash,
	)
	if err != nil {
		return fmt.Errorf("insert metabolite %s: %w", met.ID, err)
	}
	return nil
}

func writeReaction(ctx context.Context, tx *sql.Tx, modelID string, pos int, r *model.Reaction) error {
	annotation, err := marshalAnnotation(r.Annotation)
	if err != nil {
		return fmt.Errorf("reaction %s: %w", r.ID, err)
	}
	hash, err := r.Hash()
	if err != nil {
		return fmt.Errorf("reaction %s: %w", r.ID, err)
	}

	lower, upper := r.Bounds()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO reactions
		(model_id, id, position, name, subsystem, lower_bound, upper_bound, annotation, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		modelID,
		r.ID,
		pos,
		r.Name,
		r.Subsystem,
		lower,
		upper,
		annotation,
		hash,
	)
	if err != nil {
		return fmt.Errorf("insert reaction %s: %w", r.ID, err)
	}

	for i, met := range r.Metabolites() {
		coeff, _ := r.Coefficient(met.ID)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reaction_metabolites
			(model_id, reaction_id, metabolite_id, position, coefficient)
			VALUES (?, ?, ?, ?, ?)
		`, modelID, r.ID, met.ID, i, coeff)
		if err != nil {
			return fmt.Errorf("insert stoichiometry %s/%s: %w", r.ID, met.ID, err)
		}
	}
	return nil
}
