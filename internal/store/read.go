package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/fluxutil/internal/model"
)

// ErrModelNotFound is returned by LoadModel for an unknown model ID.
var ErrModelNotFound = errors.New("model not found")

// ModelSummary is one row of ListModels.
type ModelSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentHash string `json:"content_hash"`
	Reactions   int    `json:"reactions"`
	Metabolites int    `json:"metabolites"`
}

// ListModels returns every saved model ordered by ID.
//
// Returns an empty slice (not nil) if the store holds no models.
func (s *Store) ListModels(ctx context.Context) ([]ModelSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.content_hash,
			(SELECT COUNT(*) FROM reactions r WHERE r.model_id = m.id),
			(SELECT COUNT(*) FROM metabolites x WHERE x.model_id = m.id)
		FROM models m
		ORDER BY m.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query models: %w", err)
	}
	defer rows.Close()

	summaries := []ModelSummary{}
	for rows.Next() {
		var ms ModelSummary
		if err := rows.Scan(&ms.ID, &ms.Name, &ms.ContentHash, &ms.Reactions, &ms.Metabolites); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		summaries = append(summaries, ms)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate models: %w", err)
	}
	return summaries, nil
}

// LoadModel reconstructs a saved model. Metabolites, reactions and each
// reaction's participants come back in the order they were saved. opts
// are passed to model.New.
func (s *Store) LoadModel(ctx context.Context, id string, opts ...model.Option) (*model.Model, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM models WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load model %s: %w", id, ErrModelNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}

	m := model.New(id, opts...)
	m.Name = name

	mets, err := s.readMetabolites(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}
	if _, err := m.AddMetabolites(mets...); err != nil {
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}

	rxns, err := s.readReactions(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}
	if err := m.AddReactions(rxns...); err != nil {
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}

	return m, nil
}

func (s *Store) readMetabolites(ctx context.Context, modelID string) ([]*model.Metabolite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, compartment, formula, charge, annotation
		FROM metabolites
		WHERE model_id = ?
		ORDER BY position ASC
	`, modelID)
	if err != nil {
		return nil, fmt.Errorf("query metabolites: %w", err)
	}
	defer rows.Close()

	var mets []*model.Metabolite
	for rows.Next() {
		var (
			met        model.Metabolite
			annotation string
		)
		if err := rows.Scan(&met.ID, &met.Name, &met.Compartment, &met.Formula, &met.Charge, &annotation); err != nil {
			return nil, fmt.Errorf("scan metabolite: %w", err)
		}
		if met.Annotation, err = unmarshalAnnotation(annotation); err != nil {
			return nil, fmt.Errorf("metabolite %s: %w", met.ID, err)
		}
		mets = append(mets, &met)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metabolites: %w", err)
	}
	return mets, nil
}

// readReactions builds reactions whose participants are m's metabolites.
func (s *Store) readReactions(ctx context.Context, m *model.Model) ([]*model.Reaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, subsystem, lower_bound, upper_bound, annotation
		FROM reactions
		WHERE model_id = ?
		ORDER BY position ASC
	`, m.ID)
	if err != nil {
		return nil, fmt.Errorf("query reactions: %w", err)
	}

	var rxns []*model.Reaction
	for rows.Next() {
		var (
			id, name, subsystem, annotation string
			lower, upper                    float64
		)
		if err := rows.Scan(&id, &name, &subsystem, &lower, &upper, &annotation); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		r := model.NewReaction(id, name)
		r.Subsystem = subsystem
		if r.Annotation, err = unmarshalAnnotation(annotation); err != nil {
			rows.Close()
			return nil, fmt.Errorf("reaction %s: %w", id, err)
		}
		if err := r.SetBounds(lower, upper); err != nil {
			rows.Close()
			return nil, err
		}
		rxns = append(rxns, r)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterate reactions: %w", err)
	}

	// The single connection is free again; stoichiometry needs its own query.
	for _, r := range rxns {
		if err := s.readStoichiometry(ctx, m, r); err != nil {
			return nil, err
		}
	}
	return rxns, nil
}

// readStoichiometry adds participants one at a time so r keeps the saved
// participant order.
func (s *Store) readStoichiometry(ctx context.Context, m *model.Model, r *model.Reaction) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metabolite_id, coefficient
		FROM reaction_metabolites
		WHERE model_id = ? AND reaction_id = ?
		ORDER BY position ASC
	`, m.ID, r.ID)
	if err != nil {
		return fmt.Errorf("query stoichiometry %s: %w", r.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			metID string
			coeff float64
		)
		if err := rows.Scan(&metID, &coeff); err != nil {
			return fmt.Errorf("scan stoichiometry %s: %w", r.ID, err)
		}
		met, ok := m.Metabolite(metID)
		if !ok {
			return fmt.Errorf("reaction %s references unknown metabolite %s", r.ID, metID)
		}
		if err := r.AddMetabolites(map[*model.Metabolite]float64{met: coeff}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate stoichiometry %s: %w", r.ID, err)
	}
	return nil
}
