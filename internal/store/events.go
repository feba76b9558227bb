package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/fluxutil/internal/model"
)

// ErrNotBoundary is returned when RecordExchange is given a reaction that
// does not have exactly one participant.
var ErrNotBoundary = errors.New("not a boundary reaction")

// ExchangeEvent records the creation of an exchange reaction.
type ExchangeEvent struct {
	Seq          int64   `json:"seq"`
	ID           string  `json:"id"`
	ModelID      string  `json:"model_id"`
	ReactionID   string  `json:"reaction_id"`
	MetaboliteID string  `json:"metabolite_id"`
	Demand       bool    `json:"demand"`
	LowerBound   float64 `json:"lower_bound"`
	UpperBound   float64 `json:"upper_bound"`
	ContentHash  string  `json:"content_hash"`
}

// RecordExchange appends an event for boundary reaction r in model
// modelID. A reaction that can only carry outward flux is recorded as a
// demand; one that admits uptake is not.
func (s *Store) RecordExchange(ctx context.Context, modelID string, r *model.Reaction) (ExchangeEvent, error) {
	if r == nil || !r.IsBoundary() {
		id := "<nil>"
		if r != nil {
			id = r.ID
		}
		return ExchangeEvent{}, fmt.Errorf("record exchange %s: %w", id, ErrNotBoundary)
	}

	hash, err := r.Hash()
	if err != nil {
		return ExchangeEvent{}, fmt.Errorf("record exchange %s: %w", r.ID, err)
	}

	lower, upper := r.Bounds()
	ev := ExchangeEvent{
		ID:           s.ids.Generate(),
		ModelID:      modelID,
		ReactionID:   r.ID,
		MetaboliteID: r.Metabolites()[0].ID,
		Demand:       lower >= 0,
		LowerBound:   lower,
		UpperBound:   upper,
		ContentHash:  hash,
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO exchange_events
		(id, model_id, reaction_id, metabolite_id, demand, lower_bound, upper_bound, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ev.ID,
		ev.ModelID,
		ev.ReactionID,
		ev.MetaboliteID,
		ev.Demand,
		ev.LowerBound,
		ev.UpperBound,
		ev.ContentHash,
	)
	if err != nil {
		return ExchangeEvent{}, fmt.Errorf("record exchange %s: %w", r.ID, err)
	}
	if ev.Seq, err = res.LastInsertId(); err != nil {
		return ExchangeEvent{}, fmt.Errorf("record exchange %s: %w", r.ID, err)
	}
	return ev, nil
}

// ExchangeEvents returns the events of a model ordered by seq.
//
// Returns an empty slice (not nil) if none exist.
func (s *Store) ExchangeEvents(ctx context.Context, modelID string) ([]ExchangeEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, model_id, reaction_id, metabolite_id, demand, lower_bound, upper_bound, content_hash
		FROM exchange_events
		WHERE model_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, modelID)
	if err != nil {
		return nil, fmt.Errorf("query exchange events: %w", err)
	}
	defer rows.Close()

	events := []ExchangeEvent{}
	for rows.Next() {
		var ev ExchangeEvent
		if err := rows.Scan(
			&ev.Seq,
			&ev.ID,
			&ev.ModelID,
			&ev.ReactionID,
			&ev.MetaboliteID,
			&ev.Demand,
			&ev.LowerBound,
			&ev.UpperBound,
			&ev.ContentHash,
		); err != nil {
			return nil, fmt.Errorf("scan exchange event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchange events: %w", err)
	}
	return events, nil
}
