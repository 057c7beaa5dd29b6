package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"economy/database"
	"economy/models"

	"github.com/jackc/pgx/v5"
)

// WagerEventRepository implements the WagerEventRepository interface.
// Odds and stakes are stored as JSONB documents on the event row.
type WagerEventRepository struct {
	q queryable
}

// NewWagerEventRepository creates a new wager event repository
func NewWagerEventRepository(db *database.DB) *WagerEventRepository {
	return &WagerEventRepository{q: db.Pool}
}

func newWagerEventRepositoryWithTx(tx queryable) *WagerEventRepository {
	return &WagerEventRepository{q: tx}
}

func scanWagerEvent(row pgx.Row) (*models.WagerEvent, error) {
	var event models.WagerEvent
	var oddsJSON, stakesJSON []byte

	err := row.Scan(
		&event.ID,
		&event.Name,
		&oddsJSON,
		&stakesJSON,
		&event.CreatedBy,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(oddsJSON, &event.Odds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal odds: %w", err)
	}
	event.Stakes = make(map[models.Outcome][]models.Stake)
	if len(stakesJSON) > 0 {
		if err := json.Unmarshal(stakesJSON, &event.Stakes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stakes: %w", err)
		}
	}
	return &event, nil
}

// Create inserts a new event
func (r *WagerEventRepository) Create(ctx context.Context, event *models.WagerEvent) error {
	oddsJSON, err := json.Marshal(event.Odds)
	if err != nil {
		return fmt.Errorf("failed to marshal odds: %w", err)
	}
	if event.Stakes == nil {
		event.Stakes = make(map[models.Outcome][]models.Stake)
	}
	stakesJSON, err := json.Marshal(event.Stakes)
	if err != nil {
		return fmt.Errorf("failed to marshal stakes: %w", err)
	}

	query := `
		INSERT INTO wager_events (id, name, odds, stakes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.q.Exec(ctx, query, event.ID, event.Name, oddsJSON, stakesJSON, event.CreatedBy, event.CreatedAt); err != nil {
		return fmt.Errorf("failed to create wager event: %w", err)
	}
	return nil
}

// GetByIDForUpdate retrieves and locks an event
func (r *WagerEventRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.WagerEvent, error) {
	query := `
		SELECT id, name, odds, stakes, created_by, created_at
		FROM wager_events
		WHERE id = $1
		FOR UPDATE
	`

	event, err := scanWagerEvent(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wager event %s: %w", id, err)
	}
	return event, nil
}

// UpdateStakes overwrites the stake document
func (r *WagerEventRepository) UpdateStakes(ctx context.Context, event *models.WagerEvent) error {
	stakesJSON, err := json.Marshal(event.Stakes)
	if err != nil {
		return fmt.Errorf("failed to marshal stakes: %w", err)
	}

	result, err := r.q.Exec(ctx, `UPDATE wager_events SET stakes = $1 WHERE id = $2`, stakesJSON, event.ID)
	if err != nil {
		return fmt.Errorf("failed to update stakes for wager event %s: %w", event.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("wager event %s not found", event.ID)
	}
	return nil
}

// Delete removes a settled event
func (r *WagerEventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM wager_events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete wager event %s: %w", id, err)
	}
	return nil
}

// List returns every open event, oldest first
func (r *WagerEventRepository) List(ctx context.Context) ([]*models.WagerEvent, error) {
	query := `
		SELECT id, name, odds, stakes, created_by, created_at
		FROM wager_events
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list wager events: %w", err)
	}
	defer rows.Close()

	var list []*models.WagerEvent
	for rows.Next() {
		event, err := scanWagerEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager event: %w", err)
		}
		list = append(list, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wager events: %w", err)
	}
	return list, nil
}
