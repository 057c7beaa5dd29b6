package repository

import (
	"context"
	"errors"
	"fmt"

	"economy/database"
	"economy/models"

	"github.com/jackc/pgx/v5"
)

const duelColumns = `id, challenger_discord_id, challenger_username, target_discord_id, target_username,
	amount, state, winner_discord_id, created_at, accepted_at, resolved_at`

// DuelRepository implements the DuelRepository interface
type DuelRepository struct {
	q queryable
}

// NewDuelRepository creates a new duel repository
func NewDuelRepository(db *database.DB) *DuelRepository {
	return &DuelRepository{q: db.Pool}
}

func newDuelRepositoryWithTx(tx queryable) *DuelRepository {
	return &DuelRepository{q: tx}
}

func scanDuel(row pgx.Row) (*models.Duel, error) {
	var duel models.Duel
	err := row.Scan(
		&duel.ID,
		&duel.ChallengerDiscordID,
		&duel.ChallengerUsername,
		&duel.TargetDiscordID,
		&duel.TargetUsername,
		&duel.Amount,
		&duel.State,
		&duel.WinnerDiscordID,
		&duel.CreatedAt,
		&duel.AcceptedAt,
		&duel.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &duel, nil
}

// Create inserts a new duel
func (r *DuelRepository) Create(ctx context.Context, duel *models.Duel) error {
	query := `
		INSERT INTO duels (id, challenger_discord_id, challenger_username, target_discord_id, target_username, amount, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.Exec(ctx, query,
		duel.ID,
		duel.ChallengerDiscordID,
		duel.ChallengerUsername,
		duel.TargetDiscordID,
		duel.TargetUsername,
		duel.Amount,
		duel.State,
		duel.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create duel: %w", err)
	}
	return nil
}

// GetByID retrieves a duel without locking it
func (r *DuelRepository) GetByID(ctx context.Context, id string) (*models.Duel, error) {
	return r.get(ctx, `SELECT `+duelColumns+` FROM duels WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves and locks a duel
func (r *DuelRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Duel, error) {
	return r.get(ctx, `SELECT `+duelColumns+` FROM duels WHERE id = $1 FOR UPDATE`, id)
}

func (r *DuelRepository) get(ctx context.Context, query string, id string) (*models.Duel, error) {
	duel, err := scanDuel(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get duel %s: %w", id, err)
	}
	return duel, nil
}

// Update persists the mutable duel fields
func (r *DuelRepository) Update(ctx context.Context, duel *models.Duel) error {
	query := `
		UPDATE duels
		SET state = $1, winner_discord_id = $2, accepted_at = $3, resolved_at = $4
		WHERE id = $5
	`
	result, err := r.q.Exec(ctx, query,
		duel.State,
		duel.WinnerDiscordID,
		duel.AcceptedAt,
		duel.ResolvedAt,
		duel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update duel %s: %w", duel.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("duel %s not found", duel.ID)
	}
	return nil
}
