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

const scrimColumns = `id, creator_discord_id, players_per_team, amount_per_player, team_a, team_b,
	prize_pool, status, channel_id, created_at`

// ScrimRepository implements the ScrimRepository interface. Rosters are
// JSONB arrays kept in join order.
type ScrimRepository struct {
	q queryable
}

// NewScrimRepository creates a new scrim repository
func NewScrimRepository(db *database.DB) *ScrimRepository {
	return &ScrimRepository{q: db.Pool}
}

func newScrimRepositoryWithTx(tx queryable) *ScrimRepository {
	return &ScrimRepository{q: tx}
}

func scanScrim(row pgx.Row) (*models.Scrim, error) {
	var scrim models.Scrim
	var playersPerTeam int16
	var teamAJSON, teamBJSON []byte

	err := row.Scan(
		&scrim.ID,
		&scrim.CreatorDiscordID,
		&playersPerTeam,
		&scrim.AmountPerPlayer,
		&teamAJSON,
		&teamBJSON,
		&scrim.PrizePool,
		&scrim.Status,
		&scrim.ChannelID,
		&scrim.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	scrim.PlayersPerTeam = int(playersPerTeam)

	if err := json.Unmarshal(teamAJSON, &scrim.TeamA); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team A: %w", err)
	}
	if err := json.Unmarshal(teamBJSON, &scrim.TeamB); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team B: %w", err)
	}
	return &scrim, nil
}

func marshalRoster(players []models.ScrimPlayer) ([]byte, error) {
	if players == nil {
		players = []models.ScrimPlayer{}
	}
	return json.Marshal(players)
}

// Create inserts a new scrim
func (r *ScrimRepository) Create(ctx context.Context, scrim *models.Scrim) error {
	teamAJSON, err := marshalRoster(scrim.TeamA)
	if err != nil {
		return fmt.Errorf("failed to marshal team A: %w", err)
	}
	teamBJSON, err := marshalRoster(scrim.TeamB)
	if err != nil {
		return fmt.Errorf("failed to marshal team B: %w", err)
	}

	query := `
		INSERT INTO scrims (id, creator_discord_id, players_per_team, amount_per_player, team_a, team_b, prize_pool, status, channel_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.q.Exec(ctx, query,
		scrim.ID,
		scrim.CreatorDiscordID,
		int16(scrim.PlayersPerTeam),
		scrim.AmountPerPlayer,
		teamAJSON,
		teamBJSON,
		scrim.PrizePool,
		scrim.Status,
		scrim.ChannelID,
		scrim.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create scrim: %w", err)
	}
	return nil
}

// GetByIDForUpdate retrieves and locks a scrim
func (r *ScrimRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Scrim, error) {
	query := `SELECT ` + scrimColumns + ` FROM scrims WHERE id = $1 FOR UPDATE`

	scrim, err := scanScrim(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scrim %s: %w", id, err)
	}
	return scrim, nil
}

// Update persists rosters, pool and status
func (r *ScrimRepository) Update(ctx context.Context, scrim *models.Scrim) error {
	teamAJSON, err := marshalRoster(scrim.TeamA)
	if err != nil {
		return fmt.Errorf("failed to marshal team A: %w", err)
	}
	teamBJSON, err := marshalRoster(scrim.TeamB)
	if err != nil {
		return fmt.Errorf("failed to marshal team B: %w", err)
	}

	query := `
		UPDATE scrims
		SET team_a = $1, team_b = $2, prize_pool = $3, status = $4
		WHERE id = $5
	`
	result, err := r.q.Exec(ctx, query, teamAJSON, teamBJSON, scrim.PrizePool, scrim.Status, scrim.ID)
	if err != nil {
		return fmt.Errorf("failed to update scrim %s: %w", scrim.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scrim %s not found", scrim.ID)
	}
	return nil
}

// Delete removes a settled scrim
func (r *ScrimRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM scrims WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete scrim %s: %w", id, err)
	}
	return nil
}

// List returns every open scrim, oldest first
func (r *ScrimRepository) List(ctx context.Context) ([]*models.Scrim, error) {
	rows, err := r.q.Query(ctx, `SELECT `+scrimColumns+` FROM scrims ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scrims: %w", err)
	}
	defer rows.Close()

	var list []*models.Scrim
	for rows.Next() {
		scrim, err := scanScrim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scrim: %w", err)
		}
		list = append(list, scrim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scrims: %w", err)
	}
	return list, nil
}
