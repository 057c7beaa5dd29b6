package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"economy/database"
	"economy/models"
	"economy/service"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `discord_id, username, balance, last_claim_at, created_at, updated_at`

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository bound to a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.DiscordID,
		&account.Username,
		&account.Balance,
		&account.LastClaimAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByDiscordID retrieves an account by Discord ID
func (r *AccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE discord_id = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", discordID, err)
	}
	return account, nil
}

// GetForUpdate creates the account if missing and locks its row until the
// surrounding transaction ends
func (r *AccountRepository) GetForUpdate(ctx context.Context, discordID int64, username string) (*models.Account, error) {
	insert := `
		INSERT INTO accounts (discord_id, username)
		VALUES ($1, $2)
		ON CONFLICT (discord_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insert, discordID, username); err != nil {
		return nil, fmt.Errorf("failed to ensure account %d: %w", discordID, err)
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE discord_id = $1 FOR UPDATE`
	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d: %w", discordID, err)
	}
	return account, nil
}

// AddBalance credits an account, creating it on first write
func (r *AccountRepository) AddBalance(ctx context.Context, discordID int64, username string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	query := `
		INSERT INTO accounts (discord_id, username, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (discord_id) DO UPDATE
		SET balance = accounts.balance + EXCLUDED.balance,
		    username = COALESCE(NULLIF(EXCLUDED.username, ''), accounts.username),
		    updated_at = NOW()
		RETURNING balance
	`

	var balance int64
	if err := r.q.QueryRow(ctx, query, discordID, username, amount).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to add balance for account %d: %w", discordID, err)
	}
	return balance, nil
}

// DeductBalance debits an account only when it can cover the amount
func (r *AccountRepository) DeductBalance(ctx context.Context, discordID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE discord_id = $2 AND balance >= $1
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, amount, discordID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		account, getErr := r.GetByDiscordID(ctx, discordID)
		if getErr != nil {
			return 0, getErr
		}
		var have int64
		if account != nil {
			have = account.Balance
		}
		return 0, &service.InsufficientFundsError{Have: have, Need: amount}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to deduct balance for account %d: %w", discordID, err)
	}
	return balance, nil
}

// SetBalance overwrites the balance of an existing account
func (r *AccountRepository) SetBalance(ctx context.Context, discordID int64, balance int64) error {
	query := `
		UPDATE accounts
		SET balance = $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, balance, discordID)
	if err != nil {
		return fmt.Errorf("failed to set balance for account %d: %w", discordID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", discordID)
	}
	return nil
}

// RecordClaim credits the allowance and stamps the claim time together
func (r *AccountRepository) RecordClaim(ctx context.Context, discordID int64, amount int64, claimedAt time.Time) (int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $1, last_claim_at = $3, updated_at = NOW()
		WHERE discord_id = $2
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, amount, discordID, claimedAt).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("account %d not found", discordID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to record claim for account %d: %w", discordID, err)
	}
	return balance, nil
}

// GetTop returns the richest accounts
func (r *AccountRepository) GetTop(ctx context.Context, limit int) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY balance DESC, discord_id ASC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}
