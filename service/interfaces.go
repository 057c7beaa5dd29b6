package service

import (
	"context"
	"time"

	"economy/events"
	"economy/models"
)

// AccountRepository defines the interface for account data access. Every
// mutating method is a single atomic statement; callers needing a
// read-decide-write cycle lock the row first with GetForUpdate.
type AccountRepository interface {
	// GetByDiscordID retrieves an account, returning nil if it does not exist
	GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error)

	// GetForUpdate locks the account row for the rest of the transaction,
	// creating it with a zero balance on first use
	GetForUpdate(ctx context.Context, discordID int64, username string) (*models.Account, error)

	// AddBalance credits the account, creating it if needed, and returns the new balance
	AddBalance(ctx context.Context, discordID int64, username string, amount int64) (int64, error)

	// DeductBalance debits the account only if it holds at least amount and returns the new balance
	DeductBalance(ctx context.Context, discordID int64, amount int64) (int64, error)

	// SetBalance overwrites the balance of an existing account
	SetBalance(ctx context.Context, discordID int64, balance int64) error

	// RecordClaim credits a claim and stamps the claim time in one statement
	RecordClaim(ctx context.Context, discordID int64, amount int64, claimedAt time.Time) (int64, error)

	// GetTop returns the richest accounts, highest balance first
	GetTop(ctx context.Context, limit int) ([]*models.Account, error)
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns balance history for a specific user, newest first
	GetByUser(ctx context.Context, discordID int64, limit int) ([]*models.BalanceHistory, error)
}

// WagerEventRepository defines the interface for betting event data access
type WagerEventRepository interface {
	Create(ctx context.Context, event *models.WagerEvent) error

	// GetByIDForUpdate retrieves and locks an event, returning nil if it does not exist
	GetByIDForUpdate(ctx context.Context, id string) (*models.WagerEvent, error)

	// UpdateStakes persists the event's stake lists
	UpdateStakes(ctx context.Context, event *models.WagerEvent) error

	Delete(ctx context.Context, id string) error

	// List returns all open events, oldest first
	List(ctx context.Context) ([]*models.WagerEvent, error)
}

// DuelRepository defines the interface for duel data access
type DuelRepository interface {
	Create(ctx context.Context, duel *models.Duel) error

	// GetByID retrieves a duel, returning nil if it does not exist
	GetByID(ctx context.Context, id string) (*models.Duel, error)

	// GetByIDForUpdate retrieves and locks a duel, returning nil if it does not exist
	GetByIDForUpdate(ctx context.Context, id string) (*models.Duel, error)

	// Update persists state, winner and timestamps
	Update(ctx context.Context, duel *models.Duel) error
}

// ScrimRepository defines the interface for scrim data access
type ScrimRepository interface {
	Create(ctx context.Context, scrim *models.Scrim) error

	// GetByIDForUpdate retrieves and locks a scrim, returning nil if it does not exist
	GetByIDForUpdate(ctx context.Context, id string) (*models.Scrim, error)

	// Update persists rosters, pool and status
	Update(ctx context.Context, scrim *models.Scrim) error

	Delete(ctx context.Context, id string) error

	// List returns all open scrims, oldest first
	List(ctx context.Context) ([]*models.Scrim, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes queued events
	Commit() error

	// Rollback rolls back the transaction and discards queued events
	Rollback() error

	AccountRepository() AccountRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	WagerEventRepository() WagerEventRepository
	DuelRepository() DuelRepository
	ScrimRepository() ScrimRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// Randomness is the source of duel outcomes. Float64 returns a value in [0, 1).
type Randomness interface {
	Float64() float64
}

// AccountService defines the interface for balance queries and admin adjustments
type AccountService interface {
	// GetBalance returns the balance, 0 for an unknown account
	GetBalance(ctx context.Context, discordID int64) (int64, error)

	// GetAccount returns the account, nil if it does not exist
	GetAccount(ctx context.Context, discordID int64) (*models.Account, error)

	// SetBalance overwrites a balance, creating the account on first write
	SetBalance(ctx context.Context, discordID int64, username string, newBalance int64) (*models.BalanceUpdate, error)

	// Give credits an account on behalf of an administrator
	Give(ctx context.Context, actor models.Actor, discordID int64, username string, amount int64) (*models.BalanceUpdate, error)

	// Take debits an account on behalf of an administrator, clamping at zero
	Take(ctx context.Context, actor models.Actor, discordID int64, username string, amount int64) (*models.BalanceUpdate, error)

	// GetLeaderboard returns the richest accounts
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// ClaimService defines the interface for the periodic allowance
type ClaimService interface {
	Claim(ctx context.Context, discordID int64, username string, now time.Time) (*models.ClaimResult, error)
}

// TransferService defines the interface for peer-to-peer transfers
type TransferService interface {
	Transfer(ctx context.Context, fromDiscordID int64, fromUsername string, toDiscordID int64, toUsername string, amount int64) (*models.TransferResult, error)
}

// WagerMarketService defines the interface for fixed-odds betting events
type WagerMarketService interface {
	CreateEvent(ctx context.Context, actor models.Actor, name string, odds models.Odds) (*models.WagerEvent, error)
	PlaceStake(ctx context.Context, eventID string, outcome models.Outcome, discordID int64, username string, amount int64) (*models.StakeResult, error)
	ResolveEvent(ctx context.Context, actor models.Actor, eventID string, outcome models.Outcome) (*models.EventResolution, error)
	ListEvents(ctx context.Context) ([]*models.WagerEvent, error)
}

// DuelService defines the interface for two-party duels
type DuelService interface {
	CreateDuel(ctx context.Context, challengerID int64, challengerName string, targetID int64, targetName string, amount int64) (*models.Duel, error)
	AcceptDuel(ctx context.Context, duelID string, accepterID int64) (*models.Duel, error)
	ResolveDuel(ctx context.Context, actor models.Actor, duelID string) (*models.DuelResolution, error)
	CancelDuel(ctx context.Context, duelID string, actorID int64) (*models.Duel, error)
	GetDuel(ctx context.Context, duelID string) (*models.Duel, error)
}

// ScrimService defines the interface for team scrims
type ScrimService interface {
	CreateScrim(ctx context.Context, creatorID int64, creatorName string, playersPerTeam int, amountPerPlayer int64, channelID int64) (*models.Scrim, error)
	JoinScrim(ctx context.Context, scrimID string, discordID int64, username string, team models.Team) (*models.ScrimJoinResult, error)
	ResolveScrim(ctx context.Context, actor models.Actor, scrimID string, team models.Team) (*models.ScrimResolution, error)
	ListScrims(ctx context.Context) ([]*models.Scrim, error)
}
