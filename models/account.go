package models

import (
	"time"
)

// Account represents a Discord user's ledger entry
type Account struct {
	DiscordID   int64      `db:"discord_id"`
	Username    string     `db:"username"`
	Balance     int64      `db:"balance"`
	LastClaimAt *time.Time `db:"last_claim_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// ClaimCooldownRemaining returns how long until the account may claim again.
// Zero means a claim is allowed at now.
func (a *Account) ClaimCooldownRemaining(now time.Time, cooldown time.Duration) time.Duration {
	if a == nil || a.LastClaimAt == nil {
		return 0
	}
	elapsed := now.Sub(*a.LastClaimAt)
	if elapsed >= cooldown {
		return 0
	}
	return cooldown - elapsed
}

// Actor identifies who is invoking an operation
type Actor struct {
	DiscordID int64
	Username  string
	Admin     bool
}

// BalanceUpdate is the outcome of an absolute balance change
type BalanceUpdate struct {
	DiscordID       int64
	PreviousBalance int64
	NewBalance      int64
}

// ClaimResult represents a granted allowance
type ClaimResult struct {
	DiscordID   int64
	Amount      int64
	NewBalance  int64
	NextClaimAt time.Time
}

// TransferResult represents a completed peer-to-peer transfer
type TransferResult struct {
	FromDiscordID  int64
	ToDiscordID    int64
	Amount         int64
	FromNewBalance int64
	ToNewBalance   int64
}

// LeaderboardEntry is one row of the richest-accounts listing
type LeaderboardEntry struct {
	Rank      int
	DiscordID int64
	Username  string
	Balance   int64
}
