package models

import (
	"time"
)

// DuelState represents the state of a duel
type DuelState string

const (
	DuelStateCreated   DuelState = "created"
	DuelStateAccepted  DuelState = "accepted"
	DuelStateResolved  DuelState = "resolved"
	DuelStateCancelled DuelState = "cancelled"
)

// Duel represents a two-party escrowed challenge settled by a coin flip
type Duel struct {
	ID                  string     `db:"id"`
	ChallengerDiscordID int64      `db:"challenger_discord_id"`
	ChallengerUsername  string     `db:"challenger_username"`
	TargetDiscordID     int64      `db:"target_discord_id"`
	TargetUsername      string     `db:"target_username"`
	Amount              int64      `db:"amount"`
	State               DuelState  `db:"state"`
	WinnerDiscordID     *int64     `db:"winner_discord_id"`
	CreatedAt           time.Time  `db:"created_at"`
	AcceptedAt          *time.Time `db:"accepted_at"`
	ResolvedAt          *time.Time `db:"resolved_at"`
}

// Prize is the escrow held once both sides have paid in
func (d *Duel) Prize() int64 {
	return d.Amount * 2
}

// IsParticipant checks if a user is involved in the duel
func (d *Duel) IsParticipant(discordID int64) bool {
	return d.ChallengerDiscordID == discordID || d.TargetDiscordID == discordID
}

// GetOpponent returns the other participant's discord ID
func (d *Duel) GetOpponent(discordID int64) int64 {
	if d.ChallengerDiscordID == discordID {
		return d.TargetDiscordID
	}
	if d.TargetDiscordID == discordID {
		return d.ChallengerDiscordID
	}
	return 0
}

// UsernameOf returns the stored username for a participant
func (d *Duel) UsernameOf(discordID int64) string {
	if d.ChallengerDiscordID == discordID {
		return d.ChallengerUsername
	}
	return d.TargetUsername
}

// DuelResolution represents the outcome of a resolved duel
type DuelResolution struct {
	Duel             *Duel
	WinnerDiscordID  int64
	LoserDiscordID   int64
	Prize            int64
	WinnerNewBalance int64
}
