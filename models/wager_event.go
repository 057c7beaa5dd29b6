package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Outcome is one of the three results a wager event can settle on
type Outcome string

const (
	OutcomeLocal Outcome = "local"
	OutcomeDraw  Outcome = "draw"
	OutcomeAway  Outcome = "away"
)

// Outcomes lists every outcome in display order
var Outcomes = []Outcome{OutcomeLocal, OutcomeDraw, OutcomeAway}

// ParseOutcome accepts the English names and the Spanish aliases used by the community
func ParseOutcome(s string) (Outcome, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local", "home":
		return OutcomeLocal, true
	case "draw", "empate":
		return OutcomeDraw, true
	case "away", "visita", "visitante":
		return OutcomeAway, true
	}
	return "", false
}

// Odds holds the fixed multiplier for each outcome
type Odds struct {
	Local decimal.Decimal `json:"local"`
	Draw  decimal.Decimal `json:"draw"`
	Away  decimal.Decimal `json:"away"`
}

// For returns the multiplier for an outcome
func (o Odds) For(outcome Outcome) (decimal.Decimal, bool) {
	switch outcome {
	case OutcomeLocal:
		return o.Local, true
	case OutcomeDraw:
		return o.Draw, true
	case OutcomeAway:
		return o.Away, true
	}
	return decimal.Zero, false
}

// Valid reports whether every multiplier is strictly positive
func (o Odds) Valid() bool {
	return o.Local.IsPositive() && o.Draw.IsPositive() && o.Away.IsPositive()
}

// Stake is a single escrowed bet on an outcome
type Stake struct {
	DiscordID int64     `json:"discord_id"`
	Username  string    `json:"username"`
	Amount    int64     `json:"amount"`
	PlacedAt  time.Time `json:"placed_at"`
}

// WagerEvent is a fixed-odds betting event with three outcomes
type WagerEvent struct {
	ID        string              `db:"id"`
	Name      string              `db:"name"`
	Odds      Odds                `db:"odds"`
	Stakes    map[Outcome][]Stake `db:"stakes"`
	CreatedBy int64               `db:"created_by"`
	CreatedAt time.Time           `db:"created_at"`
}

// AddStake appends a stake to the outcome's list
func (e *WagerEvent) AddStake(outcome Outcome, stake Stake) {
	if e.Stakes == nil {
		e.Stakes = make(map[Outcome][]Stake)
	}
	e.Stakes[outcome] = append(e.Stakes[outcome], stake)
}

// StakeCount returns the number of stakes across all outcomes
func (e *WagerEvent) StakeCount() int {
	count := 0
	for _, stakes := range e.Stakes {
		count += len(stakes)
	}
	return count
}

// TotalStaked returns the escrowed amount across all outcomes
func (e *WagerEvent) TotalStaked() int64 {
	var total int64
	for _, stakes := range e.Stakes {
		for _, s := range stakes {
			total += s.Amount
		}
	}
	return total
}

// Payout computes floor(amount × odds)
func Payout(amount int64, odds decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(odds).Floor().IntPart()
}

// StakePayout pairs a winning stake with what it was paid
type StakePayout struct {
	Stake
	Payout int64
}

// StakeResult represents a placed stake
type StakeResult struct {
	EventID         string
	EventName       string
	Outcome         Outcome
	Amount          int64
	PotentialPayout int64
	NewBalance      int64
}

// EventResolution represents the settlement of a wager event
type EventResolution struct {
	EventID   string
	EventName string
	Outcome   Outcome
	Odds      decimal.Decimal
	Payouts   []StakePayout
	TotalPaid int64
}

// PaidCount returns the number of winning stakes
func (r *EventResolution) PaidCount() int {
	return len(r.Payouts)
}
