package models

import (
	"time"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeClaim       TransactionType = "claim"
	TransactionTypeAdminGive   TransactionType = "admin_give"
	TransactionTypeAdminTake   TransactionType = "admin_take"
	TransactionTypeAdminSet    TransactionType = "admin_set"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeWagerStake  TransactionType = "wager_stake"
	TransactionTypeWagerPayout TransactionType = "wager_payout"
	TransactionTypeDuelStake   TransactionType = "duel_stake"
	TransactionTypeDuelRefund  TransactionType = "duel_refund"
	TransactionTypeDuelPayout  TransactionType = "duel_payout"
	TransactionTypeScrimStake  TransactionType = "scrim_stake"
	TransactionTypeScrimPayout TransactionType = "scrim_payout"
)

// RelatedType represents what type of entity the related_id refers to
type RelatedType string

const (
	RelatedTypeWagerEvent RelatedType = "wager_event"
	RelatedTypeDuel       RelatedType = "duel"
	RelatedTypeScrim      RelatedType = "scrim"
)

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	DiscordID           int64           `db:"discord_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	RelatedID           *string         `db:"related_id"`
	RelatedType         *RelatedType    `db:"related_type"`
	CreatedAt           time.Time       `db:"created_at"`
}

// NewBalanceHistory builds a history entry from the balance after a change and the signed delta
func NewBalanceHistory(discordID, balanceAfter, change int64, txType TransactionType) *BalanceHistory {
	return &BalanceHistory{
		DiscordID:       discordID,
		BalanceBefore:   balanceAfter - change,
		BalanceAfter:    balanceAfter,
		ChangeAmount:    change,
		TransactionType: txType,
	}
}

// WithRelated links the entry to the entity that caused it
func (h *BalanceHistory) WithRelated(id string, relatedType RelatedType) *BalanceHistory {
	h.RelatedID = &id
	h.RelatedType = &relatedType
	return h
}

// WithMetadata attaches free-form metadata to the entry
func (h *BalanceHistory) WithMetadata(metadata map[string]any) *BalanceHistory {
	h.TransactionMetadata = metadata
	return h
}
