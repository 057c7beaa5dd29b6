package testutil

import (
	"time"

	"economy/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTestBalanceHistory creates a claim-style history entry
func CreateTestBalanceHistory(discordID int64, before, change int64) *models.BalanceHistory {
	return &models.BalanceHistory{
		DiscordID:       discordID,
		BalanceBefore:   before,
		BalanceAfter:    before + change,
		ChangeAmount:    change,
		TransactionType: models.TransactionTypeClaim,
		TransactionMetadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestWagerEvent creates an event with 2.0 / 3.0 / 4.0 odds and no stakes
func CreateTestWagerEvent(name string, createdBy int64) *models.WagerEvent {
	return &models.WagerEvent{
		ID:   uuid.NewString(),
		Name: name,
		Odds: models.Odds{
			Local: decimal.NewFromInt(2),
			Draw:  decimal.NewFromInt(3),
			Away:  decimal.NewFromInt(4),
		},
		Stakes:    make(map[models.Outcome][]models.Stake),
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// CreateTestDuel creates a duel in the created state
func CreateTestDuel(challengerID, targetID, amount int64) *models.Duel {
	return &models.Duel{
		ID:                  uuid.NewString(),
		ChallengerDiscordID: challengerID,
		ChallengerUsername:  "challenger",
		TargetDiscordID:     targetID,
		TargetUsername:      "target",
		Amount:              amount,
		State:               models.DuelStateCreated,
		CreatedAt:           time.Now().UTC().Truncate(time.Millisecond),
	}
}

// CreateTestScrim creates an empty waiting scrim
func CreateTestScrim(creatorID int64, playersPerTeam int, amountPerPlayer int64) *models.Scrim {
	return &models.Scrim{
		ID:               uuid.NewString(),
		CreatorDiscordID: creatorID,
		PlayersPerTeam:   playersPerTeam,
		AmountPerPlayer:  amountPerPlayer,
		TeamA:            []models.ScrimPlayer{},
		TeamB:            []models.ScrimPlayer{},
		Status:           models.ScrimStatusWaiting,
		ChannelID:        555,
		CreatedAt:        time.Now().UTC().Truncate(time.Millisecond),
	}
}
