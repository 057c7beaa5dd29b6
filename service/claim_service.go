package service

import (
	"context"
	"time"

	"economy/models"
)

type claimService struct {
	uowFactory UnitOfWorkFactory
	amount     int64
	cooldown   time.Duration
}

// NewClaimService creates a claim service granting amount once per cooldown
func NewClaimService(uowFactory UnitOfWorkFactory, amount int64, cooldown time.Duration) ClaimService {
	return &claimService{
		uowFactory: uowFactory,
		amount:     amount,
		cooldown:   cooldown,
	}
}

// Claim grants the allowance if the cooldown has fully elapsed. The account
// row stays locked from the check to the credit so concurrent claims by the
// same user grant at most once.
func (s *claimService) Claim(ctx context.Context, discordID int64, username string, now time.Time) (*models.ClaimResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetForUpdate(ctx, discordID, username)
	if err != nil {
		return nil, storageErr("failed to lock account", err)
	}

	if remaining := account.ClaimCooldownRemaining(now, s.cooldown); remaining > 0 {
		return nil, &CooldownError{Remaining: remaining}
	}

	newBalance, err := uow.AccountRepository().RecordClaim(ctx, discordID, s.amount, now)
	if err != nil {
		return nil, storageErr("failed to record claim", err)
	}

	history := models.NewBalanceHistory(discordID, newBalance, s.amount, models.TransactionTypeClaim)
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	return &models.ClaimResult{
		DiscordID:   discordID,
		Amount:      s.amount,
		NewBalance:  newBalance,
		NextClaimAt: now.Add(s.cooldown),
	}, nil
}
