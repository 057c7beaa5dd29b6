package service

import (
	"context"
	"fmt"

	"economy/models"

	log "github.com/sirupsen/logrus"
)

// DefaultLeaderboardSize is the number of rows returned when no limit is given
const DefaultLeaderboardSize = 25

type accountService struct {
	uowFactory UnitOfWorkFactory
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory) AccountService {
	return &accountService{
		uowFactory: uowFactory,
	}
}

func (s *accountService) GetBalance(ctx context.Context, discordID int64) (int64, error) {
	account, err := s.GetAccount(ctx, discordID)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, nil
	}
	return account.Balance, nil
}

func (s *accountService) GetAccount(ctx context.Context, discordID int64) (*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, storageErr("failed to get account", err)
	}
	return account, nil
}

func (s *accountService) SetBalance(ctx context.Context, discordID int64, username string, newBalance int64) (*models.BalanceUpdate, error) {
	if newBalance < 0 {
		return nil, fmt.Errorf("balance cannot be negative: %w", ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetForUpdate(ctx, discordID, username)
	if err != nil {
		return nil, storageErr("failed to lock account", err)
	}

	if err := uow.AccountRepository().SetBalance(ctx, discordID, newBalance); err != nil {
		return nil, storageErr("failed to set balance", err)
	}

	history := models.NewBalanceHistory(discordID, newBalance, newBalance-account.Balance, models.TransactionTypeAdminSet)
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	return &models.BalanceUpdate{
		DiscordID:       discordID,
		PreviousBalance: account.Balance,
		NewBalance:      newBalance,
	}, nil
}

func (s *accountService) Give(ctx context.Context, actor models.Actor, discordID int64, username string, amount int64) (*models.BalanceUpdate, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	newBalance, err := uow.AccountRepository().AddBalance(ctx, discordID, username, amount)
	if err != nil {
		return nil, storageErr("failed to add balance", err)
	}

	history := models.NewBalanceHistory(discordID, newBalance, amount, models.TransactionTypeAdminGive).
		WithMetadata(map[string]any{"admin_discord_id": actor.DiscordID})
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"admin":  actor.DiscordID,
		"target": discordID,
		"amount": amount,
	}).Info("Admin credited account")

	return &models.BalanceUpdate{
		DiscordID:       discordID,
		PreviousBalance: newBalance - amount,
		NewBalance:      newBalance,
	}, nil
}

func (s *accountService) Take(ctx context.Context, actor models.Actor, discordID int64, username string, amount int64) (*models.BalanceUpdate, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetForUpdate(ctx, discordID, username)
	if err != nil {
		return nil, storageErr("failed to lock account", err)
	}

	// Take clamps at zero instead of failing
	newBalance := account.Balance - amount
	if newBalance < 0 {
		newBalance = 0
	}

	if err := uow.AccountRepository().SetBalance(ctx, discordID, newBalance); err != nil {
		return nil, storageErr("failed to set balance", err)
	}

	history := models.NewBalanceHistory(discordID, newBalance, newBalance-account.Balance, models.TransactionTypeAdminTake).
		WithMetadata(map[string]any{
			"admin_discord_id": actor.DiscordID,
			"requested_amount": amount,
		})
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"admin":     actor.DiscordID,
		"target":    discordID,
		"requested": amount,
		"taken":     account.Balance - newBalance,
	}).Info("Admin debited account")

	return &models.BalanceUpdate{
		DiscordID:       discordID,
		PreviousBalance: account.Balance,
		NewBalance:      newBalance,
	}, nil
}

func (s *accountService) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().GetTop(ctx, limit)
	if err != nil {
		return nil, storageErr("failed to get top accounts", err)
	}

	entries := make([]*models.LeaderboardEntry, 0, len(accounts))
	for i, account := range accounts {
		entries = append(entries, &models.LeaderboardEntry{
			Rank:      i + 1,
			DiscordID: account.DiscordID,
			Username:  account.Username,
			Balance:   account.Balance,
		})
	}
	return entries, nil
}
