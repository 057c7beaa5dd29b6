package service

import (
	"context"
	"fmt"

	"economy/models"
)

type transferService struct {
	uowFactory UnitOfWorkFactory
}

// NewTransferService creates a new transfer service
func NewTransferService(uowFactory UnitOfWorkFactory) TransferService {
	return &transferService{
		uowFactory: uowFactory,
	}
}

func (s *transferService) Transfer(ctx context.Context, fromDiscordID int64, fromUsername string, toDiscordID int64, toUsername string, amount int64) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("transfer amount must be positive: %w", ErrInvalidArgument)
	}
	if fromDiscordID == toDiscordID {
		return nil, fmt.Errorf("cannot transfer to yourself: %w", ErrSelfReference)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	// Lock both rows in id order so opposite transfers cannot deadlock
	first, second := fromDiscordID, toDiscordID
	firstName, secondName := fromUsername, toUsername
	if first > second {
		first, second = second, first
		firstName, secondName = secondName, firstName
	}
	if _, err := uow.AccountRepository().GetForUpdate(ctx, first, firstName); err != nil {
		return nil, storageErr("failed to lock account", err)
	}
	if _, err := uow.AccountRepository().GetForUpdate(ctx, second, secondName); err != nil {
		return nil, storageErr("failed to lock account", err)
	}

	fromBalance, err := uow.AccountRepository().DeductBalance(ctx, fromDiscordID, amount)
	if err != nil {
		return nil, storageErr("failed to deduct transfer amount", err)
	}

	toBalance, err := uow.AccountRepository().AddBalance(ctx, toDiscordID, toUsername, amount)
	if err != nil {
		return nil, storageErr("failed to add transfer amount", err)
	}

	fromHistory := models.NewBalanceHistory(fromDiscordID, fromBalance, -amount, models.TransactionTypeTransferOut).
		WithMetadata(map[string]any{
			"recipient_discord_id": toDiscordID,
			"recipient_username":   toUsername,
		})
	if err := RecordBalanceChange(ctx, uow, fromHistory); err != nil {
		return nil, storageErr("failed to record sender balance change", err)
	}

	toHistory := models.NewBalanceHistory(toDiscordID, toBalance, amount, models.TransactionTypeTransferIn).
		WithMetadata(map[string]any{
			"sender_discord_id": fromDiscordID,
			"sender_username":   fromUsername,
		})
	if err := RecordBalanceChange(ctx, uow, toHistory); err != nil {
		return nil, storageErr("failed to record recipient balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	return &models.TransferResult{
		FromDiscordID:  fromDiscordID,
		ToDiscordID:    toDiscordID,
		Amount:         amount,
		FromNewBalance: fromBalance,
		ToNewBalance:   toBalance,
	}, nil
}
