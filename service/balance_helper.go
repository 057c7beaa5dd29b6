package service

import (
	"context"
	"fmt"

	"economy/events"
	"economy/models"
)

// RecordBalanceChange records a balance history entry and queues the
// matching BalanceChangeEvent. Every balance mutation goes through here so
// that rank roles and metrics follow the ledger.
func RecordBalanceChange(ctx context.Context, uow UnitOfWork, history *models.BalanceHistory) error {
	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          history.DiscordID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	})

	return nil
}

func requireAdmin(actor models.Actor) error {
	if !actor.Admin {
		return fmt.Errorf("user %d is not an administrator: %w", actor.DiscordID, ErrUnauthorized)
	}
	return nil
}
