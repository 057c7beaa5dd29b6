package repository

import (
	"context"
	"errors"
	"fmt"

	"economy/database"
	"economy/events"
	"economy/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork binds every repository to one database transaction and holds
// back domain events until that transaction commits.
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus

	accountRepo        service.AccountRepository
	balanceHistoryRepo service.BalanceHistoryRepository
	wagerEventRepo     service.WagerEventRepository
	duelRepo           service.DuelRepository
	scrimRepo          service.ScrimRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.accountRepo = newAccountRepositoryWithTx(tx)
	u.balanceHistoryRepo = newBalanceHistoryRepositoryWithTx(tx)
	u.wagerEventRepo = newWagerEventRepositoryWithTx(tx)
	u.duelRepo = newDuelRepositoryWithTx(tx)
	u.scrimRepo = newScrimRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and then delivers queued events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return errors.New("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		u.tx = nil
		u.transactionalBus.Discard()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	u.transactionalBus.Flush(u.ctx)
	return nil
}

// Rollback aborts the transaction. It is safe to call after Commit.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.transactionalBus.Discard()

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) mustBegin() {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
}

// AccountRepository returns the account repository for this unit of work
func (u *unitOfWork) AccountRepository() service.AccountRepository {
	u.mustBegin()
	return u.accountRepo
}

// BalanceHistoryRepository returns the balance history repository for this unit of work
func (u *unitOfWork) BalanceHistoryRepository() service.BalanceHistoryRepository {
	u.mustBegin()
	return u.balanceHistoryRepo
}

// WagerEventRepository returns the wager event repository for this unit of work
func (u *unitOfWork) WagerEventRepository() service.WagerEventRepository {
	u.mustBegin()
	return u.wagerEventRepo
}

// DuelRepository returns the duel repository for this unit of work
func (u *unitOfWork) DuelRepository() service.DuelRepository {
	u.mustBegin()
	return u.duelRepo
}

// ScrimRepository returns the scrim repository for this unit of work
func (u *unitOfWork) ScrimRepository() service.ScrimRepository {
	u.mustBegin()
	return u.scrimRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
