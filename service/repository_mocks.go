package service

import (
	"context"
	"time"

	"economy/events"
	"economy/models"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, discordID int64, username string) (*models.Account, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) AddBalance(ctx context.Context, discordID int64, username string, amount int64) (int64, error) {
	args := m.Called(ctx, discordID, username, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) DeductBalance(ctx context.Context, discordID int64, amount int64) (int64, error) {
	args := m.Called(ctx, discordID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SetBalance(ctx context.Context, discordID int64, balance int64) error {
	args := m.Called(ctx, discordID, balance)
	return args.Error(0)
}

func (m *MockAccountRepository) RecordClaim(ctx context.Context, discordID int64, amount int64, claimedAt time.Time) (int64, error) {
	args := m.Called(ctx, discordID, amount, claimedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) GetTop(ctx context.Context, limit int) ([]*models.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, discordID int64, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockWagerEventRepository is a mock implementation of WagerEventRepository
type MockWagerEventRepository struct {
	mock.Mock
}

func (m *MockWagerEventRepository) Create(ctx context.Context, event *models.WagerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockWagerEventRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.WagerEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WagerEvent), args.Error(1)
}

func (m *MockWagerEventRepository) UpdateStakes(ctx context.Context, event *models.WagerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockWagerEventRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWagerEventRepository) List(ctx context.Context) ([]*models.WagerEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WagerEvent), args.Error(1)
}

// MockDuelRepository is a mock implementation of DuelRepository
type MockDuelRepository struct {
	mock.Mock
}

func (m *MockDuelRepository) Create(ctx context.Context, duel *models.Duel) error {
	args := m.Called(ctx, duel)
	return args.Error(0)
}

func (m *MockDuelRepository) GetByID(ctx context.Context, id string) (*models.Duel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Duel), args.Error(1)
}

func (m *MockDuelRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Duel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Duel), args.Error(1)
}

func (m *MockDuelRepository) Update(ctx context.Context, duel *models.Duel) error {
	args := m.Called(ctx, duel)
	return args.Error(0)
}

// MockScrimRepository is a mock implementation of ScrimRepository
type MockScrimRepository struct {
	mock.Mock
}

func (m *MockScrimRepository) Create(ctx context.Context, scrim *models.Scrim) error {
	args := m.Called(ctx, scrim)
	return args.Error(0)
}

func (m *MockScrimRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Scrim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scrim), args.Error(1)
}

func (m *MockScrimRepository) Update(ctx context.Context, scrim *models.Scrim) error {
	args := m.Called(ctx, scrim)
	return args.Error(0)
}

func (m *MockScrimRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScrimRepository) List(ctx context.Context) ([]*models.Scrim, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Scrim), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// wired with SetRepositories; lifecycle calls go through testify.
type MockUnitOfWork struct {
	mock.Mock
	accountRepo        AccountRepository
	balanceHistoryRepo BalanceHistoryRepository
	wagerEventRepo     WagerEventRepository
	duelRepo           DuelRepository
	scrimRepo          ScrimRepository
	eventBus           EventPublisher
}

// SetRepositories wires the account and history repositories
func (m *MockUnitOfWork) SetRepositories(accountRepo AccountRepository, balanceHistoryRepo BalanceHistoryRepository) {
	m.accountRepo = accountRepo
	m.balanceHistoryRepo = balanceHistoryRepo
}

func (m *MockUnitOfWork) SetWagerEventRepository(repo WagerEventRepository) {
	m.wagerEventRepo = repo
}

func (m *MockUnitOfWork) SetDuelRepository(repo DuelRepository) {
	m.duelRepo = repo
}

func (m *MockUnitOfWork) SetScrimRepository(repo ScrimRepository) {
	m.scrimRepo = repo
}

func (m *MockUnitOfWork) SetEventBus(bus EventPublisher) {
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository {
	return m.balanceHistoryRepo
}

func (m *MockUnitOfWork) WagerEventRepository() WagerEventRepository {
	return m.wagerEventRepo
}

func (m *MockUnitOfWork) DuelRepository() DuelRepository {
	return m.duelRepo
}

func (m *MockUnitOfWork) ScrimRepository() ScrimRepository {
	return m.scrimRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
