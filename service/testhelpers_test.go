package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// fixedRandomness always returns the same draw
type fixedRandomness float64

func (f fixedRandomness) Float64() float64 {
	return float64(f)
}

type testMocks struct {
	factory     *MockUnitOfWorkFactory
	uow         *MockUnitOfWork
	accounts    *MockAccountRepository
	history     *MockBalanceHistoryRepository
	wagerEvents *MockWagerEventRepository
	duels       *MockDuelRepository
	scrims      *MockScrimRepository
	bus         *MockEventPublisher
}

func newTestMocks() *testMocks {
	m := &testMocks{
		factory:     new(MockUnitOfWorkFactory),
		uow:         new(MockUnitOfWork),
		accounts:    new(MockAccountRepository),
		history:     new(MockBalanceHistoryRepository),
		wagerEvents: new(MockWagerEventRepository),
		duels:       new(MockDuelRepository),
		scrims:      new(MockScrimRepository),
		bus:         new(MockEventPublisher),
	}
	m.uow.SetRepositories(m.accounts, m.history)
	m.uow.SetWagerEventRepository(m.wagerEvents)
	m.uow.SetDuelRepository(m.duels)
	m.uow.SetScrimRepository(m.scrims)
	m.uow.SetEventBus(m.bus)
	return m
}

// expectTransaction registers Create, Begin and the deferred Rollback, plus
// Commit when the operation is expected to succeed.
func (m *testMocks) expectTransaction(ctx context.Context, commit bool) {
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	if commit {
		m.uow.On("Commit").Return(nil)
	}
}

// expectBalanceChanges accepts any history record and balance event
func (m *testMocks) expectBalanceChanges(ctx context.Context) {
	m.history.On("Record", ctx, mock.Anything).Return(nil)
	m.bus.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()
}

func (m *testMocks) assertExpectations(t *testing.T) {
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.accounts.AssertExpectations(t)
	m.history.AssertExpectations(t)
	m.wagerEvents.AssertExpectations(t)
	m.duels.AssertExpectations(t)
	m.scrims.AssertExpectations(t)
	m.bus.AssertExpectations(t)
}
