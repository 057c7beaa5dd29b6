package service

import (
	"context"
	"errors"
	"testing"

	"economy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var adminActor = models.Actor{DiscordID: 1, Username: "admin", Admin: true}

func TestAccountService_GetBalance_UnknownAccount(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	m.accounts.On("GetByDiscordID", ctx, int64(123456)).Return(nil, nil)

	service := NewAccountService(m.factory)
	balance, err := service.GetBalance(ctx, 123456)

	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
	m.accounts.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestAccountService_GetBalance_ExistingAccount(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	m.accounts.On("GetByDiscordID", ctx, int64(123456)).Return(&models.Account{DiscordID: 123456, Balance: 75000}, nil)

	service := NewAccountService(m.factory)
	balance, err := service.GetBalance(ctx, 123456)

	require.NoError(t, err)
	assert.Equal(t, int64(75000), balance)
	m.assertExpectations(t)
}

func TestAccountService_GetBalance_StorageFailure(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	m.accounts.On("GetByDiscordID", ctx, int64(123456)).Return(nil, errors.New("connection reset"))

	service := NewAccountService(m.factory)
	_, err := service.GetBalance(ctx, 123456)

	assert.ErrorIs(t, err, ErrStorage)
	m.assertExpectations(t)
}

func TestAccountService_SetBalance(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, true)

	m.accounts.On("GetForUpdate", ctx, int64(123456), "user").Return(&models.Account{DiscordID: 123456, Balance: 1000}, nil)
	m.accounts.On("SetBalance", ctx, int64(123456), int64(5000)).Return(nil)
	m.history.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.DiscordID == 123456 &&
			h.BalanceBefore == 1000 &&
			h.BalanceAfter == 5000 &&
			h.ChangeAmount == 4000 &&
			h.TransactionType == models.TransactionTypeAdminSet
	})).Return(nil)
	m.bus.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()

	service := NewAccountService(m.factory)
	update, err := service.SetBalance(ctx, 123456, "user", 5000)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), update.PreviousBalance)
	assert.Equal(t, int64(5000), update.NewBalance)
	m.assertExpectations(t)
}

func TestAccountService_SetBalance_Negative(t *testing.T) {
	m := newTestMocks()

	service := NewAccountService(m.factory)
	_, err := service.SetBalance(context.Background(), 123456, "user", -1)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	m.factory.AssertNotCalled(t, "Create")
}

func TestAccountService_Give(t *testing.T) {
	ctx := context.Background()

	t.Run("requires admin", func(t *testing.T) {
		m := newTestMocks()
		service := NewAccountService(m.factory)

		_, err := service.Give(ctx, models.Actor{DiscordID: 2}, 123456, "user", 100)

		assert.ErrorIs(t, err, ErrUnauthorized)
		m.factory.AssertNotCalled(t, "Create")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		m := newTestMocks()
		service := NewAccountService(m.factory)

		_, err := service.Give(ctx, adminActor, 123456, "user", 0)

		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("credits account", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, true)
		m.accounts.On("AddBalance", ctx, int64(123456), "user", int64(500)).Return(int64(1500), nil)
		m.expectBalanceChanges(ctx)

		service := NewAccountService(m.factory)
		update, err := service.Give(ctx, adminActor, 123456, "user", 500)

		require.NoError(t, err)
		assert.Equal(t, int64(1000), update.PreviousBalance)
		assert.Equal(t, int64(1500), update.NewBalance)
		m.assertExpectations(t)
	})
}

func TestAccountService_Take_ClampsAtZero(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, true)

	m.accounts.On("GetForUpdate", ctx, int64(123456), "user").Return(&models.Account{DiscordID: 123456, Balance: 300}, nil)
	m.accounts.On("SetBalance", ctx, int64(123456), int64(0)).Return(nil)
	m.history.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == -300 && h.BalanceAfter == 0 && h.TransactionType == models.TransactionTypeAdminTake
	})).Return(nil)
	m.bus.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()

	service := NewAccountService(m.factory)
	update, err := service.Take(ctx, adminActor, 123456, "user", 500)

	require.NoError(t, err)
	assert.Equal(t, int64(300), update.PreviousBalance)
	assert.Equal(t, int64(0), update.NewBalance)
	m.assertExpectations(t)
}

func TestAccountService_Take_Partial(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, true)

	m.accounts.On("GetForUpdate", ctx, int64(123456), "user").Return(&models.Account{DiscordID: 123456, Balance: 1000}, nil)
	m.accounts.On("SetBalance", ctx, int64(123456), int64(600)).Return(nil)
	m.expectBalanceChanges(ctx)

	service := NewAccountService(m.factory)
	update, err := service.Take(ctx, adminActor, 123456, "user", 400)

	require.NoError(t, err)
	assert.Equal(t, int64(600), update.NewBalance)
	m.assertExpectations(t)
}

func TestAccountService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	m.accounts.On("GetTop", ctx, DefaultLeaderboardSize).Return([]*models.Account{
		{DiscordID: 3, Username: "rich", Balance: 9000},
		{DiscordID: 1, Username: "middle", Balance: 5000},
	}, nil)

	service := NewAccountService(m.factory)
	entries, err := service.GetLeaderboard(ctx, 0)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "rich", entries[0].Username)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, int64(5000), entries[1].Balance)
	m.assertExpectations(t)
}
