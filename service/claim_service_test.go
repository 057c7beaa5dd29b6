package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"economy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testClaimAmount   = int64(25000)
	testClaimCooldown = time.Hour
)

func TestClaimService_FirstClaim(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := newTestMocks()
	m.expectTransaction(ctx, true)

	m.accounts.On("GetForUpdate", ctx, int64(123456), "user").Return(&models.Account{DiscordID: 123456}, nil)
	m.accounts.On("RecordClaim", ctx, int64(123456), testClaimAmount, now).Return(testClaimAmount, nil)
	m.history.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.BalanceBefore == 0 && h.BalanceAfter == testClaimAmount && h.TransactionType == models.TransactionTypeClaim
	})).Return(nil)
	m.bus.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()

	service := NewClaimService(m.factory, testClaimAmount, testClaimCooldown)
	result, err := service.Claim(ctx, 123456, "user", now)

	require.NoError(t, err)
	assert.Equal(t, testClaimAmount, result.Amount)
	assert.Equal(t, testClaimAmount, result.NewBalance)
	assert.Equal(t, now.Add(time.Hour), result.NextClaimAt)
	m.assertExpectations(t)
}

func TestClaimService_CooldownBoundary(t *testing.T) {
	ctx := context.Background()
	lastClaim := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("one millisecond early is rejected", func(t *testing.T) {
		now := lastClaim.Add(testClaimCooldown - time.Millisecond)
		m := newTestMocks()
		m.expectTransaction(ctx, false)
		m.accounts.On("GetForUpdate", ctx, int64(123456), "user").
			Return(&models.Account{DiscordID: 123456, Balance: 25000, LastClaimAt: &lastClaim}, nil)

		service := NewClaimService(m.factory, testClaimAmount, testClaimCooldown)
		_, err := service.Claim(ctx, 123456, "user", now)

		require.ErrorIs(t, err, ErrCooldown)
		var cooldownErr *CooldownError
		require.True(t, errors.As(err, &cooldownErr))
		assert.Equal(t, time.Millisecond, cooldownErr.Remaining)
		assert.Equal(t, int64(1), cooldownErr.RemainingMinutes())
		m.accounts.AssertNotCalled(t, "RecordClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.history.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("exactly the cooldown is granted", func(t *testing.T) {
		now := lastClaim.Add(testClaimCooldown)
		m := newTestMocks()
		m.expectTransaction(ctx, true)
		m.accounts.On("GetForUpdate", ctx, int64(123456), "user").
			Return(&models.Account{DiscordID: 123456, Balance: 25000, LastClaimAt: &lastClaim}, nil)
		m.accounts.On("RecordClaim", ctx, int64(123456), testClaimAmount, now).Return(int64(50000), nil)
		m.expectBalanceChanges(ctx)

		service := NewClaimService(m.factory, testClaimAmount, testClaimCooldown)
		result, err := service.Claim(ctx, 123456, "user", now)

		require.NoError(t, err)
		assert.Equal(t, int64(50000), result.NewBalance)
		m.assertExpectations(t)
	})
}

func TestClaimService_RemainingMinutes(t *testing.T) {
	ctx := context.Background()
	lastClaim := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := lastClaim.Add(30 * time.Minute)

	m := newTestMocks()
	m.expectTransaction(ctx, false)
	m.accounts.On("GetForUpdate", ctx, int64(123456), "user").
		Return(&models.Account{DiscordID: 123456, LastClaimAt: &lastClaim}, nil)

	service := NewClaimService(m.factory, testClaimAmount, testClaimCooldown)
	_, err := service.Claim(ctx, 123456, "user", now)

	var cooldownErr *CooldownError
	require.True(t, errors.As(err, &cooldownErr))
	assert.Equal(t, int64(30), cooldownErr.RemainingMinutes())
}

func TestClaimService_BeginFailure(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(errors.New("pool closed"))

	service := NewClaimService(m.factory, testClaimAmount, testClaimCooldown)
	_, err := service.Claim(ctx, 123456, "user", time.Now())

	assert.ErrorIs(t, err, ErrStorage)
	m.uow.AssertNotCalled(t, "Commit")
}
