package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"economy/repository/testutil"
	"economy/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown account returns nil", func(t *testing.T) {
		account, err := repo.GetByDiscordID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("GetForUpdate creates account with zero balance", func(t *testing.T) {
		account, err := repo.GetForUpdate(ctx, 1001, "alice")
		require.NoError(t, err)
		require.NotNil(t, account)

		assert.Equal(t, int64(1001), account.DiscordID)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, int64(0), account.Balance)
		assert.Nil(t, account.LastClaimAt)

		again, err := repo.GetForUpdate(ctx, 1001, "alice-renamed")
		require.NoError(t, err)
		assert.Equal(t, "alice", again.Username)
	})

	t.Run("AddBalance upserts and accumulates", func(t *testing.T) {
		balance, err := repo.AddBalance(ctx, 1002, "bob", 500)
		require.NoError(t, err)
		assert.Equal(t, int64(500), balance)

		balance, err = repo.AddBalance(ctx, 1002, "bob", 250)
		require.NoError(t, err)
		assert.Equal(t, int64(750), balance)

		account, err := repo.GetByDiscordID(ctx, 1002)
		require.NoError(t, err)
		assert.Equal(t, int64(750), account.Balance)
	})

	t.Run("AddBalance rejects non-positive amounts", func(t *testing.T) {
		_, err := repo.AddBalance(ctx, 1002, "bob", 0)
		assert.Error(t, err)
	})

	t.Run("DeductBalance succeeds when covered", func(t *testing.T) {
		_, err := repo.AddBalance(ctx, 1003, "carol", 1000)
		require.NoError(t, err)

		balance, err := repo.DeductBalance(ctx, 1003, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})

	t.Run("DeductBalance reports insufficient funds", func(t *testing.T) {
		_, err := repo.AddBalance(ctx, 1004, "dave", 100)
		require.NoError(t, err)

		_, err = repo.DeductBalance(ctx, 1004, 101)
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrInsufficientFunds))

		var fundsErr *service.InsufficientFundsError
		require.True(t, errors.As(err, &fundsErr))
		assert.Equal(t, int64(100), fundsErr.Have)
		assert.Equal(t, int64(101), fundsErr.Need)

		account, err := repo.GetByDiscordID(ctx, 1004)
		require.NoError(t, err)
		assert.Equal(t, int64(100), account.Balance)
	})

	t.Run("DeductBalance on missing account reports zero held", func(t *testing.T) {
		_, err := repo.DeductBalance(ctx, 1099, 1)
		var fundsErr *service.InsufficientFundsError
		require.True(t, errors.As(err, &fundsErr))
		assert.Equal(t, int64(0), fundsErr.Have)
	})

	t.Run("SetBalance overwrites existing balance", func(t *testing.T) {
		_, err := repo.AddBalance(ctx, 1005, "erin", 10)
		require.NoError(t, err)

		require.NoError(t, repo.SetBalance(ctx, 1005, 123456))

		account, err := repo.GetByDiscordID(ctx, 1005)
		require.NoError(t, err)
		assert.Equal(t, int64(123456), account.Balance)

		assert.Error(t, repo.SetBalance(ctx, 1098, 1))
	})

	t.Run("RecordClaim credits and stamps claim time", func(t *testing.T) {
		_, err := repo.GetForUpdate(ctx, 1006, "frank")
		require.NoError(t, err)

		claimedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		balance, err := repo.RecordClaim(ctx, 1006, 10000, claimedAt)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), balance)

		account, err := repo.GetByDiscordID(ctx, 1006)
		require.NoError(t, err)
		require.NotNil(t, account.LastClaimAt)
		assert.True(t, claimedAt.Equal(*account.LastClaimAt))
	})
}

func TestAccountRepository_GetTop(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	balances := map[int64]int64{
		2001: 300,
		2002: 900,
		2003: 600,
		2004: 900,
	}
	for id, amount := range balances {
		_, err := repo.AddBalance(ctx, id, "user", amount)
		require.NoError(t, err)
	}

	top, err := repo.GetTop(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)

	// ties break on the lower Discord ID
	assert.Equal(t, int64(2002), top[0].DiscordID)
	assert.Equal(t, int64(2004), top[1].DiscordID)
	assert.Equal(t, int64(2003), top[2].DiscordID)
}
