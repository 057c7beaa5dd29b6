package repository

import (
	"context"
	"testing"
	"time"

	"economy/models"
	"economy/repository/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWagerEventRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWagerEventRepository(testDB.DB)
	ctx := context.Background()

	event := testutil.CreateTestWagerEvent("Final", 42)
	event.Odds.Draw = decimal.RequireFromString("3.25")
	require.NoError(t, repo.Create(ctx, event))

	t.Run("missing event returns nil", func(t *testing.T) {
		found, err := repo.GetByIDForUpdate(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("odds survive storage exactly", func(t *testing.T) {
		found, err := repo.GetByIDForUpdate(ctx, event.ID)
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.Equal(t, "Final", found.Name)
		assert.Equal(t, int64(42), found.CreatedBy)
		assert.True(t, decimal.RequireFromString("3.25").Equal(found.Odds.Draw))
		assert.True(t, decimal.NewFromInt(2).Equal(found.Odds.Local))
		assert.Equal(t, 0, found.StakeCount())
	})

	t.Run("stakes keep order per outcome", func(t *testing.T) {
		placedAt := time.Now().UTC()
		event.AddStake(models.OutcomeLocal, models.Stake{DiscordID: 1, Username: "a", Amount: 100, PlacedAt: placedAt})
		event.AddStake(models.OutcomeLocal, models.Stake{DiscordID: 2, Username: "b", Amount: 200, PlacedAt: placedAt})
		event.AddStake(models.OutcomeAway, models.Stake{DiscordID: 3, Username: "c", Amount: 50, PlacedAt: placedAt})
		require.NoError(t, repo.UpdateStakes(ctx, event))

		found, err := repo.GetByIDForUpdate(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, found.Stakes[models.OutcomeLocal], 2)
		assert.Equal(t, int64(1), found.Stakes[models.OutcomeLocal][0].DiscordID)
		assert.Equal(t, int64(2), found.Stakes[models.OutcomeLocal][1].DiscordID)
		assert.Len(t, found.Stakes[models.OutcomeAway], 1)
		assert.Empty(t, found.Stakes[models.OutcomeDraw])
		assert.Equal(t, int64(350), found.TotalStaked())
	})

	t.Run("update on missing event fails", func(t *testing.T) {
		ghost := testutil.CreateTestWagerEvent("ghost", 1)
		assert.Error(t, repo.UpdateStakes(ctx, ghost))
	})

	t.Run("list and delete", func(t *testing.T) {
		second := testutil.CreateTestWagerEvent("Semi", 42)
		second.CreatedAt = event.CreatedAt.Add(time.Minute)
		require.NoError(t, repo.Create(ctx, second))

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, event.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)

		require.NoError(t, repo.Delete(ctx, event.ID))

		found, err := repo.GetByIDForUpdate(ctx, event.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		list, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
