package repository

import (
	"context"
	"testing"
	"time"

	"economy/models"
	"economy/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrimRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewScrimRepository(testDB.DB)
	ctx := context.Background()

	scrim := testutil.CreateTestScrim(5001, 2, 1000)
	require.NoError(t, repo.Create(ctx, scrim))

	t.Run("missing scrim returns nil", func(t *testing.T) {
		found, err := repo.GetByIDForUpdate(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("new scrim is empty and waiting", func(t *testing.T) {
		found, err := repo.GetByIDForUpdate(ctx, scrim.ID)
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.Equal(t, 2, found.PlayersPerTeam)
		assert.Equal(t, int64(1000), found.AmountPerPlayer)
		assert.Equal(t, models.ScrimStatusWaiting, found.Status)
		assert.Equal(t, int64(555), found.ChannelID)
		assert.Empty(t, found.TeamA)
		assert.Empty(t, found.TeamB)
		assert.Equal(t, int64(0), found.PrizePool)
	})

	t.Run("rosters keep join order", func(t *testing.T) {
		now := time.Now().UTC()
		scrim.AddPlayer(models.TeamA, models.ScrimPlayer{DiscordID: 11, Username: "a1", JoinedAt: now})
		scrim.AddPlayer(models.TeamA, models.ScrimPlayer{DiscordID: 12, Username: "a2", JoinedAt: now.Add(time.Second)})
		scrim.AddPlayer(models.TeamB, models.ScrimPlayer{DiscordID: 21, Username: "b1", JoinedAt: now})
		require.NoError(t, repo.Update(ctx, scrim))

		found, err := repo.GetByIDForUpdate(ctx, scrim.ID)
		require.NoError(t, err)
		require.Len(t, found.TeamA, 2)
		assert.Equal(t, int64(11), found.TeamA[0].DiscordID)
		assert.Equal(t, int64(12), found.TeamA[1].DiscordID)
		require.Len(t, found.TeamB, 1)
		assert.Equal(t, int64(3000), found.PrizePool)
	})

	t.Run("status moves to ready", func(t *testing.T) {
		scrim.AddPlayer(models.TeamB, models.ScrimPlayer{DiscordID: 22, Username: "b2", JoinedAt: time.Now().UTC()})
		scrim.Status = models.ScrimStatusReady
		require.NoError(t, repo.Update(ctx, scrim))

		found, err := repo.GetByIDForUpdate(ctx, scrim.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ScrimStatusReady, found.Status)
		assert.True(t, found.IsFull())
	})

	t.Run("team size outside range is rejected", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, testutil.CreateTestScrim(5001, 6, 1000)))
	})

	t.Run("list and delete", func(t *testing.T) {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)

		require.NoError(t, repo.Delete(ctx, scrim.ID))

		list, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
