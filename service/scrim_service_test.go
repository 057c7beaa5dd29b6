package service

import (
	"context"
	"testing"

	"economy/events"
	"economy/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestScrim(playersPerTeam int, status models.ScrimStatus, teamA, teamB []int64) *models.Scrim {
	scrim := &models.Scrim{
		ID:               "s1",
		CreatorDiscordID: teamA[0],
		PlayersPerTeam:   playersPerTeam,
		AmountPerPlayer:  100,
		Status:           status,
		ChannelID:        42,
		TeamA:            []models.ScrimPlayer{},
		TeamB:            []models.ScrimPlayer{},
	}
	for _, id := range teamA {
		scrim.TeamA = append(scrim.TeamA, models.ScrimPlayer{DiscordID: id})
	}
	for _, id := range teamB {
		scrim.TeamB = append(scrim.TeamB, models.ScrimPlayer{DiscordID: id})
	}
	scrim.PrizePool = int64(scrim.PlayerCount()) * scrim.AmountPerPlayer
	return scrim
}

func TestScrimService_CreateScrim(t *testing.T) {
	ctx := context.Background()

	for _, size := range []int{0, 6} {
		m := newTestMocks()
		service := NewScrimService(m.factory, 5)

		_, err := service.CreateScrim(ctx, 100, "creator", size, 100, 42)

		assert.ErrorIs(t, err, ErrInvalidArgument, "size %d", size)
		m.factory.AssertNotCalled(t, "Create")
	}

	t.Run("creator joins team A", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, true)
		m.accounts.On("DeductBalance", ctx, int64(100), int64(100)).Return(int64(900), nil)
		m.scrims.On("Create", ctx, mock.MatchedBy(func(s *models.Scrim) bool {
			return len(s.TeamA) == 1 && s.TeamA[0].DiscordID == 100 && len(s.TeamB) == 0 &&
				s.PrizePool == 100 && s.Status == models.ScrimStatusWaiting
		})).Return(nil)
		m.expectBalanceChanges(ctx)

		service := NewScrimService(m.factory, 5)
		scrim, err := service.CreateScrim(ctx, 100, "creator", 2, 100, 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), scrim.ChannelID)
		m.assertExpectations(t)
	})

	t.Run("single player teams stay waiting", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, true)
		m.accounts.On("DeductBalance", ctx, int64(100), int64(100)).Return(int64(900), nil)
		m.scrims.On("Create", ctx, mock.Anything).Return(nil)
		m.expectBalanceChanges(ctx)

		service := NewScrimService(m.factory, 5)
		scrim, err := service.CreateScrim(ctx, 100, "creator", 1, 100, 42)

		require.NoError(t, err)
		assert.Equal(t, models.ScrimStatusWaiting, scrim.Status)
		assert.True(t, scrim.IsTeamFull(models.TeamA))
		assert.False(t, scrim.IsTeamFull(models.TeamB))
	})
}

func TestScrimService_JoinScrim(t *testing.T) {
	ctx := context.Background()

	t.Run("last slot makes scrim ready once", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, true)
		m.scrims.On("GetByIDForUpdate", ctx, "s1").Return(newTestScrim(1, models.ScrimStatusWaiting, []int64{100}, nil), nil)
		m.accounts.On("DeductBalance", ctx, int64(200), int64(100)).Return(int64(400), nil)
		m.scrims.On("Update", ctx, mock.MatchedBy(func(s *models.Scrim) bool {
			return s.Status == models.ScrimStatusReady && s.PrizePool == 200
		})).Return(nil)
		m.expectBalanceChanges(ctx)
		m.bus.On("Publish", mock.MatchedBy(func(e events.ScrimReadyEvent) bool {
			return e.ScrimID == "s1" && e.ChannelID == 42 && e.PrizePool == 200
		})).Return().Once()

		service := NewScrimService(m.factory, 5)
		result, err := service.JoinScrim(ctx, "s1", 200, "joiner", models.TeamB)

		require.NoError(t, err)
		assert.True(t, result.BecameReady)
		assert.Equal(t, int64(400), result.NewBalance)
		m.assertExpectations(t)
	})

	t.Run("partial fill stays waiting", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, true)
		m.scrims.On("GetByIDForUpdate", ctx, "s1").Return(newTestScrim(2, models.ScrimStatusWaiting, []int64{100}, nil), nil)
		m.accounts.On("DeductBalance", ctx, int64(200), int64(100)).Return(int64(400), nil)
		m.scrims.On("Update", ctx, mock.MatchedBy(func(s *models.Scrim) bool {
			return s.Status == models.ScrimStatusWaiting && len(s.TeamA) == 2
		})).Return(nil)
		m.expectBalanceChanges(ctx)

		service := NewScrimService(m.factory, 5)
		result, err := service.JoinScrim(ctx, "s1", 200, "joiner", models.TeamA)

		require.NoError(t, err)
		assert.False(t, result.BecameReady)
		m.bus.AssertNotCalled(t, "Publish", mock.AnythingOfType("events.ScrimReadyEvent"))
		m.assertExpectations(t)
	})

	tests := []struct {
		name    string
		scrim   *models.Scrim
		joiner  int64
		team    models.Team
		wantErr error
	}{
		{"team full", newTestScrim(2, models.ScrimStatusWaiting, []int64{100, 101}, []int64{200}), 300, models.TeamA, ErrTeamFull},
		{"duplicate on same team", newTestScrim(2, models.ScrimStatusWaiting, []int64{100}, nil), 100, models.TeamA, ErrAlreadyJoined},
		{"duplicate across teams", newTestScrim(2, models.ScrimStatusWaiting, []int64{100}, []int64{200}), 200, models.TeamA, ErrAlreadyJoined},
		{"scrim ready", newTestScrim(1, models.ScrimStatusReady, []int64{100}, []int64{200}), 300, models.TeamB, ErrScrimNotWaiting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMocks()
			m.expectTransaction(ctx, false)
			m.scrims.On("GetByIDForUpdate", ctx, "s1").Return(tt.scrim, nil)

			service := NewScrimService(m.factory, 5)
			_, err := service.JoinScrim(ctx, "s1", tt.joiner, "joiner", tt.team)

			assert.ErrorIs(t, err, tt.wantErr)
			m.accounts.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
			m.assertExpectations(t)
		})
	}

	t.Run("not found", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, false)
		m.scrims.On("GetByIDForUpdate", ctx, "s1").Return(nil, nil)

		service := NewScrimService(m.factory, 5)
		_, err := service.JoinScrim(ctx, "s1", 200, "joiner", models.TeamB)

		assert.ErrorIs(t, err, ErrScrimNotFound)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, false)
		m.scrims.On("GetByIDForUpdate", ctx, "s1").Return(newTestScrim(1, models.ScrimStatusWaiting, []int64{100}, nil), nil)
		m.accounts.On("DeductBalance", ctx, int64(200), int64(100)).Return(int64(0), &InsufficientFundsError{Have: 50, Need: 100})

		service := NewScrimService(m.factory, 5)
		_, err := service.JoinScrim(ctx, "s1", 200, "joiner", models.TeamB)

		assert.ErrorIs(t, err, ErrInsufficientFunds)
		m.scrims.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestScrimService_ResolveScrim(t *testing.T) {
	ctx := context.Background()

	t.Run("not ready", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, false)
		m.scrims.On("GetByIDForUpdate", ctx, "s1").Return(newTestScrim(2, models.ScrimStatusWaiting, []int64{100}, nil), nil)

		service := NewScrimService(m.factory, 5)
		_, err := service.ResolveScrim(ctx, adminActor, "s1", models.TeamA)

		assert.ErrorIs(t, err, ErrScrimNotReady)
	})

	t.Run("requires admin", func(t *testing.T) {
		m := newTestMocks()
		service := NewScrimService(m.factory, 5)

		_, err := service.ResolveScrim(ctx, models.Actor{DiscordID: 100}, "s1", models.TeamA)

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	tests := []struct {
		name      string
		teamA     []int64
		teamB     []int64
		pool      int64
		wantEach  []int64
		wantExact string
	}{
		{"two winners split 300", []int64{100, 101}, []int64{200, 201}, 300, []int64{150, 150}, "150"},
		{"three winners split 300", []int64{100, 101, 102}, []int64{200, 201, 202}, 300, []int64{100, 100, 100}, "100"},
		{"remainder goes to earliest joiners", []int64{100, 101}, []int64{200, 201}, 301, []int64{151, 150}, "150.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMocks()
			m.expectTransaction(ctx, true)
			scrim := newTestScrim(len(tt.teamA), models.ScrimStatusReady, tt.teamA, tt.teamB)
			scrim.PrizePool = tt.pool
			m.scrims.On("GetByIDForUpdate", ctx, "s1").Return(scrim, nil)
			for i, id := range tt.teamA {
				m.accounts.On("AddBalance", ctx, id, "", tt.wantEach[i]).Return(tt.wantEach[i], nil).Once()
			}
			m.scrims.On("Delete", ctx, "s1").Return(nil)
			m.expectBalanceChanges(ctx)
			m.bus.On("Publish", mock.AnythingOfType("events.ScrimResolvedEvent")).Return()

			service := NewScrimService(m.factory, 5)
			resolution, err := service.ResolveScrim(ctx, adminActor, "s1", models.TeamA)

			require.NoError(t, err)
			assert.True(t, resolution.PrizePerWinner.Equal(decimal.RequireFromString(tt.wantExact)))
			var paid int64
			for _, p := range resolution.Payouts {
				paid += p.Amount
			}
			assert.Equal(t, tt.pool, paid)
			m.accounts.AssertNotCalled(t, "AddBalance", mock.Anything, tt.teamB[0], mock.Anything, mock.Anything)
			m.assertExpectations(t)
		})
	}
}

func TestScrimService_ListScrims(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)
	m.scrims.On("List", ctx).Return([]*models.Scrim{{ID: "s1"}}, nil)

	service := NewScrimService(m.factory, 5)
	list, err := service.ListScrims(ctx)

	require.NoError(t, err)
	assert.Len(t, list, 1)
	m.assertExpectations(t)
}
