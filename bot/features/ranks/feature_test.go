package ranks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"economy/events"
	"economy/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTiers = []models.RankTier{
	{RoleID: "low", Name: "Low", Min: 0, Max: 99},
	{RoleID: "mid", Name: "Mid", Min: 100, Max: 999},
	{RoleID: "high", Name: "High", Min: 1000, Max: 9999},
}

func TestRoleChanges(t *testing.T) {
	tests := []struct {
		name       string
		current    []string
		balance    int64
		wantAdd    string
		wantRemove []string
	}{
		{"new member gets tier", nil, 50, "low", nil},
		{"promotion swaps roles", []string{"low", "other"}, 500, "mid", []string{"low"}},
		{"already correct", []string{"mid"}, 500, "", nil},
		{"boundary is inclusive", []string{"low"}, 100, "mid", []string{"low"}},
		{"above every tier removes all", []string{"high", "mid"}, 10000, "", []string{"mid", "high"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add, remove := RoleChanges(tt.current, testTiers, tt.balance)
			assert.Equal(t, tt.wantAdd, add)
			assert.Equal(t, tt.wantRemove, remove)
		})
	}
}

type fakeRoles struct {
	mu        sync.Mutex
	roles     []string
	memberErr error
	added     []string
	removed   []string

	// stall blocks the first GuildMember call until released
	stall   chan struct{}
	entered chan struct{}
	calls   int
}

func (f *fakeRoles) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	f.mu.Unlock()

	if first && f.stall != nil {
		close(f.entered)
		<-f.stall
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	return &discordgo.Member{Roles: append([]string(nil), f.roles...)}, nil
}

func (f *fakeRoles) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, roleID)
	f.roles = append(f.roles, roleID)
	return nil
}

func (f *fakeRoles) GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, roleID)
	kept := f.roles[:0]
	for _, r := range f.roles {
		if r != roleID {
			kept = append(kept, r)
		}
	}
	f.roles = kept
	return nil
}

type fakeBalances struct {
	mu      sync.Mutex
	balance int64
	err     error
}

func (f *fakeBalances) GetBalance(ctx context.Context, discordID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance, f.err
}

func (f *fakeBalances) set(balance int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balance = balance
}

func TestFeature_HandleEvent(t *testing.T) {
	t.Run("applies tier for stored balance", func(t *testing.T) {
		session := &fakeRoles{roles: []string{"high"}}
		feature := New(session, &fakeBalances{balance: 10}, "guild", testTiers)

		feature.HandleEvent(context.Background(), events.BalanceChangeEvent{UserID: 1, NewBalance: 10})

		assert.Equal(t, []string{"low"}, session.added)
		assert.Equal(t, []string{"high"}, session.removed)
	})

	t.Run("member lookup failure is swallowed", func(t *testing.T) {
		session := &fakeRoles{memberErr: errors.New("unknown member")}
		feature := New(session, &fakeBalances{balance: 10}, "guild", testTiers)

		assert.NotPanics(t, func() {
			feature.HandleEvent(context.Background(), events.BalanceChangeEvent{UserID: 1, NewBalance: 10})
		})
		assert.Empty(t, session.added)
	})

	t.Run("sync reports lookup failure", func(t *testing.T) {
		session := &fakeRoles{memberErr: errors.New("unknown member")}
		feature := New(session, &fakeBalances{balance: 10}, "guild", testTiers)
		require.Error(t, feature.Sync(context.Background(), 1))
	})

	t.Run("sync reports balance failure", func(t *testing.T) {
		session := &fakeRoles{}
		feature := New(session, &fakeBalances{err: errors.New("db down")}, "guild", testTiers)

		require.Error(t, feature.Sync(context.Background(), 1))
		assert.Empty(t, session.added)
	})
}

func TestFeature_HandleEvent_OutOfOrderDelivery(t *testing.T) {
	session := &fakeRoles{
		stall:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	balances := &fakeBalances{balance: 50}
	feature := New(session, balances, "guild", testTiers)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		feature.HandleEvent(ctx, events.BalanceChangeEvent{UserID: 1, NewBalance: 50})
	}()
	<-session.entered

	balances.set(500)
	go func() {
		defer wg.Done()
		feature.HandleEvent(ctx, events.BalanceChangeEvent{UserID: 1, NewBalance: 500})
	}()

	close(session.stall)
	wg.Wait()

	assert.Equal(t, []string{"mid"}, session.roles)
}
