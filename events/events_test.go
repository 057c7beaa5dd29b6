package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"economy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionalBus_FlushDeliversToSubscribers(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	received := make(chan BalanceChangeEvent, 1)
	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		if balanceEvent, ok := event.(BalanceChangeEvent); ok {
			received <- balanceEvent
		}
	})

	testEvent := BalanceChangeEvent{
		UserID:          123456,
		OldBalance:      0,
		NewBalance:      25000,
		TransactionType: models.TransactionTypeClaim,
		ChangeAmount:    25000,
	}
	transactionalBus.Publish(testEvent)
	assert.Equal(t, 1, transactionalBus.Pending())

	require.NoError(t, transactionalBus.Flush(context.Background()))
	assert.Equal(t, 0, transactionalBus.Pending())

	select {
	case got := <-received:
		assert.Equal(t, testEvent, got)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

func TestTransactionalBus_MultipleEvents(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	var wg sync.WaitGroup
	wg.Add(3)
	var mu sync.Mutex
	userIDs := make(map[int64]bool)

	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		defer mu.Unlock()
		userIDs[event.(BalanceChangeEvent).UserID] = true
	})

	for _, id := range []int64{1, 2, 3} {
		transactionalBus.Publish(BalanceChangeEvent{UserID: id, NewBalance: 100, ChangeAmount: 100, TransactionType: models.TransactionTypeTransferIn})
	}
	require.NoError(t, transactionalBus.Flush(context.Background()))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Not all events were delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, userIDs[1])
	assert.True(t, userIDs[2])
	assert.True(t, userIDs[3])
}

func TestTransactionalBus_DiscardDropsEvents(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	received := make(chan bool, 1)
	mainBus.Subscribe(EventTypeScrimReady, func(ctx context.Context, event Event) {
		received <- true
	})

	transactionalBus.Publish(ScrimReadyEvent{ScrimID: "s1", PlayersPerTeam: 1, PrizePool: 200})
	transactionalBus.Discard()
	require.NoError(t, transactionalBus.Flush(context.Background()))

	select {
	case <-received:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_PanickingHandlerDoesNotAffectOthers(t *testing.T) {
	bus := NewBus()

	received := make(chan DuelResolvedEvent, 1)
	bus.Subscribe(EventTypeDuelResolved, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeDuelResolved, func(ctx context.Context, event Event) {
		received <- event.(DuelResolvedEvent)
	})

	bus.Emit(context.Background(), DuelResolvedEvent{DuelID: "d1", WinnerID: 1, LoserID: 2, Prize: 1000})

	select {
	case got := <-received:
		assert.Equal(t, int64(1000), got.Prize)
	case <-time.After(2 * time.Second):
		t.Fatal("Healthy handler did not run")
	}
}

func TestBus_OnlyMatchingTypeIsDelivered(t *testing.T) {
	bus := NewBus()

	received := make(chan EventType, 2)
	bus.Subscribe(EventTypeScrimResolved, func(ctx context.Context, event Event) {
		received <- event.Type()
	})

	bus.Emit(context.Background(), WagerEventResolvedEvent{EventID: "e1"})
	bus.Emit(context.Background(), ScrimResolvedEvent{ScrimID: "s1", WinningTeam: models.TeamA})

	select {
	case got := <-received:
		assert.Equal(t, EventTypeScrimResolved, got)
	case <-time.After(2 * time.Second):
		t.Fatal("Scrim resolved event not delivered")
	}

	select {
	case got := <-received:
		t.Fatalf("Unexpected event delivered: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
