package events

import (
	"context"
	"sync"

	"economy/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange      EventType = "balance_change"
	EventTypeWagerEventResolved EventType = "wager_event_resolved"
	EventTypeDuelResolved       EventType = "duel_resolved"
	EventTypeScrimReady         EventType = "scrim_ready"
	EventTypeScrimResolved      EventType = "scrim_resolved"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	TransactionType models.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// WagerEventResolvedEvent represents a settled betting event
type WagerEventResolvedEvent struct {
	EventID   string
	EventName string
	Outcome   models.Outcome
	PaidCount int
	TotalPaid int64
}

func (e WagerEventResolvedEvent) Type() EventType {
	return EventTypeWagerEventResolved
}

// DuelResolvedEvent represents a duel that was resolved
type DuelResolvedEvent struct {
	DuelID   string
	WinnerID int64
	LoserID  int64
	Prize    int64
}

func (e DuelResolvedEvent) Type() EventType {
	return EventTypeDuelResolved
}

// ScrimReadyEvent is published once, when both teams of a scrim fill up
type ScrimReadyEvent struct {
	ScrimID        string
	ChannelID      int64
	PlayersPerTeam int
	PrizePool      int64
	TeamA          []models.ScrimPlayer
	TeamB          []models.ScrimPlayer
}

func (e ScrimReadyEvent) Type() EventType {
	return EventTypeScrimReady
}

// ScrimResolvedEvent represents a settled scrim
type ScrimResolvedEvent struct {
	ScrimID     string
	WinningTeam models.Team
	PrizePool   int64
	Winners     int
}

func (e ScrimResolvedEvent) Type() EventType {
	return EventTypeScrimResolved
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run on their
// own goroutine and a panicking handler does not affect the others.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until the
// transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Queued event until commit")
	b.pending = append(b.pending, e)
}

// Flush is called after a successful commit. Handlers get a background
// context since the transaction's context may already be done.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Pending returns the number of queued events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}
