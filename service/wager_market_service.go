package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"economy/events"
	"economy/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type wagerMarketService struct {
	uowFactory UnitOfWorkFactory
}

// NewWagerMarketService creates a new fixed-odds betting service
func NewWagerMarketService(uowFactory UnitOfWorkFactory) WagerMarketService {
	return &wagerMarketService{
		uowFactory: uowFactory,
	}
}

func (s *wagerMarketService) CreateEvent(ctx context.Context, actor models.Actor, name string, odds models.Odds) (*models.WagerEvent, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("event name cannot be empty: %w", ErrInvalidArgument)
	}
	if !odds.Valid() {
		return nil, fmt.Errorf("odds must be positive: %w", ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	event := &models.WagerEvent{
		ID:        uuid.NewString(),
		Name:      name,
		Odds:      odds,
		Stakes:    make(map[models.Outcome][]models.Stake),
		CreatedBy: actor.DiscordID,
		CreatedAt: time.Now(),
	}
	if err := uow.WagerEventRepository().Create(ctx, event); err != nil {
		return nil, storageErr("failed to create wager event", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"eventID": event.ID,
		"name":    event.Name,
		"local":   odds.Local.String(),
		"draw":    odds.Draw.String(),
		"away":    odds.Away.String(),
	}).Info("Wager event created")

	return event, nil
}

func (s *wagerMarketService) PlaceStake(ctx context.Context, eventID string, outcome models.Outcome, discordID int64, username string, amount int64) (*models.StakeResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("stake amount must be positive: %w", ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	event, err := uow.WagerEventRepository().GetByIDForUpdate(ctx, eventID)
	if err != nil {
		return nil, storageErr("failed to get wager event", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	odds, ok := event.Odds.For(outcome)
	if !ok {
		return nil, fmt.Errorf("unknown outcome %q: %w", outcome, ErrInvalidArgument)
	}

	newBalance, err := uow.AccountRepository().DeductBalance(ctx, discordID, amount)
	if err != nil {
		return nil, storageErr("failed to deduct stake", err)
	}

	event.AddStake(outcome, models.Stake{
		DiscordID: discordID,
		Username:  username,
		Amount:    amount,
		PlacedAt:  time.Now(),
	})
	if err := uow.WagerEventRepository().UpdateStakes(ctx, event); err != nil {
		return nil, storageErr("failed to save stake", err)
	}

	history := models.NewBalanceHistory(discordID, newBalance, -amount, models.TransactionTypeWagerStake).
		WithRelated(event.ID, models.RelatedTypeWagerEvent).
		WithMetadata(map[string]any{"outcome": string(outcome)})
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	return &models.StakeResult{
		EventID:         event.ID,
		EventName:       event.Name,
		Outcome:         outcome,
		Amount:          amount,
		PotentialPayout: models.Payout(amount, odds),
		NewBalance:      newBalance,
	}, nil
}

// ResolveEvent pays every stake on the winning outcome floor(amount × odds)
// and deletes the event, so a second resolution finds nothing.
func (s *wagerMarketService) ResolveEvent(ctx context.Context, actor models.Actor, eventID string, outcome models.Outcome) (*models.EventResolution, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	event, err := uow.WagerEventRepository().GetByIDForUpdate(ctx, eventID)
	if err != nil {
		return nil, storageErr("failed to get wager event", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	odds, ok := event.Odds.For(outcome)
	if !ok {
		return nil, fmt.Errorf("unknown outcome %q: %w", outcome, ErrInvalidArgument)
	}

	winners := event.Stakes[outcome]
	resolution := &models.EventResolution{
		EventID:   event.ID,
		EventName: event.Name,
		Outcome:   outcome,
		Odds:      odds,
		Payouts:   make([]models.StakePayout, 0, len(winners)),
	}
	for _, stake := range winners {
		payout := models.Payout(stake.Amount, odds)
		resolution.Payouts = append(resolution.Payouts, models.StakePayout{Stake: stake, Payout: payout})
		resolution.TotalPaid += payout
	}

	credits := make([]models.StakePayout, len(resolution.Payouts))
	copy(credits, resolution.Payouts)
	sort.SliceStable(credits, func(i, j int) bool {
		return credits[i].DiscordID < credits[j].DiscordID
	})

	for _, credit := range credits {
		if credit.Payout <= 0 {
			continue
		}
		newBalance, err := uow.AccountRepository().AddBalance(ctx, credit.DiscordID, credit.Username, credit.Payout)
		if err != nil {
			return nil, storageErr("failed to pay stake", err)
		}
		history := models.NewBalanceHistory(credit.DiscordID, newBalance, credit.Payout, models.TransactionTypeWagerPayout).
			WithRelated(event.ID, models.RelatedTypeWagerEvent).
			WithMetadata(map[string]any{
				"outcome": string(outcome),
				"stake":   credit.Amount,
				"odds":    odds.String(),
			})
		if err := RecordBalanceChange(ctx, uow, history); err != nil {
			return nil, storageErr("failed to record balance change", err)
		}
	}

	if err := uow.WagerEventRepository().Delete(ctx, event.ID); err != nil {
		return nil, storageErr("failed to delete wager event", err)
	}

	uow.EventBus().Publish(events.WagerEventResolvedEvent{
		EventID:   event.ID,
		EventName: event.Name,
		Outcome:   outcome,
		PaidCount: resolution.PaidCount(),
		TotalPaid: resolution.TotalPaid,
	})

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"eventID":   event.ID,
		"outcome":   outcome,
		"paidCount": resolution.PaidCount(),
		"totalPaid": resolution.TotalPaid,
	}).Info("Wager event resolved")

	return resolution, nil
}

func (s *wagerMarketService) ListEvents(ctx context.Context) ([]*models.WagerEvent, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	list, err := uow.WagerEventRepository().List(ctx)
	if err != nil {
		return nil, storageErr("failed to list wager events", err)
	}
	return list, nil
}
