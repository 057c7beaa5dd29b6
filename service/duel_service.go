package service

import (
	"context"
	"fmt"
	"time"

	"economy/events"
	"economy/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type duelService struct {
	uowFactory UnitOfWorkFactory
	rng        Randomness
}

// NewDuelService creates a duel service drawing winners from rng
func NewDuelService(uowFactory UnitOfWorkFactory, rng Randomness) DuelService {
	return &duelService{
		uowFactory: uowFactory,
		rng:        rng,
	}
}

func (s *duelService) CreateDuel(ctx context.Context, challengerID int64, challengerName string, targetID int64, targetName string, amount int64) (*models.Duel, error) {
	if challengerID == targetID {
		return nil, fmt.Errorf("cannot duel yourself: %w", ErrSelfReference)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("duel amount must be positive: %w", ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	newBalance, err := uow.AccountRepository().DeductBalance(ctx, challengerID, amount)
	if err != nil {
		return nil, storageErr("failed to escrow challenger stake", err)
	}

	duel := &models.Duel{
		ID:                  uuid.NewString(),
		ChallengerDiscordID: challengerID,
		ChallengerUsername:  challengerName,
		TargetDiscordID:     targetID,
		TargetUsername:      targetName,
		Amount:              amount,
		State:               models.DuelStateCreated,
		CreatedAt:           time.Now(),
	}
	if err := uow.DuelRepository().Create(ctx, duel); err != nil {
		return nil, storageErr("failed to create duel", err)
	}

	history := models.NewBalanceHistory(challengerID, newBalance, -amount, models.TransactionTypeDuelStake).
		WithRelated(duel.ID, models.RelatedTypeDuel)
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	return duel, nil
}

func (s *duelService) AcceptDuel(ctx context.Context, duelID string, accepterID int64) (*models.Duel, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	duel, err := uow.DuelRepository().GetByIDForUpdate(ctx, duelID)
	if err != nil {
		return nil, storageErr("failed to get duel", err)
	}
	if duel == nil {
		return nil, ErrDuelNotFound
	}
	if duel.TargetDiscordID != accepterID {
		return nil, ErrWrongTarget
	}
	if duel.State != models.DuelStateCreated {
		if duel.State == models.DuelStateCancelled {
			return nil, ErrDuelCancelled
		}
		return nil, ErrDuelAlreadyAccepted
	}

	newBalance, err := uow.AccountRepository().DeductBalance(ctx, accepterID, duel.Amount)
	if err != nil {
		return nil, storageErr("failed to escrow target stake", err)
	}

	now := time.Now()
	duel.State = models.DuelStateAccepted
	duel.AcceptedAt = &now
	if err := uow.DuelRepository().Update(ctx, duel); err != nil {
		return nil, storageErr("failed to update duel", err)
	}

	history := models.NewBalanceHistory(accepterID, newBalance, -duel.Amount, models.TransactionTypeDuelStake).
		WithRelated(duel.ID, models.RelatedTypeDuel)
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	return duel, nil
}

// ResolveDuel picks the challenger when the draw is below 0.5, the target
// otherwise, and pays the whole escrow to that party. The duel is kept as
// resolved.
func (s *duelService) ResolveDuel(ctx context.Context, actor models.Actor, duelID string) (*models.DuelResolution, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	duel, err := uow.DuelRepository().GetByIDForUpdate(ctx, duelID)
	if err != nil {
		return nil, storageErr("failed to get duel", err)
	}
	if duel == nil {
		return nil, ErrDuelNotFound
	}
	switch duel.State {
	case models.DuelStateCreated:
		return nil, ErrDuelNotAccepted
	case models.DuelStateResolved:
		return nil, ErrDuelAlreadyResolved
	case models.DuelStateCancelled:
		return nil, ErrDuelCancelled
	}

	winnerID := duel.TargetDiscordID
	if s.rng.Float64() < 0.5 {
		winnerID = duel.ChallengerDiscordID
	}
	loserID := duel.GetOpponent(winnerID)
	prize := duel.Prize()

	newBalance, err := uow.AccountRepository().AddBalance(ctx, winnerID, duel.UsernameOf(winnerID), prize)
	if err != nil {
		return nil, storageErr("failed to pay duel winner", err)
	}

	now := time.Now()
	duel.State = models.DuelStateResolved
	duel.WinnerDiscordID = &winnerID
	duel.ResolvedAt = &now
	if err := uow.DuelRepository().Update(ctx, duel); err != nil {
		return nil, storageErr("failed to update duel", err)
	}

	history := models.NewBalanceHistory(winnerID, newBalance, prize, models.TransactionTypeDuelPayout).
		WithRelated(duel.ID, models.RelatedTypeDuel).
		WithMetadata(map[string]any{"loser_discord_id": loserID})
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	uow.EventBus().Publish(events.DuelResolvedEvent{
		DuelID:   duel.ID,
		WinnerID: winnerID,
		LoserID:  loserID,
		Prize:    prize,
	})

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"duelID": duel.ID,
		"winner": winnerID,
		"loser":  loserID,
		"prize":  prize,
	}).Info("Duel resolved")

	return &models.DuelResolution{
		Duel:             duel,
		WinnerDiscordID:  winnerID,
		LoserDiscordID:   loserID,
		Prize:            prize,
		WinnerNewBalance: newBalance,
	}, nil
}

// CancelDuel calls off a duel nobody accepted yet and refunds the challenger.
func (s *duelService) CancelDuel(ctx context.Context, duelID string, actorID int64) (*models.Duel, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	duel, err := uow.DuelRepository().GetByIDForUpdate(ctx, duelID)
	if err != nil {
		return nil, storageErr("failed to get duel", err)
	}
	if duel == nil {
		return nil, ErrDuelNotFound
	}
	if !duel.IsParticipant(actorID) {
		return nil, ErrWrongTarget
	}
	switch duel.State {
	case models.DuelStateAccepted:
		return nil, ErrDuelAlreadyAccepted
	case models.DuelStateResolved:
		return nil, ErrDuelAlreadyResolved
	case models.DuelStateCancelled:
		return nil, ErrDuelCancelled
	}

	newBalance, err := uow.AccountRepository().AddBalance(ctx, duel.ChallengerDiscordID, duel.ChallengerUsername, duel.Amount)
	if err != nil {
		return nil, storageErr("failed to refund challenger", err)
	}

	now := time.Now()
	duel.State = models.DuelStateCancelled
	duel.ResolvedAt = &now
	if err := uow.DuelRepository().Update(ctx, duel); err != nil {
		return nil, storageErr("failed to update duel", err)
	}

	history := models.NewBalanceHistory(duel.ChallengerDiscordID, newBalance, duel.Amount, models.TransactionTypeDuelRefund).
		WithRelated(duel.ID, models.RelatedTypeDuel).
		WithMetadata(map[string]any{"cancelled_by": actorID})
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	return duel, nil
}

func (s *duelService) GetDuel(ctx context.Context, duelID string) (*models.Duel, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	duel, err := uow.DuelRepository().GetByID(ctx, duelID)
	if err != nil {
		return nil, storageErr("failed to get duel", err)
	}
	if duel == nil {
		return nil, ErrDuelNotFound
	}
	return duel, nil
}
