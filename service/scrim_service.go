package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"economy/events"
	"economy/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultMaxPlayersPerTeam caps scrim team size
const DefaultMaxPlayersPerTeam = 5

type scrimService struct {
	uowFactory        UnitOfWorkFactory
	maxPlayersPerTeam int
}

// NewScrimService creates a scrim service. A non-positive cap falls back to DefaultMaxPlayersPerTeam.
func NewScrimService(uowFactory UnitOfWorkFactory, maxPlayersPerTeam int) ScrimService {
	if maxPlayersPerTeam <= 0 {
		maxPlayersPerTeam = DefaultMaxPlayersPerTeam
	}
	return &scrimService{
		uowFactory:        uowFactory,
		maxPlayersPerTeam: maxPlayersPerTeam,
	}
}

func (s *scrimService) CreateScrim(ctx context.Context, creatorID int64, creatorName string, playersPerTeam int, amountPerPlayer int64, channelID int64) (*models.Scrim, error) {
	if playersPerTeam < 1 || playersPerTeam > s.maxPlayersPerTeam {
		return nil, fmt.Errorf("players per team must be between 1 and %d: %w", s.maxPlayersPerTeam, ErrInvalidArgument)
	}
	if amountPerPlayer <= 0 {
		return nil, fmt.Errorf("amount per player must be positive: %w", ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	newBalance, err := uow.AccountRepository().DeductBalance(ctx, creatorID, amountPerPlayer)
	if err != nil {
		return nil, storageErr("failed to escrow creator buy-in", err)
	}

	now := time.Now()
	scrim := &models.Scrim{
		ID:               uuid.NewString(),
		CreatorDiscordID: creatorID,
		PlayersPerTeam:   playersPerTeam,
		AmountPerPlayer:  amountPerPlayer,
		TeamA:            []models.ScrimPlayer{{DiscordID: creatorID, Username: creatorName, JoinedAt: now}},
		TeamB:            []models.ScrimPlayer{},
		PrizePool:        amountPerPlayer,
		Status:           models.ScrimStatusWaiting,
		ChannelID:        channelID,
		CreatedAt:        now,
	}
	if err := uow.ScrimRepository().Create(ctx, scrim); err != nil {
		return nil, storageErr("failed to create scrim", err)
	}

	history := models.NewBalanceHistory(creatorID, newBalance, -amountPerPlayer, models.TransactionTypeScrimStake).
		WithRelated(scrim.ID, models.RelatedTypeScrim).
		WithMetadata(map[string]any{"team": string(models.TeamA)})
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	return scrim, nil
}

// JoinScrim adds a player to a team. The join that fills the last slot moves
// the scrim to ready and queues a ScrimReadyEvent; the status check keeps
// that transition from happening twice.
func (s *scrimService) JoinScrim(ctx context.Context, scrimID string, discordID int64, username string, team models.Team) (*models.ScrimJoinResult, error) {
	if team != models.TeamA && team != models.TeamB {
		return nil, fmt.Errorf("unknown team %q: %w", team, ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	scrim, err := uow.ScrimRepository().GetByIDForUpdate(ctx, scrimID)
	if err != nil {
		return nil, storageErr("failed to get scrim", err)
	}
	if scrim == nil {
		return nil, ErrScrimNotFound
	}
	if scrim.Status != models.ScrimStatusWaiting {
		return nil, ErrScrimNotWaiting
	}
	if scrim.HasPlayer(discordID) {
		return nil, ErrAlreadyJoined
	}
	if scrim.IsTeamFull(team) {
		return nil, ErrTeamFull
	}

	newBalance, err := uow.AccountRepository().DeductBalance(ctx, discordID, scrim.AmountPerPlayer)
	if err != nil {
		return nil, storageErr("failed to escrow buy-in", err)
	}

	scrim.AddPlayer(team, models.ScrimPlayer{
		DiscordID: discordID,
		Username:  username,
		JoinedAt:  time.Now(),
	})

	becameReady := scrim.IsFull()
	if becameReady {
		scrim.Status = models.ScrimStatusReady
	}

	if err := uow.ScrimRepository().Update(ctx, scrim); err != nil {
		return nil, storageErr("failed to update scrim", err)
	}

	history := models.NewBalanceHistory(discordID, newBalance, -scrim.AmountPerPlayer, models.TransactionTypeScrimStake).
		WithRelated(scrim.ID, models.RelatedTypeScrim).
		WithMetadata(map[string]any{"team": string(team)})
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, storageErr("failed to record balance change", err)
	}

	if becameReady {
		uow.EventBus().Publish(events.ScrimReadyEvent{
			ScrimID:        scrim.ID,
			ChannelID:      scrim.ChannelID,
			PlayersPerTeam: scrim.PlayersPerTeam,
			PrizePool:      scrim.PrizePool,
			TeamA:          scrim.TeamA,
			TeamB:          scrim.TeamB,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	return &models.ScrimJoinResult{
		Scrim:       scrim,
		Team:        team,
		NewBalance:  newBalance,
		BecameReady: becameReady,
	}, nil
}

// ResolveScrim splits the pool between the winning team and deletes the scrim.
func (s *scrimService) ResolveScrim(ctx context.Context, actor models.Actor, scrimID string, team models.Team) (*models.ScrimResolution, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if team != models.TeamA && team != models.TeamB {
		return nil, fmt.Errorf("unknown team %q: %w", team, ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	scrim, err := uow.ScrimRepository().GetByIDForUpdate(ctx, scrimID)
	if err != nil {
		return nil, storageErr("failed to get scrim", err)
	}
	if scrim == nil {
		return nil, ErrScrimNotFound
	}
	if scrim.Status != models.ScrimStatusReady {
		return nil, ErrScrimNotReady
	}

	winners := scrim.Players(team)
	payouts := models.SplitPrize(scrim.PrizePool, winners)

	credits := make([]models.ScrimPayout, len(payouts))
	copy(credits, payouts)
	sort.Slice(credits, func(i, j int) bool {
		return credits[i].DiscordID < credits[j].DiscordID
	})

	for _, credit := range credits {
		if credit.Amount <= 0 {
			continue
		}
		newBalance, err := uow.AccountRepository().AddBalance(ctx, credit.DiscordID, credit.Username, credit.Amount)
		if err != nil {
			return nil, storageErr("failed to pay scrim winner", err)
		}
		history := models.NewBalanceHistory(credit.DiscordID, newBalance, credit.Amount, models.TransactionTypeScrimPayout).
			WithRelated(scrim.ID, models.RelatedTypeScrim).
			WithMetadata(map[string]any{"team": string(team)})
		if err := RecordBalanceChange(ctx, uow, history); err != nil {
			return nil, storageErr("failed to record balance change", err)
		}
	}

	if err := uow.ScrimRepository().Delete(ctx, scrim.ID); err != nil {
		return nil, storageErr("failed to delete scrim", err)
	}

	uow.EventBus().Publish(events.ScrimResolvedEvent{
		ScrimID:     scrim.ID,
		WinningTeam: team,
		PrizePool:   scrim.PrizePool,
		Winners:     len(winners),
	})

	if err := uow.Commit(); err != nil {
		return nil, storageErr("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"scrimID":   scrim.ID,
		"team":      team,
		"prizePool": scrim.PrizePool,
		"winners":   len(winners),
	}).Info("Scrim resolved")

	return &models.ScrimResolution{
		ScrimID:        scrim.ID,
		WinningTeam:    team,
		PrizePool:      scrim.PrizePool,
		PrizePerWinner: models.PrizePerWinner(scrim.PrizePool, len(winners)),
		Payouts:        payouts,
	}, nil
}

func (s *scrimService) ListScrims(ctx context.Context) ([]*models.Scrim, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("failed to begin transaction", err)
	}
	defer uow.Rollback()

	list, err := uow.ScrimRepository().List(ctx)
	if err != nil {
		return nil, storageErr("failed to list scrims", err)
	}
	return list, nil
}
