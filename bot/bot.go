package bot

import (
	"errors"
	"fmt"
	"time"

	"economy/bot/common"
	"economy/bot/features/account"
	"economy/bot/features/claim"
	"economy/bot/features/duels"
	"economy/bot/features/ranks"
	"economy/bot/features/scrims"
	"economy/bot/features/transfer"
	"economy/bot/features/wagers"
	"economy/events"
	"economy/models"
	"economy/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token             string
	GuildID           string
	CurrencyName      string
	AdminDiscordIDs   []int64
	MaxPlayersPerTeam int
	RankTiers         []models.RankTier
}

// Services groups the economy services the bot dispatches to
type Services struct {
	Account  service.AccountService
	Claim    service.ClaimService
	Transfer service.TransferService
	Market   service.WagerMarketService
	Duel     service.DuelService
	Scrim    service.ScrimService
}

// CommandRecorder counts handled commands
type CommandRecorder interface {
	RecordCommand(command, result string)
}

// commandHandler is implemented by every feature
type commandHandler interface {
	HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

type Bot struct {
	config   Config
	session  *discordgo.Session
	handlers map[string]commandHandler
	recorder CommandRecorder
}

func New(config Config, services Services, eventBus *events.Bus, recorder CommandRecorder) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:   config,
		session:  dg,
		handlers: newHandlers(config, services),
		recorder: recorder,
	}

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	ranks.New(dg, services.Account, config.GuildID, config.RankTiers).Subscribe(eventBus)
	scrims.NewReadyNotifier(dg, config.CurrencyName).Subscribe(eventBus)

	return bot, nil
}

func newHandlers(config Config, services Services) map[string]commandHandler {
	settings := common.Settings{
		CurrencyName:    config.CurrencyName,
		AdminDiscordIDs: config.AdminDiscordIDs,
	}

	accountFeature := account.New(services.Account, settings)
	wagerFeature := wagers.New(services.Market, settings)
	scrimFeature := scrims.New(services.Scrim, settings)

	return map[string]commandHandler{
		"balance":    accountFeature,
		"give":       accountFeature,
		"take":       accountFeature,
		"setbalance": accountFeature,
		"top":        accountFeature,
		"claim":      claim.New(services.Claim, settings),
		"pay":        transfer.New(services.Transfer, settings),
		"bet":        wagerFeature,
		"resolvebet": wagerFeature,
		"bets":       wagerFeature,
		"duel":       duels.New(services.Duel, settings),
		"scrim":      scrimFeature,
		"scrims":     scrimFeature,
	}
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := b.handlers[name]
	if !ok {
		log.WithField("command", name).Warn("Received unknown command")
		return
	}

	start := time.Now()
	err := handler.HandleCommand(s, i)
	result := common.ErrorLabel(err)

	entry := log.WithFields(log.Fields{
		"command":  name,
		"result":   result,
		"duration": time.Since(start),
	})
	if errors.Is(err, service.ErrStorage) {
		entry.WithError(err).Error("Command failed on storage")
	} else {
		entry.Debug("Handled command")
	}

	if b.recorder != nil {
		b.recorder.RecordCommand(name, result)
	}
}
