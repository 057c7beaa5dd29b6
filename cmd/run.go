package cmd

import (
	"context"
	"fmt"
	"time"

	"economy/bot"
	"economy/config"
	"economy/database"
	"economy/events"
	"economy/metrics"
	"economy/repository"
	"economy/server"
	"economy/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	SetupLogging(cfg)

	log.WithField("environment", cfg.Environment).Info("Starting economy bot")

	dbURL := database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName)
	db, err := database.NewConnection(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	if err := database.RunMigrationsWithURL(dbURL); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	eventBus := events.NewBus()
	recorder := metrics.NewRecorder()
	recorder.Subscribe(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	services := bot.Services{
		Account:  service.NewAccountService(uowFactory),
		Claim:    service.NewClaimService(uowFactory, cfg.ClaimAmount, cfg.ClaimCooldown),
		Transfer: service.NewTransferService(uowFactory),
		Market:   service.NewWagerMarketService(uowFactory),
		Duel:     service.NewDuelService(uowFactory, service.NewDefaultRandomness()),
		Scrim:    service.NewScrimService(uowFactory, cfg.MaxPlayersPerTeam),
	}
	log.Info("Services initialized")

	httpErr := make(chan error, 1)
	srv := server.NewServer(cfg.HTTPAddr, server.NewRouter(db, recorder.Handler()))
	go func() {
		httpErr <- server.Run(ctx, srv)
	}()

	botConfig := bot.Config{
		Token:             cfg.DiscordToken,
		GuildID:           cfg.DiscordGuildID,
		CurrencyName:      cfg.CurrencyName,
		AdminDiscordIDs:   cfg.AdminDiscordIDs,
		MaxPlayersPerTeam: cfg.MaxPlayersPerTeam,
		RankTiers:         cfg.RankTiers,
	}
	discordBot, err := bot.New(botConfig, services, eventBus, recorder)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot connected")

	select {
	case <-ctx.Done():
	case err := <-httpErr:
		if err != nil {
			log.WithError(err).Error("HTTP server stopped unexpectedly")
		}
		<-ctx.Done()
	}

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	select {
	case err := <-httpErr:
		if err != nil {
			log.Errorf("Error stopping HTTP server: %v", err)
		}
	case <-time.After(10 * time.Second):
		log.Warn("Shutdown timeout exceeded")
	}

	log.Info("Shutdown completed")
	return nil
}
