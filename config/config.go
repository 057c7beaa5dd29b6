package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"economy/models"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Economy configuration
	CurrencyName      string
	ClaimAmount       int64
	ClaimCooldown     time.Duration
	MaxPlayersPerTeam int

	// Discord IDs that may run admin commands in addition to server administrators
	AdminDiscordIDs []int64

	// Balance-driven rank roles, lowest tier first
	RankTiers []models.RankTier

	// Keep-alive HTTP server
	HTTPAddr string

	LogLevel    string
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// NewTestConfig returns defaults suitable for unit tests without touching the environment
func NewTestConfig() *Config {
	return &Config{
		DatabaseName:      "economy_test",
		CurrencyName:      "Elix",
		ClaimAmount:       25000,
		ClaimCooldown:     time.Hour,
		MaxPlayersPerTeam: 5,
		RankTiers:         models.DefaultRankTiers(),
		HTTPAddr:          ":3000",
		LogLevel:          "debug",
		Environment:       "test",
	}
}

// IsAdmin reports whether discordID is listed in ADMIN_DISCORD_IDS
func (c *Config) IsAdmin(discordID int64) bool {
	for _, id := range c.AdminDiscordIDs {
		if id == discordID {
			return true
		}
	}
	return false
}

// IsProduction reports whether the bot runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// load loads configuration from a .env file, if present, and the environment
func load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	config := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		CurrencyName:      "Elix",
		ClaimAmount:       25000,
		ClaimCooldown:     time.Hour,
		MaxPlayersPerTeam: 5,
		RankTiers:         models.DefaultRankTiers(),

		HTTPAddr:    ":3000",
		LogLevel:    "info",
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if name := os.Getenv("CURRENCY_NAME"); name != "" {
		config.CurrencyName = name
	}
	if amount := os.Getenv("CLAIM_AMOUNT"); amount != "" {
		parsed, err := strconv.ParseInt(amount, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid CLAIM_AMOUNT %q", amount)
		}
		config.ClaimAmount = parsed
	}
	if cooldown := os.Getenv("CLAIM_COOLDOWN"); cooldown != "" {
		parsed, err := time.ParseDuration(cooldown)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid CLAIM_COOLDOWN %q", cooldown)
		}
		config.ClaimCooldown = parsed
	}
	if maxPlayers := os.Getenv("MAX_PLAYERS_PER_TEAM"); maxPlayers != "" {
		parsed, err := strconv.Atoi(maxPlayers)
		if err != nil || parsed < 1 || parsed > 5 {
			return nil, fmt.Errorf("invalid MAX_PLAYERS_PER_TEAM %q (must be 1-5)", maxPlayers)
		}
		config.MaxPlayersPerTeam = parsed
	}
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		config.HTTPAddr = addr
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}

	ids, err := ParseDiscordIDs(os.Getenv("ADMIN_DISCORD_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_DISCORD_IDS: %w", err)
	}
	config.AdminDiscordIDs = ids

	if tiers := os.Getenv("RANK_TIERS"); tiers != "" {
		parsed, err := ParseRankTiers(tiers)
		if err != nil {
			return nil, fmt.Errorf("invalid RANK_TIERS: %w", err)
		}
		config.RankTiers = parsed
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// ParseDiscordIDs parses a comma separated list of snowflakes
func ParseDiscordIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid discord id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseRankTiers parses "roleID:min:max:name" entries separated by ';'.
// Names may contain colons; ranges must not overlap.
func ParseRankTiers(s string) ([]models.RankTier, error) {
	var tiers []models.RankTier
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("rank tier %q must be roleID:min:max:name", entry)
		}
		minBalance, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("rank tier %q has invalid min: %w", entry, err)
		}
		maxBalance, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("rank tier %q has invalid max: %w", entry, err)
		}
		if minBalance > maxBalance {
			return nil, fmt.Errorf("rank tier %q has min above max", entry)
		}

		tier := models.RankTier{RoleID: parts[0], Min: minBalance, Max: maxBalance, Name: parts[3]}
		for _, existing := range tiers {
			if tier.Min <= existing.Max && existing.Min <= tier.Max {
				return nil, fmt.Errorf("rank tier %q overlaps %q", tier.Name, existing.Name)
			}
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}
