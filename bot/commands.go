package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var adminPermission int64 = discordgo.PermissionAdministrator

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    true,
	}
}

func amountOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "amount",
		Description: description,
		Required:    true,
		MinValue:    &minAmount,
	}
}

func idOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "id",
		Description: description,
		Required:    true,
	}
}

var minAmount float64 = 1

var outcomeChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Local", Value: "local"},
	{Name: "Draw", Value: "draw"},
	{Name: "Away", Value: "away"},
}

var teamChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Team A", Value: "A"},
	{Name: "Team B", Value: "B"},
}

func outcomeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "outcome",
		Description: "Match outcome",
		Required:    true,
		Choices:     outcomeChoices,
	}
}

func teamOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "team",
		Description: "Team",
		Required:    true,
		Choices:     teamChoices,
	}
}

func oddsOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    true,
	}
}

// Commands returns every slash command the bot registers. maxPlayersPerTeam
// bounds the scrim team size option.
func Commands(currency string, maxPlayersPerTeam int) []*discordgo.ApplicationCommand {
	minPlayers := float64(1)
	maxPlayers := float64(maxPlayersPerTeam)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your " + currency + " balance or another user's",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "claim",
			Description: "Claim your periodic " + currency,
		},
		{
			Name:                     "give",
			Description:              "Give " + currency + " to a user (admin)",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("User to credit"),
				amountOption("Amount to give"),
			},
		},
		{
			Name:                     "take",
			Description:              "Take " + currency + " from a user (admin)",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("User to debit"),
				amountOption("Amount to take"),
			},
		},
		{
			Name:                     "setbalance",
			Description:              "Set a user's balance (admin)",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("User to update"),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "New balance",
					Required:    true,
				},
			},
		},
		{
			Name:        "pay",
			Description: "Send " + currency + " to another user",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("Recipient"),
				amountOption("Amount to send"),
			},
		},
		{
			Name:        "bet",
			Description: "Betting events",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a betting event (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Event name",
							Required:    true,
						},
						oddsOption("local", "Odds for the home side"),
						oddsOption("draw", "Odds for a draw"),
						oddsOption("away", "Odds for the away side"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "place",
					Description: "Bet on an event",
					Options: []*discordgo.ApplicationCommandOption{
						idOption("Event ID"),
						outcomeOption(),
						amountOption("Amount to bet"),
					},
				},
			},
		},
		{
			Name:                     "resolvebet",
			Description:              "Resolve a betting event and pay winners (admin)",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				idOption("Event ID"),
				outcomeOption(),
			},
		},
		{
			Name:        "bets",
			Description: "List open betting events",
		},
		{
			Name:        "duel",
			Description: "Challenge another user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Challenge a user to a duel",
					Options: []*discordgo.ApplicationCommandOption{
						userOption("Opponent"),
						amountOption("Amount each side puts up"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "accept",
					Description: "Accept a duel you were challenged to",
					Options:     []*discordgo.ApplicationCommandOption{idOption("Duel ID")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "resolve",
					Description: "Pick a winner at random (admin)",
					Options:     []*discordgo.ApplicationCommandOption{idOption("Duel ID")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "cancel",
					Description: "Cancel a duel that was not accepted",
					Options:     []*discordgo.ApplicationCommandOption{idOption("Duel ID")},
				},
			},
		},
		{
			Name:        "scrim",
			Description: "Team scrims",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a scrim and join team A",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "players",
							Description: "Players per team",
							Required:    true,
							MinValue:    &minPlayers,
							MaxValue:    maxPlayers,
						},
						amountOption("Buy-in per player"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join a scrim",
					Options: []*discordgo.ApplicationCommandOption{
						idOption("Scrim ID"),
						teamOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "resolve",
					Description: "Pay the winning team (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						idOption("Scrim ID"),
						teamOption(),
					},
				},
			},
		},
		{
			Name:        "scrims",
			Description: "List open scrims",
		},
		{
			Name:        "top",
			Description: "Show the richest players",
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range Commands(b.config.CurrencyName, b.config.MaxPlayersPerTeam) {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}
	return nil
}
