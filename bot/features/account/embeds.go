package account

import (
	"fmt"
	"strings"
	"time"

	"economy/bot/common"
	"economy/models"

	"github.com/bwmarrin/discordgo"
)

// BuildLeaderboardEmbed creates the richest-players embed
func BuildLeaderboardEmbed(entries []*models.LeaderboardEntry, currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     "🏆 Top " + currency,
		Color:     common.ColorGold,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if len(entries) == 0 {
		embed.Description = "No players found"
		return embed
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		var medal string
		switch entry.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		default:
			medal = fmt.Sprintf("%d.", entry.Rank)
		}

		lines = append(lines, fmt.Sprintf("%s %s - %s",
			medal, common.Mention(entry.DiscordID), common.FormatAmount(entry.Balance, currency)))
	}

	embed.Description = strings.Join(lines, "\n")
	return embed
}
