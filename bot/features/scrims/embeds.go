package scrims

import (
	"fmt"
	"strings"

	"economy/bot/common"
	"economy/models"

	"github.com/bwmarrin/discordgo"
)

func roster(players []models.ScrimPlayer, size int) string {
	lines := make([]string, 0, size)
	for _, p := range players {
		lines = append(lines, common.Mention(p.DiscordID))
	}
	for len(lines) < size {
		lines = append(lines, "_open slot_")
	}
	return strings.Join(lines, "\n")
}

func statusLabel(status models.ScrimStatus) string {
	if status == models.ScrimStatusReady {
		return "Ready"
	}
	return "Waiting for players"
}

// BuildScrimEmbed shows both rosters and the pool
func BuildScrimEmbed(scrim *models.Scrim, currency string) *discordgo.MessageEmbed {
	color := common.ColorPrimary
	if scrim.Status == models.ScrimStatusReady {
		color = common.ColorSuccess
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎮 Scrim %dv%d", scrim.PlayersPerTeam, scrim.PlayersPerTeam),
		Description: fmt.Sprintf("Buy-in **%s** per player. Join with `/scrim join id:%s team:A|B`",
			common.FormatAmount(scrim.AmountPerPlayer, currency), scrim.ID),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Team A (%d/%d)", len(scrim.TeamA), scrim.PlayersPerTeam), Value: roster(scrim.TeamA, scrim.PlayersPerTeam), Inline: true},
			{Name: fmt.Sprintf("Team B (%d/%d)", len(scrim.TeamB), scrim.PlayersPerTeam), Value: roster(scrim.TeamB, scrim.PlayersPerTeam), Inline: true},
			{Name: "Prize pool", Value: common.FormatAmount(scrim.PrizePool, currency), Inline: false},
			{Name: "Status", Value: statusLabel(scrim.Status), Inline: false},
		},
	}
}

// BuildScrimListEmbed lists open scrims
func BuildScrimListEmbed(list []*models.Scrim, currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎮 Open scrims",
		Color: common.ColorPrimary,
	}
	if len(list) == 0 {
		embed.Description = "There are no open scrims."
		return embed
	}

	for _, scrim := range list {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%dv%d - %s", scrim.PlayersPerTeam, scrim.PlayersPerTeam, statusLabel(scrim.Status)),
			Value: fmt.Sprintf("`%s`\nA %d/%d, B %d/%d, pool %s",
				scrim.ID,
				len(scrim.TeamA), scrim.PlayersPerTeam,
				len(scrim.TeamB), scrim.PlayersPerTeam,
				common.FormatAmount(scrim.PrizePool, currency)),
		})
	}
	return embed
}

// BuildResolutionEmbed announces the winning team and each share
func BuildResolutionEmbed(resolution *models.ScrimResolution, currency string) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(resolution.Payouts))
	for _, p := range resolution.Payouts {
		lines = append(lines, fmt.Sprintf("%s +%s", common.Mention(p.DiscordID), common.FormatAmount(p.Amount, currency)))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏆 Team %s wins the scrim", resolution.WinningTeam),
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prize pool", Value: common.FormatAmount(resolution.PrizePool, currency), Inline: true},
			{Name: "Per winner", Value: perWinnerLabel(resolution.Payouts, currency), Inline: true},
		},
	}
}

// perWinnerLabel shows the credited share, or the two share sizes when the
// pool leaves a remainder
func perWinnerLabel(payouts []models.ScrimPayout, currency string) string {
	if len(payouts) == 0 {
		return common.FormatAmount(0, currency)
	}
	low, high := payouts[0].Amount, payouts[0].Amount
	for _, p := range payouts[1:] {
		low = min(low, p.Amount)
		high = max(high, p.Amount)
	}
	if low == high {
		return common.FormatAmount(low, currency)
	}
	return fmt.Sprintf("%s or %s", common.FormatBalance(low), common.FormatAmount(high, currency))
}

// BuildReadyEmbed is posted in the scrim's channel when both teams fill
func BuildReadyEmbed(scrimID string, playersPerTeam int, pool int64, teamA, teamB []models.ScrimPlayer, currency string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Scrim ready",
		Description: fmt.Sprintf("Both teams are full. An admin can now resolve it with `/scrim resolve id:%s`.", scrimID),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Team A", Value: roster(teamA, playersPerTeam), Inline: true},
			{Name: "Team B", Value: roster(teamB, playersPerTeam), Inline: true},
			{Name: "Prize pool", Value: common.FormatAmount(pool, currency), Inline: false},
		},
	}
}
