package wagers

import (
	"fmt"
	"strings"
	"time"

	"economy/bot/common"
	"economy/models"

	"github.com/bwmarrin/discordgo"
)

// OutcomeLabel returns the display name of an outcome
func OutcomeLabel(outcome models.Outcome) string {
	switch outcome {
	case models.OutcomeLocal:
		return "Local"
	case models.OutcomeDraw:
		return "Draw"
	case models.OutcomeAway:
		return "Away"
	default:
		return string(outcome)
	}
}

func oddsLine(odds models.Odds) string {
	return fmt.Sprintf("Local %s | Draw %s | Away %s",
		common.FormatOdds(odds.Local), common.FormatOdds(odds.Draw), common.FormatOdds(odds.Away))
}

// BuildEventEmbed shows a newly created event
func BuildEventEmbed(event *models.WagerEvent, currency string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎲 " + event.Name,
		Description: oddsLine(event.Odds),
		Color:       common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: "`" + event.ID + "`", Inline: false},
			{Name: "Bet", Value: "`/bet place id outcome amount`", Inline: false},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Payouts are stake × odds in " + currency},
		Timestamp: event.CreatedAt.Format(time.RFC3339),
	}
}

// BuildEventListEmbed lists open events with their stake totals
func BuildEventListEmbed(list []*models.WagerEvent, currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📋 Open bets",
		Color: common.ColorPrimary,
	}
	if len(list) == 0 {
		embed.Description = "There are no open betting events."
		return embed
	}

	for _, event := range list {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: event.Name,
			Value: fmt.Sprintf("`%s`\n%s\n%d bets, %s staked",
				event.ID, oddsLine(event.Odds), event.StakeCount(), common.FormatAmount(event.TotalStaked(), currency)),
		})
	}
	return embed
}

// BuildResolutionEmbed announces a settled event and its winners
func BuildResolutionEmbed(resolution *models.EventResolution, currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🏁 %s: %s wins", resolution.EventName, OutcomeLabel(resolution.Outcome)),
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Odds", Value: common.FormatOdds(resolution.Odds), Inline: true},
			{Name: "Winning bets", Value: fmt.Sprintf("%d", resolution.PaidCount()), Inline: true},
			{Name: "Total paid", Value: common.FormatAmount(resolution.TotalPaid, currency), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if len(resolution.Payouts) == 0 {
		embed.Description = "Nobody bet on this outcome."
		return embed
	}

	lines := make([]string, 0, len(resolution.Payouts))
	for _, p := range resolution.Payouts {
		lines = append(lines, fmt.Sprintf("%s +%s", common.Mention(p.DiscordID), common.FormatAmount(p.Payout, currency)))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}
