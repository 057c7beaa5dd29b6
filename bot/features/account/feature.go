package account

import (
	"economy/bot/common"
	"economy/service"

	"github.com/bwmarrin/discordgo"
)

// Feature serves balance lookups, admin adjustments and the leaderboard
type Feature struct {
	accountService service.AccountService
	settings       common.Settings
}

func New(accountService service.AccountService, settings common.Settings) *Feature {
	return &Feature{
		accountService: accountService,
		settings:       settings,
	}
}

// HandleCommand dispatches balance, give, take, setbalance and top
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	switch i.ApplicationCommandData().Name {
	case "balance":
		return f.handleBalance(s, i)
	case "give":
		return f.handleGive(s, i)
	case "take":
		return f.handleTake(s, i)
	case "setbalance":
		return f.handleSetBalance(s, i)
	case "top":
		return f.handleTop(s, i)
	}
	return nil
}
