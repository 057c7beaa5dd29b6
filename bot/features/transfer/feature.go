package transfer

import (
	"economy/bot/common"
	"economy/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	transferService service.TransferService
	settings        common.Settings
}

func New(transferService service.TransferService, settings common.Settings) *Feature {
	return &Feature{
		transferService: transferService,
		settings:        settings,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return f.handlePay(s, i)
}
