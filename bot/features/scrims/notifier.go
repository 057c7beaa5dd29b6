package scrims

import (
	"context"
	"strconv"

	"economy/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// embedSender is the part of *discordgo.Session the notifier uses
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ReadyNotifier posts a notice in the scrim's channel once both teams fill
type ReadyNotifier struct {
	sender   embedSender
	currency string
}

func NewReadyNotifier(sender embedSender, currency string) *ReadyNotifier {
	return &ReadyNotifier{sender: sender, currency: currency}
}

// Subscribe registers the notifier on the event bus
func (n *ReadyNotifier) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeScrimReady, n.HandleEvent)
}

// HandleEvent sends the ready notice. Failures are logged only.
func (n *ReadyNotifier) HandleEvent(_ context.Context, event events.Event) {
	e, ok := event.(events.ScrimReadyEvent)
	if !ok {
		return
	}
	if e.ChannelID == 0 {
		log.WithField("scrimID", e.ScrimID).Debug("Scrim ready without a channel, skipping notice")
		return
	}

	embed := BuildReadyEmbed(e.ScrimID, e.PlayersPerTeam, e.PrizePool, e.TeamA, e.TeamB, n.currency)
	if _, err := n.sender.ChannelMessageSendEmbed(strconv.FormatInt(e.ChannelID, 10), embed); err != nil {
		log.WithFields(log.Fields{
			"scrimID":   e.ScrimID,
			"channelID": e.ChannelID,
			"error":     err,
		}).Error("Failed to send scrim ready notice")
	}
}
