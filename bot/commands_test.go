package bot

import (
	"fmt"
	"testing"

	"economy/bot/common"
	"economy/service"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_EveryCommandHasHandler(t *testing.T) {
	handlers := newHandlers(Config{CurrencyName: "Elix"}, Services{})

	commands := Commands("Elix", 5)
	names := make(map[string]bool, len(commands))
	for _, cmd := range commands {
		names[cmd.Name] = true
		_, ok := handlers[cmd.Name]
		assert.True(t, ok, "no handler for /%s", cmd.Name)
	}
	for name := range handlers {
		assert.True(t, names[name], "handler without command: %s", name)
	}
}

func TestCommands_AdminCommandsRequireAdministrator(t *testing.T) {
	admin := map[string]bool{"give": true, "take": true, "setbalance": true, "resolvebet": true}

	for _, cmd := range Commands("Elix", 5) {
		if admin[cmd.Name] {
			require.NotNil(t, cmd.DefaultMemberPermissions, cmd.Name)
			assert.Equal(t, int64(discordgo.PermissionAdministrator), *cmd.DefaultMemberPermissions, cmd.Name)
		} else {
			assert.Nil(t, cmd.DefaultMemberPermissions, cmd.Name)
		}
	}
}

func TestCommands_ScrimTeamSizeBounded(t *testing.T) {
	for _, cmd := range Commands("Elix", 3) {
		if cmd.Name != "scrim" {
			continue
		}
		create := cmd.Options[0]
		require.Equal(t, "create", create.Name)
		players := create.Options[0]
		assert.Equal(t, float64(3), players.MaxValue)
		require.NotNil(t, players.MinValue)
		assert.Equal(t, float64(1), *players.MinValue)
		return
	}
	t.Fatal("scrim command not registered")
}

type fakeRecorder struct {
	calls map[string]string
}

func (r *fakeRecorder) RecordCommand(command, result string) {
	r.calls[command] = result
}

type stubHandler struct {
	err error
}

func (h stubHandler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return h.err
}

func TestHandleCommands_RecordsResult(t *testing.T) {
	recorder := &fakeRecorder{calls: map[string]string{}}
	b := &Bot{
		handlers: map[string]commandHandler{"claim": stubHandler{}},
		recorder: recorder,
	}

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "claim"},
	}}
	b.handleCommands(nil, i)
	b.handleCommands(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "unknown"},
	}})

	assert.Equal(t, map[string]string{"claim": common.ErrorLabel(nil)}, recorder.calls)
}

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}

func TestHandleCommands_LogsStorageFailuresAtErrorLevel(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	b := &Bot{handlers: map[string]commandHandler{
		"claim": stubHandler{err: fmt.Errorf("failed to claim: %w", service.ErrStorage)},
		"pay":   stubHandler{err: fmt.Errorf("transfer: %w", service.ErrInsufficientFunds)},
	}}

	b.handleCommands(nil, commandInteraction("pay"))
	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, entry.Level, entry.Message)
	}

	b.handleCommands(nil, commandInteraction("claim"))
	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, "claim", last.Data["command"])
	assert.Equal(t, "storage", last.Data["result"])
}
