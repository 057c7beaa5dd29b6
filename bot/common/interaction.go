package common

import (
	"fmt"
	"strconv"

	"economy/models"

	"github.com/bwmarrin/discordgo"
)

// Invoker returns the user who triggered the interaction, in a guild or a DM
func Invoker(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// ParseSnowflake converts a Discord ID string to int64
func ParseSnowflake(id string) (int64, error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid discord id %q: %w", id, err)
	}
	return parsed, nil
}

// InvokerID returns the invoking user's Discord ID and username
func InvokerID(i *discordgo.InteractionCreate) (int64, string, error) {
	user := Invoker(i)
	if user == nil {
		return 0, "", fmt.Errorf("interaction has no user")
	}
	id, err := ParseSnowflake(user.ID)
	if err != nil {
		return 0, "", err
	}
	return id, user.Username, nil
}

// BuildActor describes the invoking user. Server administrators and users
// listed in adminIDs are treated as admins.
func BuildActor(i *discordgo.InteractionCreate, adminIDs []int64) (models.Actor, error) {
	id, username, err := InvokerID(i)
	if err != nil {
		return models.Actor{}, err
	}

	admin := i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
	for _, adminID := range adminIDs {
		if adminID == id {
			admin = true
			break
		}
	}

	return models.Actor{DiscordID: id, Username: username, Admin: admin}, nil
}

// Options indexes slash command options by name
type Options struct {
	opts     map[string]*discordgo.ApplicationCommandInteractionDataOption
	resolved *discordgo.ApplicationCommandInteractionDataResolved
}

// NewOptions indexes opts. resolved may be nil.
func NewOptions(opts []*discordgo.ApplicationCommandInteractionDataOption, resolved *discordgo.ApplicationCommandInteractionDataResolved) Options {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return Options{opts: m, resolved: resolved}
}

// Subcommand returns the first subcommand and its options, if any
func Subcommand(data discordgo.ApplicationCommandInteractionData) (string, Options) {
	if len(data.Options) == 0 {
		return "", NewOptions(nil, data.Resolved)
	}
	first := data.Options[0]
	if first.Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", NewOptions(data.Options, data.Resolved)
	}
	return first.Name, NewOptions(first.Options, data.Resolved)
}

// Int returns an integer option, false when absent
func (o Options) Int(name string) (int64, bool) {
	opt, ok := o.opts[name]
	if !ok {
		return 0, false
	}
	return opt.IntValue(), true
}

// String returns a string option, empty when absent
func (o Options) String(name string) string {
	opt, ok := o.opts[name]
	if !ok {
		return ""
	}
	return opt.StringValue()
}

// User returns a user option from the resolved interaction data, nil when absent
func (o Options) User(name string) *discordgo.User {
	opt, ok := o.opts[name]
	if !ok {
		return nil
	}
	id, _ := opt.Value.(string)
	if id == "" {
		return nil
	}
	if o.resolved != nil {
		if user, ok := o.resolved.Users[id]; ok {
			return user
		}
	}
	return &discordgo.User{ID: id}
}
