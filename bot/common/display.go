package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Settings carries the presentation and permission settings shared by features
type Settings struct {
	CurrencyName    string
	AdminDiscordIDs []int64
}

// GetDisplayName returns the server-specific display name for a user.
// Falls back to the username, then to "Unknown".
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	if guildID != "" {
		member, err := s.GuildMember(guildID, userID)
		if err == nil && member != nil {
			if member.Nick != "" {
				return member.Nick
			}
			if member.User != nil {
				if member.User.GlobalName != "" {
					return member.User.GlobalName
				}
				return member.User.Username
			}
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}
	return "Unknown"
}

// GetDisplayNameInt64 is a convenience wrapper that accepts int64 user IDs
func GetDisplayNameInt64(s *discordgo.Session, guildID string, userID int64) string {
	return GetDisplayName(s, guildID, strconv.FormatInt(userID, 10))
}
