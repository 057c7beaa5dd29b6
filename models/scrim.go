package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ScrimStatus represents the state of a scrim
type ScrimStatus string

const (
	ScrimStatusWaiting ScrimStatus = "waiting"
	ScrimStatusReady   ScrimStatus = "ready"
)

// Team identifies one side of a scrim
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// ParseTeam accepts "a", "b", "teamA" and "teamB" in any case
func ParseTeam(s string) (Team, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "teama", "team a":
		return TeamA, true
	case "b", "teamb", "team b":
		return TeamB, true
	}
	return "", false
}

// ScrimPlayer is a member of a scrim team
type ScrimPlayer struct {
	DiscordID int64     `json:"discord_id"`
	Username  string    `json:"username"`
	JoinedAt  time.Time `json:"joined_at"`
}

// Scrim represents a team-vs-team match with a pooled buy-in
type Scrim struct {
	ID               string        `db:"id"`
	CreatorDiscordID int64         `db:"creator_discord_id"`
	PlayersPerTeam   int           `db:"players_per_team"`
	AmountPerPlayer  int64         `db:"amount_per_player"`
	TeamA            []ScrimPlayer `db:"team_a"`
	TeamB            []ScrimPlayer `db:"team_b"`
	PrizePool        int64         `db:"prize_pool"`
	Status           ScrimStatus   `db:"status"`
	ChannelID        int64         `db:"channel_id"`
	CreatedAt        time.Time     `db:"created_at"`
}

// Players returns the roster of a team
func (s *Scrim) Players(team Team) []ScrimPlayer {
	if team == TeamA {
		return s.TeamA
	}
	return s.TeamB
}

// HasPlayer checks both rosters for the user
func (s *Scrim) HasPlayer(discordID int64) bool {
	for _, p := range s.TeamA {
		if p.DiscordID == discordID {
			return true
		}
	}
	for _, p := range s.TeamB {
		if p.DiscordID == discordID {
			return true
		}
	}
	return false
}

// IsTeamFull checks whether a team has reached capacity
func (s *Scrim) IsTeamFull(team Team) bool {
	return len(s.Players(team)) >= s.PlayersPerTeam
}

// IsFull checks whether both teams are at capacity
func (s *Scrim) IsFull() bool {
	return s.IsTeamFull(TeamA) && s.IsTeamFull(TeamB)
}

// AddPlayer appends a player to a team and grows the pool by one buy-in
func (s *Scrim) AddPlayer(team Team, player ScrimPlayer) {
	if team == TeamA {
		s.TeamA = append(s.TeamA, player)
	} else {
		s.TeamB = append(s.TeamB, player)
	}
	s.PrizePool += s.AmountPerPlayer
}

// PlayerCount returns the number of joined players
func (s *Scrim) PlayerCount() int {
	return len(s.TeamA) + len(s.TeamB)
}

// ScrimPayout is a single winner's share of the pool
type ScrimPayout struct {
	DiscordID int64
	Username  string
	Amount    int64
}

// SplitPrize divides pool between winners. Each gets floor(pool/n) and the
// first pool mod n winners in join order get one extra unit.
func SplitPrize(pool int64, winners []ScrimPlayer) []ScrimPayout {
	if len(winners) == 0 {
		return nil
	}
	n := int64(len(winners))
	share := pool / n
	remainder := pool % n

	payouts := make([]ScrimPayout, 0, len(winners))
	for i, w := range winners {
		amount := share
		if int64(i) < remainder {
			amount++
		}
		payouts = append(payouts, ScrimPayout{
			DiscordID: w.DiscordID,
			Username:  w.Username,
			Amount:    amount,
		})
	}
	return payouts
}

// PrizePerWinner returns the exact pool/n share
func PrizePerWinner(pool int64, winners int) decimal.Decimal {
	if winners == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(pool).Div(decimal.NewFromInt(int64(winners)))
}

// ScrimJoinResult represents a player joining a scrim
type ScrimJoinResult struct {
	Scrim       *Scrim
	Team        Team
	NewBalance  int64
	BecameReady bool
}

// ScrimResolution represents the settlement of a scrim
type ScrimResolution struct {
	ScrimID        string
	WinningTeam    Team
	PrizePool      int64
	PrizePerWinner decimal.Decimal
	Payouts        []ScrimPayout
}
