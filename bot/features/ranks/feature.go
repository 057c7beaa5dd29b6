package ranks

import (
	"context"
	"strconv"
	"sync"

	"economy/events"
	"economy/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// memberRoleManager is the part of *discordgo.Session used for role sync
type memberRoleManager interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// balanceReader supplies the committed balance a sync applies
type balanceReader interface {
	GetBalance(ctx context.Context, discordID int64) (int64, error)
}

// Feature keeps each member's rank role in line with their balance
type Feature struct {
	session  memberRoleManager
	balances balanceReader
	guildID  string
	tiers    []models.RankTier

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(session memberRoleManager, balances balanceReader, guildID string, tiers []models.RankTier) *Feature {
	return &Feature{
		session:  session,
		balances: balances,
		guildID:  guildID,
		tiers:    tiers,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// userLock returns the mutex serializing role syncs for one member
func (f *Feature) userLock(discordID int64) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()

	lock, ok := f.locks[discordID]
	if !ok {
		lock = &sync.Mutex{}
		f.locks[discordID] = lock
	}
	return lock
}

// Subscribe registers the role sync on balance changes
func (f *Feature) Subscribe(bus *events.Bus) {
	if f.guildID == "" || len(f.tiers) == 0 {
		log.Info("Rank roles disabled: no guild or tiers configured")
		return
	}
	bus.Subscribe(events.EventTypeBalanceChange, f.HandleEvent)
	log.WithField("tiers", len(f.tiers)).Info("Rank role management enabled")
}

// HandleEvent re-syncs the member whose balance changed. The event only
// triggers the sync; the tier always follows the stored balance, so events
// finishing out of order cannot leave a stale role. Failures are logged and
// never propagate.
func (f *Feature) HandleEvent(ctx context.Context, event events.Event) {
	e, ok := event.(events.BalanceChangeEvent)
	if !ok {
		return
	}
	if err := f.Sync(ctx, e.UserID); err != nil {
		log.WithFields(log.Fields{
			"userID": e.UserID,
			"error":  err,
		}).Error("Failed to sync rank role")
	}
}

// Sync removes stale tier roles from the member and grants the one matching
// their current balance. Syncs for the same member run one at a time.
func (f *Feature) Sync(ctx context.Context, discordID int64) error {
	lock := f.userLock(discordID)
	lock.Lock()
	defer lock.Unlock()

	balance, err := f.balances.GetBalance(ctx, discordID)
	if err != nil {
		return err
	}

	userID := strconv.FormatInt(discordID, 10)

	member, err := f.session.GuildMember(f.guildID, userID)
	if err != nil {
		return err
	}

	add, remove := RoleChanges(member.Roles, f.tiers, balance)
	for _, roleID := range remove {
		if err := f.session.GuildMemberRoleRemove(f.guildID, userID, roleID); err != nil {
			log.Errorf("Failed to remove rank role %s from user %s: %v", roleID, userID, err)
		}
	}
	if add != "" {
		if err := f.session.GuildMemberRoleAdd(f.guildID, userID, add); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"userID":  userID,
			"roleID":  add,
			"balance": balance,
		}).Info("Assigned rank role")
	}
	return nil
}

// RoleChanges computes which tier role to add and which to remove for
// balance, given the member's current roles. Roles outside the tier list
// are never touched.
func RoleChanges(current []string, tiers []models.RankTier, balance int64) (string, []string) {
	var target string
	if tier := models.FindRankTier(tiers, balance); tier != nil {
		target = tier.RoleID
	}

	has := make(map[string]bool, len(current))
	for _, roleID := range current {
		has[roleID] = true
	}

	var remove []string
	for _, tier := range tiers {
		if tier.RoleID != target && has[tier.RoleID] {
			remove = append(remove, tier.RoleID)
		}
	}

	if target != "" && has[target] {
		target = ""
	}
	return target, remove
}
