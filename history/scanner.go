// Package history walks guild message history, channel by channel, and
// feeds every message to a visitor.
package history

import (
	"errors"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const pageSize = 100

// discordEpoch is the Discord snowflake epoch, in milliseconds since the
// Unix epoch.
const discordEpoch = 1420070400000

var channelsSkipped = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "emotally",
	Subsystem: "scan",
	Name:      "channels_skipped_total",
	Help:      "Channels skipped during history scans, for missing permissions or fetch errors.",
})

// Session is the slice of discordgo.Session the scanner needs. Satisfied
// by *discordgo.Session.
type Session interface {
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
}

// Scanner visits every message of a guild the bot can read, oldest first
// within each channel. Scanners are built per report run and hold no state
// between runs.
type Scanner struct {
	Session Session
	// BotUserID is the user whose read permissions gate each channel.
	BotUserID string
}

// Scan visits all messages authored at or after since, across every text
// channel the bot can read. A zero since means unbounded history. Channels
// the bot cannot read are skipped silently; channels whose permission check
// or message fetch fails are logged and skipped, and the rest of the scan
// carries on.
func (sc *Scanner) Scan(guildID string, since time.Time, visit func(*discordgo.Message)) error {
	channels, err := sc.Session.GuildChannels(guildID)
	if err != nil {
		log.Error("Failed to enumerate guild channels", "guild", guildID, "err", err)
		return errors.New("failed to enumerate guild channels")
	}

	after := "0"
	if !since.IsZero() {
		after = snowflakeAt(since)
	}

	for _, ch := range channels {
		if !isTextChannel(ch) {
			continue
		}
		readable, err := sc.canRead(ch.ID)
		if err != nil {
			channelsSkipped.Inc()
			log.Warn("Skipping channel after permission check error", "channel", ch.ID, "err", err)
			continue
		}
		if !readable {
			channelsSkipped.Inc()
			log.Debug("Skipping unreadable channel", "channel", ch.ID)
			continue
		}
		if err := sc.scanChannel(ch.ID, after, visit); err != nil {
			channelsSkipped.Inc()
			log.Warn("Skipping channel after fetch error", "channel", ch.ID, "err", err)
		}
	}

	return nil
}

func (sc *Scanner) scanChannel(channelID, after string, visit func(*discordgo.Message)) error {
	for {
		page, err := sc.Session.ChannelMessages(channelID, pageSize, "", after, "")
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}
		// pages come back newest first; walk them backwards so the
		// visitor sees oldest first
		for i := len(page) - 1; i >= 0; i-- {
			visit(page[i])
		}
		after = page[0].ID
		if len(page) < pageSize {
			return nil
		}
	}
}

func (sc *Scanner) canRead(channelID string) (bool, error) {
	perms, err := sc.Session.UserChannelPermissions(sc.BotUserID, channelID)
	if err != nil {
		return false, err
	}
	const needed = discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory
	return perms&needed == needed, nil
}

func isTextChannel(ch *discordgo.Channel) bool {
	return ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews
}

// snowflakeAt builds a synthetic message id for a point in time, so the
// history request is bounded server-side instead of paging through and
// discarding older messages.
func snowflakeAt(t time.Time) string {
	ms := t.UnixMilli() - discordEpoch
	if ms < 0 {
		ms = 0
	}
	return strconv.FormatInt(ms<<22, 10)
}

// BotUserID resolves the session's own user id, from gateway state when
// connected, otherwise from the API.
func BotUserID(s *discordgo.Session) (string, error) {
	if s.State != nil && s.State.User != nil {
		return s.State.User.ID, nil
	}
	u, err := s.User("@me")
	if err != nil {
		return "", err
	}
	return u.ID, nil
}
