// Package underused implements the moderator report of custom emoji that
// barely get used.
package underused

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/emotally/emotally/emoji"
	"github.com/emotally/emotally/history"
)

const (
	// custom emoji used fewer than threshold times within window make
	// the report
	threshold = 5
	window    = 30 * 24 * time.Hour

	messageLimit = 2000
)

var manageEmojiPermission int64 = discordgo.PermissionManageEmojis

var ApplicationCommand = &discordgo.ApplicationCommand{
	Type:                     discordgo.ChatApplicationCommand,
	Name:                     "underused",
	Description:              "List custom emoji used fewer than 5 times in the last 30 days",
	DefaultMemberPermissions: &manageEmojiPermission,
}

var (
	invocations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "emotally",
		Name:      "underused_invocations_total",
		Help:      "Underused report invocations.",
	})
	rejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "emotally",
		Name:      "underused_rejections_total",
		Help:      "Underused report invocations rejected for missing permissions.",
	})
)

const rejectionMessage = "This command is restricted to members who can manage emoji."

// Session is the slice of discordgo.Session the command drives. Satisfied
// by *discordgo.Session.
type Session interface {
	history.Session
	GuildEmojis(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// canManageEmoji reports whether the calling member holds Manage Emojis.
// Interactions carry the member's resolved channel permissions, so no
// extra lookup is needed.
func canManageEmoji(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionManageEmojis != 0
}

// Handle runs one underused-emoji report on a live session.
func Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	botID, err := history.BotUserID(s)
	if err != nil {
		log.Error("Failed to resolve own user id", "err", err)
		return errors.New("failed to resolve own user id")
	}
	return run(s, i, botID)
}

// run gates on the manage-emoji permission first; the scan never starts
// for unauthorized callers.
func run(s Session, i *discordgo.InteractionCreate, botID string) error {
	invocations.Inc()

	if !canManageEmoji(i) {
		rejections.Inc()
		return respondEphemeral(s, i, rejectionMessage)
	}

	err := respondProgress(s, i, "Collecting emoji data for the last 30 days... hang tight.")
	if err != nil {
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}

	registered, err := s.GuildEmojis(i.GuildID)
	if err != nil {
		log.Error("Failed to list guild emoji", "guild", i.GuildID, "err", err)
		return errors.New("failed to list guild emoji")
	}

	counter := emoji.NewCounter()
	scanner := &history.Scanner{Session: s, BotUserID: botID}
	if err := scanner.Scan(i.GuildID, time.Now().Add(-window), counter.CountMessage); err != nil {
		return err
	}

	msgs := report(registered, counter)
	if err := respondEdit(s, i, msgs[0]); err != nil {
		return err
	}
	for _, m := range msgs[1:] {
		if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{Content: m}); err != nil {
			return err
		}
	}
	return nil
}

// report joins the live registry against the tally. Every currently
// registered custom emoji is considered, so ones with zero uses in the
// window show up too, each with its count.
func report(registered []*discordgo.Emoji, counter *emoji.Counter) []string {
	var labels []string
	for _, e := range registered {
		if n := counter.Get(emoji.KeyFor(e)); n < threshold {
			labels = append(labels, fmt.Sprintf("%s (%d)", e.MessageFormat(), n))
		}
	}
	if len(labels) == 0 {
		return []string{"No custom emoji were used fewer than 5 times in the last 30 days."}
	}
	return packMessages("Custom emoji used fewer than 5 times in the last 30 days:", labels)
}

// packMessages joins the header and labels into as few messages as the
// content size limit allows. Big servers can hold more custom emoji than
// fit in one message.
func packMessages(header string, labels []string) []string {
	var msgs []string
	b := strings.Builder{}
	b.WriteString(header)
	sep := "\n"
	for _, l := range labels {
		if b.Len()+len(sep)+len(l) > messageLimit {
			msgs = append(msgs, b.String())
			b.Reset()
			sep = ""
		}
		b.WriteString(sep)
		b.WriteString(l)
		sep = " "
	}
	return append(msgs, b.String())
}

func respondProgress(s Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func respondEphemeral(s Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEdit(s Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
	return err
}
