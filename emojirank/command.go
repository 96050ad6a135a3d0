// Package emojirank implements the emoji usage leaderboard command.
package emojirank

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/emotally/emotally/emoji"
	"github.com/emotally/emotally/history"
)

const (
	optionTimeframe = "timeframe"
	optionFormat    = "format"

	formatChart = "chart"
	formatList  = "list"

	topSize = 20
)

var ApplicationCommand = &discordgo.ApplicationCommand{
	Type:        discordgo.ChatApplicationCommand,
	Name:        "emojirank",
	Description: "Rank the most used emoji on this server",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optionTimeframe,
			Description: "How far back to scan, defaults to all-time",
			Choices:     timeframeChoices(),
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optionFormat,
			Description: "Bar chart or plain ranked list, defaults to chart",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: formatChart, Value: formatChart},
				{Name: formatList, Value: formatList},
			},
		},
	},
}

var invocations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "emotally",
	Name:      "emojirank_invocations_total",
	Help:      "Leaderboard command invocations.",
})

// Session is the slice of discordgo.Session the command drives. Satisfied
// by *discordgo.Session.
type Session interface {
	history.Session
	GuildEmojis(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

func timeframeChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(Timeframes))
	for i, tf := range Timeframes {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: tf.Label, Value: tf.Label}
	}
	return choices
}

// Handle runs one leaderboard report on a live session.
func Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	botID, err := history.BotUserID(s)
	if err != nil {
		log.Error("Failed to resolve own user id", "err", err)
		return errors.New("failed to resolve own user id")
	}
	return run(s, i, botID)
}

// run parses the options, scans the selected window, ranks the tally,
// resolves labels and renders. An invalid timeframe is a user error,
// reported without starting the scan.
func run(s Session, i *discordgo.InteractionCreate, botID string) error {
	invocations.Inc()

	vals := optionsToDict(i.ApplicationCommandData().Options)
	label, _ := vals[optionTimeframe].(string)
	format, _ := vals[optionFormat].(string)

	tf, err := ParseTimeframe(label)
	if err != nil {
		return respondEphemeral(s, i, err.Error())
	}

	err = respondProgress(s, i, "Collecting emoji data... this can take a while on busy servers.")
	if err != nil {
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}

	counter := emoji.NewCounter()
	scanner := &history.Scanner{Session: s, BotUserID: botID}
	cutoff, _ := tf.Cutoff(time.Now())
	if err := scanner.Scan(i.GuildID, cutoff, counter.CountMessage); err != nil {
		return err
	}

	top := counter.Top(topSize)
	if len(top) == 0 {
		return respondEdit(s, i, "No emoji used yet in this timeframe.")
	}

	registered, err := s.GuildEmojis(i.GuildID)
	if err != nil {
		// only degrades custom labels to their raw keys
		log.Warn("Failed to list guild emoji", "guild", i.GuildID, "err", err)
	}
	reg := emoji.NewRegistry(registered)

	labels := make([]string, len(top))
	counts := make([]int, len(top))
	for j, e := range top {
		labels[j] = reg.Resolve(e.Key)
		counts[j] = e.Count
	}

	return respondEdit(s, i, render(tf, format, labels, counts))
}

// render picks the output style. The chart needs a code fence to keep its
// columns lined up; the list stays plain so custom emoji render inline.
func render(tf Timeframe, format string, labels []string, counts []int) string {
	title := fmt.Sprintf("**Top %d emoji usage (%s)**", topSize, tf.Label)
	if format == formatList {
		return title + "\n" + rankedList(labels, counts)
	}
	return title + "\n```\n" + verticalChart(labels, counts) + "\n```"
}

func optionsToDict(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]any {
	vals := make(map[string]any)
	for _, o := range opts {
		vals[o.Name] = o.Value
	}
	return vals
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
