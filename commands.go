package main

import (
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/emotally/emotally/emojirank"
	"github.com/emotally/emotally/underused"
)

type Handler func(s *discordgo.Session, i *discordgo.InteractionCreate) error

var (
	commands = map[*discordgo.ApplicationCommand]Handler{
		emojirank.ApplicationCommand: emojirank.Handle,
		underused.ApplicationCommand: underused.Handle,
	}

	commandHandlers map[string]Handler
)

var failures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "emotally",
	Name:      "command_failures_total",
	Help:      "Command invocations that ended in an error.",
}, []string{"command"})

func init() {
	commandHandlers = make(map[string]Handler)

	for c, h := range commands {
		commandHandlers[c.Name] = h
	}
}

var failureMessage = "Something went wrong. Please try again later."

func interactionHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	h, ok := commandHandlers[name]
	if !ok {
		return
	}
	if err := h(s, i); err != nil {
		failures.WithLabelValues(name).Inc()
		log.Error("Command failed", "command", name, "err", err)
		reportFailure(s, i)
	}
}

// reportFailure tells the invoking user something broke, without leaking the
// cause. Depending on how far the handler got, the interaction may or may not
// have been acknowledged already, so try a fresh response first and fall back
// to editing the one that is up.
func reportFailure(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: failureMessage,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err == nil {
		return
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &failureMessage}); err != nil {
		log.Error("Failed to report command failure", "err", err)
	}
}
