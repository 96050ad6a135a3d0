package main

import (
	"flag"
	"os"
	"os/signal"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

var (
	register = flag.Bool("register", false, "register bot commands with discord; add the -cleanup flag to first remove any old commands")
	cleanup  = flag.Bool("cleanup", false, "when running with -register, also first remove any previously registered commands")
)

func init() {
	flag.Parse()
}

func main() {
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	}))

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return err
	}

	s.AddHandler(interactionHandler)
	s.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentGuildEmojis |
		discordgo.IntentMessageContent

	err = s.Open()
	if err != nil {
		return err
	}
	defer s.Close()

	if *register {
		if *cleanup {
			if err := cleanupCommands(s, s.State.User.ID, cfg.GuildID); err != nil {
				return err
			}
		}
		return registerCommands(s, s.State.User.ID, cfg.GuildID)
	}

	go listenAndServe(cfg)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	log.Info("Bot now connected and ready. Press Ctrl+C to exit...")
	<-stop

	return nil
}
