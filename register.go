package main

import (
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

func registerCommands(s *discordgo.Session, appID, guildID string) error {
	log.Info("Registering commands...")

	for c := range commands {
		cmd, err := s.ApplicationCommandCreate(appID, guildID, c)
		if err != nil {
			return err
		}
		scope := "global"
		if cmd.GuildID != "" {
			scope = cmd.GuildID
		}
		log.Info("Added command", "name", cmd.Name, "id", cmd.ID, "scope", scope)
	}

	log.Info("Done registering commands!")
	return nil
}

func cleanupCommands(s *discordgo.Session, appID, guildID string) error {
	log.Info("Cleaning up commands...")

	guildIDs := []string{guildID}
	if guildID == "" {
		guilds, err := s.UserGuilds(200, "", "", false)
		if err != nil {
			return err
		}
		for _, g := range guilds {
			guildIDs = append(guildIDs, g.ID)
		}
	}

	for _, guildID := range guildIDs {
		cmds, err := s.ApplicationCommands(appID, guildID)
		if err != nil {
			return err
		}
		for _, cmd := range cmds {
			if err := s.ApplicationCommandDelete(cmd.ApplicationID, cmd.GuildID, cmd.ID); err != nil {
				return err
			}
			scope := "global"
			if cmd.GuildID != "" {
				scope = cmd.GuildID
			}
			log.Info("Deleted command", "name", cmd.Name, "id", cmd.ID, "scope", scope)
		}
	}

	log.Info("Done cleaning up commands!")
	return nil
}
