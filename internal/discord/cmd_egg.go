package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// EggCommand returns the direct collectible drop command definition and handler
func EggCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "egg",
		Description: "Try your luck at finding a collectible egg",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		userID := ResolveUserID(i)
		res, err := client.Drop(userID, true)
		if err != nil {
			slog.Error("Failed to attempt drop", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		color := ColorDrop
		description := formatDropBody(res.Outcome)
		if description == "" {
			description = MsgNoDrop
		}
		if res.Outcome != nil && res.Outcome.Collectible != nil && res.Outcome.Collectible.Mythic {
			color = ColorMythic
		}

		description += "\n\n" + formatBalances(res.Favor, res.Marbles)
		description = withSaveWarning(description, res.PersistedOK)

		sendEmbed(s, i, createEmbed("🥚 Egg Hunt", description, color))
	}

	return cmd, handler
}
