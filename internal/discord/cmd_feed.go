package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// FeedCommand returns the pet feeding command definition and handler
func FeedCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "feed",
		Description: "Feed the pet for a little favor",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		userID := ResolveUserID(i)
		res, err := client.Feed(userID)
		if err != nil {
			slog.Error("Failed to feed", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if res.CooldownRemaining > 0 {
			msg := fmt.Sprintf("%s\nWait for: **%s**", MsgCooldownActive, formatCooldown(res.CooldownRemaining))
			respondError(s, i, formatRejection(msg, res.Favor, res.Marbles))
			return
		}

		description := fmt.Sprintf("The pet munches happily. You gained %s favor.\n\n%s",
			fmtSigned(res.FavorDelta), formatBalances(res.Favor, res.Marbles))
		description += formatDrop(res.Drop)
		description = withSaveWarning(description, res.PersistedOK)

		sendEmbed(s, i, createEmbed("🍖 Fed!", description, ColorFeed))
	}

	return cmd, handler
}
