package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// FortuneCommand returns the fortune roll command definition and handler
func FortuneCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "fortune",
		Description: "Roll a fortune value between 0 and 100",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		userID := ResolveUserID(i)
		res, err := client.Fortune(userID)
		if err != nil {
			slog.Error("Failed to roll fortune", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		description := fmt.Sprintf("Your fortune today: **%d** / 100", res.Value)
		if res.Bonus != 0 {
			description += fmt.Sprintf("\n🎯 **A perfect edge!** %s bonus marbles", fmtSigned(res.Bonus))
		}
		description += fmt.Sprintf("\n\n%s", formatBalances(res.Favor, res.Marbles))
		description = withSaveWarning(description, res.PersistedOK)

		sendEmbed(s, i, createEmbed("🎋 Fortune", description, ColorFortune))
	}

	return cmd, handler
}
