package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// DivineCommand returns the daily divination command definition and handler
func DivineCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "divine",
		Description: "Pay a marble fee and draw today's fortune grade",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		userID := ResolveUserID(i)
		res, err := client.Divine(userID)
		if err != nil {
			slog.Error("Failed to divine", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if res.AlreadyDone {
			respondError(s, i, formatRejection(MsgAlreadyDoneToday, res.Favor, res.Marbles))
			return
		}

		var b strings.Builder
		fmt.Fprintf(&b, "The signs reveal: **%s**\n\n", res.RatingLabel)
		fmt.Fprintf(&b, "Fee: %s marbles\nReward: %s marbles, %s favor",
			fmtSigned(-res.FeeCharged), fmtSigned(res.MarbleDelta), fmtSigned(res.FavorDelta))
		if res.Jackpot != 0 {
			fmt.Fprintf(&b, "\n🎉 **Jackpot!** %s bonus marbles", fmtSigned(res.Jackpot))
		}
		fmt.Fprintf(&b, "\n\n%s", formatBalances(res.Favor, res.Marbles))

		description := withSaveWarning(b.String(), res.PersistedOK)
		sendEmbed(s, i, createEmbed("🔮 Divination", description, ColorDivine))
	}

	return cmd, handler
}
