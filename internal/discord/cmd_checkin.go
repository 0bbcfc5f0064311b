package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// CheckInCommand returns the daily check-in command definition and handler
func CheckInCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "checkin",
		Description: "Claim your daily check-in reward",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		userID := ResolveUserID(i)
		res, err := client.CheckIn(userID)
		if err != nil {
			slog.Error("Failed to check in", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if res.AlreadyDone {
			respondError(s, i, formatRejection(MsgAlreadyDoneToday, res.Favor, res.Marbles))
			return
		}

		description := fmt.Sprintf("You gained %s favor and %s marbles.\n\n%s",
			fmtSigned(res.FavorDelta), fmtSigned(res.MarbleDelta),
			formatBalances(res.Favor, res.Marbles))
		description += formatDrop(res.Drop)
		description = withSaveWarning(description, res.PersistedOK)

		sendEmbed(s, i, createEmbed("📅 Checked In!", description, ColorCheckIn))
	}

	return cmd, handler
}

// ExtraCheckInCommand returns the rated extra check-in command definition and handler
func ExtraCheckInCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "extra-checkin",
		Description: "A second daily check-in with a graded reward",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		userID := ResolveUserID(i)
		res, err := client.ExtraCheckIn(userID)
		if err != nil {
			slog.Error("Failed to extra check in", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if res.AlreadyDone {
			respondError(s, i, formatRejection(MsgAlreadyDoneToday, res.Favor, res.Marbles))
			return
		}

		description := fmt.Sprintf("Today's grade: **%s**\nYou gained %s favor and %s marbles.\n\n%s",
			res.RatingLabel, fmtSigned(res.FavorDelta), fmtSigned(res.MarbleDelta),
			formatBalances(res.Favor, res.Marbles))
		description = withSaveWarning(description, res.PersistedOK)

		sendEmbed(s, i, createEmbed("✨ Extra Check-In", description, ColorCheckIn))
	}

	return cmd, handler
}
