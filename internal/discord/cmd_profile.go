package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/nekosui/petbot/internal/domain"
)

// ProfileCommand returns the balance profile command definition and handler
func ProfileCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "profile",
		Description: "Show your favor and marble balances",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		res, err := client.Balance(ResolveUserID(i))
		if err != nil {
			slog.Error("Failed to get balance", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		name := "Your profile"
		if user != nil {
			name = user.Username
		}
		description := fmt.Sprintf("**%s**\n\n%s", name, formatBalances(res.Favor, res.Marbles))
		sendEmbed(s, i, createEmbed("👤 Profile", description, ColorProfile))
	}

	return cmd, handler
}

// CollectionCommand returns the collection progress command definition and handler
func CollectionCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "collection",
		Description: "Show your collectible progress per rarity",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		res, err := client.Progress(ResolveUserID(i))
		if err != nil {
			slog.Error("Failed to get collection progress", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		var b strings.Builder
		for _, tier := range domain.TierFallbackOrder {
			p := res.PerTier[tier]
			fmt.Fprintf(&b, "%s: **%d / %d**\n", tierDisplayName(tier), p.Collected, p.Capacity)
		}
		fmt.Fprintf(&b, "\nTotal: **%d / %d**", res.Total, res.Capacity)
		if len(res.Achievements) > 0 {
			fmt.Fprintf(&b, "\n🏅 Achievements: **%d**", len(res.Achievements))
		}
		if res.Total == res.Capacity {
			b.WriteString("\n\n" + MsgCollectionComplete)
		}

		sendEmbed(s, i, createEmbed("📚 Collection", b.String(), ColorProfile))
	}

	return cmd, handler
}

// tierDisplayName maps a rarity tier to its embed label.
func tierDisplayName(tier domain.RarityTier) string {
	switch tier {
	case domain.TierCommon:
		return "⚪ Common"
	case domain.TierRare:
		return "🔵 Rare"
	case domain.TierUltra:
		return "🟣 Ultra"
	case domain.TierSpecial:
		return "🟡 Special"
	default:
		return string(tier)
	}
}
