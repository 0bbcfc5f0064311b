package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/nekosui/petbot/internal/petgame"
)

// fmtSigned renders a delta with an explicit sign so gains and losses
// read unambiguously inside embeds.
func fmtSigned(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// formatBalances renders the standard balance line appended to every
// command embed.
func formatBalances(favor, marbles int) string {
	return fmt.Sprintf("💖 Favor: **%d** · 🔮 Marbles: **%d**", favor, marbles)
}

// formatRejection renders a soft-rejection notice. Rejections still carry
// the user's current balances.
func formatRejection(msg string, favor, marbles int) string {
	return msg + "\n\n" + formatBalances(favor, marbles)
}

// formatCooldown renders a remaining wait in a compact human form.
func formatCooldown(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// formatDrop renders a drop outcome as a trailing embed section, or an
// empty string when the attempt produced nothing worth mentioning.
func formatDrop(drop *petgame.DropOutcome) string {
	body := formatDropBody(drop)
	if body == "" {
		return ""
	}
	return "\n\n" + body
}

// formatDropBody renders the drop outcome itself, without surrounding
// spacing, for commands whose whole response is the drop.
func formatDropBody(drop *petgame.DropOutcome) string {
	if drop == nil {
		return ""
	}
	if drop.Exhausted {
		return MsgCollectionComplete
	}
	if drop.Collectible == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🥚 **New collectible!** %s (*%s*)\n%s",
		drop.Collectible.Title, drop.Collectible.Tier, drop.Collectible.Body)
	if drop.FavorDelta != 0 || drop.MarbleDelta != 0 {
		fmt.Fprintf(&b, "\nBonus: %s favor, %s marbles", fmtSigned(drop.FavorDelta), fmtSigned(drop.MarbleDelta))
	}
	for _, a := range drop.Achievements {
		fmt.Fprintf(&b, "\n🏅 **Achievement unlocked:** %s", a.Title)
	}
	return b.String()
}

// withSaveWarning appends the persistence warning when the write-behind
// save did not land. The reward already applied either way.
func withSaveWarning(desc string, persisted bool) string {
	if persisted {
		return desc
	}
	return desc + "\n\n" + MsgSaveWarning
}
