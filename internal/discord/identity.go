package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NamePseudoIDPrefix marks identities derived from a display name rather
// than a snowflake. These are unstable across renames and only exist so a
// malformed interaction still maps to some account instead of failing.
const NamePseudoIDPrefix = "name:"

// ResolveUserID returns a stable identity string for an interaction.
// The resolution order is: member user ID, direct user ID, then a
// pseudo-id derived from whatever display name is available. The last
// fallback is a known limitation and is logged at the call sites that
// care; snowflake IDs are always preferred.
func ResolveUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil && i.Member.User.ID != "" {
		return i.Member.User.ID
	}
	if i.User != nil && i.User.ID != "" {
		return i.User.ID
	}

	name := ""
	switch {
	case i.Member != nil && i.Member.Nick != "":
		name = i.Member.Nick
	case i.Member != nil && i.Member.User != nil:
		name = i.Member.User.Username
	case i.User != nil:
		name = i.User.Username
	}
	return NamePseudoIDPrefix + normalizeName(name)
}

// normalizeName folds a display name into a canonical pseudo-id form so
// the same name always derives the same identity regardless of case,
// width variants or stray whitespace.
func normalizeName(name string) string {
	name = norm.NFKC.String(name)
	name = cases.Fold().String(name)
	return strings.Join(strings.Fields(name), "-")
}
