package domain

// Action name constants for gated commands
const (
	ActionCheckIn      = "checkin"
	ActionFeed         = "feed"
	ActionDivine       = "divine"
	ActionExtraCheckIn = "extra_checkin"

	// Ungated actions, named for metrics and logging only
	ActionFortune = "fortune"
	ActionEggDrop = "egg_drop"
)

// Rating group constants for the reward tables
const (
	RatingGroupDivination   = "divination"
	RatingGroupExtraCheckIn = "extra_checkin"
)

// MaxTierRewardMagnitude bounds the tier-driven component of any marble
// delta. The clamp applies to the sampled roll only; fixed bonus awards
// (jackpot, mythic, fortune boundary) are added after clamping.
const MaxTierRewardMagnitude = 266

// Drop context constants
const (
	DropContextInteractive = "interactive"
	DropContextPassive     = "passive"
)

// Schema version for the persisted state document
const StateSchemaVersion = "1.0"
