package petgame

import "time"

// Check-in reward ranges (flat rolls, daily gated)
const (
	CheckInFavorMin  = 0
	CheckInFavorMax  = 30
	CheckInMarbleMin = 0
	CheckInMarbleMax = 30
	// CheckInDropChance is the egg-drop side-effect probability
	CheckInDropChance = 0.15
)

// Feeding (rolling cooldown)
const (
	FeedFavorMin   = 1
	FeedFavorMax   = 10
	FeedCooldown   = time.Hour
	FeedDropChance = 0.08
)

// Divination (daily gated, fee charged after the gate and before the roll)
const (
	DivineFee           = 20
	DivineFavorMin      = 1
	DivineFavorMax      = 10
	DivineJackpotRating = "daji"
	DivineJackpotChance = 0.10
	// DivineJackpotBonus is a fixed award, added after the tier clamp
	DivineJackpotBonus = 999
)

// Fortune (ungated)
const (
	FortuneMin        = 0
	FortuneMax        = 100
	FortuneFavorGain  = 1
	FortuneBonusValue = 300
)

// Extra check-in (daily gated, distinct action from check-in)
const (
	ExtraCheckInFavorMin = 1
	ExtraCheckInFavorMax = 10
)

// Collectible drop staging probabilities
const (
	MythicChance             = 0.005
	SpecialChanceInteractive = 0.05
	SpecialChancePassive     = 0.02
)

// Rarity weights for the normal drop stage (out of their sum)
const (
	RarityWeightCommon = 80
	RarityWeightRare   = 19
	RarityWeightUltra  = 1
)

// Progress summary cache
const (
	ProgressCacheSize = 1024
	ProgressCacheTTL  = time.Minute
)
