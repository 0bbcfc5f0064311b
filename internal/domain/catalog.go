package domain

// RarityTier identifies a collectible rarity category.
type RarityTier string

// Rarity tier constants, in fallback priority order (see TierFallbackOrder)
const (
	TierCommon  RarityTier = "common"
	TierRare    RarityTier = "rare"
	TierUltra   RarityTier = "ultra"
	TierSpecial RarityTier = "special"
)

// TierFallbackOrder is the fixed priority in which a drop attempt searches
// tiers once its chosen tier is exhausted.
var TierFallbackOrder = []RarityTier{TierCommon, TierRare, TierUltra, TierSpecial}

// RewardTier maps a rating id to a marble reward range. Loaded once at
// startup, never mutated.
type RewardTier struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	MarbleMin int    `json:"marble_min"`
	MarbleMax int    `json:"marble_max"`
	// Weight is the tier's share when the rating itself is drawn at
	// random. Weights within a group need not sum to any fixed total.
	Weight int `json:"weight"`
}

// Collectible is a static catalog entry a user can obtain at most once.
type Collectible struct {
	ID           string     `json:"id"`
	Tier         RarityTier `json:"tier"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	FavorReward  int        `json:"favor_reward"`
	MarbleReward int        `json:"marble_reward"`
	// Mythic marks the single designated ultra-rare entry gated by an
	// independent low-probability roll.
	Mythic bool `json:"mythic,omitempty"`
}

// AchievementKind distinguishes total-count thresholds from per-tier
// completion achievements.
type AchievementKind string

const (
	AchievementKindTotal        AchievementKind = "total"
	AchievementKindTierComplete AchievementKind = "tier_complete"
)

// Achievement is a one-shot grant triggered by collection progress.
type Achievement struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Kind         AchievementKind `json:"kind"`
	Threshold    int             `json:"threshold,omitempty"`
	Tier         RarityTier      `json:"tier,omitempty"`
	FavorReward  int             `json:"favor_reward"`
	MarbleReward int             `json:"marble_reward"`
}
