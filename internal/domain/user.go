package domain

import "time"

// UserAccount holds the persisted economy state for one user identity.
// Accounts are created lazily on first command and never deleted.
type UserAccount struct {
	UserID  string `json:"user_id"`
	Favor   int    `json:"favor"`
	Marbles int    `json:"marbles"`

	// DailyMarks records the calendar date (YYYY-MM-DD) on which a
	// once-per-day action last succeeded.
	DailyMarks map[string]string `json:"daily_marks,omitempty"`

	// Cooldowns records the last successful use of rolling-window actions.
	Cooldowns map[string]time.Time `json:"cooldowns,omitempty"`

	// Collected maps a rarity tier to the sorted list of collectible ids
	// the user owns. An id appears at most once across all tiers.
	Collected map[RarityTier][]string `json:"collected,omitempty"`

	// Achievements lists granted achievement ids in grant order.
	Achievements []string `json:"achievements,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewUserAccount returns a zeroed account for the given identity.
func NewUserAccount(userID string, now time.Time) *UserAccount {
	return &UserAccount{
		UserID:    userID,
		CreatedAt: now.UTC(),
	}
}

// HasCollected reports whether the user already owns the given id in tier.
func (a *UserAccount) HasCollected(tier RarityTier, id string) bool {
	for _, owned := range a.Collected[tier] {
		if owned == id {
			return true
		}
	}
	return false
}

// CollectedInTier returns the number of ids owned in the given tier.
func (a *UserAccount) CollectedInTier(tier RarityTier) int {
	return len(a.Collected[tier])
}

// TotalCollected returns the number of ids owned across all tiers.
func (a *UserAccount) TotalCollected() int {
	total := 0
	for _, ids := range a.Collected {
		total += len(ids)
	}
	return total
}

// HasAchievement reports whether the achievement id was already granted.
func (a *UserAccount) HasAchievement(id string) bool {
	for _, granted := range a.Achievements {
		if granted == id {
			return true
		}
	}
	return false
}
