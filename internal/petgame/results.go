package petgame

import (
	"time"

	"github.com/nekosui/petbot/internal/domain"
)

// Every result carries the user's current balances, including on soft
// rejections, so a failed action never appears to lose information.

// CheckInResult is the outcome of the daily check-in command.
type CheckInResult struct {
	AlreadyDone bool         `json:"already_done"`
	FavorDelta  int          `json:"favor_delta"`
	MarbleDelta int          `json:"marble_delta"`
	Favor       int          `json:"favor"`
	Marbles     int          `json:"marbles"`
	Drop        *DropOutcome `json:"drop,omitempty"`
	PersistedOK bool         `json:"persisted_ok"`
}

// FeedResult is the outcome of the feeding command.
type FeedResult struct {
	// CooldownRemaining is non-zero on a soft rejection.
	CooldownRemaining time.Duration `json:"cooldown_remaining"`
	FavorDelta        int           `json:"favor_delta"`
	Favor             int           `json:"favor"`
	Marbles           int           `json:"marbles"`
	Drop              *DropOutcome  `json:"drop,omitempty"`
	PersistedOK       bool          `json:"persisted_ok"`
}

// DivineResult is the outcome of the daily divination command.
type DivineResult struct {
	AlreadyDone bool   `json:"already_done"`
	RatingID    string `json:"rating_id,omitempty"`
	RatingLabel string `json:"rating_label,omitempty"`
	FeeCharged  int    `json:"fee_charged"`
	FavorDelta  int    `json:"favor_delta"`
	// MarbleDelta is the clamped tier roll; Jackpot is the unclamped
	// fixed bonus, zero unless the independent roll hit.
	MarbleDelta int  `json:"marble_delta"`
	Jackpot     int  `json:"jackpot"`
	Favor       int  `json:"favor"`
	Marbles     int  `json:"marbles"`
	PersistedOK bool `json:"persisted_ok"`
}

// FortuneResult is the outcome of the fortune command.
type FortuneResult struct {
	Value       int  `json:"value"`
	Bonus       int  `json:"bonus"`
	Favor       int  `json:"favor"`
	Marbles     int  `json:"marbles"`
	PersistedOK bool `json:"persisted_ok"`
}

// ExtraCheckInResult is the outcome of the rated extra check-in command.
type ExtraCheckInResult struct {
	AlreadyDone bool   `json:"already_done"`
	RatingID    string `json:"rating_id,omitempty"`
	RatingLabel string `json:"rating_label,omitempty"`
	FavorDelta  int    `json:"favor_delta"`
	MarbleDelta int    `json:"marble_delta"`
	Favor       int    `json:"favor"`
	Marbles     int    `json:"marbles"`
	PersistedOK bool   `json:"persisted_ok"`
}

// DropOutcome describes one collectible drop attempt. Collectible is nil
// when nothing dropped; Exhausted marks the valid terminal state where every
// searched tier is fully collected.
type DropOutcome struct {
	Collectible  *domain.Collectible  `json:"collectible,omitempty"`
	FavorDelta   int                  `json:"favor_delta"`
	MarbleDelta  int                  `json:"marble_delta"`
	Achievements []domain.Achievement `json:"achievements,omitempty"`
	Exhausted    bool                 `json:"exhausted"`
}

// DropResult wraps a direct drop attempt with balances and persistence state.
type DropResult struct {
	Outcome     *DropOutcome `json:"outcome"`
	Favor       int          `json:"favor"`
	Marbles     int          `json:"marbles"`
	PersistedOK bool         `json:"persisted_ok"`
}

// BalanceResult reports current balances.
type BalanceResult struct {
	Favor   int `json:"favor"`
	Marbles int `json:"marbles"`
}

// TierProgress reports collection progress within one rarity tier.
type TierProgress struct {
	Collected int `json:"collected"`
	Capacity  int `json:"capacity"`
}

// ProgressResult reports collection progress and granted achievements.
type ProgressResult struct {
	PerTier      map[domain.RarityTier]TierProgress `json:"per_tier"`
	Total        int                                `json:"total"`
	Capacity     int                                `json:"capacity"`
	Achievements []string                           `json:"achievements"`
}
