// Package ledger holds per-user balances and the gate bookkeeping for
// daily-limited and cooldown-limited actions. All mutations run under the
// caller's per-user lock; the ledger itself only enforces the
// reject-then-no-mutate ordering of the gates.
package ledger

import (
	"fmt"
	"time"

	"github.com/nekosui/petbot/internal/domain"
	"github.com/nekosui/petbot/internal/store"
)

// DateLayout is the calendar-date format recorded by daily gates.
const DateLayout = "2006-01-02"

// Ledger mutates balances and gate timestamps on accounts from the store.
type Ledger struct {
	store store.Store
}

// New creates a ledger over the given store.
func New(st store.Store) *Ledger {
	return &Ledger{store: st}
}

// GetOrCreate returns the user's account, creating a zeroed one on first
// access. Never fails.
func (l *Ledger) GetOrCreate(userID string, now time.Time) *domain.UserAccount {
	return l.store.Account(userID, now)
}

// ApplyDelta adds signed deltas to both balances. There is no floor on
// either balance; marbles in particular may go negative when a fee is
// charged before the offsetting reward.
func (l *Ledger) ApplyDelta(acc *domain.UserAccount, favorDelta, marbleDelta int) {
	acc.Favor += favorDelta
	acc.Marbles += marbleDelta
}

// CheckAndMarkDailyAction returns domain.ErrAlreadyDoneToday without
// mutating state when the action already succeeded on the given date.
// Otherwise it records the date and returns nil. Check and set are one step
// under the caller's lock so a reward can never be granted unmarked or
// marked ungranted.
func (l *Ledger) CheckAndMarkDailyAction(acc *domain.UserAccount, actionID, today string) error {
	if acc.DailyMarks[actionID] == today {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyDoneToday, actionID)
	}
	if acc.DailyMarks == nil {
		acc.DailyMarks = make(map[string]string)
	}
	acc.DailyMarks[actionID] = today
	return nil
}

// CheckAndConsumeCooldown records now and returns nil when the rolling
// window has elapsed; otherwise it returns an ErrOnCooldown carrying the
// remaining duration and does not mutate.
func (l *Ledger) CheckAndConsumeCooldown(acc *domain.UserAccount, actionID string, now time.Time, window time.Duration) error {
	last, ok := acc.Cooldowns[actionID]
	if remaining := remainingCooldown(now, last, ok, window); remaining > 0 {
		return ErrOnCooldown{Action: actionID, Remaining: remaining}
	}
	if acc.Cooldowns == nil {
		acc.Cooldowns = make(map[string]time.Time)
	}
	acc.Cooldowns[actionID] = now.UTC()
	return nil
}

// remainingCooldown computes how much of the window is left. Pure, for
// direct unit testing.
func remainingCooldown(now, last time.Time, used bool, window time.Duration) time.Duration {
	if !used {
		return 0
	}
	elapsed := now.Sub(last)
	if elapsed >= window {
		return 0
	}
	return window - elapsed
}

// Today formats now as a calendar date in the given location.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}
