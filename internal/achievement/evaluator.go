// Package achievement evaluates collection-progress thresholds and applies
// one-shot bonus grants.
package achievement

import (
	"github.com/nekosui/petbot/internal/catalog"
	"github.com/nekosui/petbot/internal/domain"
)

// Evaluator tests the achievement table against a user's collection counts.
type Evaluator struct {
	catalog *catalog.Catalog
}

// NewEvaluator creates an evaluator over the given catalog.
func NewEvaluator(cat *catalog.Catalog) *Evaluator {
	return &Evaluator{catalog: cat}
}

// EvaluateAndGrant tests every not-yet-granted achievement against the
// user's current counts, grants those satisfied and applies their rewards
// directly to the account balances. Multiple thresholds crossed by one
// acquisition are all granted, reported in table definition order.
// Re-evaluating after a grant never re-grants.
func (e *Evaluator) EvaluateAndGrant(acc *domain.UserAccount) []domain.Achievement {
	var granted []domain.Achievement

	total := acc.TotalCollected()
	for _, a := range e.catalog.Achievements() {
		if acc.HasAchievement(a.ID) {
			continue
		}
		if !e.satisfied(acc, a, total) {
			continue
		}
		acc.Achievements = append(acc.Achievements, a.ID)
		acc.Favor += a.FavorReward
		acc.Marbles += a.MarbleReward
		granted = append(granted, a)
	}

	return granted
}

func (e *Evaluator) satisfied(acc *domain.UserAccount, a domain.Achievement, total int) bool {
	switch a.Kind {
	case domain.AchievementKindTotal:
		return total >= a.Threshold
	case domain.AchievementKindTierComplete:
		return acc.CollectedInTier(a.Tier) >= e.catalog.TierCapacity(a.Tier)
	default:
		return false
	}
}
