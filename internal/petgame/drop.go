package petgame

import (
	"context"

	"github.com/nekosui/petbot/internal/domain"
	"github.com/nekosui/petbot/internal/logger"
	"github.com/nekosui/petbot/internal/metrics"
)

// runDrop performs one collectible drop attempt against a locked account.
// Staging: special-category roll first (exhausted special falls through),
// then the mythic roll against the single flagged id, then a weighted
// rarity pick with tier fallback. Full completion yields no collectible and
// no reward.
func (s *service) runDrop(ctx context.Context, acc *domain.UserAccount, interactive bool) *DropOutcome {
	log := logger.FromContext(ctx)
	out := &DropOutcome{}

	dropContext := domain.DropContextPassive
	if interactive {
		dropContext = domain.DropContextInteractive
	}

	col, ok := s.pickDrop(acc, interactive)
	if !ok {
		out.Exhausted = s.registry.FullyCompleted(acc)
		if out.Exhausted {
			log.Info("Drop attempt found collection complete", "user", acc.UserID)
		}
		return out
	}

	// Record before rewarding: a reward for an already-owned id would be a
	// contract violation.
	recorded, err := s.registry.Record(acc, col.Tier, col.ID)
	if err != nil {
		log.Error("Picked collectible not in catalog", "user", acc.UserID, "id", col.ID, "error", err)
		return out
	}
	if !recorded {
		log.Error("Picked collectible already owned", "user", acc.UserID, "id", col.ID)
		return out
	}

	s.ledger.ApplyDelta(acc, col.FavorReward, col.MarbleReward)
	out.Collectible = &col
	out.FavorDelta = col.FavorReward
	out.MarbleDelta = col.MarbleReward

	out.Achievements = s.evaluator.EvaluateAndGrant(acc)

	s.progressCache.Remove(acc.UserID)
	metrics.CollectibleDrops.WithLabelValues(string(col.Tier)).Inc()
	if n := len(out.Achievements); n > 0 {
		metrics.AchievementsGranted.Add(float64(n))
	}

	log.Info("Collectible dropped",
		"user", acc.UserID,
		"id", col.ID,
		"tier", col.Tier,
		"mythic", col.Mythic,
		"context", dropContext,
		"achievements", len(out.Achievements))
	return out
}

// pickDrop chooses the collectible for this attempt, or ok=false when no
// stage produced one.
func (s *service) pickDrop(acc *domain.UserAccount, interactive bool) (domain.Collectible, bool) {
	specialChance := SpecialChancePassive
	if interactive {
		specialChance = SpecialChanceInteractive
	}
	if s.sampler.Hit(specialChance) {
		if col, ok := s.registry.PickUnobtained(acc, domain.TierSpecial); ok {
			return col, true
		}
		// Special exhausted: fall through to the next stage rather than
		// failing the whole drop.
	}

	mythic := s.catalog.Mythic()
	if !acc.HasCollected(mythic.Tier, mythic.ID) && s.sampler.Hit(MythicChance) {
		return mythic, true
	}

	tier := s.sampleRarity()
	return s.registry.PickWithFallback(acc, tier, domain.TierFallbackOrder)
}

// sampleRarity draws the normal-stage rarity tier from the configured
// weights.
func (s *service) sampleRarity() domain.RarityTier {
	total := RarityWeightCommon + RarityWeightRare + RarityWeightUltra
	r := s.sampler.RollIndex(total)
	switch {
	case r < RarityWeightCommon:
		return domain.TierCommon
	case r < RarityWeightCommon+RarityWeightRare:
		return domain.TierRare
	default:
		return domain.TierUltra
	}
}
