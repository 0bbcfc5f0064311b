// Package collection tracks which collectible ids a user owns per rarity
// tier. Deduplication is the core invariant: an id is recorded at most once
// and rewards are only granted for newly recorded ids.
package collection

import (
	"sort"

	"github.com/nekosui/petbot/internal/catalog"
	"github.com/nekosui/petbot/internal/domain"
	"github.com/nekosui/petbot/internal/reward"
)

// Registry answers pick/record/count queries against a user's collected
// sets. It holds no per-user state itself; accounts are passed in under the
// caller's lock.
type Registry struct {
	catalog *catalog.Catalog
	sampler *reward.Sampler
}

// NewRegistry creates a registry over the given catalog.
func NewRegistry(cat *catalog.Catalog, sampler *reward.Sampler) *Registry {
	return &Registry{catalog: cat, sampler: sampler}
}

// PickUnobtained returns a uniformly random catalog entry from the tier that
// the user does not own yet. ok is false when the tier is fully collected.
// The mythic entry is never picked here; it is obtainable only through its
// own independent roll.
func (r *Registry) PickUnobtained(acc *domain.UserAccount, tier domain.RarityTier) (domain.Collectible, bool) {
	var candidates []domain.Collectible
	for _, col := range r.catalog.CollectiblesInTier(tier) {
		if col.Mythic {
			continue
		}
		if !acc.HasCollected(tier, col.ID) {
			candidates = append(candidates, col)
		}
	}
	if len(candidates) == 0 {
		return domain.Collectible{}, false
	}
	return candidates[r.sampler.RollIndex(len(candidates))], true
}

// PickWithFallback tries the preferred tier first, then each tier of
// fallbackOrder in sequence, skipping the preferred tier when it reappears.
// ok is false only when every searched tier is fully collected.
func (r *Registry) PickWithFallback(acc *domain.UserAccount, preferred domain.RarityTier, fallbackOrder []domain.RarityTier) (domain.Collectible, bool) {
	if col, ok := r.PickUnobtained(acc, preferred); ok {
		return col, true
	}
	for _, tier := range fallbackOrder {
		if tier == preferred {
			continue
		}
		if col, ok := r.PickUnobtained(acc, tier); ok {
			return col, true
		}
	}
	return domain.Collectible{}, false
}

// Record adds the id to the user's collected set for the tier. Returns
// false without mutating when the id is already present, and an error when
// the id is not in the catalog at all. The collected slice stays sorted so
// serialization is deterministic.
func (r *Registry) Record(acc *domain.UserAccount, tier domain.RarityTier, id string) (bool, error) {
	if _, err := r.catalog.Collectible(id); err != nil {
		return false, err
	}
	if acc.HasCollected(tier, id) {
		return false, nil
	}
	if acc.Collected == nil {
		acc.Collected = make(map[domain.RarityTier][]string)
	}
	ids := append(acc.Collected[tier], id)
	sort.Strings(ids)
	acc.Collected[tier] = ids
	return true, nil
}

// Completed reports whether the user owns every catalog id in the tier.
func (r *Registry) Completed(acc *domain.UserAccount, tier domain.RarityTier) bool {
	return acc.CollectedInTier(tier) >= r.catalog.TierCapacity(tier)
}

// FullyCompleted reports whether the user owns every catalog id in every
// tier. A drop attempt against a fully completed collection is a valid,
// silent no-op.
func (r *Registry) FullyCompleted(acc *domain.UserAccount) bool {
	for _, tier := range domain.TierFallbackOrder {
		if !r.Completed(acc, tier) {
			return false
		}
	}
	return true
}
