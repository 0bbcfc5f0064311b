package catalog

import (
	"fmt"

	"github.com/nekosui/petbot/internal/domain"
)

// Catalog holds the static reward tables, collectible catalog and
// achievement table. Initialized at startup and never mutated.
type Catalog struct {
	ratingGroups map[string][]domain.RewardTier
	ratingIndex  map[string]map[string]domain.RewardTier
	collectibles map[domain.RarityTier][]domain.Collectible
	byID         map[string]domain.Collectible
	mythic       domain.Collectible
	achievements []domain.Achievement
}

// TierOf resolves a rating id within a group. An unknown id is a programming
// error for internally generated ratings; callers abort the command.
func (c *Catalog) TierOf(group, ratingID string) (domain.RewardTier, error) {
	index, ok := c.ratingIndex[group]
	if !ok {
		return domain.RewardTier{}, fmt.Errorf("%w: group %q", domain.ErrUnknownRating, group)
	}
	tier, ok := index[ratingID]
	if !ok {
		return domain.RewardTier{}, fmt.Errorf("%w: %q in group %q", domain.ErrUnknownRating, ratingID, group)
	}
	return tier, nil
}

// RatingGroup returns the ordered tier list of a rating group.
func (c *Catalog) RatingGroup(group string) ([]domain.RewardTier, error) {
	tiers, ok := c.ratingGroups[group]
	if !ok {
		return nil, fmt.Errorf("%w: group %q", domain.ErrUnknownRating, group)
	}
	return tiers, nil
}

// SampleRating draws a rating id from a group weighted by the configured
// weights. roll(n) must return a uniform integer in [0, n). Callers resolve
// the drawn id to its table row through TierOf.
func (c *Catalog) SampleRating(group string, roll func(n int) int) (string, error) {
	tiers, err := c.RatingGroup(group)
	if err != nil {
		return "", err
	}

	total := 0
	for _, t := range tiers {
		total += t.Weight
	}

	r := roll(total)
	for _, t := range tiers {
		r -= t.Weight
		if r < 0 {
			return t.ID, nil
		}
	}
	// Unreachable when weights are positive; guarded by the loader.
	return tiers[len(tiers)-1].ID, nil
}

// CollectiblesInTier returns the catalog entries of a rarity tier in file order.
func (c *Catalog) CollectiblesInTier(tier domain.RarityTier) []domain.Collectible {
	return c.collectibles[tier]
}

// Collectible looks up a catalog entry by id. An id absent from the catalog
// means the persisted state and the shipped catalog disagree.
func (c *Catalog) Collectible(id string) (domain.Collectible, error) {
	col, ok := c.byID[id]
	if !ok {
		return domain.Collectible{}, fmt.Errorf("%w: %q", domain.ErrUnknownCollectible, id)
	}
	return col, nil
}

// Mythic returns the single designated mythic collectible.
func (c *Catalog) Mythic() domain.Collectible {
	return c.mythic
}

// TierCapacity returns the number of catalog ids in a tier.
func (c *Catalog) TierCapacity(tier domain.RarityTier) int {
	return len(c.collectibles[tier])
}

// TotalCapacity returns the number of catalog ids across all tiers.
func (c *Catalog) TotalCapacity() int {
	total := 0
	for _, cols := range c.collectibles {
		total += len(cols)
	}
	return total
}

// Achievements returns the achievement table in definition order.
func (c *Catalog) Achievements() []domain.Achievement {
	return c.achievements
}
