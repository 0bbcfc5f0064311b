// Package reward draws tier-weighted random rewards. Every reward-granting
// command funnels through the Sampler so the global clamp and the
// independence of bonus rolls live in one place.
package reward

import (
	"github.com/nekosui/petbot/internal/domain"
)

// Sampler draws rewards from reward tiers. The random sources are
// injectable for tests.
type Sampler struct {
	randInt   func(min, max int) int // uniform inclusive
	randFloat func() float64         // uniform [0,1)
}

// NewSampler creates a sampler backed by the default random sources.
func NewSampler() *Sampler {
	return &Sampler{
		randInt:   RandomInt,
		randFloat: RandomFloat,
	}
}

// NewSamplerWithSource creates a sampler with explicit random sources.
// Tests pass deterministic functions here.
func NewSamplerWithSource(randInt func(min, max int) int, randFloat func() float64) *Sampler {
	return &Sampler{randInt: randInt, randFloat: randFloat}
}

// TierReward draws uniformly from the tier's marble range, inclusive, then
// clamps the result to the global bound. Tiers may define ranges straddling
// the bound; the clamp is applied after drawing, never assumed.
func (s *Sampler) TierReward(tier domain.RewardTier) int {
	roll := s.randInt(tier.MarbleMin, tier.MarbleMax)
	return ClampTierDelta(roll)
}

// IndependentBonus returns amount with probability p, otherwise 0. Each call
// consumes its own entropy; callers may chain several independent rolls in
// one command without them sharing state.
func (s *Sampler) IndependentBonus(p float64, amount int) int {
	if s.Hit(p) {
		return amount
	}
	return 0
}

// Hit reports a Bernoulli trial with probability p. p <= 0 never hits,
// p >= 1 always hits.
func (s *Sampler) Hit(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.randFloat() < p
}

// Range draws uniformly from [min, max] inclusive without clamping. Used
// for flat reward ranges that are not tier-driven (check-in, feeding).
func (s *Sampler) Range(min, max int) int {
	return s.randInt(min, max)
}

// RollIndex returns a uniform integer in [0, n). Used for unweighted picks
// such as choosing among unobtained collectibles.
func (s *Sampler) RollIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return s.randInt(0, n-1)
}

// ClampTierDelta bounds a tier-driven marble delta to the system-wide
// range. Fixed bonus awards are added after clamping and are not themselves
// clamped.
func ClampTierDelta(v int) int {
	if v > domain.MaxTierRewardMagnitude {
		return domain.MaxTierRewardMagnitude
	}
	if v < -domain.MaxTierRewardMagnitude {
		return -domain.MaxTierRewardMagnitude
	}
	return v
}
