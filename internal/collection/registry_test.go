package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekosui/petbot/internal/catalog"
	"github.com/nekosui/petbot/internal/domain"
	"github.com/nekosui/petbot/internal/reward"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		map[string][]domain.RewardTier{
			"divination": {{ID: "daji", Label: "大吉", MarbleMin: 100, MarbleMax: 200, Weight: 5}},
		},
		[]domain.Collectible{
			{ID: "c1", Tier: domain.TierCommon, Title: "C1", FavorReward: 5, MarbleReward: 10},
			{ID: "c2", Tier: domain.TierCommon, Title: "C2", FavorReward: 5, MarbleReward: 10},
			{ID: "r1", Tier: domain.TierRare, Title: "R1", FavorReward: 10, MarbleReward: 30},
			{ID: "u1", Tier: domain.TierUltra, Title: "U1", FavorReward: 20, MarbleReward: 88},
			{ID: "s1", Tier: domain.TierSpecial, Title: "S1", FavorReward: 15, MarbleReward: 66},
			{ID: "egg_mythic_phoenix", Tier: domain.TierSpecial, Title: "Phoenix", Mythic: true, FavorReward: 300, MarbleReward: 999},
		},
		[]domain.Achievement{
			{ID: "collector_2", Title: "Collector", Kind: domain.AchievementKindTotal, Threshold: 2, FavorReward: 50},
		},
	)
	require.NoError(t, err)
	return cat
}

// indexSampler picks by a scripted sequence of indices.
func indexSampler(indices ...int) *reward.Sampler {
	i := 0
	return reward.NewSamplerWithSource(
		func(min, max int) int {
			v := indices[i%len(indices)]
			i++
			return v
		},
		func() float64 { return 0 },
	)
}

func newAccount(id string) *domain.UserAccount {
	return domain.NewUserAccount(id, time.Now())
}

func TestRecord_Dedupes(t *testing.T) {
	r := NewRegistry(newTestCatalog(t), indexSampler(0))
	acc := newAccount("alice")

	recorded, err := r.Record(acc, domain.TierCommon, "c1")
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = r.Record(acc, domain.TierCommon, "c1")
	require.NoError(t, err)
	assert.False(t, recorded)
	assert.Equal(t, []string{"c1"}, acc.Collected[domain.TierCommon])

	recorded, err = r.Record(acc, domain.TierCommon, "c2")
	require.NoError(t, err)
	assert.True(t, recorded)
	// Kept sorted for deterministic serialization
	assert.Equal(t, []string{"c1", "c2"}, acc.Collected[domain.TierCommon])
}

func TestRecord_UnknownID(t *testing.T) {
	r := NewRegistry(newTestCatalog(t), indexSampler(0))
	acc := newAccount("alice")

	recorded, err := r.Record(acc, domain.TierCommon, "no-such-egg")
	assert.ErrorIs(t, err, domain.ErrUnknownCollectible)
	assert.False(t, recorded)
	assert.Empty(t, acc.Collected[domain.TierCommon])
}

func TestPickUnobtained_SkipsOwned(t *testing.T) {
	r := NewRegistry(newTestCatalog(t), indexSampler(0))
	acc := newAccount("alice")

	r.Record(acc, domain.TierCommon, "c1")

	col, ok := r.PickUnobtained(acc, domain.TierCommon)
	require.True(t, ok)
	assert.Equal(t, "c2", col.ID)

	r.Record(acc, domain.TierCommon, "c2")

	_, ok = r.PickUnobtained(acc, domain.TierCommon)
	assert.False(t, ok)
}

func TestPickUnobtained_NeverPicksMythic(t *testing.T) {
	r := NewRegistry(newTestCatalog(t), indexSampler(0, 1))
	acc := newAccount("alice")

	// Only s1 and the mythic are special; the mythic must never surface
	// through the category pick, whatever the roll.
	for i := 0; i < 10; i++ {
		col, ok := r.PickUnobtained(acc, domain.TierSpecial)
		require.True(t, ok)
		assert.Equal(t, "s1", col.ID)
	}

	r.Record(acc, domain.TierSpecial, "s1")
	_, ok := r.PickUnobtained(acc, domain.TierSpecial)
	assert.False(t, ok)
}

func TestPickWithFallback(t *testing.T) {
	r := NewRegistry(newTestCatalog(t), indexSampler(0))
	acc := newAccount("alice")

	r.Record(acc, domain.TierCommon, "c1")
	r.Record(acc, domain.TierCommon, "c2")

	// Common exhausted: falls through to rare
	col, ok := r.PickWithFallback(acc, domain.TierCommon, domain.TierFallbackOrder)
	require.True(t, ok)
	assert.Equal(t, "r1", col.ID)

	r.Record(acc, domain.TierRare, "r1")
	r.Record(acc, domain.TierUltra, "u1")

	col, ok = r.PickWithFallback(acc, domain.TierUltra, domain.TierFallbackOrder)
	require.True(t, ok)
	assert.Equal(t, "s1", col.ID)
}

func TestPickWithFallback_Exhausted(t *testing.T) {
	r := NewRegistry(newTestCatalog(t), indexSampler(0))
	acc := newAccount("alice")

	for _, id := range []string{"c1", "c2"} {
		r.Record(acc, domain.TierCommon, id)
	}
	r.Record(acc, domain.TierRare, "r1")
	r.Record(acc, domain.TierUltra, "u1")
	r.Record(acc, domain.TierSpecial, "s1")

	// Everything but the mythic is owned: no pick, but also not fully
	// complete until the mythic lands.
	_, ok := r.PickWithFallback(acc, domain.TierCommon, domain.TierFallbackOrder)
	assert.False(t, ok)
	assert.False(t, r.FullyCompleted(acc))

	r.Record(acc, domain.TierSpecial, "egg_mythic_phoenix")
	assert.True(t, r.FullyCompleted(acc))
}

func TestCompleted_PerTier(t *testing.T) {
	r := NewRegistry(newTestCatalog(t), indexSampler(0))
	acc := newAccount("alice")

	assert.False(t, r.Completed(acc, domain.TierCommon))
	r.Record(acc, domain.TierCommon, "c1")
	assert.False(t, r.Completed(acc, domain.TierCommon))
	r.Record(acc, domain.TierCommon, "c2")
	assert.True(t, r.Completed(acc, domain.TierCommon))
}
