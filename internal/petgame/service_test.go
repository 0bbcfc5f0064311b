package petgame

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekosui/petbot/internal/catalog"
	"github.com/nekosui/petbot/internal/domain"
	"github.com/nekosui/petbot/internal/reward"
	"github.com/nekosui/petbot/internal/store"
)

// script replays queued random values. Exhausted queues fall back to the
// range minimum and a high float so no accidental bonus rolls fire.
type script struct {
	ints   []int
	floats []float64
}

func (s *script) int(min, max int) int {
	if len(s.ints) == 0 {
		return min
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v
}

func (s *script) float() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		map[string][]domain.RewardTier{
			domain.RatingGroupDivination: {
				{ID: "daji", Label: "大吉", MarbleMin: 300, MarbleMax: 300, Weight: 1},
				{ID: "daxiong", Label: "大凶", MarbleMin: -300, MarbleMax: -300, Weight: 1},
			},
			domain.RatingGroupExtraCheckIn: {
				{ID: "sss", Label: "SSS", MarbleMin: 100, MarbleMax: 100, Weight: 1},
			},
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
			{ID: "complete_common", Title: "Commons Done", Kind: domain.AchievementKindTierComplete, Tier: domain.TierCommon, FavorReward: 60},
		},
	)
	require.NoError(t, err)
	return cat
}

func newTestService(t *testing.T, sc *script) Service {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, st.Load(context.Background()))
	sampler := reward.NewSamplerWithSource(sc.int, sc.float)
	return NewService(st, newTestCatalog(t), sampler, time.UTC)
}

func TestCheckIn_DailyGate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// favor roll 12, marble roll 20, drop roll misses
	svc := newTestService(t, &script{ints: []int{12, 20}, floats: []float64{0.9}})

	res, err := svc.CheckIn(ctx, "alice", now)
	require.NoError(t, err)
	assert.False(t, res.AlreadyDone)
	assert.Equal(t, 12, res.FavorDelta)
	assert.Equal(t, 20, res.MarbleDelta)
	assert.Equal(t, 12, res.Favor)
	assert.Equal(t, 20, res.Marbles)
	assert.Nil(t, res.Drop)
	assert.True(t, res.PersistedOK)

	// Same calendar day: rejected with no state change
	res, err = svc.CheckIn(ctx, "alice", now.Add(5*time.Hour))
	require.NoError(t, err)
	assert.True(t, res.AlreadyDone)
	assert.Equal(t, 12, res.Favor)
	assert.Equal(t, 20, res.Marbles)

	// Next day passes again
	res, err = svc.CheckIn(ctx, "alice", now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.False(t, res.AlreadyDone)
}

func TestCheckIn_DropSideEffect(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// favor 10, marble 10, then: drop chance hits (0.1 < 0.15), special
	// stage misses, mythic misses, rarity roll 0 -> common, pick index 0.
	svc := newTestService(t, &script{
		ints:   []int{10, 10, 0, 0},
		floats: []float64{0.1, 0.9, 0.9},
	})

	res, err := svc.CheckIn(ctx, "alice", now)
	require.NoError(t, err)
	require.NotNil(t, res.Drop)
	require.NotNil(t, res.Drop.Collectible)
	assert.Equal(t, "c1", res.Drop.Collectible.ID)
	assert.Equal(t, 5, res.Drop.FavorDelta)
	assert.Equal(t, 10, res.Drop.MarbleDelta)

	// Balances include the check-in roll plus the drop reward
	assert.Equal(t, 15, res.Favor)
	assert.Equal(t, 20, res.Marbles)
}

func TestFeed_Cooldown(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	svc := newTestService(t, &script{ints: []int{5}, floats: []float64{0.9}})

	res, err := svc.Feed(ctx, "bob", now)
	require.NoError(t, err)
	assert.Zero(t, res.CooldownRemaining)
	assert.Equal(t, 5, res.FavorDelta)
	assert.Equal(t, 5, res.Favor)

	// Within the window the command soft-rejects and mutates nothing
	res, err = svc.Feed(ctx, "bob", now.Add(15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, res.CooldownRemaining)
	assert.Zero(t, res.FavorDelta)
	assert.Equal(t, 5, res.Favor)

	// After the window it succeeds again
	res, err = svc.Feed(ctx, "bob", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, res.CooldownRemaining)
}

func TestDivine_FeeAndClamp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// rating roll 1 -> daxiong, tier roll -300 (clamped to -266), favor 3.
	// daxiong never rolls the jackpot.
	svc := newTestService(t, &script{ints: []int{1, -300, 3}})

	res, err := svc.Divine(ctx, "carol", now)
	require.NoError(t, err)
	assert.False(t, res.AlreadyDone)
	assert.Equal(t, "daxiong", res.RatingID)
	assert.Equal(t, DivineFee, res.FeeCharged)
	assert.Equal(t, -266, res.MarbleDelta)
	assert.Zero(t, res.Jackpot)
	assert.Equal(t, 3, res.FavorDelta)

	// Marbles go negative: fee plus clamped loss, no floor applied
	assert.Equal(t, -20-266, res.Marbles)
	assert.Equal(t, 3, res.Favor)
}

func TestDivine_Jackpot(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// rating roll 0 -> daji, tier roll 300 (clamped to 266), jackpot roll
	// hits (0.05 < 0.10), favor 7. The jackpot is added after the clamp
	// and is not itself clamped.
	svc := newTestService(t, &script{ints: []int{0, 300, 7}, floats: []float64{0.05}})

	res, err := svc.Divine(ctx, "carol", now)
	require.NoError(t, err)
	assert.Equal(t, "daji", res.RatingID)
	assert.Equal(t, 266, res.MarbleDelta)
	assert.Equal(t, DivineJackpotBonus, res.Jackpot)
	assert.Equal(t, -DivineFee+266+DivineJackpotBonus, res.Marbles)

	// Second divination the same day is gated
	res, err = svc.Divine(ctx, "carol", now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, res.AlreadyDone)
	assert.Zero(t, res.FeeCharged)
}

func TestFortune_BoundaryBonus(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t, &script{ints: []int{100}})
	res, err := svc.Fortune(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, 100, res.Value)
	assert.Equal(t, FortuneBonusValue, res.Bonus)
	assert.Equal(t, FortuneFavorGain, res.Favor)
	assert.Equal(t, FortuneBonusValue, res.Marbles)

	svc = newTestService(t, &script{ints: []int{57}})
	res, err = svc.Fortune(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, 57, res.Value)
	assert.Zero(t, res.Bonus)
	assert.Zero(t, res.Marbles)
}

func TestExtraCheckIn(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// Single-tier group needs no rating entropy; tier roll 100, favor 4
	svc := newTestService(t, &script{ints: []int{100, 4}})

	res, err := svc.ExtraCheckIn(ctx, "erin", now)
	require.NoError(t, err)
	assert.False(t, res.AlreadyDone)
	assert.Equal(t, "sss", res.RatingID)
	assert.Equal(t, "SSS", res.RatingLabel)
	assert.Equal(t, 100, res.MarbleDelta)
	assert.Equal(t, 4, res.FavorDelta)

	res, err = svc.ExtraCheckIn(ctx, "erin", now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, res.AlreadyDone)
}

func TestDrop_MythicRoll(t *testing.T) {
	ctx := context.Background()

	// Special stage misses (0.9 >= 0.05), mythic roll hits (0.001 < 0.005)
	svc := newTestService(t, &script{floats: []float64{0.9, 0.001}})

	res, err := svc.AttemptCollectibleDrop(ctx, "frank", true)
	require.NoError(t, err)
	require.NotNil(t, res.Outcome.Collectible)
	assert.Equal(t, "egg_mythic_phoenix", res.Outcome.Collectible.ID)
	assert.True(t, res.Outcome.Collectible.Mythic)
	assert.Equal(t, 300, res.Outcome.FavorDelta)
	assert.Equal(t, 999, res.Outcome.MarbleDelta)
	assert.Equal(t, 300, res.Favor)
	assert.Equal(t, 999, res.Marbles)
}

func TestDrop_MythicOnlyOnce(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t, &script{floats: []float64{0.9, 0.001}})
	res, err := svc.AttemptCollectibleDrop(ctx, "frank", true)
	require.NoError(t, err)
	require.True(t, res.Outcome.Collectible.Mythic)

	// Owned mythic: the mythic stage is skipped entirely, the normal
	// weighted stage runs instead.
	s := svc.(*service)
	s.sampler = reward.NewSamplerWithSource(
		(&script{ints: []int{0, 0}}).int,
		(&script{floats: []float64{0.9, 0.001}}).float,
	)
	res, err = svc.AttemptCollectibleDrop(ctx, "frank", true)
	require.NoError(t, err)
	require.NotNil(t, res.Outcome.Collectible)
	assert.Equal(t, "c1", res.Outcome.Collectible.ID)
}

func TestDrop_AchievementGrants(t *testing.T) {
	ctx := context.Background()

	// Two common drops cross the collector_2 and complete_common
	// thresholds on the second acquisition.
	svc := newTestService(t, &script{
		ints:   []int{0, 0, 0, 0},
		floats: []float64{0.9, 0.9, 0.9, 0.9},
	})

	res, err := svc.AttemptCollectibleDrop(ctx, "gina", false)
	require.NoError(t, err)
	assert.Empty(t, res.Outcome.Achievements)

	res, err = svc.AttemptCollectibleDrop(ctx, "gina", false)
	require.NoError(t, err)
	require.Len(t, res.Outcome.Achievements, 2)
	assert.Equal(t, "collector_2", res.Outcome.Achievements[0].ID)
	assert.Equal(t, "complete_common", res.Outcome.Achievements[1].ID)

	// Drop rewards plus both achievement bonuses
	assert.Equal(t, 5+5+50+60, res.Favor)
}

func TestDrop_ExhaustedCollection(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t, &script{})
	s := svc.(*service)

	acc := s.ledger.GetOrCreate("hank", time.Now())
	acc.Collected = map[domain.RarityTier][]string{
		domain.TierCommon:  {"c1", "c2"},
		domain.TierRare:    {"r1"},
		domain.TierUltra:   {"u1"},
		domain.TierSpecial: {"egg_mythic_phoenix", "s1"},
	}

	res, err := svc.AttemptCollectibleDrop(ctx, "hank", true)
	require.NoError(t, err)
	assert.Nil(t, res.Outcome.Collectible)
	assert.True(t, res.Outcome.Exhausted)
	assert.Zero(t, res.Outcome.FavorDelta)
	assert.Zero(t, res.Favor)
	assert.True(t, res.PersistedOK)
}

func TestGetBalance_UnknownUserReadsZero(t *testing.T) {
	svc := newTestService(t, &script{})

	res, err := svc.GetBalance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, res.Favor)
	assert.Zero(t, res.Marbles)
}

func TestGetCollectionProgress(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t, &script{
		ints:   []int{0, 0},
		floats: []float64{0.9, 0.9},
	})

	res, err := svc.GetCollectionProgress(ctx, "iris")
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Equal(t, 6, res.Capacity)
	assert.Equal(t, 2, res.PerTier[domain.TierCommon].Capacity)

	// A drop invalidates the cached summary
	_, err = svc.AttemptCollectibleDrop(ctx, "iris", false)
	require.NoError(t, err)

	res, err = svc.GetCollectionProgress(ctx, "iris")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.PerTier[domain.TierCommon].Collected)
}

func TestConcurrentCommandsAcrossUsers(t *testing.T) {
	ctx := context.Background()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, st.Load(ctx))
	svc := NewService(st, newTestCatalog(t), reward.NewSampler(), time.UTC)

	// Each command persists the whole document, so one user's save marshals
	// every other user's account mid-command. Run under the race detector.
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	for u := 0; u < 8; u++ {
		userID := fmt.Sprintf("user-%d", u)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for day := 0; day < 20; day++ {
				_, err := svc.CheckIn(ctx, userID, base.AddDate(0, 0, day))
				assert.NoError(t, err)
				_, err = svc.Fortune(ctx, userID)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	for u := 0; u < 8; u++ {
		res, err := svc.GetBalance(ctx, fmt.Sprintf("user-%d", u))
		require.NoError(t, err)
		assert.Positive(t, res.Favor)
	}
}

func TestCommands_RejectEmptyUserID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestService(t, &script{})

	_, err := svc.CheckIn(ctx, "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Divine(ctx, "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.GetBalance(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
