// Package petgame composes the reward-economy engine: every chat command is
// one synchronous method that gates, samples, mutates and persists as a
// single unit under the user's lock.
package petgame

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/nekosui/petbot/internal/achievement"
	"github.com/nekosui/petbot/internal/catalog"
	"github.com/nekosui/petbot/internal/collection"
	"github.com/nekosui/petbot/internal/concurrency"
	"github.com/nekosui/petbot/internal/domain"
	"github.com/nekosui/petbot/internal/ledger"
	"github.com/nekosui/petbot/internal/logger"
	"github.com/nekosui/petbot/internal/metrics"
	"github.com/nekosui/petbot/internal/reward"
	"github.com/nekosui/petbot/internal/store"
)

// Service is the synchronous command API exposed to host adapters.
type Service interface {
	CheckIn(ctx context.Context, userID string, now time.Time) (*CheckInResult, error)
	Feed(ctx context.Context, userID string, now time.Time) (*FeedResult, error)
	Divine(ctx context.Context, userID string, now time.Time) (*DivineResult, error)
	Fortune(ctx context.Context, userID string) (*FortuneResult, error)
	ExtraCheckIn(ctx context.Context, userID string, now time.Time) (*ExtraCheckInResult, error)
	AttemptCollectibleDrop(ctx context.Context, userID string, interactive bool) (*DropResult, error)
	GetBalance(ctx context.Context, userID string) (*BalanceResult, error)
	GetCollectionProgress(ctx context.Context, userID string) (*ProgressResult, error)
}

type service struct {
	store     store.Store
	ledger    *ledger.Ledger
	catalog   *catalog.Catalog
	sampler   *reward.Sampler
	registry  *collection.Registry
	evaluator *achievement.Evaluator
	locks     *concurrency.LockManager
	loc       *time.Location

	// dirty is set when a durable write failed after retry; the next
	// successful save clears it.
	dirty atomic.Bool

	progressCache *expirable.LRU[string, *ProgressResult]
}

// NewService wires the engine together. loc decides which calendar date a
// timestamp falls on for daily gates.
func NewService(st store.Store, cat *catalog.Catalog, sampler *reward.Sampler, loc *time.Location) Service {
	return &service{
		store:         st,
		ledger:        ledger.New(st),
		catalog:       cat,
		sampler:       sampler,
		registry:      collection.NewRegistry(cat, sampler),
		evaluator:     achievement.NewEvaluator(cat),
		locks:         concurrency.NewLockManager(),
		loc:           loc,
		progressCache: expirable.NewLRU[string, *ProgressResult](ProgressCacheSize, nil, ProgressCacheTTL),
	}
}

// validateUserID rejects requests without a subject before any state is
// touched.
func validateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: empty user id", domain.ErrInvalidInput)
	}
	return nil
}

// CheckIn grants the daily flat favor/marble roll, with an egg-drop side
// effect.
func (s *service) CheckIn(ctx context.Context, userID string, now time.Time) (*CheckInResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	res := &CheckInResult{}

	err := s.locks.WithLock(userID, func() error {
		acc := s.ledger.GetOrCreate(userID, now)

		err := s.store.Update(func() error {
			today := ledger.Today(now, s.loc)
			if err := s.ledger.CheckAndMarkDailyAction(acc, domain.ActionCheckIn, today); err != nil {
				if errors.Is(err, domain.ErrAlreadyDoneToday) {
					res.AlreadyDone = true
					res.Favor, res.Marbles = acc.Favor, acc.Marbles
					return nil
				}
				return err
			}

			res.FavorDelta = s.sampler.Range(CheckInFavorMin, CheckInFavorMax)
			res.MarbleDelta = s.sampler.Range(CheckInMarbleMin, CheckInMarbleMax)
			s.ledger.ApplyDelta(acc, res.FavorDelta, res.MarbleDelta)

			// Secondary, independent effect: a failed drop never alters the
			// reward already granted above.
			if s.sampler.Hit(CheckInDropChance) {
				res.Drop = s.runDrop(ctx, acc, false)
			}

			res.Favor, res.Marbles = acc.Favor, acc.Marbles
			return nil
		})
		if err != nil {
			return err
		}

		if res.AlreadyDone {
			res.PersistedOK = true
			metrics.CommandsTotal.WithLabelValues(domain.ActionCheckIn, metrics.OutcomeAlreadyDone).Inc()
			return nil
		}
		res.PersistedOK = s.persist(ctx)
		s.recordCommand(domain.ActionCheckIn, metrics.OutcomeOK, res.FavorDelta, res.MarbleDelta)
		log.Info("Check-in complete", "user", userID, "favor_delta", res.FavorDelta, "marble_delta", res.MarbleDelta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Feed grants a small favor roll on a rolling one-hour cooldown, with a
// lower egg-drop chance.
func (s *service) Feed(ctx context.Context, userID string, now time.Time) (*FeedResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	res := &FeedResult{}

	err := s.locks.WithLock(userID, func() error {
		acc := s.ledger.GetOrCreate(userID, now)

		err := s.store.Update(func() error {
			if err := s.ledger.CheckAndConsumeCooldown(acc, domain.ActionFeed, now, FeedCooldown); err != nil {
				var gate ledger.ErrOnCooldown
				if !errors.As(err, &gate) {
					return err
				}
				res.CooldownRemaining = gate.Remaining
				res.Favor, res.Marbles = acc.Favor, acc.Marbles
				return nil
			}

			res.FavorDelta = s.sampler.Range(FeedFavorMin, FeedFavorMax)
			s.ledger.ApplyDelta(acc, res.FavorDelta, 0)

			if s.sampler.Hit(FeedDropChance) {
				res.Drop = s.runDrop(ctx, acc, false)
			}

			res.Favor, res.Marbles = acc.Favor, acc.Marbles
			return nil
		})
		if err != nil {
			return err
		}

		if res.CooldownRemaining > 0 {
			res.PersistedOK = true
			metrics.CommandsTotal.WithLabelValues(domain.ActionFeed, metrics.OutcomeOnCooldown).Inc()
			return nil
		}
		res.PersistedOK = s.persist(ctx)
		s.recordCommand(domain.ActionFeed, metrics.OutcomeOK, res.FavorDelta, 0)
		log.Info("Feed complete", "user", userID, "favor_delta", res.FavorDelta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Divine charges the fee, draws a daily fortune grade and applies the
// clamped tier roll plus an independent jackpot on the top grade. The fee is
// charged only after the gate passes; marbles may legitimately go negative.
func (s *service) Divine(ctx context.Context, userID string, now time.Time) (*DivineResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	res := &DivineResult{}

	err := s.locks.WithLock(userID, func() error {
		acc := s.ledger.GetOrCreate(userID, now)

		err := s.store.Update(func() error {
			today := ledger.Today(now, s.loc)
			if err := s.ledger.CheckAndMarkDailyAction(acc, domain.ActionDivine, today); err != nil {
				if errors.Is(err, domain.ErrAlreadyDoneToday) {
					res.AlreadyDone = true
					res.Favor, res.Marbles = acc.Favor, acc.Marbles
					return nil
				}
				return err
			}

			res.FeeCharged = DivineFee
			s.ledger.ApplyDelta(acc, 0, -DivineFee)

			ratingID, err := s.catalog.SampleRating(domain.RatingGroupDivination, s.sampler.RollIndex)
			if err != nil {
				return err
			}
			rating, err := s.catalog.TierOf(domain.RatingGroupDivination, ratingID)
			if err != nil {
				return err
			}
			res.RatingID, res.RatingLabel = rating.ID, rating.Label

			res.MarbleDelta = s.sampler.TierReward(rating)
			if rating.ID == DivineJackpotRating {
				res.Jackpot = s.sampler.IndependentBonus(DivineJackpotChance, DivineJackpotBonus)
			}
			res.FavorDelta = s.sampler.Range(DivineFavorMin, DivineFavorMax)
			s.ledger.ApplyDelta(acc, res.FavorDelta, res.MarbleDelta+res.Jackpot)

			res.Favor, res.Marbles = acc.Favor, acc.Marbles
			return nil
		})
		if err != nil {
			// Internal invariant violation, not a user-facing state.
			log.Error("Divination roll failed", "user", userID, "error", err)
			return err
		}

		if res.AlreadyDone {
			res.PersistedOK = true
			metrics.CommandsTotal.WithLabelValues(domain.ActionDivine, metrics.OutcomeAlreadyDone).Inc()
			return nil
		}
		res.PersistedOK = s.persist(ctx)
		s.recordCommand(domain.ActionDivine, metrics.OutcomeOK, res.FavorDelta, res.MarbleDelta+res.Jackpot-DivineFee)
		log.Info("Divination complete", "user", userID, "rating", res.RatingID, "marble_delta", res.MarbleDelta, "jackpot", res.Jackpot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Fortune rolls a 0-100 value; exactly 0 or 100 pays a fixed marble bonus.
// Not gated.
func (s *service) Fortune(ctx context.Context, userID string) (*FortuneResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	res := &FortuneResult{}

	err := s.locks.WithLock(userID, func() error {
		now := time.Now()
		acc := s.ledger.GetOrCreate(userID, now)

		err := s.store.Update(func() error {
			res.Value = s.sampler.Range(FortuneMin, FortuneMax)
			if res.Value == FortuneMin || res.Value == FortuneMax {
				res.Bonus = FortuneBonusValue
			}
			s.ledger.ApplyDelta(acc, FortuneFavorGain, res.Bonus)

			res.Favor, res.Marbles = acc.Favor, acc.Marbles
			return nil
		})
		if err != nil {
			return err
		}

		res.PersistedOK = s.persist(ctx)
		s.recordCommand(domain.ActionFortune, metrics.OutcomeOK, FortuneFavorGain, res.Bonus)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ExtraCheckIn draws a rated (SSS..F) daily bonus, gated separately from the
// plain check-in.
func (s *service) ExtraCheckIn(ctx context.Context, userID string, now time.Time) (*ExtraCheckInResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	res := &ExtraCheckInResult{}

	err := s.locks.WithLock(userID, func() error {
		acc := s.ledger.GetOrCreate(userID, now)

		err := s.store.Update(func() error {
			today := ledger.Today(now, s.loc)
			if err := s.ledger.CheckAndMarkDailyAction(acc, domain.ActionExtraCheckIn, today); err != nil {
				if errors.Is(err, domain.ErrAlreadyDoneToday) {
					res.AlreadyDone = true
					res.Favor, res.Marbles = acc.Favor, acc.Marbles
					return nil
				}
				return err
			}

			ratingID, err := s.catalog.SampleRating(domain.RatingGroupExtraCheckIn, s.sampler.RollIndex)
			if err != nil {
				return err
			}
			rating, err := s.catalog.TierOf(domain.RatingGroupExtraCheckIn, ratingID)
			if err != nil {
				return err
			}
			res.RatingID, res.RatingLabel = rating.ID, rating.Label

			res.MarbleDelta = s.sampler.TierReward(rating)
			res.FavorDelta = s.sampler.Range(ExtraCheckInFavorMin, ExtraCheckInFavorMax)
			s.ledger.ApplyDelta(acc, res.FavorDelta, res.MarbleDelta)

			res.Favor, res.Marbles = acc.Favor, acc.Marbles
			return nil
		})
		if err != nil {
			log.Error("Extra check-in roll failed", "user", userID, "error", err)
			return err
		}

		if res.AlreadyDone {
			res.PersistedOK = true
			metrics.CommandsTotal.WithLabelValues(domain.ActionExtraCheckIn, metrics.OutcomeAlreadyDone).Inc()
			return nil
		}
		res.PersistedOK = s.persist(ctx)
		s.recordCommand(domain.ActionExtraCheckIn, metrics.OutcomeOK, res.FavorDelta, res.MarbleDelta)
		log.Info("Extra check-in complete", "user", userID, "rating", res.RatingID, "marble_delta", res.MarbleDelta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AttemptCollectibleDrop runs one direct drop attempt. Interactive attempts
// get the higher special-category chance.
func (s *service) AttemptCollectibleDrop(ctx context.Context, userID string, interactive bool) (*DropResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	res := &DropResult{}

	err := s.locks.WithLock(userID, func() error {
		acc := s.ledger.GetOrCreate(userID, time.Now())

		err := s.store.Update(func() error {
			res.Outcome = s.runDrop(ctx, acc, interactive)
			res.Favor, res.Marbles = acc.Favor, acc.Marbles
			return nil
		})
		if err != nil {
			return err
		}

		if res.Outcome.Collectible == nil {
			// Nothing mutated; nothing to persist.
			res.PersistedOK = true
			metrics.CommandsTotal.WithLabelValues(domain.ActionEggDrop, metrics.OutcomeOK).Inc()
			return nil
		}
		res.PersistedOK = s.persist(ctx)
		s.recordCommand(domain.ActionEggDrop, metrics.OutcomeOK, res.Outcome.FavorDelta, res.Outcome.MarbleDelta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetBalance is read-only; a user with no account reads as zero balances.
func (s *service) GetBalance(ctx context.Context, userID string) (*BalanceResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	res := &BalanceResult{}
	err := s.locks.WithLock(userID, func() error {
		if acc, ok := s.store.Peek(userID); ok {
			res.Favor, res.Marbles = acc.Favor, acc.Marbles
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.retryDirty(ctx)
	return res, nil
}

// GetCollectionProgress reports per-tier counts, totals and granted
// achievements. Summaries are cached briefly; any drop or grant invalidates
// the user's entry.
func (s *service) GetCollectionProgress(ctx context.Context, userID string) (*ProgressResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if cached, ok := s.progressCache.Get(userID); ok {
		return cached, nil
	}

	res := &ProgressResult{
		PerTier:      make(map[domain.RarityTier]TierProgress, len(domain.TierFallbackOrder)),
		Capacity:     s.catalog.TotalCapacity(),
		Achievements: []string{},
	}
	err := s.locks.WithLock(userID, func() error {
		acc, ok := s.store.Peek(userID)
		for _, tier := range domain.TierFallbackOrder {
			p := TierProgress{Capacity: s.catalog.TierCapacity(tier)}
			if ok {
				p.Collected = acc.CollectedInTier(tier)
			}
			res.PerTier[tier] = p
			res.Total += p.Collected
		}
		if ok {
			res.Achievements = append(res.Achievements, acc.Achievements...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.progressCache.Add(userID, res)
	return res, nil
}

// persist saves the document, retrying once. A second failure sets the
// dirty flag so the next command retries, and the caller can warn the user
// that results may not be saved.
func (s *service) persist(ctx context.Context) bool {
	log := logger.FromContext(ctx)

	err := s.store.Save(ctx)
	if err != nil {
		log.Warn("State save failed, retrying once", "error", err)
		err = s.store.Save(ctx)
	}
	if err != nil {
		metrics.PersistFailures.Inc()
		s.dirty.Store(true)
		log.Error("State save failed after retry", "error", err)
		return false
	}
	s.dirty.Store(false)
	return true
}

// retryDirty opportunistically re-persists after an earlier failure.
func (s *service) retryDirty(ctx context.Context) {
	if !s.dirty.Load() {
		return
	}
	if err := s.store.Save(ctx); err == nil {
		s.dirty.Store(false)
		logger.FromContext(ctx).Info("Dirty state flushed")
	}
}

func (s *service) recordCommand(action, outcome string, favorDelta, marbleDelta int) {
	metrics.CommandsTotal.WithLabelValues(action, outcome).Inc()
	if favorDelta > 0 {
		metrics.FavorGranted.WithLabelValues(action).Add(float64(favorDelta))
	}
	if marbleDelta > 0 {
		metrics.MarblesGranted.WithLabelValues(action).Add(float64(marbleDelta))
	}
}
