package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nekosui/petbot/internal/domain"
	"github.com/nekosui/petbot/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateID   = errors.New("duplicate catalog id")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// rewardTiersConfig is the JSON shape of reward_tiers.json
type rewardTiersConfig struct {
	Version string                         `json:"version"`
	Groups  map[string][]domain.RewardTier `json:"groups"`
}

// collectiblesConfig is the JSON shape of collectibles.json
type collectiblesConfig struct {
	Version      string               `json:"version"`
	Collectibles []domain.Collectible `json:"collectibles"`
}

// achievementsConfig is the JSON shape of achievements.json
type achievementsConfig struct {
	Version      string               `json:"version"`
	Achievements []domain.Achievement `json:"achievements"`
}

// Load reads, schema-validates and cross-checks the catalog files under dir.
// The resulting Catalog is read-only for the process lifetime.
func Load(dir string) (*Catalog, error) {
	sv := validation.NewSchemaValidator()

	var tiersCfg rewardTiersConfig
	if err := loadFile(sv, dir, RewardTiersFile, RewardTiersSchemaFile, &tiersCfg); err != nil {
		return nil, err
	}

	var collCfg collectiblesConfig
	if err := loadFile(sv, dir, CollectiblesFile, CollectiblesSchemaFile, &collCfg); err != nil {
		return nil, err
	}

	var achCfg achievementsConfig
	if err := loadFile(sv, dir, AchievementsFile, AchievementsSchemaFile, &achCfg); err != nil {
		return nil, err
	}

	return New(tiersCfg.Groups, collCfg.Collectibles, achCfg.Achievements)
}

func loadFile(sv validation.SchemaValidator, dir, file, schemaFile string, out interface{}) error {
	path := filepath.Join(dir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	if err := sv.ValidateBytes(data, filepath.Join(dir, schemaFile)); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return nil
}

// New cross-checks the parsed tables and assembles the lookup maps.
// Load is the usual entry point; New is exposed for callers that already
// hold the tables in memory.
func New(groups map[string][]domain.RewardTier, collectibles []domain.Collectible, achievements []domain.Achievement) (*Catalog, error) {
	c := &Catalog{
		ratingGroups: make(map[string][]domain.RewardTier),
		ratingIndex:  make(map[string]map[string]domain.RewardTier),
		collectibles: make(map[domain.RarityTier][]domain.Collectible),
		byID:         make(map[string]domain.Collectible),
	}

	for group, tiers := range groups {
		if len(tiers) == 0 {
			return nil, fmt.Errorf("%w: rating group %q is empty", ErrInvalidConfig, group)
		}
		index := make(map[string]domain.RewardTier, len(tiers))
		for _, t := range tiers {
			if _, dup := index[t.ID]; dup {
				return nil, fmt.Errorf("%w: rating %q in group %q", ErrDuplicateID, t.ID, group)
			}
			if t.MarbleMin > t.MarbleMax {
				return nil, fmt.Errorf("%w: rating %q has min > max", ErrInvalidConfig, t.ID)
			}
			if t.Weight <= 0 {
				return nil, fmt.Errorf("%w: rating %q has non-positive weight", ErrInvalidConfig, t.ID)
			}
			index[t.ID] = t
		}
		c.ratingGroups[group] = tiers
		c.ratingIndex[group] = index
	}

	mythicSeen := false
	for _, col := range collectibles {
		if _, dup := c.byID[col.ID]; dup {
			return nil, fmt.Errorf("%w: collectible %q", ErrDuplicateID, col.ID)
		}
		switch col.Tier {
		case domain.TierCommon, domain.TierRare, domain.TierUltra, domain.TierSpecial:
		default:
			return nil, fmt.Errorf("%w: collectible %q has unknown tier %q", ErrInvalidConfig, col.ID, col.Tier)
		}
		if col.Mythic {
			if mythicSeen {
				return nil, fmt.Errorf("%w: more than one mythic collectible", ErrInvalidConfig)
			}
			mythicSeen = true
			c.mythic = col
		}
		c.byID[col.ID] = col
		c.collectibles[col.Tier] = append(c.collectibles[col.Tier], col)
	}
	if !mythicSeen {
		return nil, fmt.Errorf("%w: no mythic collectible designated", ErrInvalidConfig)
	}

	lastTotal := 0
	seenAch := make(map[string]bool, len(achievements))
	for _, a := range achievements {
		if seenAch[a.ID] {
			return nil, fmt.Errorf("%w: achievement %q", ErrDuplicateID, a.ID)
		}
		seenAch[a.ID] = true
		switch a.Kind {
		case domain.AchievementKindTotal:
			if a.Threshold <= lastTotal {
				return nil, fmt.Errorf("%w: total achievements must have ascending thresholds", ErrInvalidConfig)
			}
			lastTotal = a.Threshold
		case domain.AchievementKindTierComplete:
			if len(c.collectibles[a.Tier]) == 0 {
				return nil, fmt.Errorf("%w: achievement %q targets empty tier %q", ErrInvalidConfig, a.ID, a.Tier)
			}
		default:
			return nil, fmt.Errorf("%w: achievement %q has unknown kind %q", ErrInvalidConfig, a.ID, a.Kind)
		}
	}
	c.achievements = achievements

	return c, nil
}
