package catalog

// Catalog file names, relative to the config directory
const (
	RewardTiersFile  = "reward_tiers.json"
	CollectiblesFile = "collectibles.json"
	AchievementsFile = "achievements.json"
)

// Schema file names, relative to the config directory
const (
	RewardTiersSchemaFile  = "schemas/reward_tiers.schema.json"
	CollectiblesSchemaFile = "schemas/collectibles.schema.json"
	AchievementsSchemaFile = "schemas/achievements.schema.json"
)
