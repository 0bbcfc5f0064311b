package config

// Environment variable names
const (
	EnvPort        = "PORT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvEnvironment = "ENVIRONMENT"
	EnvAPIKey      = "API_KEY"
	EnvStatePath   = "STATE_PATH"
	EnvConfigDir   = "CONFIG_DIR"
	EnvTimezone    = "TIMEZONE"

	EnvDiscordToken = "DISCORD_TOKEN"
	EnvDiscordAppID = "DISCORD_APP_ID"
	EnvAPIURL       = "API_URL"
)

// Default values
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultStatePath   = "data/petbot_state.json"
	DefaultConfigDir   = "configs"
	DefaultTimezone    = "Asia/Shanghai"
	DefaultAPIURL      = "http://localhost:8080"
)
