package config

import (
	"fmt"
	"os"
	"strings"
)

// RequiredEnvVars lists environment variables that must be set for the API
// server to start.
var RequiredEnvVars = []string{
	EnvAPIKey,
}

// RequiredBotEnvVars lists environment variables that must be set for the
// Discord adapter binary.
var RequiredBotEnvVars = []string{
	EnvDiscordToken,
	EnvDiscordAppID,
}

// ValidateEnv checks that all required environment variables are set
func ValidateEnv(required []string) error {
	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}
