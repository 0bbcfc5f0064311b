package main

import (
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/nekosui/petbot/internal/config"
	"github.com/nekosui/petbot/internal/discord"
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	_ = godotenv.Load()

	setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	registerCommands(bot, commandFactories())

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Keep running, commands may already be registered
	}

	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger configures structured logging to stdout.
func setupLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
}

// loadConfig loads and validates Discord bot configuration from environment variables.
func loadConfig() (discord.Config, error) {
	if err := config.ValidateEnv(config.RequiredBotEnvVars); err != nil {
		return discord.Config{}, err
	}

	token := os.Getenv(config.EnvDiscordToken)
	appID := os.Getenv(config.EnvDiscordAppID)

	apiURL := os.Getenv(config.EnvAPIURL)
	if apiURL == "" {
		apiURL = config.DefaultAPIURL
	}
	slog.Info("Configured API URL", "url", apiURL)

	apiKey := os.Getenv(config.EnvAPIKey)
	if apiKey == "" {
		slog.Warn("API_KEY not set, discord bot requests may fail")
	}

	return discord.Config{
		Token:  token,
		AppID:  appID,
		APIURL: apiURL,
		APIKey: apiKey,
	}, nil
}

// commandFactories returns all available Discord command factories.
// This provides a single place to see and manage the registered commands.
func commandFactories() []CommandFactory {
	return []CommandFactory{
		discord.PingCommand,
		discord.ProfileCommand,
		discord.CollectionCommand,

		// Daily commands
		discord.CheckInCommand,
		discord.ExtraCheckInCommand,
		discord.DivineCommand,

		// Repeatable commands
		discord.FeedCommand,
		discord.FortuneCommand,
		discord.EggCommand,
	}
}

// registerCommands registers all provided command factories with the bot's registry.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}
