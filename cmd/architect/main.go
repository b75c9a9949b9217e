// Server Architect is a Discord bot that designs and rebuilds guilds through
// an LLM-driven DM dialogue.
//
// A guild administrator types /start, the bot opens a DM conversation, and
// once the dialogue converges the bot wipes and recreates the guild's roles,
// categories and channels according to the agreed configuration.
//
// Usage:
//
//	export DISCORD_TOKEN="your-bot-token"
//	export OPENAI_API_KEY="your-api-key"
//	go run .
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"

	"architect/internal/architect"
	"architect/internal/brain"
	"architect/internal/builder"
	"architect/internal/config"
	"architect/internal/conversation"
	"architect/internal/discord"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Infof("No .env file found, relying on the environment: %+v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %s\n", err)
		os.Exit(1)
	}

	// One discordgo session is shared by the sarah adapter, the guild
	// builder and the /start command surface.
	adapterConfig := discord.NewConfig()
	adapterConfig.Token = cfg.DiscordToken
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create Discord session: %s\n", err)
		os.Exit(1)
	}
	session.Identify.Intents = adapterConfig.Intents

	brainConfig := brain.NewConfig()
	brainConfig.APIKey = cfg.OpenAIKey
	brainConfig.Model = cfg.Model
	brainConfig.Temperature = cfg.Temperature
	brainConfig.BaseURL = cfg.BaseURL
	brainConfig.Timeout = cfg.BrainTimeout
	client, err := brain.NewClient(brainConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create chat client: %s\n", err)
		os.Exit(1)
	}

	store := conversation.NewStore()
	driver := architect.NewDriver(store, client, builder.New(session), session)

	// The /start application command lives outside the sarah message flow:
	// it arrives as an interaction, not a message.
	start := discord.NewStartCommand(session, driver, architect.Greeting, cfg.CommandGuildID)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		if err := start.Register(r.User.ID); err != nil {
			logger.Errorf("Failed to register the start command: %+v", err)
		}
	})
	session.AddHandler(start.Handle)

	adapter, err := discord.NewAdapter(adapterConfig, discord.WithSession(session))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create adapter: %s\n", err)
		os.Exit(1)
	}

	storage := sarah.NewUserContextStorage(sarah.NewCacheConfig())
	bot := sarah.NewBot(adapter, sarah.BotWithStorage(storage))
	sarah.RegisterBot(bot)
	sarah.RegisterCommandProps(architect.NewCommandProps(driver))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sarah.Run(ctx, sarah.NewConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run: %s\n", err)
		os.Exit(1)
	}

	logger.Infof("Bot is running. Press Ctrl+C to stop.")

	<-ctx.Done()

	logger.Infof("Shutting down...")
}
