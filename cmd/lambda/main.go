package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"reply-bot/internal/config"
	"reply-bot/internal/discord/command"
	discordlambda "reply-bot/internal/discord/lambda"
	"reply-bot/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.New()
	if err := cfg.Load(); err != nil {
		cfg.Logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Once per cold start
	if cfg.Discord.RegisterCommands {
		service.RegisterCommands(cfg.Logger, command.New(cfg))
	}

	lambda.Start(discordlambda.New(cfg).Handle)
}
