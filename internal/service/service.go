package service

import (
	"context"

	"go.uber.org/zap"

	"reply-bot/internal/config"
	"reply-bot/internal/discord/bot"
	"reply-bot/internal/discord/command"
)

const loggerName = "service"

// Registrar publishes the command catalogue to Discord.
type Registrar interface {
	Connect() error
	Register() error
}

type Server interface {
	Run(ctx context.Context) error
}

var (
	_ Registrar = (*command.Client)(nil)
	_ Server    = (*bot.BotServer)(nil)
)

type Service struct {
	cfg    *config.Config
	logger *zap.Logger

	registrar Registrar
	botServer Server
}

func New(cfg *config.Config) *Service {
	return &Service{
		cfg:    cfg,
		logger: cfg.Logger.Named(loggerName),

		registrar: command.New(cfg),
		botServer: bot.New(cfg),
	}
}

// Run registers commands when enabled, then serves until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Discord.RegisterCommands {
		RegisterCommands(s.logger, s.registrar)
	}

	err := s.botServer.Run(ctx)
	s.logger.Info("discord bot closed")
	return err
}

// RegisterCommands waits for registration to finish and logs a failure instead of
// returning it, so a registration outage never keeps the bot from serving.
func RegisterCommands(logger *zap.Logger, registrar Registrar) {
	if err := registrar.Connect(); err != nil {
		logger.Error("could not connect to discord", zap.Error(err))
		return
	}
	if err := registrar.Register(); err != nil {
		logger.Error("could not register commands", zap.Error(err))
		return
	}
	logger.Info("commands registered")
}
