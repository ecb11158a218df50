package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reply-bot/internal/config"
	"reply-bot/internal/discord/command"
)

var guildFlag string

var rootCmd = &cobra.Command{
	Use:          "register",
	Short:        "Register the bot's slash commands",
	Long:         "Overwrite the application's slash commands with the bot's catalogue, globally or for one guild",
	SilenceUsage: true,
	RunE:         runRegister,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&guildFlag, "guild", "", "Guild id to scope commands to (defaults to GUILD_ID)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRegister(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	return c.Register()
}

func newClient(cmd *cobra.Command) (*command.Client, error) {
	_ = godotenv.Load()

	cfg := config.New()
	if err := cfg.Load(); err != nil {
		cfg.Logger.Error("invalid configuration", zap.Error(err))
		return nil, err
	}

	c := command.New(cfg)
	if cmd.Flags().Changed("guild") {
		c.WithGuild(guildFlag)
	}
	if err := c.Connect(); err != nil {
		cfg.Logger.Error("could not connect to discord", zap.Error(err))
		return nil, err
	}
	return c, nil
}
