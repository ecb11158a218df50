package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"reply-bot/internal/config"
	"reply-bot/pkg/discord"
)

const (
	loggerName = "cmd-register"

	removeFailErrorFormat = "following commands failed to remove: %s"
)

type Client struct {
	logger *zap.Logger

	appId   string
	guildId string
	token   string

	discordSession discord.SessionIFace
}

func New(cfg *config.Config) *Client {
	return &Client{
		logger:  cfg.Logger.Named(loggerName),
		appId:   cfg.Discord.ApplicationID,
		guildId: cfg.Discord.GuildID,
		token:   cfg.Discord.Token,
	}
}

// WithGuild scopes registration to a single guild. An empty id means global commands.
func (c *Client) WithGuild(guildId string) *Client {
	c.guildId = guildId
	return c
}

func (c *Client) Connect() error {
	discordSession, err := discordgo.New(fmt.Sprintf(discord.BotTokenFormat, c.token))
	if err != nil {
		return err
	}
	c.discordSession = discordSession
	return nil
}

// Register overwrites the application's commands with Commands. Discord treats the
// overwrite as an upsert by name, so repeating it never creates duplicates.
func (c *Client) Register() error {
	cmds := Commands()
	c.logger.Info("registering commands",
		zap.Int("TotalCommands", len(cmds)),
		zap.String("guild", c.guildId),
	)

	registered, err := c.discordSession.ApplicationCommandBulkOverwrite(c.appId, c.guildId, cmds)
	if err != nil {
		return fmt.Errorf("could not register commands: %w", err)
	}

	c.logger.Info("all commands were registered successfully", zap.Int("TotalCommands", len(registered)))
	return nil
}

func (c *Client) Clear() error {
	// Get all currently registered commands
	cmds, err := c.discordSession.ApplicationCommands(c.appId, c.guildId)
	if err != nil {
		return err
	}

	// Delete each command
	c.logger.Info("removing commands", zap.Int("TotalCommands", len(cmds)))
	fails := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		err := c.discordSession.ApplicationCommandDelete(c.appId, c.guildId, cmd.ID)
		if err != nil {
			c.logger.Error("could not delete command", zap.Error(err), zap.String("cmd", cmd.Name))
			fails = append(fails, cmd.Name)
		}
	}
	if len(fails) > 0 {
		return fmt.Errorf(removeFailErrorFormat, fails)
	}

	c.logger.Info("all commands were removed successfully")
	return nil
}
