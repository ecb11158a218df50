package config

import (
	crypto "crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"reply-bot/pkg/aws/s3"
	"reply-bot/pkg/aws/ssm"
	"reply-bot/pkg/discord"
	customError "reply-bot/pkg/errors"
)

const (
	EnvConfigPath = "CONFIG_PATH"
	EnvLogLevel   = "LOG_LEVEL"

	EnvBotToken         = "DISCORD_TOKEN"
	EnvBotTokenParam    = "DISCORD_TOKEN_PARAM"
	EnvApplicationID    = "CLIENT_ID"
	EnvGuildID          = "GUILD_ID"
	EnvPublicKey        = "PUBLIC_KEY"
	EnvRegisterCommands = "REGISTER_COMMANDS"
	EnvSignatureMaxAge  = "SIGNATURE_MAX_AGE"
	EnvPort             = "PORT"
	EnvTracingEnabled   = "TRACING_ENABLED"

	EnvEmbedColor         = "EMBED_COLOR"
	EnvEmbedTitle         = "EMBED_TITLE"
	EnvEmbedAuthorName    = "EMBED_AUTHOR_NAME"
	EnvEmbedAuthorIconURL = "EMBED_AUTHOR_ICON_URL"
	EnvEmbedFooterText    = "EMBED_FOOTER_TEXT"
	EnvEmbedFooterIconURL = "EMBED_FOOTER_ICON_URL"
	EnvEmbedTimestamp     = "EMBED_TIMESTAMP"

	maxColor = 0xFFFFFF
)

// Environment variable to config key
var envKeys = map[string]string{
	EnvBotToken:           "discord.token",
	EnvBotTokenParam:      "discord.token_param",
	EnvApplicationID:      "discord.application_id",
	EnvGuildID:            "discord.guild_id",
	EnvPublicKey:          "discord.public_key",
	EnvRegisterCommands:   "discord.register_commands",
	EnvSignatureMaxAge:    "discord.signature_max_age",
	EnvPort:               "server.port",
	EnvTracingEnabled:     "tracing.enabled",
	EnvEmbedColor:         "embed.color",
	EnvEmbedTitle:         "embed.title",
	EnvEmbedAuthorName:    "embed.author.name",
	EnvEmbedAuthorIconURL: "embed.author.icon_url",
	EnvEmbedFooterText:    "embed.footer.text",
	EnvEmbedFooterIconURL: "embed.footer.icon_url",
	EnvEmbedTimestamp:     "embed.timestamp",
}

var defaults = map[string]interface{}{
	"server.port":               8080,
	"discord.register_commands": true,
	"embed.color":               0x00FF00,
	"embed.title":               "Mensagem Replicada",
	"embed.timestamp":           true,
}

// Config is loaded once at startup and must be treated as read-only afterwards.
type Config struct {
	Logger *zap.Logger
	Settings

	publicKey crypto.PublicKey

	paramStore  ssm.ClientIFace
	objectStore s3.ClientIFace
}

type Settings struct {
	Discord DiscordConfig `koanf:"discord"`
	Server  ServerConfig  `koanf:"server"`
	Embed   EmbedConfig   `koanf:"embed"`
	Tracing TracingConfig `koanf:"tracing"`
}

type DiscordConfig struct {
	Token            string        `koanf:"token"`
	TokenParam       string        `koanf:"token_param"`
	ApplicationID    string        `koanf:"application_id"`
	GuildID          string        `koanf:"guild_id"`
	PublicKey        string        `koanf:"public_key"`
	RegisterCommands bool          `koanf:"register_commands"`
	SignatureMaxAge  time.Duration `koanf:"signature_max_age"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// EmbedConfig holds the static styling of reply embeds.
type EmbedConfig struct {
	Color     int         `koanf:"color"`
	Title     string      `koanf:"title"`
	Author    EmbedAuthor `koanf:"author"`
	Footer    EmbedFooter `koanf:"footer"`
	Timestamp bool        `koanf:"timestamp"`
}

type EmbedAuthor struct {
	Name    string `koanf:"name"`
	IconURL string `koanf:"icon_url"`
}

type EmbedFooter struct {
	Text    string `koanf:"text"`
	IconURL string `koanf:"icon_url"`
}

type TracingConfig struct {
	Enabled bool `koanf:"enabled"`
}

func New() *Config {
	return &Config{
		Logger:      NewLogger(),
		paramStore:  ssm.New(),
		objectStore: s3.New(),
	}
}

func NewLogger() *zap.Logger {
	logCfg := zap.NewProductionConfig()
	logCfg.DisableStacktrace = true
	if lvl, err := zapcore.ParseLevel(os.Getenv(EnvLogLevel)); err == nil {
		logCfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, _ := logCfg.Build()
	return logger
}

// Load reads defaults, the optional config file and the environment, in increasing precedence.
func (c *Config) Load() error {
	k := koanf.New(".")

	if location := os.Getenv(EnvConfigPath); location != "" {
		if err := c.loadConfigFile(k, location); err != nil {
			return fmt.Errorf("could not load config file [%s]: %w", location, err)
		}
	}

	// Unknown or empty variables are skipped
	if err := k.Load(env.ProviderWithValue("", ".", func(key string, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return envKeys[key], value
	}), nil); err != nil {
		return err
	}

	for key, val := range defaults {
		if !k.Exists(key) {
			_ = k.Set(key, val)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return err
	}
	c.Settings = s

	return c.validate()
}

// PublicKey returns the decoded interaction signing key.
func (c *Config) PublicKey() crypto.PublicKey {
	return c.publicKey
}

func (c *Config) loadConfigFile(k *koanf.Koanf, location string) error {
	if !s3.IsURL(location) {
		return k.Load(file.Provider(location), yaml.Parser())
	}

	bucket, key, err := s3.ParseURL(location)
	if err != nil {
		return err
	}
	if err := c.objectStore.Connect(); err != nil {
		return err
	}
	data, err := c.objectStore.Get(bucket, key)
	if err != nil {
		return err
	}
	return k.Load(rawBytes(data), yaml.Parser())
}

func (c *Config) resolveToken() error {
	if err := c.paramStore.Connect(); err != nil {
		return err
	}
	token, err := c.paramStore.GetParameter(c.Discord.TokenParam)
	if err != nil {
		return err
	}
	c.Discord.Token = token
	return nil
}

func (c *Config) validate() error {
	var err error

	// Fetch bot token from parameter store when not given directly
	if c.Discord.Token == "" && c.Discord.TokenParam != "" {
		if tokenErr := c.resolveToken(); tokenErr != nil {
			err = multierr.Append(err, fmt.Errorf("could not read bot token parameter [%s]: %w", c.Discord.TokenParam, tokenErr))
		}
	}

	if c.Discord.Token == "" || c.Discord.ApplicationID == "" || c.Discord.PublicKey == "" {
		err = multierr.Append(err, customError.MissingEnvErr{EnvMap: map[string]string{
			EnvBotToken:      c.Discord.Token,
			EnvApplicationID: c.Discord.ApplicationID,
			EnvPublicKey:     c.Discord.PublicKey,
		}})
	}

	if c.Discord.PublicKey != "" {
		publicKey, keyErr := discord.DecodePublicKey(c.Discord.PublicKey)
		if keyErr != nil {
			err = multierr.Append(err, fmt.Errorf("invalid public key: %w", keyErr))
		}
		c.publicKey = publicKey
	}

	if c.Discord.SignatureMaxAge < 0 {
		err = multierr.Append(err, fmt.Errorf("signature max age must not be negative: [%s]", c.Discord.SignatureMaxAge))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("invalid port: [%d]", c.Server.Port))
	}
	if c.Embed.Color < 0 || c.Embed.Color > maxColor {
		err = multierr.Append(err, fmt.Errorf("embed color out of range: [%#x]", c.Embed.Color))
	}

	return err
}

// rawBytes is a koanf provider for config data already held in memory.
type rawBytes []byte

func (r rawBytes) ReadBytes() ([]byte, error) {
	return r, nil
}

func (r rawBytes) Read() (map[string]interface{}, error) {
	return nil, errors.New("raw bytes provider does not support Read")
}
