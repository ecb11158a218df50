package config

import (
	crypto "crypto/ed25519"
	"encoding/hex"

	"go.uber.org/zap"
)

const (
	// Mock discord application data
	MockBotToken      = "bottoken"
	MockApplicationID = "appId"
)

// NewTestConfig returns a loaded config that verifies against publicKey, without reading the environment.
func NewTestConfig(publicKey crypto.PublicKey) *Config {
	return &Config{
		Logger: zap.NewNop(),
		Settings: Settings{
			Discord: DiscordConfig{
				Token:            MockBotToken,
				ApplicationID:    MockApplicationID,
				PublicKey:        hex.EncodeToString(publicKey),
				RegisterCommands: true,
			},
			Server: ServerConfig{Port: 8080},
			Embed: EmbedConfig{
				Color:     0x00FF00,
				Title:     "Mensagem Replicada",
				Timestamp: true,
			},
		},
		publicKey: publicKey,
	}
}
