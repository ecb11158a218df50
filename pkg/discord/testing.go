package discord

import (
	crypto "crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

const (
	SessionApplicationCommandBulkOverwriteMethod = "ApplicationCommandBulkOverwrite"
	SessionApplicationCommandsMethod             = "ApplicationCommands"
	SessionApplicationCommandDeleteMethod        = "ApplicationCommandDelete"

	testKeySeed = "reply-bot-ed25519-test-key-seed"
)

// NewTestKeys returns a deterministic key pair for signing test requests. Never use it outside tests.
func NewTestKeys() (crypto.PublicKey, crypto.PrivateKey) {
	seed := sha256.Sum256([]byte(testKeySeed))
	privateKey := crypto.NewKeyFromSeed(seed[:])
	return privateKey.Public().(crypto.PublicKey), privateKey
}

// Sign produces the hex signature Discord would send for body at timestamp.
func Sign(privateKey crypto.PrivateKey, timestamp string, body []byte) string {
	msg := append([]byte(timestamp), body...)
	return hex.EncodeToString(crypto.Sign(privateKey, msg))
}

// Ensure MockDiscordSession implements SessionIFace
var _ SessionIFace = (*MockDiscordSession)(nil)

type MockDiscordSession struct {
	mock.Mock
}

func (m *MockDiscordSession) ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID, commands)
	if respCmds := args.Get(0); respCmds != nil {
		return respCmds.([]*discordgo.ApplicationCommand), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDiscordSession) ApplicationCommands(appID string, guildID string) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID)
	if respCmds := args.Get(0); respCmds != nil {
		return respCmds.([]*discordgo.ApplicationCommand), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDiscordSession) ApplicationCommandDelete(appID string, guildID string, cmdID string) error {
	args := m.Called(appID, guildID, cmdID)
	return args.Error(0)
}
