package discord

import (
	crypto "crypto/ed25519"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Authenticate(t *testing.T) {
	pubKey, privateKey := NewTestKeys()
	otherPubKey, _, err := crypto.GenerateKey(nil)
	require.NoError(t, err)

	body := []byte(`{"type":1}`)
	timestamp := "1700000000"
	signature := Sign(privateKey, timestamp, body)

	tests := []struct {
		name      string
		body      []byte
		timestamp string
		signature string
		pubKey    crypto.PublicKey
		expValid  bool
	}{
		{
			name:      "Happy path",
			body:      body,
			timestamp: timestamp,
			signature: signature,
			pubKey:    pubKey,
			expValid:  true,
		},
		{
			name:      "Sad path - Missing signature",
			body:      body,
			timestamp: timestamp,
			pubKey:    pubKey,
		},
		{
			name:      "Sad path - Missing timestamp",
			body:      body,
			signature: signature,
			pubKey:    pubKey,
		},
		{
			name:      "Sad path - Non-hexidecimal signature",
			body:      body,
			timestamp: timestamp,
			signature: "!@#$%^&*()",
			pubKey:    pubKey,
		},
		{
			name:      "Sad path - Short signature",
			body:      body,
			timestamp: timestamp,
			signature: hex.EncodeToString([]byte("randomstring")),
			pubKey:    pubKey,
		},
		{
			name:      "Sad path - Different timestamp",
			body:      body,
			timestamp: "1700000001",
			signature: signature,
			pubKey:    pubKey,
		},
		{
			name:      "Sad path - Different body",
			body:      []byte(`{"type":2}`),
			timestamp: timestamp,
			signature: signature,
			pubKey:    pubKey,
		},
		{
			name:      "Sad path - Wrong public key",
			body:      body,
			timestamp: timestamp,
			signature: signature,
			pubKey:    otherPubKey,
		},
		{
			name:      "Sad path - Truncated public key",
			body:      body,
			timestamp: timestamp,
			signature: signature,
			pubKey:    pubKey[:16],
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expValid, Authenticate(tt.body, tt.timestamp, tt.signature, tt.pubKey))
		})
	}
}

func Test_DecodePublicKey(t *testing.T) {
	pubKey, _ := NewTestKeys()

	tests := []struct {
		name   string
		key    string
		expErr bool
	}{
		{
			name: "Happy path",
			key:  hex.EncodeToString(pubKey),
		},
		{
			name:   "Sad path - Empty key",
			expErr: true,
		},
		{
			name:   "Sad path - Non-hexidecimal key",
			key:    "!@#$%^&*()",
			expErr: true,
		},
		{
			name:   "Sad path - Wrong length",
			key:    hex.EncodeToString(pubKey[:31]),
			expErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DecodePublicKey(tt.key)

			if !tt.expErr {
				require.NoError(t, err)
				assert.Equal(t, pubKey, key)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func Test_TimestampWithin(t *testing.T) {
	now := time.Unix(1700000000, 0)
	maxAge := 5 * time.Second

	tests := []struct {
		name      string
		timestamp string
		expFresh  bool
	}{
		{
			name:      "Happy path - Current",
			timestamp: strconv.FormatInt(now.Unix(), 10),
			expFresh:  true,
		},
		{
			name:      "Happy path - At the limit",
			timestamp: strconv.FormatInt(now.Add(-maxAge).Unix(), 10),
			expFresh:  true,
		},
		{
			name:      "Sad path - Expired",
			timestamp: strconv.FormatInt(now.Add(-10*time.Second).Unix(), 10),
		},
		{
			name:      "Sad path - Too far in the future",
			timestamp: strconv.FormatInt(now.Add(time.Minute).Unix(), 10),
		},
		{
			name:      "Sad path - Not a number",
			timestamp: now.String(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expFresh, TimestampWithin(tt.timestamp, now, maxAge))
		})
	}
}

