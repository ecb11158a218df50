package discord

import (
	crypto "crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	SignatureHeader = "X-Signature-Ed25519"
	TimestampHeader = "X-Signature-Timestamp"
)

// Authenticate reports whether signature is a valid ed25519 signature of timestamp+body.
// body must be the exact bytes received on the wire.
func Authenticate(body []byte, timestamp, signature string, publicKey crypto.PublicKey) bool {
	if timestamp == "" || signature == "" || len(publicKey) != crypto.PublicKeySize {
		return false
	}
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	return crypto.Verify(publicKey, msg, sig)
}

// TimestampWithin reports whether a signature timestamp, in Unix seconds, is no older than maxAge.
func TimestampWithin(timestamp string, now time.Time, maxAge time.Duration) bool {
	sec, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	age := now.Sub(time.Unix(sec, 0))
	return age <= maxAge && age >= -maxAge
}

func DecodePublicKey(publicKey string) (crypto.PublicKey, error) {
	if publicKey == "" {
		return nil, errors.New("missing public key")
	}
	key, err := hex.DecodeString(publicKey)
	if err != nil {
		return nil, err
	}
	if len(key) != crypto.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", crypto.PublicKeySize, len(key))
	}
	return key, nil
}
