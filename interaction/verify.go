package interaction

import (
	"crypto/ed25519"
	"encoding/hex"
)

const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// Verify reports whether signature is a valid Ed25519 signature by key over
// timestamp followed by the raw request body. It never panics: any missing or
// malformed input yields false.
func Verify(body []byte, timestamp, signature string, key ed25519.PublicKey) bool {
	if len(key) != ed25519.PublicKeySize || timestamp == "" || signature == "" {
		return false
	}

	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	return ed25519.Verify(key, msg, sig)
}
