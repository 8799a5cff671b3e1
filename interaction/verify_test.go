package interaction

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	body := []byte(`{"type":1}`)
	ts := "1700000000"
	sig := hex.EncodeToString(ed25519.Sign(priv, append([]byte(ts), body...)))

	testCases := []struct {
		description string
		body        []byte
		timestamp   string
		signature   string
		key         ed25519.PublicKey
		want        bool
	}{
		{"valid signature", body, ts, sig, pub, true},
		{"wrong key", body, ts, sig, otherPub, false},
		{"nil key", body, ts, sig, nil, false},
		{"short key", body, ts, sig, pub[:16], false},
		{"missing timestamp", body, "", sig, pub, false},
		{"missing signature", body, ts, "", pub, false},
		{"signature not hex", body, ts, "zz" + sig[2:], pub, false},
		{"truncated signature", body, ts, sig[:64], pub, false},
		{"different timestamp", body, "1700000001", sig, pub, false},
		{"reformatted body", []byte(`{"type": 1}`), ts, sig, pub, false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.want, Verify(tc.body, tc.timestamp, tc.signature, tc.key))
		})
	}
}

func TestVerifyAgreesWithDiscordgo(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	body := []byte(`{"type":2,"data":{"name":"ping"}}`)
	ts := "1700000000"

	for _, tamper := range []bool{false, true} {
		signed := body
		if tamper {
			signed = []byte(`{"type":2,"data":{"name":"pong"}}`)
		}
		sig := hex.EncodeToString(ed25519.Sign(priv, append([]byte(ts), signed...)))

		r := httptest.NewRequest("POST", "/", bytes.NewReader(body))
		r.Header.Set(HeaderSignature, sig)
		r.Header.Set(HeaderTimestamp, ts)

		assert.Equal(t, discordgo.VerifyInteraction(r, pub), Verify(body, ts, sig, pub))
	}
}
