// Package interaction receives Discord interactions over HTTP: it checks the
// request signature, classifies the interaction and dispatches slash commands
// to the handlers registered on a Router.
package interaction

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const maxBodySize = 1 << 20

// Kind is the closed set of interaction kinds the endpoint tells apart.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPing
	KindCommand
)

func (k Kind) String() string {
	switch k {
	case KindPing:
		return "ping"
	case KindCommand:
		return "command"
	default:
		return "unsupported"
	}
}

// Classify maps the raw "type" field of an interaction. Values outside the
// known set, including negative and out of range ones, are unsupported.
func Classify(t int) Kind {
	switch t {
	case int(discordgo.InteractionPing):
		return KindPing
	case int(discordgo.InteractionApplicationCommand):
		return KindCommand
	default:
		return KindUnsupported
	}
}

// Endpoint is the http.Handler Discord posts interactions to.
type Endpoint struct {
	key    ed25519.PublicKey
	router *Router
}

func NewEndpoint(key ed25519.PublicKey, router *Router) *Endpoint {
	return &Endpoint{key: key, router: router}
}

func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		log.Debug().Err(err).Msg("failed to read body")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if !Verify(body, r.Header.Get(HeaderTimestamp), r.Header.Get(HeaderSignature), e.key) {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var head struct {
		Type int             `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		log.Debug().Err(err).Msg("failed to decode interaction")
		writeBadRequest(w)
		return
	}

	kind := Classify(head.Type)
	log.Debug().Stringer("kind", kind).Int("type", head.Type).Msg("interaction received")

	switch kind {
	case KindPing:
		writeResponse(w, &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
	case KindCommand:
		if len(head.Data) == 0 || string(head.Data) == "null" {
			log.Debug().Msg("command interaction without data")
			writeBadRequest(w)
			return
		}
		var i discordgo.Interaction
		if err := json.Unmarshal(body, &i); err != nil {
			log.Debug().Err(err).Msg("failed to decode command interaction")
			writeBadRequest(w)
			return
		}
		data := i.ApplicationCommandData()
		writeResponse(w, e.router.Route(r.Context(), data.Name, data.Options))
	default:
		writeResponse(w, Ephemeral(fmt.Sprintf("❌ Unhandled interaction type: %d", head.Type)))
	}
}
