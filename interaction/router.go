package interaction

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Handler answers one application command. Handlers validate their own
// options and report user errors through the returned response.
type Handler func(ctx context.Context, opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionResponse

// Router maps command names to handlers. It is filled once at startup and only
// read afterwards, so it is safe to share between requests.
type Router struct {
	commands []*discordgo.ApplicationCommand
	handlers map[string]Handler
}

func NewRouter() *Router {
	return &Router{handlers: make(map[string]Handler)}
}

// Register binds h to the command's name. Registering a name twice replaces
// both the schema and the handler.
func (r *Router) Register(cmd *discordgo.ApplicationCommand, h Handler) {
	if _, ok := r.handlers[cmd.Name]; ok {
		for i, c := range r.commands {
			if c.Name == cmd.Name {
				r.commands[i] = cmd
			}
		}
	} else {
		r.commands = append(r.commands, cmd)
	}
	r.handlers[cmd.Name] = h

	log.Debug().Str("command", cmd.Name).Msg("added command handler")
}

// Commands lists the registered command schemas in registration order.
func (r *Router) Commands() []*discordgo.ApplicationCommand {
	return append([]*discordgo.ApplicationCommand(nil), r.commands...)
}

// Route invokes the handler bound to name. Lookup is exact and case-sensitive.
func (r *Router) Route(ctx context.Context, name string, opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionResponse {
	h, ok := r.handlers[name]
	if !ok {
		log.Debug().Str("command", name).Msg("no handler for command")
		return Ephemeral("❌ Unknown command: " + name)
	}

	resp := h(ctx, opts)
	if resp == nil {
		log.Error().Str("command", name).Msg("handler returned no response")
		return Ephemeral("❌ Something went wrong.")
	}
	return resp
}
