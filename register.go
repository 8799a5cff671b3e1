package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// RegistrationError is a non-success answer from the Discord API while
// registering a command. Status and Body are passed on to the operator as is.
type RegistrationError struct {
	Command string
	Status  int
	Body    string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("failed to register command %s: %d %s", e.Command, e.Status, e.Body)
}

// newSession returns a REST-only session; registration never retries.
func newSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.MaxRestRetries = 0
	s.ShouldRetryOnRateLimit = false
	return s, nil
}

type registrar struct {
	s        *discordgo.Session
	appID    string
	guildID  string
	commands []*discordgo.ApplicationCommand
	timeout  time.Duration
}

func newRegistrar(s *discordgo.Session, cfg *Config, commands []*discordgo.ApplicationCommand) *registrar {
	return &registrar{
		s:        s,
		appID:    cfg.ApplicationID,
		guildID:  cfg.GuildID,
		commands: commands,
		timeout:  cfg.RegisterTimeout,
	}
}

func (r *registrar) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// registerCommands creates or overwrites every command. It stops at the
// first failure and returns the commands registered so far.
func (r *registrar) registerCommands(ctx context.Context) ([]*discordgo.ApplicationCommand, error) {
	log.Info().Int("count", len(r.commands)).Msg("registering commands")

	var created []*discordgo.ApplicationCommand
	for _, c := range r.commands {
		cmd, err := r.registerCommand(ctx, c)
		if err != nil {
			return created, err
		}
		scope := "global"
		if cmd.GuildID != "" {
			scope = cmd.GuildID
		}
		log.Info().Str("command", cmd.Name).Str("id", cmd.ID).Str("scope", scope).Msg("registered command")
		created = append(created, cmd)
	}

	log.Info().Msg("done registering commands")
	return created, nil
}

func (r *registrar) registerCommand(ctx context.Context, c *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmd, err := r.s.ApplicationCommandCreate(r.appID, r.guildID, c, discordgo.WithContext(ctx))
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil {
			return nil, &RegistrationError{
				Command: c.Name,
				Status:  restErr.Response.StatusCode,
				Body:    string(restErr.ResponseBody),
			}
		}
		// discordgo decodes a 429 into a RateLimitError instead of a RESTError.
		var rlErr *discordgo.RateLimitError
		if errors.As(err, &rlErr) && rlErr.RateLimit != nil && rlErr.TooManyRequests != nil {
			return nil, &RegistrationError{
				Command: c.Name,
				Status:  http.StatusTooManyRequests,
				Body:    rateLimitBody(rlErr.TooManyRequests),
			}
		}
		return nil, fmt.Errorf("registering command %s: %w", c.Name, err)
	}
	return cmd, nil
}

// rateLimitBody rebuilds the 429 payload Discord sent.
func rateLimitBody(rl *discordgo.TooManyRequests) string {
	body, err := json.Marshal(map[string]any{
		"message":     rl.Message,
		"retry_after": rl.RetryAfter.Seconds(),
	})
	if err != nil {
		return rl.Message
	}
	return string(body)
}

// cleanupCommands deletes previously registered commands: from the configured
// guild, or globally and from every guild the bot is in.
func (r *registrar) cleanupCommands(ctx context.Context) error {
	log.Info().Msg("cleaning up commands")

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	guildIDs := []string{r.guildID}
	if r.guildID == "" {
		guilds, err := r.s.UserGuilds(200, "", "", false, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("listing guilds: %w", err)
		}
		for _, g := range guilds {
			guildIDs = append(guildIDs, g.ID)
		}
	}

	for _, guildID := range guildIDs {
		cmds, err := r.s.ApplicationCommands(r.appID, guildID, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("listing commands: %w", err)
		}
		for _, cmd := range cmds {
			if err := r.s.ApplicationCommandDelete(cmd.ApplicationID, cmd.GuildID, cmd.ID, discordgo.WithContext(ctx)); err != nil {
				return fmt.Errorf("deleting command %s: %w", cmd.Name, err)
			}
			log.Info().Str("command", cmd.Name).Str("id", cmd.ID).Str("guild", cmd.GuildID).Msg("deleted command")
		}
	}

	log.Info().Msg("done cleaning up commands")
	return nil
}
