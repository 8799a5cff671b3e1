package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/itizir/ranked/interaction"
	"github.com/rs/zerolog/log"
)

const (
	optionUsername    = "username"
	optionPlaystyle   = "playstyle"
	optionMovement    = "movement"
	optionPvP         = "pvp"
	optionBuilding    = "building"
	optionProjectiles = "projectiles"

	minScore = 1
	maxScore = 100
)

var (
	scoreMin = float64(minScore)

	ApplicationCommand = &discordgo.ApplicationCommand{
		Type:        discordgo.ChatApplicationCommand,
		Name:        "addrank",
		Description: "Record a player's ranking scores",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionUsername,
				Description: "Player username",
				Required:    true,
				MaxLength:   100,
			},
			scoreOption(optionPlaystyle, "Playstyle score (1-100)"),
			scoreOption(optionMovement, "Movement score (1-100)"),
			scoreOption(optionPvP, "PvP score (1-100)"),
			scoreOption(optionBuilding, "Building score (1-100)"),
			scoreOption(optionProjectiles, "Projectiles score (1-100)"),
		},
	}
)

func scoreOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    true,
		MinValue:    &scoreMin,
		MaxValue:    maxScore,
	}
}

// Command records rankings submitted through the addrank slash command.
type Command struct {
	store   Store
	timeout time.Duration
	now     func() time.Time
}

// NewCommand returns the addrank handler. Each store write is bounded by
// timeout unless it is zero.
func NewCommand(store Store, timeout time.Duration) *Command {
	return &Command{store: store, timeout: timeout, now: time.Now}
}

func (c *Command) Handle(ctx context.Context, opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionResponse {
	vals, err := interaction.DecodeOptions(ApplicationCommand.Options, opts)
	if err != nil {
		var verr *interaction.ValidationError
		if errors.As(err, &verr) {
			return interaction.Ephemeral("❌ " + verr.Error())
		}
		log.Err(err).Msg("failed to decode addrank options")
		return interaction.Ephemeral("❌ Invalid command options.")
	}

	r := NewRanking(vals.String(optionUsername), Scores{
		Playstyle:   int(vals.Int(optionPlaystyle)),
		Movement:    int(vals.Int(optionMovement)),
		PvP:         int(vals.Int(optionPvP)),
		Building:    int(vals.Int(optionBuilding)),
		Projectiles: int(vals.Int(optionProjectiles)),
	}, c.now().UTC())

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.store.UpsertRanking(ctx, r); err != nil {
		log.Err(err).Str("username", r.Username).Msg("failed to save ranking")
		return interaction.Ephemeral("❌ Failed to save ranking, please try again later.")
	}

	log.Info().Str("username", r.Username).Str("tier", r.Tier).Float64("overall", r.OverallScore).Msg("ranking saved")
	return interaction.Message(r.Summary())
}
