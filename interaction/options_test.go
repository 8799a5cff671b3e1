package interaction

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	minScore = 1.0

	testSchema = []*discordgo.ApplicationCommandOption{
		{Type: discordgo.ApplicationCommandOptionString, Name: "name", Required: true, MaxLength: 8},
		{Type: discordgo.ApplicationCommandOptionInteger, Name: "score", Required: true, MinValue: &minScore, MaxValue: 100},
		{Type: discordgo.ApplicationCommandOptionString, Name: "note", MaxLength: 20},
	}
)

func opt(name string, value any) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Value: value}
}

func TestDecodeOptions(t *testing.T) {
	vals, err := DecodeOptions(testSchema, []*discordgo.ApplicationCommandInteractionDataOption{
		opt("score", float64(42)),
		opt("name", "  steve "),
		opt("note", " hi "),
		opt("ignored", "x"),
	})
	require.NoError(t, err)

	assert.Equal(t, "steve", vals.String("name"))
	assert.Equal(t, int64(42), vals.Int("score"))
	assert.Equal(t, "hi", vals.String("note"))
	assert.NotContains(t, vals, "ignored")
}

func TestDecodeOptionsOptionalMissing(t *testing.T) {
	vals, err := DecodeOptions(testSchema, []*discordgo.ApplicationCommandInteractionDataOption{
		opt("name", "steve"),
		opt("score", "7"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), vals.Int("score"))
	assert.NotContains(t, vals, "note")
	assert.Empty(t, vals.String("note"))
}

func TestDecodeOptionsBlankOptionalString(t *testing.T) {
	vals, err := DecodeOptions(testSchema, []*discordgo.ApplicationCommandInteractionDataOption{
		opt("name", "steve"),
		opt("score", float64(7)),
		opt("note", "   "),
	})
	require.NoError(t, err)
	assert.NotContains(t, vals, "note")
}

func TestDecodeOptionsUnsupportedType(t *testing.T) {
	schema := []*discordgo.ApplicationCommandOption{
		{Type: discordgo.ApplicationCommandOptionBoolean, Name: "public", Required: true},
	}

	_, err := DecodeOptions(schema, []*discordgo.ApplicationCommandInteractionDataOption{opt("public", true)})

	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "a schema bug is not a user error")
}

func TestDecodeOptionsErrors(t *testing.T) {
	testCases := []struct {
		description string
		given       []*discordgo.ApplicationCommandInteractionDataOption
		wantOption  string
		wantReason  string
	}{
		{
			description: "missing required string",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("score", float64(1))},
			wantOption:  "name",
			wantReason:  "is required",
		},
		{
			description: "blank required string",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("name", "   "), opt("score", float64(1))},
			wantOption:  "name",
			wantReason:  "is required",
		},
		{
			description: "string too long",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("name", "abcdefghi"), opt("score", float64(1))},
			wantOption:  "name",
			wantReason:  "must be at most 8 characters",
		},
		{
			description: "first failure wins in schema order",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("score", float64(0))},
			wantOption:  "name",
			wantReason:  "is required",
		},
		{
			description: "integer below minimum",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("name", "a"), opt("score", float64(0))},
			wantOption:  "score",
			wantReason:  "must be a whole number between 1 and 100",
		},
		{
			description: "integer above maximum",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("name", "a"), opt("score", float64(101))},
			wantOption:  "score",
			wantReason:  "must be a whole number between 1 and 100",
		},
		{
			description: "fractional integer",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("name", "a"), opt("score", 50.5)},
			wantOption:  "score",
			wantReason:  "must be a whole number between 1 and 100",
		},
		{
			description: "non numeric integer",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("name", "a"), opt("score", "lots")},
			wantOption:  "score",
			wantReason:  "must be a whole number between 1 and 100",
		},
		{
			description: "boolean as integer",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("name", "a"), opt("score", true)},
			wantOption:  "score",
			wantReason:  "must be a whole number between 1 and 100",
		},
		{
			description: "missing required integer",
			given:       []*discordgo.ApplicationCommandInteractionDataOption{opt("name", "a"), opt("score", nil)},
			wantOption:  "score",
			wantReason:  "is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := DecodeOptions(testSchema, tc.given)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
			assert.Equal(t, tc.wantOption, verr.Option)
			assert.Equal(t, tc.wantReason, verr.Reason)
			assert.Equal(t, tc.wantOption+" "+tc.wantReason, err.Error())
		})
	}
}
