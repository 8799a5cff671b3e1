package ping

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	for _, opts := range [][]*discordgo.ApplicationCommandInteractionDataOption{
		nil,
		{{Name: "whatever", Value: "x"}},
	} {
		resp := Handle(context.Background(), opts)

		require.NotNil(t, resp.Data)
		assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
		assert.Contains(t, resp.Data.Content, "Pong")
		assert.Zero(t, resp.Data.Flags)
	}
}
