package ping

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/itizir/ranked/interaction"
)

var ApplicationCommand = &discordgo.ApplicationCommand{
	Type:        discordgo.ChatApplicationCommand,
	Name:        "ping",
	Description: "Simple ping command to test the bot",
}

func Handle(_ context.Context, _ []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionResponse {
	return interaction.Message("🏓 Pong! The bot is working!")
}
