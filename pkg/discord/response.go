package discord

import "github.com/bwmarrin/discordgo"

var PingResponse = discordgo.InteractionResponse{
	Type: discordgo.InteractionResponsePong,
}
