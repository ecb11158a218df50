package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"reply-bot/internal/config"
)

const (
	ReplyCommand  = "reply"
	MessageOption = "mensagem"
)

var (
	ErrMissingMessage = errors.New("command missing message option")
)

// Commands returns the descriptors submitted on registration.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        ReplyCommand,
			Type:        discordgo.ChatApplicationCommand,
			Description: "Replica uma mensagem em um embed customizável",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        MessageOption,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "A mensagem a ser replicada",
					Required:    true,
				},
			},
		},
	}
}

// GetMessage returns the first option's value verbatim. Empty strings are valid messages.
func GetMessage(data discordgo.ApplicationCommandInteractionData) (string, error) {
	if len(data.Options) == 0 || data.Options[0] == nil {
		return "", ErrMissingMessage
	}

	opt := data.Options[0]
	msg, ok := opt.Value.(string)
	if !ok {
		return "", fmt.Errorf("%w: [%s] is not a string", ErrMissingMessage, opt.Name)
	}
	return msg, nil
}

// Reply builds the channel message echoing msg inside the configured embed.
func Reply(embedCfg config.EmbedConfig, msg string, now time.Time) *discordgo.InteractionResponse {
	embed := &discordgo.MessageEmbed{
		Color:       embedCfg.Color,
		Title:       embedCfg.Title,
		Description: msg,
	}
	if embedCfg.Author.Name != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    embedCfg.Author.Name,
			IconURL: embedCfg.Author.IconURL,
		}
	}
	if embedCfg.Footer.Text != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    embedCfg.Footer.Text,
			IconURL: embedCfg.Footer.IconURL,
		}
	}
	if embedCfg.Timestamp {
		embed.Timestamp = now.UTC().Format(time.RFC3339)
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	}
}
