package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"reply-bot/internal/config"
	"reply-bot/internal/discord/interaction"
	"reply-bot/pkg/discord"
)

const loggerName = "lambda"

// Handler adapts API Gateway v2 (and Lambda function URL) events to the interaction core.
type Handler struct {
	logger *zap.Logger

	interaction *interaction.Handler
}

func New(cfg *config.Config) *Handler {
	return &Handler{
		logger:      cfg.Logger.Named(loggerName),
		interaction: interaction.New(cfg),
	}
}

func (h *Handler) Handle(_ context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var rsp interaction.Response

	if body, err := eventBody(event); err != nil {
		h.logger.Info("could not decode event body", zap.Error(err))
		rsp = interaction.ErrorResponse(fmt.Errorf("%w: %s", interaction.ErrMalformedRequest, err))
	} else {
		rsp = h.interaction.Handle(interaction.Request{
			Method:    event.RequestContext.HTTP.Method,
			Body:      body,
			Signature: header(event.Headers, discord.SignatureHeader),
			Timestamp: header(event.Headers, discord.TimestampHeader),
		})
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: rsp.StatusCode,
		Headers:    map[string]string{"Content-Type": interaction.ContentType},
		Body:       string(rsp.Body),
	}, nil
}

// eventBody returns the body bytes exactly as Discord sent them.
func eventBody(event events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !event.IsBase64Encoded {
		return []byte(event.Body), nil
	}
	return base64.StdEncoding.DecodeString(event.Body)
}

// API Gateway lower-cases header names
func header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
