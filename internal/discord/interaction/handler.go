package interaction

import (
	"bytes"
	crypto "crypto/ed25519"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"reply-bot/internal/config"
	"reply-bot/internal/discord/command"
	"reply-bot/pkg/discord"
)

const (
	loggerName = "interaction"

	ContentType = "application/json"
)

// Request is an inbound webhook call as seen by any transport.
type Request struct {
	// Method is empty when the hosting layer already restricts it.
	Method    string
	Body      []byte
	Signature string
	Timestamp string
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Handler verifies, classifies and answers interactions. It holds no per-request
// state and is safe for concurrent use.
type Handler struct {
	logger *zap.Logger

	publicKey crypto.PublicKey
	maxAge    time.Duration
	embed     config.EmbedConfig

	now func() time.Time
}

func New(cfg *config.Config) *Handler {
	return &Handler{
		logger:    cfg.Logger.Named(loggerName),
		publicKey: cfg.PublicKey(),
		maxAge:    cfg.Discord.SignatureMaxAge,
		embed:     cfg.Embed,
		now:       time.Now,
	}
}

func (h *Handler) Handle(req Request) Response {
	rsp, err := h.handle(req)
	if err != nil {
		errRsp := ErrorResponse(err)
		h.logger.Info("rejected interaction", zap.Error(err), zap.Int("status", errRsp.StatusCode))
		return errRsp
	}

	body, err := encode(rsp)
	if err != nil {
		h.logger.Error("could not encode interaction response", zap.Error(err))
		return ErrorResponse(err)
	}
	return Response{
		StatusCode: http.StatusOK,
		Body:       body,
	}
}

func (h *Handler) handle(req Request) (*discordgo.InteractionResponse, error) {
	if req.Method != "" && req.Method != http.MethodPost {
		return nil, fmt.Errorf("%w: [%s]", ErrMethodNotAllowed, req.Method)
	}

	// Verify against the bytes exactly as received
	if !discord.Authenticate(req.Body, req.Timestamp, req.Signature, h.publicKey) {
		return nil, ErrInvalidSignature
	}
	if h.maxAge > 0 && !discord.TimestampWithin(req.Timestamp, h.now(), h.maxAge) {
		return nil, fmt.Errorf("%w: stale timestamp [%s]", ErrInvalidSignature, req.Timestamp)
	}

	// Classify on the type alone; discordgo rejects some types sent without data
	var head struct {
		Type discordgo.InteractionType `json:"type"`
		Data json.RawMessage           `json:"data"`
	}
	if err := json.Unmarshal(req.Body, &head); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedRequest, err)
	}

	switch head.Type {
	case discordgo.InteractionPing:
		rsp := discord.PingResponse
		return &rsp, nil
	case discordgo.InteractionApplicationCommand:
		if len(head.Data) == 0 || string(head.Data) == "null" {
			return nil, fmt.Errorf("%w: command without data", ErrMalformedRequest)
		}
		var in discordgo.Interaction
		if err := json.Unmarshal(req.Body, &in); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedRequest, err)
		}
		return h.commandHandler(in.ApplicationCommandData())
	}
	return nil, fmt.Errorf("%w: type [%d]", ErrUnsupportedInteraction, head.Type)
}

func (h *Handler) commandHandler(data discordgo.ApplicationCommandInteractionData) (*discordgo.InteractionResponse, error) {
	if data.Name != command.ReplyCommand {
		return nil, fmt.Errorf("%w: command [%s]", ErrUnsupportedInteraction, data.Name)
	}

	msg, err := command.GetMessage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedRequest, err)
	}
	return command.Reply(h.embed, msg, h.now()), nil
}

// encode marshals v without HTML escaping so echoed text stays verbatim.
func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
