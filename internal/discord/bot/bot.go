package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"reply-bot/internal/config"
	"reply-bot/internal/discord/interaction"
	"reply-bot/pkg/discord"
)

const (
	loggerName = "discord-bot"

	BotEndpoint    = "/interactions"
	HealthEndpoint = "/health"

	// Interaction payloads are a few KiB
	maxBodySize = 256 << 10

	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// BotServer serves the interactions webhook over HTTP.
type BotServer struct {
	logger *zap.Logger
	port   int

	handler     http.Handler
	interaction *interaction.Handler
}

func New(cfg *config.Config) *BotServer {
	botServer := &BotServer{
		logger:      cfg.Logger.Named(loggerName),
		port:        cfg.Server.Port,
		interaction: interaction.New(cfg),
	}

	// Configure router
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), accessLog(botServer.logger))
	engine.GET(HealthEndpoint, healthHandler)

	// Every method reaches the core so it can answer 405 itself
	engine.Any(BotEndpoint, botServer.eventHandler)

	botServer.handler = otelhttp.NewHandler(engine, loggerName)
	return botServer
}

// Handler exposes the instrumented router.
func (b *BotServer) Handler() http.Handler {
	return b.handler
}

// Run listens until ctx is cancelled, then drains in-flight requests.
func (b *BotServer) Run(ctx context.Context) error {
	srv := b.newServer()

	errCh := make(chan error, 1)
	go func() {
		b.logger.Info("starting server", zap.Int("port", b.port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	b.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut down server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (b *BotServer) newServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", b.port),
		Handler:           b.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
	}
}

func (b *BotServer) eventHandler(c *gin.Context) {
	var rsp interaction.Response

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		b.logger.Info("could not read request body", zap.Error(err))
		rsp = interaction.ErrorResponse(fmt.Errorf("%w: %s", interaction.ErrMalformedRequest, err))
	} else {
		rsp = b.interaction.Handle(interaction.Request{
			Method:    c.Request.Method,
			Body:      body,
			Signature: c.GetHeader(discord.SignatureHeader),
			Timestamp: c.GetHeader(discord.TimestampHeader),
		})
	}

	c.Data(rsp.StatusCode, interaction.ContentType, rsp.Body)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
