package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"reply-bot/internal/config"
	"reply-bot/pkg/discord"
)

func newTestServer(t *testing.T) *BotServer {
	t.Helper()
	pubKey, _ := discord.NewTestKeys()
	return New(config.NewTestConfig(pubKey))
}

func newSignedRequest(method, body string) *http.Request {
	_, privateKey := discord.NewTestKeys()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	req := httptest.NewRequest(method, BotEndpoint, strings.NewReader(body))
	req.Header.Set(discord.SignatureHeader, discord.Sign(privateKey, timestamp, []byte(body)))
	req.Header.Set(discord.TimestampHeader, timestamp)
	return req
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func Test_New(t *testing.T) {
	s := newTestServer(t)

	require.NotNil(t, s)
	assert.NotNil(t, s.logger)
	assert.NotNil(t, s.interaction)
	assert.NotNil(t, s.Handler())
	assert.Equal(t, 8080, s.port)
}

func Test_BotServer_EventHandler(t *testing.T) {
	s := newTestServer(t)
	replyBody := `{"type":2,"data":{"name":"reply","options":[{"name":"mensagem","type":3,"value":"<i>oi</i>"}]}}`

	tests := []struct {
		name          string
		req           *http.Request
		expStatusCode int
		expBody       string
		expReply      string
	}{
		{
			name:          "Happy path - Ping acknowledgement",
			req:           newSignedRequest(http.MethodPost, `{"type":1}`),
			expStatusCode: http.StatusOK,
			expBody:       `{"type":1}`,
		},
		{
			name:          "Happy path - Reply command",
			req:           newSignedRequest(http.MethodPost, replyBody),
			expStatusCode: http.StatusOK,
			expReply:      "<i>oi</i>",
		},
		{
			name:          "Sad path - GET on interactions",
			req:           newSignedRequest(http.MethodGet, `{"type":1}`),
			expStatusCode: http.StatusMethodNotAllowed,
			expBody:       `{"error":"method not allowed"}`,
		},
		{
			name:          "Sad path - PUT on interactions",
			req:           newSignedRequest(http.MethodPut, `{"type":1}`),
			expStatusCode: http.StatusMethodNotAllowed,
			expBody:       `{"error":"method not allowed"}`,
		},
		{
			name:          "Sad path - Unsigned request",
			req:           httptest.NewRequest(http.MethodPost, BotEndpoint, strings.NewReader(`{"type":1}`)),
			expStatusCode: http.StatusUnauthorized,
			expBody:       `{"error":"invalid signature"}`,
		},
		{
			name:          "Sad path - Unsupported interaction",
			req:           newSignedRequest(http.MethodPost, `{"type":5}`),
			expStatusCode: http.StatusBadRequest,
			expBody:       `{"error":"unsupported interaction"}`,
		},
		{
			name:          "Sad path - Oversized body",
			req:           httptest.NewRequest(http.MethodPost, BotEndpoint, strings.NewReader(strings.Repeat("a", maxBodySize+1))),
			expStatusCode: http.StatusBadRequest,
			expBody:       `{"error":"invalid request"}`,
		},
		{
			name:          "Sad path - Unreadable body",
			req:           httptest.NewRequest(http.MethodPost, BotEndpoint, errReader{}),
			expStatusCode: http.StatusBadRequest,
			expBody:       `{"error":"invalid request"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			s.Handler().ServeHTTP(w, tt.req)

			require.Equal(t, tt.expStatusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
			if tt.expBody != "" {
				assert.JSONEq(t, tt.expBody, w.Body.String())
			}
			if tt.expReply != "" {
				var gotBody discordgo.InteractionResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gotBody))
				assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, gotBody.Type)
				require.Len(t, gotBody.Data.Embeds, 1)
				assert.Equal(t, tt.expReply, gotBody.Data.Embeds[0].Description)
			}
		})
	}
}

// endlessReader streams 'a' forever and counts what was read.
type endlessReader struct {
	read int
}

func (r *endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'a'
	}
	r.read += len(p)
	return len(p), nil
}

func Test_BotServer_LimitsBodySize(t *testing.T) {
	s := newTestServer(t)
	body := &endlessReader{}
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, BotEndpoint, body))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
	assert.LessOrEqual(t, body.read, maxBodySize+1)
}

func Test_BotServer_NewServer(t *testing.T) {
	s := newTestServer(t)

	srv := s.newServer()

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
	assert.Equal(t, readTimeout, srv.ReadTimeout)
	assert.NotNil(t, srv.Handler)
}

func Test_BotServer_Health(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, HealthEndpoint, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func Test_BotServer_RequestIDUnique(t *testing.T) {
	s := newTestServer(t)

	ids := make(map[string]bool)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, HealthEndpoint, nil))
		ids[w.Header().Get(RequestIDHeader)] = true
	}
	assert.Len(t, ids, 5)
}

func Test_AccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	pubKey, _ := discord.NewTestKeys()
	testCfg := config.NewTestConfig(pubKey)
	testCfg.Logger = zap.New(core)
	s := New(testCfg)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, HealthEndpoint, nil))

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, HealthEndpoint, fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), fields[requestIDKey])
}

func Test_BotServer_Run(t *testing.T) {
	t.Run("Happy path - Stops when context is cancelled", func(t *testing.T) {
		s := newTestServer(t)
		s.port = 0

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			assert.Fail(t, "server did not shut down")
		}
	})

	t.Run("Sad path - Port already in use", func(t *testing.T) {
		l, err := net.Listen("tcp", ":0")
		require.NoError(t, err)
		defer l.Close()

		s := newTestServer(t)
		s.port = l.Addr().(*net.TCPAddr).Port

		err = s.Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "address already in use")
	})
}
