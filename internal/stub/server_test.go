package stub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatwidget/internal/config"
	"chatwidget/internal/model"
	"chatwidget/internal/service"
	"chatwidget/internal/storage"
	"chatwidget/internal/widget"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStubConfig() config.StubConfig {
	return config.StubConfig{
		RateLimitPerMinute: 0,
		CacheTTL:           time.Hour,
		DefaultReply:       "Try a more specific product.",
		Replies:            map[string]string{"hello": "Hi there!"},
	}
}

func startStub(t *testing.T, cfg config.StubConfig) *service.Client {
	t.Helper()
	srv := httptest.NewServer(NewRouter(cfg, NewHandler(cfg)))
	t.Cleanup(srv.Close)
	return service.NewClientWithHTTP(srv.URL, srv.Client())
}

func TestStub_WidgetRoundTrip(t *testing.T) {
	client := startStub(t, testStubConfig())
	w := widget.New(widget.DefaultSettings(), storage.NewMemoryStorage())

	w.OnInputChanged("Hello")
	out, err := w.Send(context.Background(), client)
	require.NoError(t, err)
	require.NotNil(t, out.Reply)
	assert.Equal(t, "Hi there!", out.Reply.Text)

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.APICalls)

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
}

func TestStub_RateLimitSurfacesAsBanner(t *testing.T) {
	cfg := testStubConfig()
	cfg.RateLimitPerMinute = 1
	client := startStub(t, cfg)
	w := widget.New(widget.DefaultSettings(), storage.NewMemoryStorage())

	w.OnInputChanged("first")
	_, err := w.Send(context.Background(), client)
	require.NoError(t, err)

	w.OnInputChanged("second")
	out, err := w.Send(context.Background(), client)
	require.NoError(t, err)
	require.NotNil(t, out.Banner)
	assert.Equal(t, "Error: Rate limit exceeded. Please try again later.. Please try again.", out.Banner.Message)
	assert.Equal(t, model.Idle, w.State())
}

func TestStub_CORSPreflight(t *testing.T) {
	cfg := testStubConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"*"}, AllowedHeaders: []string{"Content-Type"}}
	router := NewRouter(cfg, NewHandler(cfg))

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://shop.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
