package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"timetrack/internal/app/server/config"
)

func testConfig(addr string) *config.Config {
	return &config.Config{
		Env:    config.EnvLocal,
		DB:     config.DB{Migrations: "migrations"},
		Server: config.Server{RunAddress: addr, ShutdownTimeout: time.Second},
		APIKey: config.APIKey{Secret: "", Algorithm: "hmac-sha256"},
	}
}

func TestNew_InMemory(t *testing.T) {
	app, err := New(context.Background(), testConfig(":0"), slog.Default())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/anything", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNew_SQLite(t *testing.T) {
	cfg := testConfig(":0")
	cfg.DB.DatabaseURI = "sqlite://" + filepath.Join(t.TempDir(), "timetrack.db")

	app, err := New(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.closeStore() })

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_UnknownAlgorithm(t *testing.T) {
	cfg := testConfig(":0")
	cfg.APIKey.Algorithm = "sha1"

	_, err := New(context.Background(), cfg, slog.Default())

	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	app, err := New(context.Background(), testConfig(addr), slog.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	app, err := New(context.Background(), testConfig(l.Addr().String()), slog.Default())
	require.NoError(t, err)

	assert.Error(t, app.Run(context.Background()))
}
