package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/config"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Storage.ProjectsDir = filepath.Join(t.TempDir(), "projects")
	cfg.Logging.Development = true
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := NewServer(cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func get(srv *Server, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRoutesAndMetrics(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	w := get(srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	w = get(srv, "/api/v1/versions")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"1.20"`)

	body := `{"name": "Demo", "version": "1.20", "namespace": "demo", "type": "datapack"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = get(srv, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	metrics := w.Body.String()
	assert.Contains(t, metrics, `packstudio_store_operations_total{op="create",status="ok"} 1`)
	assert.Contains(t, metrics, "packstudio_archive_rewrites_total")
	assert.Contains(t, metrics, "go_goroutines")
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	srv := newTestServer(t, cfg)

	assert.Equal(t, http.StatusNotFound, get(srv, "/metrics").Code)
}

func TestReloadCatalog(t *testing.T) {
	cfg := testConfig(t)
	formats := filepath.Join(t.TempDir(), "formats.yaml")
	require.NoError(t, os.WriteFile(formats, []byte("start_releases:\n  \"1.30\":\n    data: 99\n    resource: 77\n"), 0644))
	cfg.Catalog.PackFormatFile = formats
	srv := newTestServer(t, cfg)

	assert.Contains(t, get(srv, "/api/v1/versions").Body.String(), `"1.30"`)

	require.NoError(t, os.WriteFile(formats, []byte("start_releases: [\n"), 0644))
	assert.Error(t, srv.ReloadCatalog())
	assert.Contains(t, get(srv, "/api/v1/versions").Body.String(), `"1.30"`)

	require.NoError(t, os.WriteFile(formats, []byte("start_releases:\n  \"1.31\":\n    data: 100\n    resource: 78\n"), 0644))
	require.NoError(t, srv.ReloadCatalog())
	assert.Contains(t, get(srv, "/api/v1/versions").Body.String(), `"1.31"`)
}

func TestNewServerRejectsBadCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.FileTypesFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewServer(cfg, logging.Nop())
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
