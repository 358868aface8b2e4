package preview

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/metrics"
)

func siteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Home</h1>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "journal"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "journal", "a.html"), []byte("<h1>A</h1>"), 0o600))
	return dir
}

func get(t *testing.T, url string) (int, string, http.Header) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

func TestNew_RequiresIndex(t *testing.T) {
	_, err := New(t.TempDir(), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSiteNotGenerated)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryRuntime))
}

func TestHandler_ServesSite(t *testing.T) {
	s, err := New(siteDir(t), Options{Port: 4040})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4040", s.Addr())

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	code, body, hdr := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Home")
	assert.Equal(t, "no-cache", hdr.Get("Cache-Control"))

	code, body, _ = get(t, ts.URL+"/journal/a.html")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<h1>A</h1>")

	code, _, _ = get(t, ts.URL+"/missing.html")
	assert.Equal(t, http.StatusNotFound, code)

	code, body, _ = get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)
}

func TestHandler_Metrics(t *testing.T) {
	dir := siteDir(t)

	t.Run("enabled", func(t *testing.T) {
		reg := prom.NewRegistry()
		rec := metrics.NewPrometheusRecorder(reg)
		rec.AddPages("page", 2)

		s, err := New(dir, Options{Registry: reg})
		require.NoError(t, err)
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		code, body, _ := get(t, ts.URL+"/metrics")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "moss_pages_written_total")
	})

	t.Run("disabled", func(t *testing.T) {
		s, err := New(dir, Options{})
		require.NoError(t, err)
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		code, _, _ := get(t, ts.URL+"/metrics")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestServe_StopsOnCancel(t *testing.T) {
	s, err := New(siteDir(t), Options{})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health") //nolint:noctx // test
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
