package e2e_test

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("file a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("file b"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "c.txt"), []byte("file c"), 0o644))
	return root
}

// TestE2E_Download runs the binary in both response modes.
func TestE2E_Download(t *testing.T) {
	for _, stream := range []bool{false, true} {
		name := "buffered"
		if stream {
			name = "stream"
		}

		t.Run(name, func(t *testing.T) {
			srv := startServer(t, ServerConfig{
				Root:   writeFixture(t),
				Prefix: "bundle",
				Stream: stream,
			})

			resp, err := http.Get(srv.baseURL + "/download")
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/x-tar", resp.Header.Get("Content-Type"))
			assert.Equal(t, "attachment; filename=bundle.tar", resp.Header.Get("Content-Disposition"))

			assert.Equal(t, map[string]string{
				"a.txt": "file a",
				"b.txt": "file b",
			}, readTar(t, resp.Body))
		})
	}
}

// TestE2E_MissingRoot checks the JSON error for a root that does not exist.
func TestE2E_MissingRoot(t *testing.T) {
	srv := startServer(t, ServerConfig{
		Root: filepath.Join(t.TempDir(), "missing"),
	})

	resp, err := http.Get(srv.baseURL + "/download")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 500, body.Code)
	assert.Contains(t, body.Message, "tar error")
}

// TestE2E_UnknownRoute checks that unknown paths are rejected the same way as panics.
func TestE2E_UnknownRoute(t *testing.T) {
	srv := startServer(t, ServerConfig{Root: writeFixture(t)})

	resp, err := http.Get(srv.baseURL + "/upload")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UNHANDLED_REJECTION", body["message"])
}

// TestE2E_SignalShutdown checks that SIGTERM ends the process cleanly.
func TestE2E_SignalShutdown(t *testing.T) {
	srv := startServer(t, ServerConfig{Root: writeFixture(t)})

	resp, err := http.Get(srv.baseURL + "/download")
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.NoError(t, srv.stop(t), "server should exit with status 0")

	_, err = http.Get(srv.baseURL + "/download")
	assert.Error(t, err, "server should no longer accept connections")
}
