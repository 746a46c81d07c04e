package main

import (
	"archive/tar"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestLoggerFromContext_Default(t *testing.T) {
	assert.Same(t, slog.Default(), loggerFromContext(t.Context()))
}

func TestArchiveCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("file a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("file b"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "skipped"), 0o755))

	out := filepath.Join(t.TempDir(), "out.tar")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"archive", "--file", out, dir})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "Wrote 2 entries (1 skipped")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	found := make(map[string]string)
	tr := tar.NewReader(f)
	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(tr)
		require.NoError(t, err)
		found[h.Name] = string(content)
	}
	assert.Equal(t, map[string]string{"a.txt": "file a", "b.txt": "file b"}, found)
}

func TestArchiveCommand_MissingDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.tar")

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"archive", "--file", out, filepath.Join(t.TempDir(), "missing")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tar error")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "incomplete archive should be removed")
}

func TestConfigCommand(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"config", "--log-format", "json"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, stdout.String(), "address: 127.0.0.1:0")
	assert.Contains(t, stdout.String(), "format: json")
}
