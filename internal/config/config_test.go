package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minic/internal/frontend/lexer"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())

	opts := cfg.LexerOptions(logr.Discard())
	assert.Equal(t, lexer.LENIENT, opts.Mode)
	assert.Equal(t, lexer.DefaultMaxDistance, opts.MaxDistance)
	assert.False(t, opts.KeepIgnored)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "mode: strict\nmax_distance: 3\nkeep_ignored: true\ncolor: never\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Mode: "strict", MaxDistance: 3, KeepIgnored: true, Color: "never"}, cfg)

	opts := cfg.LexerOptions(logr.Discard())
	assert.Equal(t, lexer.STRICT, opts.Mode)
	assert.Equal(t, 3, opts.MaxDistance)
	assert.True(t, opts.KeepIgnored)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "debug: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "lenient", cfg.Mode)
	assert.Equal(t, lexer.DefaultMaxDistance, cfg.MaxDistance)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		Name string
		Body string
		Want string
	}{
		{Name: "bad mode", Body: "mode: loose\n", Want: "mode"},
		{Name: "distance too large", Body: "max_distance: 9\n", Want: "max_distance"},
		{Name: "negative distance", Body: "max_distance: -1\n", Want: "max_distance"},
		{Name: "bad color", Body: "color: sometimes\n", Want: "color"},
		{Name: "unknown key", Body: "colour: never\n", Want: "colour"},
		{Name: "not yaml", Body: "mode: [\n", Want: "parsing config"},
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.Body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.Want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("lenient")
	require.NoError(t, err)
	assert.Equal(t, lexer.LENIENT, mode)

	_, err = ParseMode("Strict")
	assert.Error(t, err)
}
