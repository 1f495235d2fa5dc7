package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/wingman-search/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFromEnvironmentMissingToken(t *testing.T) {
	t.Setenv("BIGMODEL_API_KEY", "")

	_, err := config.FromEnvironment()
	require.ErrorIs(t, err, config.ErrMissingToken)
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv("BIGMODEL_API_KEY", "test-key")
	t.Setenv("BIGMODEL_SEARCH_ENGINE", "search_pro_bing")
	t.Setenv("SEARCH_TIMEOUT", "15s")

	cfg, err := config.FromEnvironment()
	require.NoError(t, err)

	_, err = cfg.Searcher("bigmodel")
	require.NoError(t, err)

	tool, err := cfg.Tool("web-search")
	require.NoError(t, err)

	tools, err := tool.Tools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)

	engine := tools[0].Parameters["properties"].(map[string]any)["search_engine"].(map[string]any)
	require.EqualValues(t, "search_pro_bing", engine["default"])

	s, err := cfg.MCP("")
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestFromEnvironmentInvalidSettings(t *testing.T) {
	t.Run("engine", func(t *testing.T) {
		t.Setenv("BIGMODEL_API_KEY", "test-key")
		t.Setenv("BIGMODEL_SEARCH_ENGINE", "google")

		_, err := config.FromEnvironment()
		require.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Setenv("BIGMODEL_API_KEY", "test-key")
		t.Setenv("SEARCH_TIMEOUT", "soon")

		_, err := config.FromEnvironment()
		require.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	t.Setenv("TEST_BIGMODEL_KEY", "from-env")

	path := writeConfig(t, `
authorizers:
  - type: static
    token: mcp-secret

searchers:
  bigmodel:
    type: bigmodel
    token: ${TEST_BIGMODEL_KEY}
    engine: search_std
    timeout: 30s
    limit: 5

tools:
  web-search:
    type: search
    searcher: bigmodel

mcps:
  search:
    name: web_search
    instructions: use web-search for recent events
    tools:
      - web-search
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	require.Len(t, cfg.Authorizers, 1)

	_, err = cfg.Searcher("bigmodel")
	require.NoError(t, err)

	_, err = cfg.Tool("web-search")
	require.NoError(t, err)

	_, err = cfg.MCP("search")
	require.NoError(t, err)

	_, err = cfg.MCP("")
	require.NoError(t, err)
}

func TestParseMissingToken(t *testing.T) {
	t.Setenv("TEST_BIGMODEL_KEY", "")

	path := writeConfig(t, `
searchers:
  bigmodel:
    type: bigmodel
    token: ${TEST_BIGMODEL_KEY}
`)

	_, err := config.Parse(path)
	require.ErrorIs(t, err, config.ErrMissingToken)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
searchs:
  bigmodel:
    type: bigmodel
`)

	_, err := config.Parse(path)
	require.Error(t, err)
}

func TestParseUnknownTool(t *testing.T) {
	path := writeConfig(t, `
searchers:
  bigmodel:
    type: bigmodel
    token: key

mcps:
  search:
    tools:
      - missing
`)

	_, err := config.Parse(path)
	require.ErrorContains(t, err, "tool not found: missing")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(path, []byte("TEST_DOTENV_VALUE=from-file\nTEST_DOTENV_KEEP=from-file\n"), 0o600))

	t.Setenv("TEST_DOTENV_VALUE", "")
	os.Unsetenv("TEST_DOTENV_VALUE")
	t.Setenv("TEST_DOTENV_KEEP", "from-process")

	require.NoError(t, config.LoadEnv(path, filepath.Join(dir, "missing.env")))

	require.Equal(t, "from-file", os.Getenv("TEST_DOTENV_VALUE"))
	require.Equal(t, "from-process", os.Getenv("TEST_DOTENV_KEEP"))
}
