package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/adrianliechti/wingman-search/pkg/tool/search"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return err
		}
	}

	return nil
}

// FromEnvironment builds the default configuration: one BigModel searcher
// exposed as the web-search tool on a single MCP server.
func FromEnvironment() (*Config, error) {
	token := os.Getenv("BIGMODEL_API_KEY")

	if token == "" {
		return nil, ErrMissingToken
	}

	s := searcherConfig{
		Type: "bigmodel",

		URL:   os.Getenv("BIGMODEL_API_URL"),
		Token: token,

		Engine: os.Getenv("BIGMODEL_SEARCH_ENGINE"),
	}

	if val := os.Getenv("SEARCH_TIMEOUT"); val != "" {
		timeout, err := time.ParseDuration(val)

		if err != nil {
			return nil, err
		}

		s.Timeout = &timeout
	}

	c := &Config{
		Address: ":8080",
	}

	if err := c.addSearcher("bigmodel", s); err != nil {
		return nil, err
	}

	if err := c.addTool(search.ToolName, toolConfig{Type: "search", Searcher: "bigmodel", Engine: s.Engine}); err != nil {
		return nil, err
	}

	if err := c.addMCP("web_search", mcpConfig{Tools: []string{search.ToolName}}); err != nil {
		return nil, err
	}

	return c, nil
}
