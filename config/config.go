package config

import (
	"bytes"
	"errors"
	"os"

	"github.com/adrianliechti/wingman-search/pkg/auth"
	"github.com/adrianliechti/wingman-search/pkg/mcp"
	"github.com/adrianliechti/wingman-search/pkg/searcher"
	"github.com/adrianliechti/wingman-search/pkg/tool"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingToken = errors.New("missing BIGMODEL_API_KEY")
)

type Config struct {
	Address string

	Authorizers []auth.Provider

	searcher map[string]searcher.Provider

	tools map[string]tool.Provider

	mcps map[string]*mcp.Server
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",
	}

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerSearchers(file); err != nil {
		return nil, err
	}

	if err := c.registerTools(file); err != nil {
		return nil, err
	}

	if err := c.registerMCP(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Authorizers []authorizerConfig `yaml:"authorizers"`

	Searchers yaml.Node `yaml:"searchers"`

	Tools yaml.Node `yaml:"tools"`

	MCPs yaml.Node `yaml:"mcps"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
