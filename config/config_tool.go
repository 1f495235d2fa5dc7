package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrianliechti/wingman-search/pkg/otel"
	"github.com/adrianliechti/wingman-search/pkg/searcher"
	"github.com/adrianliechti/wingman-search/pkg/tool"
	"github.com/adrianliechti/wingman-search/pkg/tool/mcp"
	"github.com/adrianliechti/wingman-search/pkg/tool/search"
)

func (c *Config) RegisterTool(id string, p tool.Provider) {
	if c.tools == nil {
		c.tools = make(map[string]tool.Provider)
	}

	c.tools[id] = p
}

func (cfg *Config) Tools() []tool.Provider {
	var tools []tool.Provider

	if cfg.tools != nil {
		for _, p := range cfg.tools {
			tools = append(tools, p)
		}
	}

	return tools
}

func (cfg *Config) Tool(id string) (tool.Provider, error) {
	if cfg.tools != nil {
		if p, ok := cfg.tools[id]; ok {
			return p, nil
		}
	}

	return nil, errors.New("tool not found: " + id)
}

type toolConfig struct {
	Type string `yaml:"type"`

	URL  string            `yaml:"url"`
	Vars map[string]string `yaml:"vars"`

	Searcher string `yaml:"searcher"`
	Engine   string `yaml:"engine"`
}

type toolContext struct {
	Searcher searcher.Provider
}

func (cfg *Config) registerTools(f *configFile) error {
	var configs map[string]toolConfig

	if err := f.Tools.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Tools.Content {
		id := node.Value

		config, ok := configs[node.Value]

		if !ok {
			continue
		}

		if err := cfg.addTool(id, config); err != nil {
			return err
		}
	}

	return nil
}

func (cfg *Config) addTool(id string, config toolConfig) error {
	context := toolContext{}

	if p, err := cfg.Searcher(config.Searcher); err == nil {
		context.Searcher = p
	}

	t, err := createTool(config, context)

	if err != nil {
		return fmt.Errorf("tool %s: %w", id, err)
	}

	if _, ok := t.(otel.Tool); !ok {
		t = otel.NewTool(config.Type, t)
	}

	cfg.RegisterTool(id, t)

	return nil
}

func createTool(cfg toolConfig, context toolContext) (tool.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "search", "web-search":
		return searcherTool(cfg, context)

	case "mcp":
		return mcpTool(cfg, context)

	default:
		return nil, errors.New("invalid tool type: " + cfg.Type)
	}
}

func searcherTool(cfg toolConfig, context toolContext) (tool.Provider, error) {
	if context.Searcher == nil {
		return nil, errors.New("searcher not found: " + cfg.Searcher)
	}

	engine, err := parseEngine(cfg.Engine)

	if err != nil {
		return nil, err
	}

	var options []search.Option

	if engine != "" {
		options = append(options, search.WithEngine(engine))
	}

	return search.New(context.Searcher, options...)
}

func mcpTool(cfg toolConfig, context toolContext) (tool.Provider, error) {
	if cfg.URL == "" {
		return nil, errors.New("invalid url")
	}

	return mcp.NewHTTP(cfg.URL, cfg.Vars)
}
