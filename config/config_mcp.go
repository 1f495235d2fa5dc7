package config

import (
	"errors"

	"github.com/adrianliechti/wingman-search/pkg/mcp"
	"github.com/adrianliechti/wingman-search/pkg/tool"
)

func (cfg *Config) RegisterMCP(id string, s *mcp.Server) {
	if cfg.mcps == nil {
		cfg.mcps = make(map[string]*mcp.Server)
	}

	if _, ok := cfg.mcps[""]; !ok {
		cfg.mcps[""] = s
	}

	cfg.mcps[id] = s
}

// MCP returns the server registered under id; the empty id selects the first one.
func (cfg *Config) MCP(id string) (*mcp.Server, error) {
	if cfg.mcps != nil {
		if s, ok := cfg.mcps[id]; ok {
			return s, nil
		}
	}

	return nil, errors.New("mcp not found: " + id)
}

type mcpConfig struct {
	Name string `yaml:"name"`

	Tools []string `yaml:"tools"`

	Instructions string `yaml:"instructions"`
}

type mcpContext struct {
	Tools []tool.Provider
}

func (cfg *Config) registerMCP(f *configFile) error {
	var configs map[string]mcpConfig

	if err := f.MCPs.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.MCPs.Content {
		id := node.Value

		config, ok := configs[node.Value]

		if !ok {
			continue
		}

		if err := cfg.addMCP(id, config); err != nil {
			return err
		}
	}

	return nil
}

func (cfg *Config) addMCP(id string, config mcpConfig) error {
	context := mcpContext{}

	for _, t := range config.Tools {
		tool, err := cfg.Tool(t)

		if err != nil {
			return err
		}

		context.Tools = append(context.Tools, tool)
	}

	if config.Name == "" {
		config.Name = id
	}

	s, err := createMCP(config, context)

	if err != nil {
		return err
	}

	cfg.RegisterMCP(id, s)

	return nil
}

func createMCP(config mcpConfig, context mcpContext) (*mcp.Server, error) {
	var options []mcp.Option

	if config.Instructions != "" {
		options = append(options, mcp.WithInstructions(config.Instructions))
	}

	return mcp.New(config.Name, context.Tools, options...)
}
