package config

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/adrianliechti/wingman-search/pkg/limiter"
	"github.com/adrianliechti/wingman-search/pkg/otel"
	"github.com/adrianliechti/wingman-search/pkg/searcher"
	"github.com/adrianliechti/wingman-search/pkg/searcher/bigmodel"

	"golang.org/x/time/rate"
)

func (cfg *Config) RegisterSearcher(id string, p searcher.Provider) {
	if cfg.searcher == nil {
		cfg.searcher = make(map[string]searcher.Provider)
	}

	if _, ok := cfg.searcher[""]; !ok {
		cfg.searcher[""] = p
	}

	cfg.searcher[id] = p
}

func (cfg *Config) Searcher(id string) (searcher.Provider, error) {
	if cfg.searcher != nil {
		if i, ok := cfg.searcher[id]; ok {
			return i, nil
		}
	}

	return nil, errors.New("searcher not found: " + id)
}

type searcherConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Engine string `yaml:"engine"`

	Proxy   *proxyConfig   `yaml:"proxy"`
	Timeout *time.Duration `yaml:"timeout"`

	Limit *int `yaml:"limit"`
}

type searcherContext struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func (cfg *Config) registerSearchers(f *configFile) error {
	var configs map[string]searcherConfig

	if err := f.Searchers.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Searchers.Content {
		id := node.Value

		config, ok := configs[node.Value]

		if !ok {
			continue
		}

		if err := cfg.addSearcher(id, config); err != nil {
			return err
		}
	}

	return nil
}

func (cfg *Config) addSearcher(id string, config searcherConfig) error {
	client, err := config.Proxy.httpClient(config.Timeout)

	if err != nil {
		return err
	}

	context := searcherContext{
		Client:  client,
		Limiter: createLimiter(config.Limit),
	}

	s, err := createSearcher(config, context)

	if err != nil {
		return fmt.Errorf("searcher %s: %w", id, err)
	}

	if context.Limiter != nil {
		s = limiter.NewSearcher(context.Limiter, s)
	}

	if _, ok := s.(otel.Searcher); !ok {
		s = otel.NewSearcher(config.Type, id, s)
	}

	cfg.RegisterSearcher(id, s)

	return nil
}

func createSearcher(cfg searcherConfig, context searcherContext) (searcher.Provider, error) {
	switch strings.ToLower(cfg.Type) {

	case "bigmodel", "zhipu":
		return bigmodelSearch(cfg, context)

	default:
		return nil, errors.New("invalid search type: " + cfg.Type)
	}
}

func bigmodelSearch(cfg searcherConfig, context searcherContext) (searcher.Provider, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	var options []bigmodel.Option

	if context.Client != nil {
		options = append(options, bigmodel.WithClient(context.Client))
	}

	if cfg.URL != "" {
		options = append(options, bigmodel.WithURL(cfg.URL))
	}

	if cfg.Engine != "" {
		engine, err := parseEngine(cfg.Engine)

		if err != nil {
			return nil, err
		}

		options = append(options, bigmodel.WithEngine(engine))
	}

	return bigmodel.New(cfg.Token, options...)
}

func parseEngine(val string) (searcher.Engine, error) {
	if val == "" {
		return "", nil
	}

	engine := searcher.Engine(val)

	if !slices.Contains(searcher.Engines, engine) {
		return "", errors.New("invalid search engine: " + val)
	}

	return engine, nil
}
