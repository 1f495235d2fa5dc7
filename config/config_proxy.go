package config

import (
	"net/http"
	"net/url"
	"time"

	"github.com/adrianliechti/wingman-search/pkg/otel"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 60 * time.Second

type proxyConfig struct {
	URL string `yaml:"url"`
}

func (cfg *proxyConfig) proxyTransport() (*http.Transport, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()

	if cfg == nil || cfg.URL == "" {
		return tr, nil
	}

	proxyURL, err := url.Parse(cfg.URL)

	if err != nil {
		return nil, err
	}

	tr.Proxy = http.ProxyURL(proxyURL)

	return tr, nil
}

// httpClient is safe to call on a nil proxy config.
func (cfg *proxyConfig) httpClient(timeout *time.Duration) (*http.Client, error) {
	transport, err := cfg.proxyTransport()

	if err != nil {
		return nil, err
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   defaultTimeout,
	}

	if timeout != nil {
		client.Timeout = *timeout
	}

	if otel.EnableTelemetry {
		client.Transport = otelhttp.NewTransport(transport)
	}

	return client, nil
}
