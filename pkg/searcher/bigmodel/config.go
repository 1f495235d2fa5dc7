package bigmodel

import (
	"net/http"

	"github.com/adrianliechti/wingman-search/pkg/searcher"
)

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

func WithEngine(val searcher.Engine) Option {
	return func(c *Client) {
		c.engine = val
	}
}
