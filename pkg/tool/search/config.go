package search

import (
	"github.com/adrianliechti/wingman-search/pkg/searcher"
)

type Option func(*Client)

func WithEngine(val searcher.Engine) Option {
	return func(c *Client) {
		if val != "" {
			c.engine = val
		}
	}
}
