package mcp

type Option func(*Client)

func WithImplementation(name, version string) Option {
	return func(c *Client) {
		c.name = name
		c.version = version
	}
}
