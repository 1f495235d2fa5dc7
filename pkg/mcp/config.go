package mcp

type Option func(*Server)

func WithVersion(val string) Option {
	return func(s *Server) {
		s.impl.Version = val
	}
}

func WithInstructions(val string) Option {
	return func(s *Server) {
		s.opts.Instructions = val
	}
}
