package static

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/adrianliechti/wingman-search/pkg/auth"
)

var _ auth.Provider = (*Provider)(nil)

type Provider struct {
	token string
}

func New(token string) (*Provider, error) {
	if token == "" {
		return nil, errors.New("invalid token")
	}

	return &Provider{
		token: token,
	}, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	token, err := auth.BearerToken(r)

	if err != nil {
		return ctx, err
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(p.token)) != 1 {
		return ctx, errors.New("invalid token")
	}

	return context.WithValue(ctx, auth.UserContextKey, "static"), nil
}
