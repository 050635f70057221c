package nai

import (
	"context"
	"errors"
	"net/http"

	"github.com/hansajasandeepabadalge/naiterm/internal/xslog"
)

type authService struct {
	client *Client
}

func (s *authService) Login(ctx context.Context, creds Credentials) error {
	const route = "/auth/login"

	var pair TokenPair
	err := s.client.do(ctx, call{
		method:   http.MethodPost,
		path:     route,
		body:     creds,
		result:   &pair,
		public:   true,
		resource: "token_pair",
	})
	if err != nil {
		return err
	}

	return s.client.tokens.SetToken(ctx, pair.Token())
}

func (s *authService) Register(ctx context.Context, reg Registration) error {
	const route = "/auth/register"

	var pair TokenPair
	err := s.client.do(ctx, call{
		method:   http.MethodPost,
		path:     route,
		body:     reg,
		result:   &pair,
		public:   true,
		resource: "token_pair",
	})
	if err != nil {
		return err
	}

	return s.client.tokens.SetToken(ctx, pair.Token())
}

func (s *authService) Logout(ctx context.Context) error {
	const route = "/auth/logout"

	// best effort: local credential clearing must not depend on the
	// remote call succeeding
	remoteErr := s.client.do(ctx, call{method: http.MethodPost, path: route})
	if remoteErr != nil && !errors.Is(remoteErr, ErrSessionExpired) {
		s.client.logger.WarnContext(ctx, "remote logout failed",
			xslog.Error(remoteErr))
	}

	return s.client.tokens.Clear(ctx)
}
