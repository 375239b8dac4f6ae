package oksdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/okapi/pkg/idx"
	"github.com/aussiebroadwan/okapi/pkg/slogx"
	"github.com/aussiebroadwan/okapi/pkg/tokenstore"
	"golang.org/x/time/rate"
)

// SDKClient holds what every session of one application shares: identity,
// HTTP transport, logger, throttling, metrics and token persistence.
// Fields may be replaced after NewSDKClient but not while sessions are in use.
type SDKClient struct {
	Config     Config
	HTTPClient *http.Client

	// Logger receives request and error records. Defaults to slog.Default().
	Logger *slog.Logger

	// Limiter throttles outbound requests client-side. Nil disables it.
	Limiter *rate.Limiter

	// Metrics records call outcomes. Nil disables it.
	Metrics *MetricsCollector

	// Store persists session tokens so sessions can be resumed. Nil disables it.
	Store tokenstore.Store
}

// NewSDKClient creates a client for cfg. Missing optional fields get their
// defaults; call cfg.Validate first to catch missing identity keys.
func NewSDKClient(cfg Config) *SDKClient {
	cfg = cfg.withDefaults()

	c := &SDKClient{
		Config: cfg,
		HTTPClient: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: slogx.Transport(http.DefaultTransport, nil),
		},
	}

	if cfg.RateLimit > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	return c
}

func (c *SDKClient) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// NewSession creates a session for creds under a fresh ID. Identity keys left
// empty are taken from the client's Config.
//
// When creds carries an OAuth code and no token pair yet, the code is
// exchanged for tokens before the session is returned.
func (c *SDKClient) NewSession(ctx context.Context, creds Credentials) (*Session, error) {
	return c.NewSessionWithID(ctx, idx.New(), creds)
}

// NewSessionWithID is NewSession with a caller chosen ID, used as the token
// store key.
func (c *SDKClient) NewSessionWithID(ctx context.Context, id idx.ID, creds Credentials) (*Session, error) {
	s := newSession(c, id, creds.withIdentity(c.Config))

	if creds.OAuthCode == "" || s.creds.OAuth2Session() {
		return s, nil
	}

	tokenResp, err := c.ExchangeCode(ctx, s.creds.ApplicationID, s.creds.SecretKey, creds.OAuthCode)
	if err != nil {
		c.Metrics.RecordTokenGrant("authorization_code", err)
		return nil, err
	}
	c.Metrics.RecordTokenGrant("authorization_code", nil)

	s.creds.AccessToken = tokenResp.AccessToken
	s.creds.RefreshToken = tokenResp.RefreshToken

	if err := s.persist(ctx); err != nil {
		return nil, fmt.Errorf("failed to persist session tokens: %w", err)
	}

	return s, nil
}

// ResumeSession rebuilds a session from the tokens saved under id.
// Returns tokenstore.ErrNotFound when nothing was saved.
func (c *SDKClient) ResumeSession(ctx context.Context, id idx.ID) (*Session, error) {
	if c.Store == nil {
		return nil, fmt.Errorf("%w: no token store configured", ErrInvalidArgument)
	}

	tokens, err := c.Store.Load(ctx, id.String())
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session tokens: %w", err)
	}

	creds := Credentials{
		AccessToken:      tokens.AccessToken,
		RefreshToken:     tokens.RefreshToken,
		SessionKey:       tokens.SessionKey,
		SessionSecretKey: tokens.SessionSecretKey,
	}

	return newSession(c, id, creds.withIdentity(c.Config)), nil
}
