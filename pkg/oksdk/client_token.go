package oksdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/okapi/pkg/cryptox"
)

// TokenPath is the OAuth token endpoint, relative to the API server.
const TokenPath = "/oauth/token.do"

// TokenResponse is the success body of the token endpoint.
type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	TokenType    string      `json:"token_type,omitempty"`
	ExpiresIn    json.Number `json:"expires_in,omitempty"`
}

// RefreshAccessToken exchanges the session's refresh token for a new access
// token and stores it on the session. On failure the old token is kept.
// The request is a plain form POST, it is not signed.
func (s *Session) RefreshAccessToken(ctx context.Context) error {
	s.mu.RLock()
	creds := s.creds
	s.mu.RUnlock()

	if creds.RefreshToken == "" {
		err := fmt.Errorf(
			"%w: session was initialized without refresh token, calling RefreshAccessToken doesn't make sense",
			ErrInvalidArgument,
		)
		s.client.Metrics.RecordTokenGrant("refresh_token", err)
		return err
	}

	tokenResp, err := s.client.RefreshGrant(ctx, creds.ApplicationID, creds.SecretKey, creds.RefreshToken)
	s.client.Metrics.RecordTokenGrant("refresh_token", err)
	if err != nil {
		s.client.logger().ErrorContext(ctx, "failed to refresh access token",
			"session_id", s.id.String(),
			"err", err,
		)
		return err
	}

	s.mu.Lock()
	s.creds.AccessToken = tokenResp.AccessToken
	if tokenResp.RefreshToken != "" {
		s.creds.RefreshToken = tokenResp.RefreshToken
	}
	s.additional = nil
	s.mu.Unlock()

	s.client.logger().DebugContext(ctx, "access token received",
		"session_id", s.id.String(),
		"token_fp", cryptox.FingerprintToken(tokenResp.AccessToken),
	)

	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("failed to persist session tokens: %w", err)
	}

	return nil
}

// RefreshGrant requests a new access token using a refresh token.
func (c *SDKClient) RefreshGrant(
	ctx context.Context,
	clientID, clientSecret, refreshToken string,
) (*TokenResponse, error) {
	data := url.Values{
		"refresh_token": {refreshToken},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"grant_type":    {"refresh_token"},
	}

	return c.requestToken(ctx, data)
}

// ExchangeCode trades an OAuth authorization code for a token pair.
func (c *SDKClient) ExchangeCode(
	ctx context.Context,
	clientID, clientSecret, code string,
) (*TokenResponse, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"grant_type":    {"authorization_code"},
	}
	if c.Config.RedirectURI != "" {
		data.Set("redirect_uri", c.Config.RedirectURI)
	}

	return c.requestToken(ctx, data)
}

// requestToken posts data to the token endpoint. A body with an "error" key
// is an *AuthError whatever the HTTP status.
func (c *SDKClient) requestToken(ctx context.Context, data url.Values) (*TokenResponse, error) {
	status, body, err := c.doRequest(ctx, http.MethodPost, TokenPath, data)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		if !isSuccess(status) {
			return nil, &TransportError{StatusCode: status, Body: body}
		}
		return nil, &TransportError{
			StatusCode: status,
			Body:       body,
			Cause:      fmt.Errorf("failed to decode token response: %w", err),
		}
	}

	if _, ok := envelope["error"]; ok {
		authErr := &AuthError{StatusCode: status, Body: body}
		_ = json.Unmarshal(body, authErr)
		return nil, authErr
	}

	if !isSuccess(status) {
		return nil, &TransportError{StatusCode: status, Body: body}
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, &TransportError{
			StatusCode: status,
			Body:       body,
			Cause:      fmt.Errorf("failed to decode token response: %w", err),
		}
	}
	if tokenResp.AccessToken == "" {
		return nil, &TransportError{
			StatusCode: status,
			Body:       body,
			Cause:      errors.New("token response carries no access_token"),
		}
	}

	return &tokenResp, nil
}
