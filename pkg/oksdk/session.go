package oksdk

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/aussiebroadwan/okapi/pkg/idx"
	"github.com/aussiebroadwan/okapi/pkg/tokenstore"
)

// Session represents one set of credentials talking to the API, either in
// application scope or on behalf of a user.
//
// Scope is never cached: every call inspects the credentials as they are at
// that moment, so a session gains OAuth2 signing as soon as both tokens are
// set. The additional params derived from the scope are cached and thrown
// away whenever a credential changes.
type Session struct {
	client *SDKClient
	id     idx.ID

	mu         sync.RWMutex
	creds      Credentials
	additional url.Values // nil until first Sign or after a credential change
}

func newSession(client *SDKClient, id idx.ID, creds Credentials) *Session {
	return &Session{
		client: client,
		id:     id,
		creds:  creds,
	}
}

// ID returns the identifier the session is persisted under.
func (s *Session) ID() idx.ID {
	return s.id
}

// Credentials returns a copy of the current credentials.
func (s *Session) Credentials() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.AccessToken
}

// SetAccessToken replaces the access token.
func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.AccessToken = token
	s.additional = nil
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.RefreshToken
}

// SetRefreshToken replaces the refresh token.
func (s *Session) SetRefreshToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.RefreshToken = token
	s.additional = nil
}

// SessionScope reports whether calls are made on behalf of a user.
func (s *Session) SessionScope() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.SessionScope()
}

// ApplicationScope reports whether calls are signed with the application
// secret only.
func (s *Session) ApplicationScope() bool {
	return !s.SessionScope()
}

// OAuth2Session reports whether the OAuth2 signing branch is active.
func (s *Session) OAuth2Session() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.OAuth2Session()
}

// Forget removes the session's tokens from the configured token store.
// The in-memory session keeps working.
func (s *Session) Forget(ctx context.Context) error {
	if s.client.Store == nil || s.id.IsZero() {
		return nil
	}
	return s.client.Store.Delete(ctx, s.id.String())
}

// persist writes the per-session keys to the token store, if one is set.
func (s *Session) persist(ctx context.Context) error {
	if s.client.Store == nil || s.id.IsZero() {
		return nil
	}

	s.mu.RLock()
	tokens := tokenstore.Tokens{
		AccessToken:      s.creds.AccessToken,
		RefreshToken:     s.creds.RefreshToken,
		SessionKey:       s.creds.SessionKey,
		SessionSecretKey: s.creds.SessionSecretKey,
		UpdatedAt:        time.Now().UTC(),
	}
	s.mu.RUnlock()

	return s.client.Store.Save(ctx, s.id.String(), tokens)
}
