package oksdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/okapi/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	testApplicationID  = "1234567890"
	testApplicationKey = "ABACABACBACAB"
	testSecretKey      = "FFFAAAEEEBBBCCCAAADDD"
	testAccessToken    = "ABCDEF0123456789"
	testRefreshToken   = "DEADBABE0123456"
)

// recordedRequest is what a stubServer saw of the last request.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
	Header http.Header
}

// stubServer counts hits, records the last request and serves every request
// with handler.
type stubServer struct {
	*httptest.Server
	hits atomic.Int32

	mu   sync.Mutex
	last *recordedRequest
}

func newStubServer(t *testing.T, handler http.HandlerFunc) *stubServer {
	t.Helper()

	s := &stubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		_ = r.ParseForm()

		s.mu.Lock()
		s.last = &recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Form:   r.PostForm,
			Header: r.Header.Clone(),
		}
		s.mu.Unlock()

		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stubServer) lastRequest(t *testing.T) *recordedRequest {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotNil(t, s.last, "no request was received")
	return s.last
}

// jsonBody answers every request with status and body.
func jsonBody(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func testConfig(apiServer string) Config {
	return Config{
		ApplicationID:  testApplicationID,
		ApplicationKey: testApplicationKey,
		SecretKey:      testSecretKey,
		APIServer:      apiServer,
	}
}

func newTestClient(apiServer string) *SDKClient {
	c := NewSDKClient(testConfig(apiServer))
	c.Logger = slogx.Discard()
	return c
}

func newTestSession(t *testing.T, client *SDKClient, creds Credentials) *Session {
	t.Helper()

	s, err := client.NewSession(context.Background(), creds)
	require.NoError(t, err)
	return s
}

func oauth2Credentials() Credentials {
	return Credentials{AccessToken: testAccessToken, RefreshToken: testRefreshToken}
}
