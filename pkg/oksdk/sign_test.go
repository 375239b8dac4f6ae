package oksdk

import (
	"net/url"
	"testing"

	"github.com/aussiebroadwan/okapi/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestDigestBaseSortsByKey(t *testing.T) {
	t.Parallel()

	a := url.Values{}
	a.Set("b", "1")
	a.Set("a", "2")

	b := url.Values{}
	b.Set("a", "2")
	b.Set("b", "1")

	require.Equal(t, "a=2b=1", digestBase(a))
	require.Equal(t, digestBase(a), digestBase(b))
	require.Empty(t, digestBase(url.Values{}))
}

func TestDigestBaseUsesFirstValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, "k=first", digestBase(url.Values{"k": {"first", "second"}}))
}

func TestSignApplicationScope(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, newTestClient("http://unused"), Credentials{})
	require.True(t, s.ApplicationScope())
	require.Equal(t, testSecretKey, s.Signature())

	params := url.Values{"url": {"http://ok.com/example"}}
	signed := s.Sign(params)

	base := "application_key=" + testApplicationKey + "url=http://ok.com/example"
	require.Equal(t, cryptox.MD5Hex(base+testSecretKey), signed.Get("sig"))
	require.Equal(t, testApplicationKey, signed.Get("application_key"))
	require.Empty(t, signed.Get("access_token"))
	require.Empty(t, signed.Get("session_key"))

	// The caller's values are left alone
	require.Len(t, params, 1)
}

func TestSignOAuth2Session(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, newTestClient("http://unused"), oauth2Credentials())
	require.True(t, s.OAuth2Session())

	signed := s.Sign(url.Values{"fields": {"uid,name"}})

	base := "application_key=" + testApplicationKey + "fields=uid,name"
	want := cryptox.MD5Hex(base + cryptox.MD5Hex(testAccessToken+testSecretKey))
	require.Equal(t, want, signed.Get("sig"))
	require.Equal(t, testAccessToken, signed.Get("access_token"))
	require.Empty(t, signed.Get("session_key"), "oauth2 sessions never send session_key")
}

func TestSignLegacySessionScope(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, newTestClient("http://unused"), Credentials{
		SessionKey:       "session-key",
		SessionSecretKey: "session-secret",
	})
	require.True(t, s.SessionScope())
	require.False(t, s.OAuth2Session())
	require.Equal(t, "session-secret", s.Signature())

	signed := s.Sign(nil)

	base := "application_key=" + testApplicationKey + "session_key=session-key"
	require.Equal(t, cryptox.MD5Hex(base+"session-secret"), signed.Get("sig"))
	require.Equal(t, "session-key", signed.Get("session_key"))
}

func TestSignLegacyPrefersAccessToken(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, newTestClient("http://unused"), Credentials{
		SessionKey:       "session-key",
		SessionSecretKey: "session-secret",
		AccessToken:      "lone-access-token",
	})
	require.False(t, s.OAuth2Session())
	require.Equal(t, "lone-access-token", s.Signature())

	signed := s.Sign(nil)
	base := "application_key=" + testApplicationKey + "session_key=session-key"
	require.Equal(t, cryptox.MD5Hex(base+"lone-access-token"), signed.Get("sig"))
	require.Empty(t, signed.Get("access_token"))
}

func TestSignExplicitParamsWin(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, newTestClient("http://unused"), Credentials{})
	signed := s.Sign(url.Values{"application_key": {"override"}})

	require.Equal(t, "override", signed.Get("application_key"))
	require.Equal(t, cryptox.MD5Hex("application_key=override"+testSecretKey), signed.Get("sig"))
}

func TestSignIsDeterministic(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, newTestClient("http://unused"), oauth2Credentials())
	params := url.Values{"b": {"1"}, "a": {"2"}}

	first := s.Sign(params).Get("sig")
	for range 10 {
		require.Equal(t, first, s.Sign(params).Get("sig"))
	}
	require.Equal(t, first, s.Sign(url.Values{"a": {"2"}, "b": {"1"}}).Get("sig"))
}

func TestSignFollowsCredentialChanges(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, newTestClient("http://unused"), Credentials{
		SessionKey:       "session-key",
		SessionSecretKey: "session-secret",
	})
	require.Equal(t, "session-key", s.Sign(nil).Get("session_key"))

	// Completing the token pair switches to the OAuth2 branch and drops the
	// cached session_key.
	s.SetAccessToken(testAccessToken)
	s.SetRefreshToken(testRefreshToken)

	signed := s.Sign(nil)
	require.True(t, s.OAuth2Session())
	require.Empty(t, signed.Get("session_key"))
	require.Equal(t, testAccessToken, signed.Get("access_token"))
}
