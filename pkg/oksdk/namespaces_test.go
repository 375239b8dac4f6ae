package oksdk

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamespaces(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{
		"auth", "friends", "group", "notifications", "photos",
		"stream", "url", "users", "widget",
	}, Namespaces())
}

func TestSessionNamespace(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, newTestClient("http://unused"), Credentials{})

	ns, err := s.Namespace("users")
	require.NoError(t, err)
	require.Equal(t, "users", ns.Name())
	require.Contains(t, ns.Methods(), "getCurrentUser")

	spec, ok := ns.Spec("getCurrentUser")
	require.True(t, ok)
	require.True(t, spec.SessionOnly)

	spec, ok = ns.Spec("getInfo")
	require.True(t, ok)
	require.False(t, spec.SessionOnly)

	_, ok = ns.Spec("noSuchMethod")
	require.False(t, ok)

	_, err = s.Namespace("mediatopic")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNamespaceAccessors(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, newTestClient("http://unused"), Credentials{})

	for name, ns := range map[string]*Namespace{
		"auth":          s.Auth(),
		"friends":       s.Friends(),
		"group":         s.Group(),
		"notifications": s.Notifications(),
		"photos":        s.Photos(),
		"stream":        s.Stream(),
		"url":           s.URL(),
		"users":         s.Users(),
		"widget":        s.Widget(),
	} {
		require.Equal(t, name, ns.Name())
	}
}

func TestNamespaceCall(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t, jsonBody(http.StatusOK, `{"type":"UNKNOWN"}`))
	s := newTestSession(t, newTestClient(srv.URL), Credentials{})
	ctx := context.Background()

	// Declared, not session-only.
	_, err := s.URL().Call(ctx, "getInfo", nil)
	require.NoError(t, err)
	require.Equal(t, "/api/url/getInfo", srv.lastRequest(t).Path)

	// Undeclared methods pass through without a scope check.
	_, err = s.Users().Call(ctx, "getAdditionalInfo", nil)
	require.NoError(t, err)
	require.Equal(t, "/api/users/getAdditionalInfo", srv.lastRequest(t).Path)

	// Session-only methods are refused in application scope.
	_, err = s.Friends().Call(ctx, "get", nil)
	require.ErrorIs(t, err, ErrAuthRequired)
	require.Equal(t, int32(2), srv.hits.Load())
}
