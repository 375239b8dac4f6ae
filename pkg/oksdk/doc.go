/*
Package oksdk is a client for the OK (Odnoklassniki) REST API.

# Overview

Every API call is a signed GET request. How it is signed depends on the
credentials a Session holds:

  - Application scope: only the application keys are known. Requests are
    signed with the application secret.
  - Session scope, legacy: a session_key/session_secret_key pair is known.
    session_key is sent and the session secret signs the request.
  - Session scope, OAuth2: an access_token/refresh_token pair is known. The
    access token is sent and the signature mixes it with the application
    secret.

The scope is read from the credentials on every call, so setting tokens on a
session switches the signing branch immediately.

# SDKClient and Session

An SDKClient carries the application identity and the shared transport:

	cfg := oksdk.LoadConfig() // or build oksdk.Config by hand
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	client := oksdk.NewSDKClient(cfg)

Sessions are created from per-user credentials. Passing an OAuth code
exchanges it for a token pair before NewSession returns:

	session, err := client.NewSession(ctx, oksdk.Credentials{OAuthCode: code})

Calls go through APICall or a namespace view:

	resp, err := session.APICall(ctx, "url.getInfo", url.Values{"url": {"http://ok.ru"}}, false)
	resp, err = session.Stream().Call(ctx, "get", nil) // session scope enforced

Responses are variants: the API may answer with an object, an array or a
bare scalar such as true. Use Response.Kind, Object, Array, Bool or Decode.

# Token Refresh

OAuth2 access tokens expire. RefreshAccessToken trades the refresh token for
a new access token; it is never called automatically:

	if err := session.RefreshAccessToken(ctx); err != nil {
		var authErr *oksdk.AuthError
		if errors.As(err, &authErr) {
			// refresh token rejected, the user has to log in again
		}
	}

# Error Handling

  - ErrAuthRequired: a session-only call was made in application scope.
  - ErrInvalidArgument: e.g. refresh without a refresh token.
  - *APIError: the API answered with error_code/error_msg.
  - *AuthError: the token endpoint answered with error/error_description.
  - *TransportError: network failure, unexpected HTTP status, invalid JSON.

Nothing is retried by the SDK. IsRetryable tells transient transport
failures apart for callers that want to retry.

# Persistence

With SDKClient.Store set (see package tokenstore), session tokens are saved
whenever they change and ResumeSession restores a session by ID. The
tokenstore/sqlite driver seals stored secrets with a passphrase-derived key:

	store, err := sqlite.Open(sqlite.Options{Path: "okapi.db", Passphrase: pass, SaltFile: "okapi.salt"})
	client.Store = store

# Thread Safety

A Session guards its credentials with a lock and may be shared between
goroutines. Concurrent RefreshAccessToken calls are not coalesced; each one
hits the token endpoint.
*/
package oksdk
