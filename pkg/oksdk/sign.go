package oksdk

import (
	"net/url"
	"slices"
	"strings"

	"github.com/aussiebroadwan/okapi/pkg/cryptox"
)

// Sign returns params merged with the scope-dependent parameters and the
// request signature. Explicit params win over the additional ones. The input
// is not modified.
//
// OAuth2 sessions sign with md5(base + md5(access_token + secret_key)) and
// also send access_token; every other session signs with md5(base +
// Signature()).
func (s *Session) Sign(params url.Values) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(url.Values, len(params)+3)
	for k, v := range s.additionalParamsLocked() {
		merged[k] = slices.Clone(v)
	}
	for k, v := range params {
		merged[k] = slices.Clone(v)
	}

	base := digestBase(merged)

	if s.creds.OAuth2Session() {
		merged.Set("sig", cryptox.MD5Hex(base+cryptox.MD5Hex(s.creds.AccessToken+s.creds.SecretKey)))
		merged.Set("access_token", s.creds.AccessToken)
	} else {
		merged.Set("sig", cryptox.MD5Hex(base+signatureSecret(s.creds)))
	}

	return merged
}

// Signature returns the secret appended to the digest base in the legacy
// signing branch: the application secret in application scope, otherwise
// the access token or, failing that, the session secret key.
func (s *Session) Signature() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return signatureSecret(s.creds)
}

func signatureSecret(c Credentials) string {
	if c.ApplicationScope() {
		return c.SecretKey
	}
	if c.AccessToken != "" {
		return c.AccessToken
	}
	return c.SessionSecretKey
}

// additionalParamsLocked returns the params every request carries for the
// current scope. Callers must hold s.mu for writing.
func (s *Session) additionalParamsLocked() url.Values {
	if s.additional != nil {
		return s.additional
	}

	p := url.Values{"application_key": {s.creds.ApplicationKey}}
	if s.creds.SessionScope() && !s.creds.OAuth2Session() && s.creds.SessionKey != "" {
		p.Set("session_key", s.creds.SessionKey)
	}

	s.additional = p
	return p
}

// digestBase concatenates key=value pairs sorted by key with no separator.
// Only the first value of a repeated key takes part.
func digestBase(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params.Get(k))
	}
	return b.String()
}
