package oksdk

// Credentials is the full key set a session may hold. Identity keys
// (ApplicationID, ApplicationKey, SecretKey) normally come from Config; the
// rest belong to one user session.
type Credentials struct {
	ApplicationKey   string `json:"application_key,omitempty"`
	ApplicationID    string `json:"application_id,omitempty"`
	SecretKey        string `json:"-"`
	AccessToken      string `json:"access_token,omitempty"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	SessionKey       string `json:"session_key,omitempty"`
	SessionSecretKey string `json:"session_secret_key,omitempty"`
	OAuthCode        string `json:"oauth_code,omitempty"`
}

// SessionScope reports whether the credentials act on behalf of a user:
// a legacy session key pair, a pending OAuth code or an OAuth2 token pair.
func (c Credentials) SessionScope() bool {
	return (c.SessionKey != "" && c.SessionSecretKey != "") ||
		c.OAuthCode != "" ||
		c.OAuth2Session()
}

// ApplicationScope is the negation of SessionScope: server-to-server calls
// signed with the application secret only.
func (c Credentials) ApplicationScope() bool {
	return !c.SessionScope()
}

// OAuth2Session reports whether both OAuth2 tokens are present, which selects
// the OAuth2 signing branch.
func (c Credentials) OAuth2Session() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

// withIdentity fills empty identity keys from cfg.
func (c Credentials) withIdentity(cfg Config) Credentials {
	if c.ApplicationKey == "" {
		c.ApplicationKey = cfg.ApplicationKey
	}
	if c.ApplicationID == "" {
		c.ApplicationID = cfg.ApplicationID
	}
	if c.SecretKey == "" {
		c.SecretKey = cfg.SecretKey
	}
	return c
}
