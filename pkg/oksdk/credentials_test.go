package oksdk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeResolutionTruthTable(t *testing.T) {
	t.Parallel()

	for mask := range 1 << 5 {
		has := func(bit int) bool { return mask&(1<<bit) != 0 }
		val := func(bit int, v string) string {
			if has(bit) {
				return v
			}
			return ""
		}

		creds := Credentials{
			SessionKey:       val(0, "sk"),
			SessionSecretKey: val(1, "ssk"),
			OAuthCode:        val(2, "code"),
			AccessToken:      val(3, "at"),
			RefreshToken:     val(4, "rt"),
		}

		wantOAuth2 := has(3) && has(4)
		wantSession := (has(0) && has(1)) || has(2) || wantOAuth2

		t.Run(fmt.Sprintf("mask=%05b", mask), func(t *testing.T) {
			require.Equal(t, wantOAuth2, creds.OAuth2Session())
			require.Equal(t, wantSession, creds.SessionScope())
			require.Equal(t, !wantSession, creds.ApplicationScope())
		})
	}
}

func TestWithIdentityKeepsExplicitKeys(t *testing.T) {
	t.Parallel()

	cfg := testConfig("http://unused")

	filled := Credentials{}.withIdentity(cfg)
	require.Equal(t, testApplicationKey, filled.ApplicationKey)
	require.Equal(t, testApplicationID, filled.ApplicationID)
	require.Equal(t, testSecretKey, filled.SecretKey)

	own := Credentials{ApplicationKey: "other"}.withIdentity(cfg)
	require.Equal(t, "other", own.ApplicationKey)
}
