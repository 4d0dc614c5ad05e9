package domain

import (
	"fmt"
	"strings"
)

// Credentials holds the script-app credentials for Reddit's password grant.
// They are read once from a file that must not be committed to version control.
type Credentials struct {
	// ClientID is the app ID shown under the app name on reddit.com/prefs/apps.
	ClientID string `json:"client_id" toml:"client_id" yaml:"client_id"`
	// ClientSecret is the app secret.
	ClientSecret string `json:"client_secret" toml:"client_secret" yaml:"client_secret"`
	// Username is the account that owns the script app.
	Username string `json:"username" toml:"username" yaml:"username"`
	// Password is that account's password.
	Password string `json:"password" toml:"password" yaml:"password"`
	// UserAgent identifies the client, e.g. "research-collector/0.1 by u/someone".
	UserAgent string `json:"user_agent" toml:"user_agent" yaml:"user_agent"`
}

// Validate checks that every field is present and non-blank.
// The returned error wraps ErrConfiguration and names the missing fields.
func (c Credentials) Validate() error {
	var missing []string
	for _, f := range []struct {
		key   string
		value string
	}{
		{"client_id", c.ClientID},
		{"client_secret", c.ClientSecret},
		{"username", c.Username},
		{"password", c.Password},
		{"user_agent", c.UserAgent},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing credential fields: %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// String masks secrets so credentials can be logged safely.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{client_id=%s, username=%s, user_agent=%q}", c.ClientID, c.Username, c.UserAgent)
}
