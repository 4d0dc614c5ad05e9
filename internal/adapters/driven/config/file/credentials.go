package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
)

// LoadCredentials reads script-app credentials from path. The format is
// chosen by extension: .toml, .yaml or .yml, and JSON otherwise.
// A missing file, a malformed document or a blank field is reported as
// domain.ErrConfiguration. No network call is made.
func LoadCredentials(path string) (domain.Credentials, error) {
	if path == "" {
		path = domain.DefaultCredentialsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Credentials{}, fmt.Errorf("%w: credentials file %s not found", domain.ErrConfiguration, path)
		}
		return domain.Credentials{}, fmt.Errorf("%w: read credentials: %w", domain.ErrConfiguration, err)
	}

	var creds domain.Credentials
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &creds)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &creds)
	default:
		err = json.Unmarshal(data, &creds)
	}
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: parse credentials %s: %w", domain.ErrConfiguration, path, err)
	}

	if err := creds.Validate(); err != nil {
		return domain.Credentials{}, fmt.Errorf("%s: %w", path, err)
	}
	return creds, nil
}
