// Package file provides file-based configuration loading.
//
// Loaders:
//   - LoadSettings: TOML collection and API settings (collect.toml)
//   - LoadCredentials: script-app credentials as JSON, TOML or YAML
//
// Both are read once at startup. Every failure wraps
// domain.ErrConfiguration so the CLI can abort before any API call.
package file
