// Package connectors holds clients for the upstream sources collected from.
//
// Each connector implements a driven port from internal/core/ports/driven
// and owns its transport concerns: authentication, rate limiting, retries
// and translating wire formats into domain types.
//
// Connectors:
//   - reddit: Reddit OAuth API (posts by community, comments by post)
package connectors
