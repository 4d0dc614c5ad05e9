// Package reddit implements a read-only client for Reddit's OAuth API.
//
// The client serves the two listing resources a collection run needs,
// posts-by-community and comments-by-post, plus the identity endpoint used
// to verify credentials before any output is written.
//
// # Architecture
//
// The client follows the driven port pattern defined in [driven.RedditAPI].
// It comprises the following components:
//
//   - Client: performs requests, decodes listings, retries 429 responses
//   - RateLimiter: proactive throttling plus reactive header tracking
//   - passwordTokenSource: lazy OAuth2 password grant for script apps
//
// # Authentication
//
// Script apps authenticate with the OAuth2 password grant against
// https://www.reddit.com/api/v1/access_token using HTTP basic client
// authentication. The token is requested lazily on the first API call and
// cached until it expires, so constructing a client never touches the
// network. A rejected grant or a 401 response satisfies
// errors.Is(err, domain.ErrAuthentication).
//
// # Rate Limiting
//
// Reddit allows roughly 100 requests per minute per OAuth client,
// averaged over a ten-minute window. The client combines:
//
//  1. Proactive throttling: a token bucket limited to the configured
//     requests per minute.
//
//  2. Reactive handling: X-Ratelimit-Used, X-Ratelimit-Remaining and
//     X-Ratelimit-Reset are tracked after every response. When the
//     remaining quota is nearly exhausted the client waits for the reset.
//
//  3. Retries: a 429 response is retried up to MaxRetries times. The
//     Retry-After header is honoured; otherwise the delay grows linearly
//     with the attempt number. Exhausted retries return a [RateLimitError].
//
// # Listings
//
// Posts are read from /r/{community}/new, newest first, with the "after"
// cursor. Listings of nonexistent, private or banned communities (404,
// 403, or a redirect to search) yield an empty page rather than an error.
//
// Comments are read from /r/{community}/comments/{id} with depth=1. Only
// t1 children whose parent is the post are returned; "more" stubs are
// dropped.
//
// All requests carry raw_json=1 so text fields are not HTML-escaped.
package reddit
