// Package services implements the driving port interfaces.
//
// A collection run is assembled from three services:
//
//   - PostFetcher walks a community's "new" listing lazily and yields the
//     posts created within the window, up to the per-community cap.
//   - CommentExtractor retrieves the first top-level comments of a post.
//   - CollectService drives both per community, flattens each post with its
//     comments into records and hands them to the record writer.
//
// CollectService is the only error boundary: a failing community is
// recorded on the run report and the next one is attempted, unless the
// failure is an authentication error.
//
// Services are pure Go and depend only on the ports.
package services
