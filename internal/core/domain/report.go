package domain

import "time"

// CommunityReport summarises one community's processing.
type CommunityReport struct {
	Community string
	Posts     int
	Records   int
	File      string
	Duration  time.Duration
	Err       error
}

// Failed returns true if the community did not produce a file.
func (r CommunityReport) Failed() bool {
	return r.Err != nil
}

// ErrorKind returns the user-facing kind of the community's error.
func (r CommunityReport) ErrorKind() string {
	return ErrorKind(r.Err)
}

// RunReport summarises a collection run.
type RunReport struct {
	RunID       string
	Account     string
	Window      Window
	StartedAt   time.Time
	FinishedAt  time.Time
	Communities []CommunityReport
	Manifest    string
}

// Duration returns the wall-clock time of the run.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// TotalPosts returns the number of posts across all communities.
func (r *RunReport) TotalPosts() int {
	total := 0
	for _, c := range r.Communities {
		total += c.Posts
	}
	return total
}

// TotalRecords returns the number of records written across all communities.
func (r *RunReport) TotalRecords() int {
	total := 0
	for _, c := range r.Communities {
		total += c.Records
	}
	return total
}

// Files returns the files written, in community order.
func (r *RunReport) Files() []string {
	files := make([]string, 0, len(r.Communities))
	for _, c := range r.Communities {
		if c.File != "" {
			files = append(files, c.File)
		}
	}
	return files
}

// FailedCount returns the number of communities that failed.
func (r *RunReport) FailedCount() int {
	n := 0
	for _, c := range r.Communities {
		if c.Failed() {
			n++
		}
	}
	return n
}
