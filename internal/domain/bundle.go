package domain

import "time"

// ReportBundle is everything fetched from GitHub for one report run.
// It is the unit the cache persists and is not modified once built.
type ReportBundle struct {
	Repo      string
	Year      int
	Month     int
	FetchedAt time.Time

	PullRequests []PullRequest
	Activity     map[string]ActivityRecord
	Team         []string
}

// Matches reports whether the bundle was fetched for the given month.
func (b ReportBundle) Matches(dr DateRange) bool {
	return b.Year == dr.FirstDay.Year() && b.Month == int(dr.FirstDay.Month())
}
