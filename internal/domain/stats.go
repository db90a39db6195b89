// Package domain contains the core data structures and domain logic for the application.
package domain

// Contribution holds the number of pull requests a single team member
// authored or reviewed during the report month.
type Contribution struct {
	Login string `json:"login"`
	Count int    `json:"count"`
}

// ActivityStats summarizes the per-member counts of one kind of activity.
// Only members with at least one pull request are taken into account.
type ActivityStats struct {
	Members int     `json:"members"`
	Total   int     `json:"total"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Max     float64 `json:"max"`
}
