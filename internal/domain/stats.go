package domain

// RepoStats holds the activity counts of one expert in a single repository.
type RepoStats struct {
	Name   string `json:"name"`
	PRs    int    `json:"prs"`
	Issues int    `json:"issues"`
}

// Total returns the combined PR and issue count.
func (r RepoStats) Total() int {
	return r.PRs + r.Issues
}

// MonthBucket is one bar of a monthly activity histogram.
// Scale is Count relative to the busiest month of the same histogram, in [0, 1].
type MonthBucket struct {
	Month string  `json:"month"`
	Count int     `json:"count"`
	Scale float64 `json:"scale"`
}
