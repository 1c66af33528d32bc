package domain

// Policy holds the hard-coded choices that are not derived from the data.
type Policy struct {
	// ExpertReviewGroups are the horizontal review groups whose reviews are
	// attached to experts.
	ExpertReviewGroups []int `yaml:"expert_review_groups"`
	// SummaryReviewGroups are the horizontal review groups counted in group
	// and global summaries.
	SummaryReviewGroups []int `yaml:"summary_review_groups"`
	// TopReviewers caps the reviewer list of a group summary.
	TopReviewers int `yaml:"top_reviewers"`
}

// DefaultPolicy returns the review group lists used by the published dashboards.
// 49310 is only part of the summary list.
func DefaultPolicy() Policy {
	return Policy{
		ExpertReviewGroups:  []int{160680, 32113, 83907},
		SummaryReviewGroups: []int{160680, 32113, 83907, 49310},
		TopReviewers:        5,
	}
}
