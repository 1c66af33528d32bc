package domain

import "time"

// AffiliationLink is an affiliation as shown on an expert.
type AffiliationLink struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Href     string `json:"href"`
	Homepage string `json:"homepage,omitempty"`
}

// ExpertView is the display-ready form of an Expert.
type ExpertView struct {
	Token         string            `json:"token"`
	Href          string            `json:"href"`
	Name          string            `json:"name"`
	GitHub        string            `json:"github,omitempty"`
	Affiliations  []AffiliationLink `json:"affiliations"`
	Groups        []GroupRef        `json:"groups"`
	Chairs        []GroupRef        `json:"chairs"`
	Specs         []Spec            `json:"specs"`
	Reviews       []ReviewRecord    `json:"reviews"`
	PRCount       int               `json:"pr_count"`
	IssueCount    int               `json:"issue_count"`
	TotalActivity int               `json:"total_activity"`
	FirstActivity *time.Time        `json:"first_activity,omitempty"`
	LastActivity  *time.Time        `json:"last_activity,omitempty"`
	Repos         []RepoStats       `json:"repos"`
	Monthly       []MonthBucket     `json:"monthly,omitempty"`
}

// ReviewerCount is one IE reviewer of a horizontal review group.
type ReviewerCount struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Count  int    `json:"count"`
}

// GroupReviewSummary describes the IE share of a horizontal review group.
// HasData is false when the review source carries nothing for the group.
type GroupReviewSummary struct {
	HasData        bool            `json:"has_data"`
	TotalIEReviews int             `json:"total_ie_reviews"`
	Reviewers      int             `json:"reviewers"`
	Top            []ReviewerCount `json:"top"`
}

// GroupView is the display-ready form of a group.
type GroupView struct {
	ID              int                 `json:"id"`
	Name            string              `json:"name"`
	ShortName       string              `json:"shortname"`
	Type            string              `json:"type"`
	Participants    int                 `json:"participants"`
	IEs             int                 `json:"ies"`
	IEPercent       float64             `json:"ie_percent"`
	Editors         int                 `json:"editors"`
	IEEditors       int                 `json:"ie_editors"`
	IEEditorPercent float64             `json:"ie_editor_percent"`
	Chairs          int                 `json:"chairs"`
	IEChairs        int                 `json:"ie_chairs"`
	TotalPRs        int                 `json:"total_prs"`
	IEPRs           int                 `json:"ie_prs"`
	IEPRPercent     float64             `json:"ie_pr_percent"`
	Reviews         *GroupReviewSummary `json:"reviews,omitempty"`
}

// AffiliationView is the display-ready form of an Affiliation.
type AffiliationView struct {
	Token    string      `json:"token"`
	Name     string      `json:"name"`
	Href     string      `json:"href"`
	Homepage string      `json:"homepage,omitempty"`
	Experts  []ExpertRef `json:"experts"`
	Groups   []GroupRef  `json:"groups"`
}

// Summary holds the global figures across all groups.
type Summary struct {
	Groups              int     `json:"groups"`
	WorkingGroups       int     `json:"working_groups"`
	InterestGroups      int     `json:"interest_groups"`
	Participants        int     `json:"participants"`
	Invitations         int     `json:"invitations"`
	InvitationPercent   float64 `json:"invitation_percent"`
	DistinctExperts     int     `json:"distinct_experts"`
	MultiGroupExperts   int     `json:"multi_group_experts"`
	UnaffiliatedExperts int     `json:"unaffiliated_experts"`
	UnaffiliatedPercent float64 `json:"unaffiliated_percent"`
	Editors             int     `json:"editors"`
	IEEditors           int     `json:"ie_editors"`
	IEEditorPercent     float64 `json:"ie_editor_percent"`
	Chairs              int     `json:"chairs"`
	IEChairs            int     `json:"ie_chairs"`
	TotalPRs            int     `json:"total_prs"`
	IEPRs               int     `json:"ie_prs"`
	IEPRPercent         float64 `json:"ie_pr_percent"`
	TotalHRReviews      int     `json:"total_hr_reviews"`
	IEHRReviews         int     `json:"ie_hr_reviews"`
	IEHRReviewPercent   float64 `json:"ie_hr_review_percent"`
}
