package domain

import "time"

// GroupRef identifies a group by numeric ID and display name.
type GroupRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Spec is a specification edited by an expert.
type Spec struct {
	Name      string `json:"name"`
	ShortName string `json:"shortname,omitempty"`
}

// ActivityEvent is a pull request or an issue attributed to an expert.
type ActivityEvent struct {
	Repo      string    `json:"repo"`
	CreatedAt time.Time `json:"created_at"`
	Num       int       `json:"num"`
	URL       string    `json:"url"`
}

// ReviewRecord counts the horizontal reviews one expert performed in a review group.
type ReviewRecord struct {
	GroupName string `json:"group_name"`
	GroupID   int    `json:"group_id"`
	Count     int    `json:"count"`
}

// Expert is the joined record of one Invited Expert, keyed by its stable URI.
type Expert struct {
	Href         string
	Name         string
	GitHub       string
	Affiliations []AffiliationRef
	Groups       []GroupRef
	Chairs       []GroupRef
	Specs        []Spec
	PRs          []ActivityEvent
	Issues       []ActivityEvent
	Reviews      []ReviewRecord
}

// PRCount returns the number of pull requests attributed to the expert.
func (e *Expert) PRCount() int { return len(e.PRs) }

// IssueCount returns the number of issues attributed to the expert.
func (e *Expert) IssueCount() int { return len(e.Issues) }

// InGroup reports whether the expert has a membership edge for the group.
func (e *Expert) InGroup(id int) bool {
	for _, g := range e.Groups {
		if g.ID == id {
			return true
		}
	}
	return false
}

// ExpertRef is a lightweight reference to an expert, used in back-references.
type ExpertRef struct {
	Token string `json:"token"`
	Href  string `json:"href"`
	Name  string `json:"name"`
}

// Affiliation is an organization derived from the affiliations of the roster entries.
type Affiliation struct {
	Name     string
	Href     string
	Homepage string
	Experts  []ExpertRef
	Groups   []GroupRef
}
