// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Group types as they appear in the roles source.
const (
	GroupTypeWorking  = "wg"
	GroupTypeInterest = "ig"
)

// RoleGroup is one entry of the roles source (invited-expert-roles.json).
type RoleGroup struct {
	ID                   int           `json:"id"`
	Name                 string        `json:"name"`
	FullShortName        string        `json:"fullshortname"`
	Type                 string        `json:"type"`
	NumberOfParticipants int           `json:"numberOfParticipants"`
	NumberOfIE           int           `json:"numberOfIE"`
	NumberOfEditors      int           `json:"numberOfEditors"`
	NumberOfIEEditors    int           `json:"numberOfIEEditors"`
	NumberOfChairs       int           `json:"numberOfChairs"`
	NumberOfIEChairs     int           `json:"numberOfIEChairs"`
	IEs                  []RosterEntry `json:"ies"`
}

// RosterEntry is one Invited Expert listed under a group.
type RosterEntry struct {
	Name         string           `json:"name"`
	Href         string           `json:"href"`
	GitHub       string           `json:"github,omitempty"`
	Affiliations []AffiliationRef `json:"affiliations"`
	Roles        *Roles           `json:"roles,omitempty"`
}

// AffiliationRef is an organization an expert is affiliated with.
type AffiliationRef struct {
	Name     string `json:"name"`
	Href     string `json:"href"`
	Homepage string `json:"homepage,omitempty"`
}

// Roles holds the chair flag and the editor roles of a roster entry.
type Roles struct {
	Chair   bool         `json:"chair,omitempty"`
	Editors []EditorRole `json:"editors,omitempty"`
}

// EditorRole is a specification the expert edits.
type EditorRole struct {
	Title     string `json:"title,omitempty"`
	ShortName string `json:"shortname,omitempty"`
}

// ContributorGroup is one entry of the PR/issue source (pr-contributors.json).
// Contributors is keyed by repository name.
type ContributorGroup struct {
	ID           int                          `json:"id"`
	Contributors map[string]RepoContributions `json:"contributors"`
}

// RepoContributions maps GitHub handles to the issues and PRs they opened in one repository.
type RepoContributions struct {
	Issues map[string][]ActivityItem `json:"issues"`
	PRs    map[string][]ActivityItem `json:"prs"`
}

// ActivityItem is a single issue or pull request as recorded in the source.
type ActivityItem struct {
	CreatedAt Timestamp `json:"created_at"`
	Num       int       `json:"num"`
	URL       string    `json:"url"`
}

// ReviewGroup is one entry of the horizontal review source (hr-reviewers.json).
// The review items are opaque; only their number matters.
type ReviewGroup struct {
	ID        int                          `json:"id"`
	Reviewers map[string][]json.RawMessage `json:"reviewers"`
}

// Timestamp accepts both RFC 3339 timestamps and bare YYYY-MM-DD dates.
// Bare dates are interpreted as UTC midnight.
type Timestamp struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", raw)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}
