package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
)

const sinceLayout = "2006-01-02"

// ParseSince parses a YYYY-MM-DD date threshold. An empty string is the zero time.
func ParseSince(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(sinceLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid since date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// ExpertQuery selects experts. Zero values disable a criterion; GroupID and
// Search combine, Token selects a single expert.
type ExpertQuery struct {
	Search    string
	GroupID   int
	Token     string
	Since     time.Time
	Histogram bool
}

// ExpertResult is the outcome of an ExpertQuery. Notice describes the
// filter in effect or why the list is empty.
type ExpertResult struct {
	Experts  []domain.ExpertView `json:"experts"`
	MinDate  time.Time           `json:"minDate"`
	Notice   string              `json:"notice,omitempty"`
	NotFound bool                `json:"-"`
}

// QueryExperts filters the snapshot. It never modifies snap.
func QueryExperts(snap *snapshot.Snapshot, q ExpertQuery) ExpertResult {
	if !q.Since.IsZero() {
		snap = snap.Since(q.Since)
	}
	res := ExpertResult{MinDate: snap.MinDate()}

	if q.Token != "" {
		v, ok := snap.FindExpert(q.Token)
		if !ok {
			res.Experts = []domain.ExpertView{}
			res.Notice = fmt.Sprintf("No expert found for id %s", q.Token)
			res.NotFound = true
			return res
		}
		if q.Histogram {
			v = snap.WithHistogram(v)
		}
		res.Experts = []domain.ExpertView{v}
		res.Notice = "Showing single expert view"
		return res
	}

	experts := snap.Experts()
	if q.GroupID != 0 {
		experts = snap.ByGroupID(q.GroupID)
	}
	if q.Search != "" {
		experts = intersect(experts, snap.ByNameSubstring(q.Search))
	}
	if q.Histogram {
		for i := range experts {
			experts[i] = snap.WithHistogram(experts[i])
		}
	}
	res.Experts = experts

	switch {
	case q.GroupID != 0 && len(experts) == 0:
		res.Notice = fmt.Sprintf("No experts found for group ID %d", q.GroupID)
	case q.GroupID != 0:
		name, _ := snap.GroupName(q.GroupID)
		res.Notice = fmt.Sprintf("Showing %d experts for group: %s", len(experts), name)
	case len(experts) == 0:
		res.Notice = fmt.Sprintf("No experts match %q", q.Search)
	}
	return res
}

// intersect keeps the elements of list that also appear in keep.
func intersect(list, keep []domain.ExpertView) []domain.ExpertView {
	hrefs := make(map[string]struct{}, len(keep))
	for _, v := range keep {
		hrefs[v.Href] = struct{}{}
	}
	out := make([]domain.ExpertView, 0, len(list))
	for _, v := range list {
		if _, ok := hrefs[v.Href]; ok {
			out = append(out, v)
		}
	}
	return out
}

// AffiliationResult is the outcome of QueryAffiliations.
type AffiliationResult struct {
	Affiliations []domain.AffiliationView `json:"affiliations"`
	Notice       string                   `json:"notice,omitempty"`
	NotFound     bool                     `json:"-"`
}

// QueryAffiliations selects affiliations by name substring, or a single one
// by deep-link token when token is set.
func QueryAffiliations(snap *snapshot.Snapshot, search, token string) AffiliationResult {
	if token != "" {
		a, ok := snap.FindAffiliation(token)
		if !ok {
			return AffiliationResult{
				Affiliations: []domain.AffiliationView{},
				Notice:       fmt.Sprintf("No affiliation found for id %s", token),
				NotFound:     true,
			}
		}
		return AffiliationResult{Affiliations: []domain.AffiliationView{a}}
	}

	res := AffiliationResult{Affiliations: snap.AffiliationsByName(search)}
	if len(res.Affiliations) == 0 {
		res.Notice = fmt.Sprintf("No affiliations match %q", search)
	}
	return res
}
