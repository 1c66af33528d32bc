// Package snapshot holds the immutable result of one load and the filters
// derived from it. Every accessor returns a fresh slice; the snapshot itself
// is never modified after New returns, so it can be shared between goroutines.
// Elements of returned slices share their inner slices with the snapshot and
// must be treated as read-only.
package snapshot

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/naka-gawa/w3c-ie-stats/internal/aggregate"
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/identity"
	"github.com/naka-gawa/w3c-ie-stats/internal/roster"
)

// Snapshot is the joined, read-only view of the three sources.
type Snapshot struct {
	source       map[string]*domain.Expert
	experts      []domain.ExpertView
	groups       []domain.GroupView
	groupNames   map[int]string
	affiliations []domain.AffiliationView
	summary      domain.Summary

	earliest time.Time
	since    time.Time
	now      time.Time
}

// New derives every view from a fully joined roster. now bounds the activity
// timeline.
func New(r *roster.Roster, in aggregate.GroupInputs, now time.Time) *Snapshot {
	groups := aggregate.Groups(r.Groups(), in)
	s := &Snapshot{
		source:       make(map[string]*domain.Expert, len(r.Experts())),
		groups:       groups,
		groupNames:   make(map[int]string, len(groups)),
		affiliations: aggregate.Affiliations(r.Affiliations()),
		summary:      aggregate.Summarize(r, groups, in),
		earliest:     now,
		now:          now,
	}
	for _, g := range r.Groups() {
		s.groupNames[g.ID] = g.Name
	}
	for _, e := range r.Experts() {
		s.source[e.Href] = e
		for _, list := range [][]domain.ActivityEvent{e.PRs, e.Issues} {
			if len(list) > 0 && list[0].CreatedAt.Before(s.earliest) {
				s.earliest = list[0].CreatedAt
			}
		}
	}
	s.experts = buildExperts(r.Experts(), time.Time{})
	return s
}

func buildExperts(experts []*domain.Expert, since time.Time) []domain.ExpertView {
	views := make([]domain.ExpertView, 0, len(experts))
	for _, e := range experts {
		views = append(views, aggregate.ExpertView(e, since))
	}
	aggregate.SortExperts(views)
	return views
}

// Since derives a snapshot in which expert counts, activity ranges, repository
// breakdowns and ordering only consider events created at or after t.
func (s *Snapshot) Since(t time.Time) *Snapshot {
	derived := *s
	derived.since = t
	ordered := make([]*domain.Expert, 0, len(s.experts))
	for _, v := range s.experts {
		ordered = append(ordered, s.source[v.Href])
	}
	derived.experts = buildExperts(ordered, t)
	return &derived
}

// MinDate is the start of the activity timeline: the earliest event of any
// expert, moved forward to the Since threshold when there is one.
func (s *Snapshot) MinDate() time.Time {
	if s.since.After(s.earliest) {
		return s.since
	}
	return s.earliest
}

// Timeline lists the months from MinDate to the snapshot's now.
func (s *Snapshot) Timeline() []aggregate.Month {
	return aggregate.MonthRange(s.MinDate(), s.now)
}

// Histogram buckets the expert's events over the timeline.
func (s *Snapshot) Histogram(v domain.ExpertView) []domain.MonthBucket {
	e, ok := s.source[v.Href]
	if !ok {
		return nil
	}
	return aggregate.Histogram(s.Timeline(), aggregate.Since(e.PRs, s.since), aggregate.Since(e.Issues, s.since))
}

// WithHistogram returns a copy of v carrying its monthly histogram.
func (s *Snapshot) WithHistogram(v domain.ExpertView) domain.ExpertView {
	v.Monthly = s.Histogram(v)
	return v
}

// Experts returns every expert, most active first.
func (s *Snapshot) Experts() []domain.ExpertView {
	return slices.Clone(s.experts)
}

// ByNameSubstring returns the experts whose name contains term, ignoring case.
// An empty term matches everyone.
func (s *Snapshot) ByNameSubstring(term string) []domain.ExpertView {
	term = strings.ToLower(term)
	out := make([]domain.ExpertView, 0)
	for _, v := range s.experts {
		if strings.Contains(strings.ToLower(v.Name), term) {
			out = append(out, v)
		}
	}
	return out
}

// ByGroupID returns the experts participating in the group.
func (s *Snapshot) ByGroupID(id int) []domain.ExpertView {
	out := make([]domain.ExpertView, 0)
	for _, v := range s.experts {
		for _, g := range v.Groups {
			if g.ID == id {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// FindExpert resolves a deep-link token to a single expert.
func (s *Snapshot) FindExpert(token string) (domain.ExpertView, bool) {
	for _, v := range s.experts {
		if identity.Matches(v.Href, token) {
			return v, true
		}
	}
	return domain.ExpertView{}, false
}

// GroupName returns the group's display name, or an "ID <id>" label with
// false when the group is unknown.
func (s *Snapshot) GroupName(id int) (string, bool) {
	if name, ok := s.groupNames[id]; ok {
		return name, true
	}
	return fmt.Sprintf("ID %d", id), false
}

// Groups returns the groups in roles source order.
func (s *Snapshot) Groups() []domain.GroupView {
	return slices.Clone(s.groups)
}

// GroupsSortedBy returns the groups in the requested order.
func (s *Snapshot) GroupsSortedBy(by aggregate.GroupSort) []domain.GroupView {
	return aggregate.SortGroups(s.groups, by)
}

// Affiliations returns every affiliation, largest first.
func (s *Snapshot) Affiliations() []domain.AffiliationView {
	return slices.Clone(s.affiliations)
}

// AffiliationsByName returns the affiliations whose name contains term,
// ignoring case.
func (s *Snapshot) AffiliationsByName(term string) []domain.AffiliationView {
	term = strings.ToLower(term)
	out := make([]domain.AffiliationView, 0)
	for _, a := range s.affiliations {
		if strings.Contains(strings.ToLower(a.Name), term) {
			out = append(out, a)
		}
	}
	return out
}

// FindAffiliation resolves a deep-link token to a single affiliation.
func (s *Snapshot) FindAffiliation(token string) (domain.AffiliationView, bool) {
	for _, a := range s.affiliations {
		if identity.Matches(a.Href, token) {
			return a, true
		}
	}
	return domain.AffiliationView{}, false
}

// Summary returns the global figures.
func (s *Snapshot) Summary() domain.Summary {
	return s.summary
}
