package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/identity"
)

// ExpertView builds the view of one expert. Only events created at or after
// since are counted; a zero since keeps everything.
func ExpertView(e *domain.Expert, since time.Time) domain.ExpertView {
	prs := Since(e.PRs, since)
	issues := Since(e.Issues, since)

	v := domain.ExpertView{
		Token:         identity.LastPathSegment(e.Href),
		Href:          e.Href,
		Name:          e.Name,
		GitHub:        e.GitHub,
		Affiliations:  make([]domain.AffiliationLink, 0, len(e.Affiliations)),
		Groups:        slices.Clone(e.Groups),
		Chairs:        slices.Clone(e.Chairs),
		Specs:         slices.Clone(e.Specs),
		Reviews:       slices.Clone(e.Reviews),
		PRCount:       len(prs),
		IssueCount:    len(issues),
		TotalActivity: len(prs) + len(issues),
		Repos:         RepoBreakdown(prs, issues),
	}
	for _, a := range e.Affiliations {
		v.Affiliations = append(v.Affiliations, domain.AffiliationLink{
			Token:    identity.LastPathSegment(a.Href),
			Name:     a.Name,
			Href:     a.Href,
			Homepage: a.Homepage,
		})
	}
	v.FirstActivity, v.LastActivity = ActivityRange(prs, issues)
	return v
}

// Since returns the events created at or after t. The input must be sorted;
// the result shares its backing array.
func Since(events []domain.ActivityEvent, t time.Time) []domain.ActivityEvent {
	if t.IsZero() {
		return events
	}
	i, _ := slices.BinarySearchFunc(events, t, func(e domain.ActivityEvent, t time.Time) int {
		return e.CreatedAt.Compare(t)
	})
	return events[i:]
}

// ActivityRange returns the earliest and latest creation time across both
// sorted lists, or nils when both are empty.
func ActivityRange(prs, issues []domain.ActivityEvent) (first, last *time.Time) {
	for _, list := range [][]domain.ActivityEvent{prs, issues} {
		if len(list) == 0 {
			continue
		}
		lo, hi := list[0].CreatedAt, list[len(list)-1].CreatedAt
		if first == nil || lo.Before(*first) {
			first = &lo
		}
		if last == nil || hi.After(*last) {
			last = &hi
		}
	}
	return first, last
}

// RepoBreakdown counts PRs and issues per repository, busiest first.
// Repositories with the same combined count are ordered by name.
func RepoBreakdown(prs, issues []domain.ActivityEvent) []domain.RepoStats {
	byRepo := make(map[string]*domain.RepoStats)
	ensure := func(repo string) *domain.RepoStats {
		if _, ok := byRepo[repo]; !ok {
			byRepo[repo] = &domain.RepoStats{Name: repo}
		}
		return byRepo[repo]
	}
	for _, pr := range prs {
		ensure(pr.Repo).PRs++
	}
	for _, is := range issues {
		ensure(is.Repo).Issues++
	}

	out := make([]domain.RepoStats, 0, len(byRepo))
	for _, rs := range byRepo {
		out = append(out, *rs)
	}
	slices.SortFunc(out, func(a, b domain.RepoStats) int {
		if c := cmp.Compare(b.Total(), a.Total()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// SortExperts orders experts by total activity, most active first, then by
// name and finally by URI.
func SortExperts(views []domain.ExpertView) {
	byName := compareNames()
	slices.SortStableFunc(views, func(a, b domain.ExpertView) int {
		if c := cmp.Compare(b.TotalActivity, a.TotalActivity); c != 0 {
			return c
		}
		if c := byName(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Href, b.Href)
	})
}
