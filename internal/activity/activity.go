// Package activity attaches pull requests and issues from the contributor
// source to the experts of a roster.
package activity

import (
	"maps"
	"slices"

	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
)

// Resolver resolves a GitHub handle to an expert.
type Resolver interface {
	Lookup(handle string) (*domain.Expert, bool)
}

// Join appends every PR and issue whose handle resolves to an expert, tagged
// with its repository, then sorts each touched expert's lists by creation time.
// Items of unresolvable handles are dropped.
//
// Repositories and handles are visited in key order so that events sharing a
// timestamp always come out in the same relative order.
func Join(r Resolver, payloads []domain.ContributorGroup) {
	touched := make(map[*domain.Expert]struct{})
	for _, p := range payloads {
		for _, repo := range slices.Sorted(maps.Keys(p.Contributors)) {
			rc := p.Contributors[repo]
			attach(r, repo, rc.Issues, touched, func(e *domain.Expert) *[]domain.ActivityEvent { return &e.Issues })
			attach(r, repo, rc.PRs, touched, func(e *domain.Expert) *[]domain.ActivityEvent { return &e.PRs })
		}
	}
	for e := range touched {
		SortEvents(e.PRs)
		SortEvents(e.Issues)
	}
}

func attach(
	r Resolver,
	repo string,
	byHandle map[string][]domain.ActivityItem,
	touched map[*domain.Expert]struct{},
	list func(*domain.Expert) *[]domain.ActivityEvent,
) {
	for _, handle := range slices.Sorted(maps.Keys(byHandle)) {
		expert, ok := r.Lookup(handle)
		if !ok {
			continue
		}
		touched[expert] = struct{}{}
		events := list(expert)
		for _, item := range byHandle[handle] {
			*events = append(*events, domain.ActivityEvent{
				Repo:      repo,
				CreatedAt: item.CreatedAt.Time,
				Num:       item.Num,
				URL:       item.URL,
			})
		}
	}
}

// SortEvents sorts events ascending by creation time, keeping the relative
// order of events with equal timestamps.
func SortEvents(events []domain.ActivityEvent) {
	slices.SortStableFunc(events, func(a, b domain.ActivityEvent) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
