// Package review joins the horizontal review source to the roster.
//
// Horizontal review groups are recognized by an explicit list of group IDs
// only. Two separate lists are used: one for per-expert records and one for
// group and global summaries.
package review

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/roster"
)

// Join appends a ReviewRecord to every expert whose handle appears in an
// allow-listed review group. Handles unknown to the roster are dropped.
func Join(r *roster.Roster, payloads []domain.ReviewGroup, allowed []int) {
	for _, p := range payloads {
		if !slices.Contains(allowed, p.ID) {
			continue
		}
		name, ok := r.GroupName(p.ID)
		if !ok {
			name = fmt.Sprintf("Group %d", p.ID)
		}
		for _, handle := range slices.Sorted(maps.Keys(p.Reviewers)) {
			expert, ok := r.Lookup(handle)
			if !ok {
				continue
			}
			expert.Reviews = append(expert.Reviews, domain.ReviewRecord{
				GroupName: name,
				GroupID:   p.ID,
				Count:     len(p.Reviewers[handle]),
			})
		}
	}
}

// Index maps review group IDs to their payload. The first payload of an ID wins.
func Index(payloads []domain.ReviewGroup) map[int]domain.ReviewGroup {
	idx := make(map[int]domain.ReviewGroup, len(payloads))
	for _, p := range payloads {
		if _, ok := idx[p.ID]; !ok {
			idx[p.ID] = p
		}
	}
	return idx
}

// GroupSummary lists the IEs of the group found in its review payload, most
// active first, keeping the topN. It returns nil when the group is not
// allow-listed.
func GroupSummary(g *roster.Group, idx map[int]domain.ReviewGroup, allowed []int, topN int) *domain.GroupReviewSummary {
	if !slices.Contains(allowed, g.ID) {
		return nil
	}
	summary := &domain.GroupReviewSummary{Top: []domain.ReviewerCount{}}
	p, ok := idx[g.ID]
	if !ok || p.Reviewers == nil {
		return summary
	}
	summary.HasData = true

	var reviewers []domain.ReviewerCount
	for handle, items := range p.Reviewers {
		name, ok := g.ExpertName(handle)
		if !ok {
			continue
		}
		reviewers = append(reviewers, domain.ReviewerCount{Name: name, Handle: handle, Count: len(items)})
		summary.TotalIEReviews += len(items)
	}
	slices.SortFunc(reviewers, func(a, b domain.ReviewerCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Handle, b.Handle)
	})
	summary.Reviewers = len(reviewers)
	if topN >= 0 && len(reviewers) > topN {
		reviewers = reviewers[:topN]
	}
	summary.Top = append(summary.Top, reviewers...)
	return summary
}

// Totals sums all reviews and the reviews by each group's own IEs across the
// allow-listed groups of the roster.
func Totals(groups []*roster.Group, idx map[int]domain.ReviewGroup, allowed []int) (total, byIEs int) {
	for _, g := range groups {
		if !slices.Contains(allowed, g.ID) {
			continue
		}
		p, ok := idx[g.ID]
		if !ok {
			continue
		}
		for handle, items := range p.Reviewers {
			total += len(items)
			if g.HasHandle(handle) {
				byIEs += len(items)
			}
		}
	}
	return total, byIEs
}
