package activity

import (
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/roster"
)

// GroupTotals counts the PRs of one group's contributor payload.
type GroupTotals struct {
	PRs   int
	IEPRs int
}

// Totals computes per-group PR totals. A PR counts towards IEPRs when its
// handle belongs to an IE listed in that same group. Groups without a
// contributor payload are absent from the result.
func Totals(groups []*roster.Group, payloads []domain.ContributorGroup) map[int]GroupTotals {
	byID := make(map[int]domain.ContributorGroup, len(payloads))
	for _, p := range payloads {
		byID[p.ID] = p
	}

	totals := make(map[int]GroupTotals, len(groups))
	for _, g := range groups {
		p, ok := byID[g.ID]
		if !ok {
			continue
		}
		var t GroupTotals
		for _, rc := range p.Contributors {
			for handle, prs := range rc.PRs {
				t.PRs += len(prs)
				if g.HasHandle(handle) {
					t.IEPRs += len(prs)
				}
			}
		}
		totals[g.ID] = t
	}
	return totals
}
