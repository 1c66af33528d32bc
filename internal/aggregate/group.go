package aggregate

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/naka-gawa/w3c-ie-stats/internal/activity"
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/review"
	"github.com/naka-gawa/w3c-ie-stats/internal/roster"
)

// GroupSort names an ordering of the group list.
type GroupSort string

// Supported group orderings. GroupSortSource keeps the roles source order.
const (
	GroupSortSource       GroupSort = "source"
	GroupSortIECount      GroupSort = "ie-count"
	GroupSortIEPercentage GroupSort = "ie-percentage"
	GroupSortIEEditors    GroupSort = "ie-editors"
	GroupSortIEChairs     GroupSort = "ie-chairs"
	GroupSortName         GroupSort = "name"
)

// ParseGroupSort validates a group ordering name. The empty string means
// source order.
func ParseGroupSort(s string) (GroupSort, error) {
	switch GroupSort(s) {
	case "", GroupSortSource:
		return GroupSortSource, nil
	case GroupSortIECount, GroupSortIEPercentage, GroupSortIEEditors, GroupSortIEChairs, GroupSortName:
		return GroupSort(s), nil
	}
	return "", fmt.Errorf("unknown group sort %q", s)
}

// GroupInputs carries the per-group figures computed by the joiners.
type GroupInputs struct {
	Totals       map[int]activity.GroupTotals
	Reviews      map[int]domain.ReviewGroup
	ReviewGroups []int
	TopReviewers int
}

// Groups builds one view per roles-source group, in source order.
func Groups(groups []*roster.Group, in GroupInputs) []domain.GroupView {
	views := make([]domain.GroupView, 0, len(groups))
	for _, g := range groups {
		t := in.Totals[g.ID]
		views = append(views, domain.GroupView{
			ID:              g.ID,
			Name:            g.Name,
			ShortName:       g.FullShortName,
			Type:            g.Type,
			Participants:    g.NumberOfParticipants,
			IEs:             g.NumberOfIE,
			IEPercent:       Percent(g.NumberOfIE, g.NumberOfParticipants),
			Editors:         g.NumberOfEditors,
			IEEditors:       g.NumberOfIEEditors,
			IEEditorPercent: Percent(g.NumberOfIEEditors, g.NumberOfEditors),
			Chairs:          g.NumberOfChairs,
			IEChairs:        g.NumberOfIEChairs,
			TotalPRs:        t.PRs,
			IEPRs:           t.IEPRs,
			IEPRPercent:     Percent(t.IEPRs, t.PRs),
			Reviews:         review.GroupSummary(g, in.Reviews, in.ReviewGroups, in.TopReviewers),
		})
	}
	return views
}

// SortGroups returns a sorted copy of views. Ties keep their relative order.
func SortGroups(views []domain.GroupView, by GroupSort) []domain.GroupView {
	out := slices.Clone(views)
	var less func(a, b domain.GroupView) int
	switch by {
	case GroupSortIECount:
		less = func(a, b domain.GroupView) int { return cmp.Compare(b.IEs, a.IEs) }
	case GroupSortIEPercentage:
		less = func(a, b domain.GroupView) int { return cmp.Compare(b.IEPercent, a.IEPercent) }
	case GroupSortIEEditors:
		less = func(a, b domain.GroupView) int { return cmp.Compare(b.IEEditors, a.IEEditors) }
	case GroupSortIEChairs:
		less = func(a, b domain.GroupView) int { return cmp.Compare(b.IEChairs, a.IEChairs) }
	case GroupSortName:
		byName := compareNames()
		less = func(a, b domain.GroupView) int { return byName(a.Name, b.Name) }
	default:
		return out
	}
	slices.SortStableFunc(out, less)
	return out
}
