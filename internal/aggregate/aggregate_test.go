package aggregate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/naka-gawa/w3c-ie-stats/internal/activity"
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/review"
	"github.com/naka-gawa/w3c-ie-stats/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ev(repo, d string) domain.ActivityEvent {
	return domain.ActivityEvent{Repo: repo, CreatedAt: date(d)}
}

func TestPercent(t *testing.T) {
	testCases := []struct {
		name        string
		part, whole int
		expected    float64
	}{
		{name: "zero denominator", part: 3, whole: 0, expected: 0},
		{name: "one third", part: 1, whole: 3, expected: 33.3},
		{name: "two thirds rounds up", part: 2, whole: 3, expected: 66.7},
		{name: "whole", part: 5, whole: 5, expected: 100},
		{name: "nothing", part: 0, whole: 7, expected: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Percent(tc.part, tc.whole), 1e-9)
		})
	}
}

func TestExpertView(t *testing.T) {
	e := &domain.Expert{
		Href:         "https://api.w3.org/users/42",
		Name:         "A. Expert",
		GitHub:       "aexpert",
		Affiliations: []domain.AffiliationRef{{Name: "Acme", Href: "https://api.w3.org/affiliations/9"}},
		PRs:          []domain.ActivityEvent{ev("w3c/a", "2020-01-05"), ev("w3c/b", "2021-03-01"), ev("w3c/b", "2022-07-01")},
		Issues:       []domain.ActivityEvent{ev("w3c/a", "2019-12-31"), ev("w3c/c", "2021-01-01")},
	}

	v := ExpertView(e, time.Time{})

	assert.Equal(t, "42", v.Token)
	assert.Equal(t, 3, v.PRCount)
	assert.Equal(t, 2, v.IssueCount)
	assert.Equal(t, 5, v.TotalActivity)
	require.NotNil(t, v.FirstActivity)
	require.NotNil(t, v.LastActivity)
	assert.True(t, v.FirstActivity.Equal(date("2019-12-31")))
	assert.True(t, v.LastActivity.Equal(date("2022-07-01")))
	assert.Equal(t, []domain.RepoStats{
		{Name: "w3c/a", PRs: 1, Issues: 1},
		{Name: "w3c/b", PRs: 2},
		{Name: "w3c/c", Issues: 1},
	}, v.Repos)
	assert.Equal(t, []domain.AffiliationLink{{Token: "9", Name: "Acme", Href: "https://api.w3.org/affiliations/9"}}, v.Affiliations)

	since := ExpertView(e, date("2021-01-01"))
	assert.Equal(t, 2, since.PRCount)
	assert.Equal(t, 1, since.IssueCount)
	assert.True(t, since.FirstActivity.Equal(date("2021-01-01")), "the threshold is inclusive")
	assert.Len(t, e.PRs, 3, "the expert itself is untouched")
}

func TestExpertView_NoActivity(t *testing.T) {
	v := ExpertView(&domain.Expert{Href: "https://api.w3.org/users/1", Name: "Quiet"}, time.Time{})

	assert.Nil(t, v.FirstActivity)
	assert.Nil(t, v.LastActivity)
	assert.Empty(t, v.Repos)
	assert.NotNil(t, v.Affiliations)
}

func TestSortExperts(t *testing.T) {
	views := []domain.ExpertView{
		{Name: "bob", Href: "b", TotalActivity: 2},
		{Name: "Carol", Href: "c", TotalActivity: 9},
		{Name: "Alice", Href: "a", TotalActivity: 2},
		{Name: "Émile", Href: "e", TotalActivity: 2},
	}

	SortExperts(views)

	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.Name
	}
	assert.Equal(t, []string{"Carol", "Alice", "bob", "Émile"}, names)
}

func TestMonthRangeAndHistogram(t *testing.T) {
	months := MonthRange(date("2020-11-20"), date("2021-02-01"))
	require.Len(t, months, 4)
	assert.Equal(t, "2020-11", months[0].Key())
	assert.Equal(t, "2021-02", months[3].Key())

	assert.Empty(t, MonthRange(date("2021-03-01"), date("2021-01-01")))

	buckets := Histogram(months,
		[]domain.ActivityEvent{ev("r", "2020-11-01"), ev("r", "2020-11-30"), ev("r", "2019-01-01")},
		[]domain.ActivityEvent{ev("r", "2021-01-15")},
	)
	assert.Equal(t, []domain.MonthBucket{
		{Month: "2020-11", Count: 2, Scale: 1},
		{Month: "2020-12", Count: 0, Scale: 0},
		{Month: "2021-01", Count: 1, Scale: 0.5},
		{Month: "2021-02", Count: 0, Scale: 0},
	}, buckets)

	empty := Histogram(months)
	assert.Len(t, empty, 4)
	for _, b := range empty {
		assert.Zero(t, b.Count)
		assert.Zero(t, b.Scale)
	}
}

func TestAffiliations(t *testing.T) {
	affs := []*domain.Affiliation{
		{Name: "Zeta", Href: "https://api.w3.org/affiliations/1", Experts: []domain.ExpertRef{{Href: "x"}}},
		{Name: "beta", Href: "https://api.w3.org/affiliations/2", Experts: []domain.ExpertRef{{Href: "x"}, {Href: "y"}}},
		{Name: "Alpha", Href: "https://api.w3.org/affiliations/3", Experts: []domain.ExpertRef{{Href: "z"}}},
	}

	views := Affiliations(affs)

	require.Len(t, views, 3)
	assert.Equal(t, []string{"beta", "Alpha", "Zeta"}, []string{views[0].Name, views[1].Name, views[2].Name})
	assert.Equal(t, "2", views[0].Token)
}

func rawItems(n int) []json.RawMessage {
	out := make([]json.RawMessage, n)
	for i := range out {
		out[i] = json.RawMessage(`"r"`)
	}
	return out
}

func fixture() (*roster.Roster, GroupInputs) {
	r := roster.Build([]domain.RoleGroup{
		{
			ID: 1, Name: "CSS WG", FullShortName: "wg/css", Type: domain.GroupTypeWorking,
			NumberOfParticipants: 10, NumberOfIE: 2, NumberOfEditors: 4, NumberOfIEEditors: 1, NumberOfChairs: 2, NumberOfIEChairs: 1,
			IEs: []domain.RosterEntry{
				{Name: "Alice", Href: "https://api.w3.org/users/1", GitHub: "alice", Affiliations: []domain.AffiliationRef{{Name: "Acme", Href: "https://api.w3.org/affiliations/1"}}},
				{Name: "Bob", Href: "https://api.w3.org/users/2", GitHub: "bob"},
			},
		},
		{
			ID: 32113, Name: "APA WG", FullShortName: "wg/apa", Type: domain.GroupTypeWorking,
			NumberOfParticipants: 0, NumberOfIE: 1,
			IEs: []domain.RosterEntry{{Name: "Alice", Href: "https://api.w3.org/users/1", GitHub: "alice"}},
		},
		{
			ID: 3, Name: "Web Apps IG", FullShortName: "ig/webapps", Type: domain.GroupTypeInterest,
			NumberOfParticipants: 5, NumberOfIE: 2,
			IEs: []domain.RosterEntry{{Name: "Carol", Href: "https://api.w3.org/users/3"}},
		},
	})
	contributors := []domain.ContributorGroup{
		{ID: 1, Contributors: map[string]domain.RepoContributions{
			"w3c/csswg-drafts": {PRs: map[string][]domain.ActivityItem{
				"alice":   {{CreatedAt: domain.Timestamp{Time: date("2021-01-01")}}},
				"someone": {{CreatedAt: domain.Timestamp{Time: date("2021-01-01")}}, {CreatedAt: domain.Timestamp{Time: date("2021-01-02")}}},
			}},
		}},
	}
	reviews := []domain.ReviewGroup{{ID: 32113, Reviewers: map[string][]json.RawMessage{"Alice": rawItems(4), "zed": rawItems(4)}}}
	return r, GroupInputs{
		Totals:       activity.Totals(r.Groups(), contributors),
		Reviews:      review.Index(reviews),
		ReviewGroups: []int{160680, 32113, 83907, 49310},
		TopReviewers: 5,
	}
}

func TestGroups(t *testing.T) {
	r, in := fixture()

	views := Groups(r.Groups(), in)

	require.Len(t, views, 3)
	css := views[0]
	assert.Equal(t, 20.0, css.IEPercent)
	assert.Equal(t, 25.0, css.IEEditorPercent)
	assert.Equal(t, 3, css.TotalPRs)
	assert.Equal(t, 1, css.IEPRs)
	assert.Equal(t, 33.3, css.IEPRPercent)
	assert.Nil(t, css.Reviews)

	apa := views[1]
	assert.Equal(t, 0.0, apa.IEPercent, "zero participants must not divide by zero")
	require.NotNil(t, apa.Reviews)
	assert.Equal(t, 4, apa.Reviews.TotalIEReviews)
	assert.Equal(t, []domain.ReviewerCount{{Name: "Alice", Handle: "Alice", Count: 4}}, apa.Reviews.Top)

	sorted := SortGroups(views, GroupSortIEPercentage)
	assert.Equal(t, []int{3, 1, 32113}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	assert.Equal(t, 1, views[0].ID, "sorting returns a copy")

	byName := SortGroups(views, GroupSortName)
	assert.Equal(t, []int{32113, 1, 3}, []int{byName[0].ID, byName[1].ID, byName[2].ID})
}

func TestParseGroupSort(t *testing.T) {
	s, err := ParseGroupSort("")
	require.NoError(t, err)
	assert.Equal(t, GroupSortSource, s)

	s, err = ParseGroupSort("ie-chairs")
	require.NoError(t, err)
	assert.Equal(t, GroupSortIEChairs, s)

	_, err = ParseGroupSort("popularity")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	r, in := fixture()
	groups := Groups(r.Groups(), in)

	s := Summarize(r, groups, in)

	assert.Equal(t, 3, s.Groups)
	assert.Equal(t, 2, s.WorkingGroups)
	assert.Equal(t, 1, s.InterestGroups)
	assert.Equal(t, 15, s.Participants)
	assert.Equal(t, 5, s.Invitations)
	assert.Equal(t, 33.3, s.InvitationPercent)
	assert.Equal(t, 3, s.DistinctExperts)
	assert.LessOrEqual(t, s.DistinctExperts, s.Invitations)
	assert.Equal(t, 1, s.MultiGroupExperts)
	assert.Equal(t, 2, s.UnaffiliatedExperts)
	assert.Equal(t, 66.7, s.UnaffiliatedPercent)
	assert.Equal(t, 25.0, s.IEEditorPercent)
	assert.Equal(t, 3, s.TotalPRs)
	assert.Equal(t, 1, s.IEPRs)
	assert.Equal(t, 8, s.TotalHRReviews)
	assert.Equal(t, 4, s.IEHRReviews)
	assert.Equal(t, 50.0, s.IEHRReviewPercent)
}
