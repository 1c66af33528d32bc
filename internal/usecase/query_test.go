package usecase

import (
	"testing"
	"time"

	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	roles, contributors, reviews := fixture()
	return Join(roles, contributors, reviews, domain.DefaultPolicy(), time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC))
}

func names(views []domain.ExpertView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Name)
	}
	return out
}

func TestParseSince(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{name: "empty", input: "", expected: time.Time{}},
		{name: "date", input: "2021-01-31", expected: time.Date(2021, time.January, 31, 0, 0, 0, 0, time.UTC)},
		{name: "slashes", input: "2021/01/31", expectError: true},
		{name: "garbage", input: "yesterday", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSince(tc.input)
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "want YYYY-MM-DD")
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got))
		})
	}
}

func TestQueryExperts(t *testing.T) {
	snap := fixtureSnapshot(t)

	testCases := []struct {
		name           string
		query          ExpertQuery
		expectedNames  []string
		expectedNotice string
		notFound       bool
	}{
		{
			name:          "no criteria lists everyone",
			query:         ExpertQuery{},
			expectedNames: []string{"A. Expert", "B. Expert", "C. Reviewer"},
		},
		{
			name:          "search ignores case",
			query:         ExpertQuery{Search: "EXPERT"},
			expectedNames: []string{"A. Expert", "B. Expert"},
		},
		{
			name:           "search without match",
			query:          ExpertQuery{Search: "nobody"},
			expectedNames:  []string{},
			expectedNotice: `No experts match "nobody"`,
		},
		{
			name:           "group filter",
			query:          ExpertQuery{GroupID: 1},
			expectedNames:  []string{"A. Expert", "B. Expert"},
			expectedNotice: "Showing 2 experts for group: CSS Working Group",
		},
		{
			name:           "group and search combine",
			query:          ExpertQuery{GroupID: 1, Search: "b."},
			expectedNames:  []string{"B. Expert"},
			expectedNotice: "Showing 1 experts for group: CSS Working Group",
		},
		{
			name:           "unknown group",
			query:          ExpertQuery{GroupID: 7},
			expectedNames:  []string{},
			expectedNotice: "No experts found for group ID 7",
		},
		{
			name:           "single expert",
			query:          ExpertQuery{Token: "44"},
			expectedNames:  []string{"C. Reviewer"},
			expectedNotice: "Showing single expert view",
		},
		{
			name:           "unknown token",
			query:          ExpertQuery{Token: "4"},
			expectedNames:  []string{},
			expectedNotice: "No expert found for id 4",
			notFound:       true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := QueryExperts(snap, tc.query)
			assert.Equal(t, tc.expectedNames, names(res.Experts))
			assert.Equal(t, tc.expectedNotice, res.Notice)
			assert.Equal(t, tc.notFound, res.NotFound)
		})
	}
}

func TestQueryExperts_Since(t *testing.T) {
	snap := fixtureSnapshot(t)
	since := time.Date(2020, time.December, 1, 0, 0, 0, 0, time.UTC)

	res := QueryExperts(snap, ExpertQuery{Token: "42", Since: since, Histogram: true})
	require.Len(t, res.Experts, 1)
	a := res.Experts[0]
	assert.Equal(t, 1, a.PRCount)
	assert.Equal(t, 0, a.IssueCount)
	assert.True(t, since.Equal(res.MinDate))
	require.Len(t, a.Monthly, 4)
	assert.Equal(t, "2021-01", a.Monthly[1].Month)
	assert.Equal(t, 1, a.Monthly[1].Count)
	assert.Equal(t, 1.0, a.Monthly[1].Scale)

	// The canonical snapshot is untouched.
	full, ok := snap.FindExpert("42")
	require.True(t, ok)
	assert.Equal(t, 1, full.IssueCount)
	assert.Empty(t, full.Monthly)
}

func TestQueryExperts_HistogramOverTimeline(t *testing.T) {
	res := QueryExperts(fixtureSnapshot(t), ExpertQuery{Histogram: true})
	require.NotEmpty(t, res.Experts)
	assert.Equal(t, "2020-06-01", res.MinDate.Format("2006-01-02"))
	for _, v := range res.Experts {
		assert.Len(t, v.Monthly, 10, v.Name)
	}
}

func TestQueryAffiliations(t *testing.T) {
	snap := fixtureSnapshot(t)

	testCases := []struct {
		name           string
		search         string
		token          string
		expectedCount  int
		expectedNotice string
		notFound       bool
	}{
		{name: "all", expectedCount: 1},
		{name: "search", search: "invited", expectedCount: 1},
		{name: "search without match", search: "acme", expectedNotice: `No affiliations match "acme"`},
		{name: "token", token: "36747", expectedCount: 1},
		{name: "unknown token", token: "1", expectedNotice: "No affiliation found for id 1", notFound: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := QueryAffiliations(snap, tc.search, tc.token)
			assert.Len(t, res.Affiliations, tc.expectedCount)
			assert.Equal(t, tc.expectedNotice, res.Notice)
			assert.Equal(t, tc.notFound, res.NotFound)
		})
	}
}
