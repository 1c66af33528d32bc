package aggregate

import (
	"cmp"
	"slices"

	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/identity"
)

// Affiliations builds affiliation views ordered by number of affiliated
// experts, largest first, then by name.
func Affiliations(affs []*domain.Affiliation) []domain.AffiliationView {
	views := make([]domain.AffiliationView, 0, len(affs))
	for _, a := range affs {
		views = append(views, domain.AffiliationView{
			Token:    identity.LastPathSegment(a.Href),
			Name:     a.Name,
			Href:     a.Href,
			Homepage: a.Homepage,
			Experts:  slices.Clone(a.Experts),
			Groups:   slices.Clone(a.Groups),
		})
	}
	byName := compareNames()
	slices.SortStableFunc(views, func(a, b domain.AffiliationView) int {
		if c := cmp.Compare(len(b.Experts), len(a.Experts)); c != 0 {
			return c
		}
		return byName(a.Name, b.Name)
	})
	return views
}
