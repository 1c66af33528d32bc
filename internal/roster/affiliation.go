package roster

import (
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/identity"
)

// affiliationIndex accumulates affiliation back-references. The first
// occurrence of an affiliation URI supplies its name and homepage.
type affiliationIndex struct {
	byHref  map[string]*domain.Affiliation
	experts map[string]map[string]struct{}
	groups  map[string]map[int]struct{}
	list    []*domain.Affiliation
}

func newAffiliationIndex() *affiliationIndex {
	return &affiliationIndex{
		byHref:  make(map[string]*domain.Affiliation),
		experts: make(map[string]map[string]struct{}),
		groups:  make(map[string]map[int]struct{}),
	}
}

func (x *affiliationIndex) add(ref domain.AffiliationRef, ie domain.RosterEntry, group domain.GroupRef) {
	aff, ok := x.byHref[ref.Href]
	if !ok {
		aff = &domain.Affiliation{
			Name:     ref.Name,
			Href:     ref.Href,
			Homepage: ref.Homepage,
			Experts:  []domain.ExpertRef{},
			Groups:   []domain.GroupRef{},
		}
		x.byHref[ref.Href] = aff
		x.experts[ref.Href] = make(map[string]struct{})
		x.groups[ref.Href] = make(map[int]struct{})
		x.list = append(x.list, aff)
	}
	if _, seen := x.groups[ref.Href][group.ID]; !seen {
		x.groups[ref.Href][group.ID] = struct{}{}
		aff.Groups = append(aff.Groups, group)
	}
	if _, seen := x.experts[ref.Href][ie.Href]; !seen {
		x.experts[ref.Href][ie.Href] = struct{}{}
		aff.Experts = append(aff.Experts, domain.ExpertRef{
			Token: identity.LastPathSegment(ie.Href),
			Href:  ie.Href,
			Name:  ie.Name,
		})
	}
}
