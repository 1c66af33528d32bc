// Package roster builds the canonical set of experts, groups and affiliations
// from the roles source.
package roster

import (
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/identity"
)

const unknownSpec = "Unknown Spec"

// Group is a roles-source group together with the normalized GitHub handles
// of the experts listed in it.
type Group struct {
	domain.RoleGroup

	handles map[string]string
}

// HasHandle reports whether an IE listed in this group uses the handle.
func (g *Group) HasHandle(handle string) bool {
	h, ok := identity.NormalizeHandle(handle)
	if !ok {
		return false
	}
	_, found := g.handles[h]
	return found
}

// ExpertName returns the name of the first IE of this group using the handle.
func (g *Group) ExpertName(handle string) (string, bool) {
	h, ok := identity.NormalizeHandle(handle)
	if !ok {
		return "", false
	}
	name, found := g.handles[h]
	return name, found
}

// Roster is the result of the roster pass. Experts are keyed by stable URI and
// kept in first-seen order.
type Roster struct {
	experts      map[string]*domain.Expert
	order        []*domain.Expert
	byHandle     map[string]*domain.Expert
	groups       []*Group
	groupNames   map[int]string
	affiliations []*domain.Affiliation
}

// Build consumes the roles source. It never fails: missing IE lists, roles,
// editors and affiliations are the empty case.
func Build(groups []domain.RoleGroup) *Roster {
	r := &Roster{
		experts:    make(map[string]*domain.Expert),
		byHandle:   make(map[string]*domain.Expert),
		groupNames: make(map[int]string),
	}
	affiliations := newAffiliationIndex()
	specOrder := make(map[*domain.Expert][]string)
	specByName := make(map[*domain.Expert]map[string]domain.Spec)

	for _, rg := range groups {
		r.groupNames[rg.ID] = rg.Name
		g := &Group{RoleGroup: rg, handles: make(map[string]string)}
		r.groups = append(r.groups, g)
		ref := domain.GroupRef{ID: rg.ID, Name: rg.Name}

		for _, ie := range rg.IEs {
			if h, ok := identity.NormalizeHandle(ie.GitHub); ok {
				if _, seen := g.handles[h]; !seen {
					g.handles[h] = ie.Name
				}
			}

			expert := r.upsert(ie)
			addGroup(&expert.Groups, ref)
			if ie.Roles != nil && ie.Roles.Chair {
				addGroup(&expert.Chairs, ref)
			}
			if ie.Roles != nil {
				for _, ed := range ie.Roles.Editors {
					spec := domain.Spec{Name: specName(ed), ShortName: ed.ShortName}
					if specByName[expert] == nil {
						specByName[expert] = make(map[string]domain.Spec)
					}
					if _, seen := specByName[expert][spec.Name]; !seen {
						specOrder[expert] = append(specOrder[expert], spec.Name)
					}
					specByName[expert][spec.Name] = spec
				}
			}

			for _, aff := range ie.Affiliations {
				affiliations.add(aff, ie, ref)
			}
		}
	}

	for _, expert := range r.order {
		for _, name := range specOrder[expert] {
			expert.Specs = append(expert.Specs, specByName[expert][name])
		}
		if h, ok := identity.NormalizeHandle(expert.GitHub); ok {
			if _, taken := r.byHandle[h]; !taken {
				r.byHandle[h] = expert
			}
		}
	}
	r.affiliations = affiliations.list
	return r
}

// upsert returns the expert for the entry's URI, creating it on first sight.
// Name and affiliations come from the first entry; the GitHub handle from the
// first entry that carries one.
func (r *Roster) upsert(ie domain.RosterEntry) *domain.Expert {
	expert, ok := r.experts[ie.Href]
	if !ok {
		affs := make([]domain.AffiliationRef, len(ie.Affiliations))
		copy(affs, ie.Affiliations)
		expert = &domain.Expert{
			Href:         ie.Href,
			Name:         ie.Name,
			Affiliations: affs,
			Groups:       []domain.GroupRef{},
			Chairs:       []domain.GroupRef{},
			Specs:        []domain.Spec{},
			PRs:          []domain.ActivityEvent{},
			Issues:       []domain.ActivityEvent{},
			Reviews:      []domain.ReviewRecord{},
		}
		r.experts[ie.Href] = expert
		r.order = append(r.order, expert)
	}
	if expert.GitHub == "" && ie.GitHub != "" {
		expert.GitHub = ie.GitHub
	}
	return expert
}

func addGroup(refs *[]domain.GroupRef, ref domain.GroupRef) {
	for _, existing := range *refs {
		if existing.ID == ref.ID {
			return
		}
	}
	*refs = append(*refs, ref)
}

func specName(ed domain.EditorRole) string {
	switch {
	case ed.Title != "":
		return ed.Title
	case ed.ShortName != "":
		return ed.ShortName
	default:
		return unknownSpec
	}
}

// Experts returns the experts in first-seen order.
func (r *Roster) Experts() []*domain.Expert {
	return r.order
}

// Expert returns the expert with the given stable URI.
func (r *Roster) Expert(href string) (*domain.Expert, bool) {
	e, ok := r.experts[href]
	return e, ok
}

// Lookup resolves a GitHub handle, case-insensitively, to an expert.
// Handles are a best-effort join key: a miss is normal.
func (r *Roster) Lookup(handle string) (*domain.Expert, bool) {
	h, ok := identity.NormalizeHandle(handle)
	if !ok {
		return nil, false
	}
	e, found := r.byHandle[h]
	return e, found
}

// GroupName returns the display name of a group of the roles source.
func (r *Roster) GroupName(id int) (string, bool) {
	name, ok := r.groupNames[id]
	return name, ok
}

// Groups returns the groups in source order.
func (r *Roster) Groups() []*Group {
	return r.groups
}

// Affiliations returns the affiliations in first-seen order.
func (r *Roster) Affiliations() []*domain.Affiliation {
	return r.affiliations
}
