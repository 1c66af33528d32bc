package aggregate

import (
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/review"
	"github.com/naka-gawa/w3c-ie-stats/internal/roster"
)

// Summarize computes the global figures. Experts are counted once per stable
// URI whatever the number of groups they appear in.
func Summarize(r *roster.Roster, groups []domain.GroupView, in GroupInputs) domain.Summary {
	var s domain.Summary
	s.Groups = len(groups)
	for _, g := range groups {
		switch g.Type {
		case domain.GroupTypeWorking:
			s.WorkingGroups++
		case domain.GroupTypeInterest:
			s.InterestGroups++
		}
		s.Participants += g.Participants
		s.Invitations += g.IEs
		s.Editors += g.Editors
		s.IEEditors += g.IEEditors
		s.Chairs += g.Chairs
		s.IEChairs += g.IEChairs
		s.TotalPRs += g.TotalPRs
		s.IEPRs += g.IEPRs
	}

	for _, e := range r.Experts() {
		s.DistinctExperts++
		if len(e.Groups) > 1 {
			s.MultiGroupExperts++
		}
		if len(e.Affiliations) == 0 {
			s.UnaffiliatedExperts++
		}
	}

	s.TotalHRReviews, s.IEHRReviews = review.Totals(r.Groups(), in.Reviews, in.ReviewGroups)

	s.InvitationPercent = Percent(s.Invitations, s.Participants)
	s.UnaffiliatedPercent = Percent(s.UnaffiliatedExperts, s.DistinctExperts)
	s.IEEditorPercent = Percent(s.IEEditors, s.Editors)
	s.IEPRPercent = Percent(s.IEPRs, s.TotalPRs)
	s.IEHRReviewPercent = Percent(s.IEHRReviews, s.TotalHRReviews)
	return s
}
