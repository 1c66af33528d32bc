// Package render formats snapshot views for the terminal.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

const (
	sparkLevels = "▁▂▃▄▅▆▇█"
	barWidth    = 20
)

// Sparkline draws one character per month, its height following Scale.
// Months without activity are blank.
func Sparkline(buckets []domain.MonthBucket) string {
	levels := []rune(sparkLevels)
	var b strings.Builder
	for _, m := range buckets {
		if m.Count == 0 {
			b.WriteRune(' ')
			continue
		}
		idx := int(math.Ceil(m.Scale*float64(len(levels)))) - 1
		idx = max(0, min(idx, len(levels)-1))
		b.WriteRune(levels[idx])
	}
	return b.String()
}

// Bar draws a progress bar of width cells filled to percent.
func Bar(percent float64, width int) string {
	filled := int(math.Round(percent / 100 * float64(width)))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Notice writes a highlighted notice line; nothing is written for an empty notice.
func Notice(w io.Writer, notice string) error {
	if notice == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, noticeStyle.Render(notice))
	return err
}

// Summary writes the global figures as a single card.
func Summary(w io.Writer, s domain.Summary) error {
	lines := []string{
		titleStyle.Render("Invited Experts"),
		row("Groups", fmt.Sprintf("%d (%d WG, %d IG)", s.Groups, s.WorkingGroups, s.InterestGroups)),
		row("Participants", fmt.Sprintf("%d", s.Participants)),
		row("IE invitations", fmt.Sprintf("%d (%.1f%%)", s.Invitations, s.InvitationPercent)),
		row("Distinct IEs", fmt.Sprintf("%d", s.DistinctExperts)),
		row("In several groups", fmt.Sprintf("%d", s.MultiGroupExperts)),
		row("Unaffiliated", fmt.Sprintf("%d (%.1f%%)", s.UnaffiliatedExperts, s.UnaffiliatedPercent)),
		row("Editors", fmt.Sprintf("%d, %d IEs (%.1f%%)", s.Editors, s.IEEditors, s.IEEditorPercent)),
		row("Chairs", fmt.Sprintf("%d, %d IEs", s.Chairs, s.IEChairs)),
		row("Pull requests", fmt.Sprintf("%d, %d by IEs (%.1f%%)", s.TotalPRs, s.IEPRs, s.IEPRPercent)),
		row("Horizontal reviews", fmt.Sprintf("%d, %d by IEs (%.1f%%)", s.TotalHRReviews, s.IEHRReviews, s.IEHRReviewPercent)),
	}
	_, err := fmt.Fprintln(w, cardStyle.Render(strings.Join(lines, "\n")))
	return err
}

// Experts writes one card per expert.
func Experts(w io.Writer, experts []domain.ExpertView) error {
	for _, e := range experts {
		if _, err := fmt.Fprintln(w, cardStyle.Render(expertCard(e))); err != nil {
			return err
		}
	}
	return nil
}

func expertCard(e domain.ExpertView) string {
	title := e.Name
	if e.GitHub != "" {
		title += " @" + e.GitHub
	}
	lines := []string{titleStyle.Render(title)}

	if len(e.Affiliations) > 0 {
		names := make([]string, 0, len(e.Affiliations))
		for _, a := range e.Affiliations {
			names = append(names, a.Name)
		}
		lines = append(lines, row("Affiliations", strings.Join(names, ", ")))
	}
	lines = append(lines, row("Groups", groupNames(e.Groups)))
	if len(e.Chairs) > 0 {
		lines = append(lines, row("Chairs", groupNames(e.Chairs)))
	}
	if len(e.Specs) > 0 {
		specs := make([]string, 0, len(e.Specs))
		for _, s := range e.Specs {
			specs = append(specs, s.Name)
		}
		lines = append(lines, row("Edits", strings.Join(specs, ", ")))
	}

	activity := fmt.Sprintf("%d PRs, %d issues", e.PRCount, e.IssueCount)
	if e.FirstActivity != nil && e.LastActivity != nil {
		activity += fmt.Sprintf(" (%s to %s)", e.FirstActivity.Format("2006-01-02"), e.LastActivity.Format("2006-01-02"))
	}
	lines = append(lines, row("Activity", activity))
	for _, r := range e.Repos {
		lines = append(lines, row("  "+r.Name, fmt.Sprintf("%d PRs, %d issues", r.PRs, r.Issues)))
	}
	for _, r := range e.Reviews {
		lines = append(lines, row("Reviews", fmt.Sprintf("%d in %s", r.Count, r.GroupName)))
	}
	if len(e.Monthly) > 0 {
		lines = append(lines, row("Monthly", fmt.Sprintf("%s to %s |%s|",
			e.Monthly[0].Month, e.Monthly[len(e.Monthly)-1].Month, Sparkline(e.Monthly))))
	}
	return strings.Join(lines, "\n")
}

// Groups writes one card per group with IE share bars.
func Groups(w io.Writer, groups []domain.GroupView) error {
	for _, g := range groups {
		lines := []string{
			titleStyle.Render(fmt.Sprintf("%s (%s, id %d)", g.Name, strings.ToUpper(g.Type), g.ID)),
			row("IEs", fmt.Sprintf("%s %d/%d (%.1f%%)", Bar(g.IEPercent, barWidth), g.IEs, g.Participants, g.IEPercent)),
			row("IE editors", fmt.Sprintf("%s %d/%d (%.1f%%)", Bar(g.IEEditorPercent, barWidth), g.IEEditors, g.Editors, g.IEEditorPercent)),
			row("IE chairs", fmt.Sprintf("%d/%d", g.IEChairs, g.Chairs)),
			row("IE PRs", fmt.Sprintf("%s %d/%d (%.1f%%)", Bar(g.IEPRPercent, barWidth), g.IEPRs, g.TotalPRs, g.IEPRPercent)),
		}
		if rv := g.Reviews; rv != nil {
			if !rv.HasData {
				lines = append(lines, row("Reviews", "no review data"))
			} else if len(rv.Top) == 0 {
				lines = append(lines, row("Reviews", "No reviews by known IEs found"))
			} else {
				lines = append(lines, row("Reviews", fmt.Sprintf("%d by %d IEs", rv.TotalIEReviews, rv.Reviewers)))
				for _, r := range rv.Top {
					lines = append(lines, row("  "+r.Name, fmt.Sprintf("%d", r.Count)))
				}
			}
		}
		if _, err := fmt.Fprintln(w, cardStyle.Render(strings.Join(lines, "\n"))); err != nil {
			return err
		}
	}
	return nil
}

// Affiliations writes one line per affiliation followed by its experts.
func Affiliations(w io.Writer, affs []domain.AffiliationView) error {
	for _, a := range affs {
		names := make([]string, 0, len(a.Experts))
		for _, e := range a.Experts {
			names = append(names, e.Name)
		}
		lines := []string{
			titleStyle.Render(fmt.Sprintf("%s (%d)", a.Name, len(a.Experts))),
			row("Experts", strings.Join(names, ", ")),
			row("Groups", groupNames(a.Groups)),
		}
		if a.Homepage != "" {
			lines = append(lines, row("Homepage", a.Homepage))
		}
		if _, err := fmt.Fprintln(w, cardStyle.Render(strings.Join(lines, "\n"))); err != nil {
			return err
		}
	}
	return nil
}

func groupNames(refs []domain.GroupRef) string {
	if len(refs) == 0 {
		return "-"
	}
	names := make([]string, 0, len(refs))
	for _, g := range refs {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func row(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}
