package guide

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	coach "github.com/abhisek/stepcoach/internal/guide"
	"github.com/abhisek/stepcoach/internal/problem"
	"github.com/abhisek/stepcoach/internal/quota"
	"github.com/abhisek/stepcoach/internal/steps"
	"github.com/abhisek/stepcoach/internal/ui/components"
	"github.com/abhisek/stepcoach/internal/ui/theme"
)

func (s *GuideScreen) View(width, height int) string {
	sess := s.deps.Session
	p, ok := sess.Problem()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No active problem. Press N to enter one."))
	}

	cw := components.ContentWidth(width)
	st := s.deps.QuotaStatus()
	compact := height < 30

	var sections []string
	sections = append(sections, renderProblem(p, cw, compact))
	sections = append(sections, renderProgress(sess.Progress(), cw))
	sections = append(sections, renderStep(sess.Step(), s.showHint, cw, compact))
	sections = append(sections, s.renderAnswerPanel(st, cw))

	content := strings.Join(sections, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func renderProblem(p problem.Problem, cw int, compact bool) string {
	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Title)
	diff := lipgloss.NewStyle().Foreground(theme.DifficultyColor(string(p.Difficulty))).
		Render(string(p.Difficulty))
	complexity := theme.Hint.Render("target " + p.Difficulty.ComplexityHint())

	head := title + "  " + diff + "  " + complexity
	if compact {
		return head
	}
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Render(p.Description)
	return head + "\n" + desc
}

func renderProgress(pr coach.Progress, cw int) string {
	dots := components.StepDots(pr.Index, pr.Count)
	label := fmt.Sprintf("Step %d of %d", pr.Index+1, pr.Count)
	bar := components.NewProgressBar("", pr.Percent, true, cw-lipgloss.Width(dots)-lipgloss.Width(label)-4)
	return dots + "  " + theme.Label.Render(label) + "  " + bar.View()
}

func renderStep(step steps.Step, showHint bool, cw int, compact bool) string {
	kind := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.ToUpper(string(step.Kind)))
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(step.Title)

	var b strings.Builder
	b.WriteString(title + "  " + kind + "\n")
	b.WriteString(theme.Body.Width(cw - 10).Render(step.Body))
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render("Ask yourself:") + "\n")
	questions := step.Questions
	if compact && len(questions) > 2 {
		questions = questions[:2]
	}
	for i, q := range questions {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, q))
	}

	if showHint {
		b.WriteString("\n" + theme.HintBox.Width(cw - 12).Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Render("Hint: "+step.Hint)))
	} else {
		b.WriteString("\n" + theme.Hint.Render("Press H to show a hint"))
	}

	return components.Card(b.String(), cw)
}

func (s *GuideScreen) renderAnswerPanel(st quota.Status, cw int) string {
	var lines []string
	heading := theme.Warning.Render("Want to see the answer?")
	lines = append(lines, heading)

	switch {
	case s.deps.Session.Revealed():
		if s.outcome == coach.DeniedAlreadyAsked {
			lines = append(lines, theme.Denied.Render("You already used a check on this problem."))
		} else {
			lines = append(lines, theme.Granted.Render("Answer check used."))
		}
		lines = append(lines,
			"I won't show you the direct answer; that won't help you learn!",
			theme.Hint.Render("Work through the guiding questions instead. The learning happens in the process."))
	case st.Remaining > 0:
		lines = append(lines,
			fmt.Sprintf("You have %d answer check%s left this week. Seeing the answer won't teach you the process.",
				st.Remaining, plural(st.Remaining)),
			components.NewButton(fmt.Sprintf("Use Answer Check (%d left)", st.Remaining), "A", true).View())
	default:
		lines = append(lines,
			theme.Denied.Render("No answer checks remaining this week."),
			theme.Hint.Render(fmt.Sprintf("Focus on understanding the process instead. Resets in %d day%s.",
				st.DaysUntilReset, plural(st.DaysUntilReset))),
			components.NewButton("Use Answer Check", "A", false).View())
	}

	lines = append(lines, "", components.QuotaMeter(st))
	if s.notice != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render(s.notice))
	}

	return components.AccentCard(strings.Join(lines, "\n"), cw, theme.Accent)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
