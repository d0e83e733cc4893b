package formatter

import (
	"fmt"
	"strings"

	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
)

// FormatTracker renders a project tracker view: header line, task timeline,
// alerts, sprint statistics, backlog counts and pending notifications.
func FormatTracker(view *contract.TrackerView) string {
	var b strings.Builder

	titleLine := fmt.Sprintf("%s  %s  %s",
		StyleBold.Render(view.ProjectName),
		Dim(view.Code),
		HealthIndicator(view.Health))
	b.WriteString(titleLine + "\n\n")

	b.WriteString(formatTimeline(view.Tasks))

	if len(view.Alerts) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Alerts"))
		b.WriteString("\n")
		for _, a := range view.Alerts {
			style := StyleYellow
			if a.Severity == domain.AlertLate {
				style = StyleRed
			}
			b.WriteString("  " + style.Render(a.Message) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(formatSprintSection(view))
	b.WriteString(formatBacklog(view.Backlog))

	if len(view.Notifications) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Notifications"))
		b.WriteString("\n")
		for _, n := range view.Notifications {
			marker := Dim("·")
			if n.RequiresConfirmation {
				marker = StyleYellow.Render("?")
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				marker, StyleFg.Render(n.Message), Dim(HumanTimestamp(n.TriggeredAt))))
		}
	}

	return RenderBox("Tracker", b.String())
}

func formatTimeline(tasks []contract.TaskTimelineEntry) string {
	headers := []string{"TASK", "STATUS", "ASSIGNEE", "START", "DUE", "HOURS"}
	rows := make([][]string, 0, len(tasks))

	for _, t := range tasks {
		due := FormatDatePtr(t.DueDate)
		switch {
		case t.IsLate:
			due = StyleRed.Render(due)
		case t.WillBeLate:
			due = StyleYellow.Render(due)
		}

		assignee := Dim("--")
		if t.AssigneeID != "" {
			assignee = StyleFg.Render(t.AssigneeID)
		}

		hours := Dim("--")
		if t.EstimatedHours != nil {
			hours = fmt.Sprintf("%s/%s", FormatPoints(t.LoggedHours), FormatPoints(*t.EstimatedHours))
		}

		rows = append(rows, []string{
			Bold(t.Name),
			TaskStatusPill(t.Status),
			assignee,
			FormatDatePtr(t.StartDate),
			due,
			hours,
		})
	}

	return RenderTable(headers, rows)
}

func formatSprintSection(view *contract.TrackerView) string {
	var b strings.Builder

	b.WriteString(Header("Sprints"))
	b.WriteString("\n")

	if view.ActiveSprint != nil {
		s := view.ActiveSprint
		b.WriteString(fmt.Sprintf("  %s %s  %s pts committed, %s done\n",
			StyleGreen.Render("●"), Bold(s.Name),
			FormatPoints(s.CommittedPoints), FormatPoints(s.CompletedPoints)))
	} else {
		b.WriteString("  " + Dim("No active sprint") + "\n")
	}
	for _, s := range view.UpcomingSprints {
		b.WriteString(fmt.Sprintf("  %s %s  %s\n",
			StyleBlue.Render("○"), StyleFg.Render(s.Name), Dim(RelativeDate(s.StartDate))))
	}

	if view.Velocity != nil {
		b.WriteString(fmt.Sprintf("  %s %s pts/sprint",
			Dim("velocity:"), FormatPoints(*view.Velocity)))
		if view.ForecastCompletion != nil {
			b.WriteString(fmt.Sprintf("  %s %s",
				Dim("forecast:"), HumanDate(*view.ForecastCompletion)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatBacklog(backlog contract.BacklogSummary) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(Header("Backlog"))
	b.WriteString("\n")

	parts := make([]string, 0, len(domain.AllTaskStatuses))
	for _, status := range domain.AllTaskStatuses {
		parts = append(parts, fmt.Sprintf("%d %s", backlog.ByStatus[status], status))
	}
	b.WriteString("  " + StyleFg.Render(strings.Join(parts, ", ")) + "\n")

	if backlog.Unscheduled > 0 {
		b.WriteString("  " + Dim(fmt.Sprintf("%d task(s) not assigned to a sprint", backlog.Unscheduled)) + "\n")
	}

	return b.String()
}
