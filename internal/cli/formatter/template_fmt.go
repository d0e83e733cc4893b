package formatter

import (
	"fmt"
	"strings"

	"github.com/kmadrilejo/atelier/internal/template"
)

// FormatTemplateList renders the registered template ids inside a bordered box.
func FormatTemplateList(ids []string, prefixes map[string]string) string {
	headers := []string{"ID", "CODE PREFIX"}
	rows := make([][]string, 0, len(ids))

	for _, id := range ids {
		rows = append(rows, []string{
			Bold(id),
			Dim(prefixes[id]),
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Templates", table)
}

// FormatTemplateShow renders a styled template detail card: the task
// blueprints with durations and dependencies, then the milestones.
func FormatTemplateShow(id string, tpl *template.ProjectTemplate) string {
	var b strings.Builder

	titleLine := fmt.Sprintf("%s  %s", StyleBold.Render(id), Dim(tpl.CodePrefix))
	b.WriteString(titleLine + "\n\n")

	headers := []string{"TASK", "DAYS", "DEPENDS ON", "PRIORITY"}
	rows := make([][]string, 0, len(tpl.Tasks))
	for _, task := range tpl.Tasks {
		deps := Dim("--")
		if len(task.DependsOn) > 0 {
			deps = StyleFg.Render(strings.Join(task.DependsOn, ", "))
		}
		priority := Dim("--")
		if task.Priority != "" {
			priority = PriorityBadge(task.Priority)
		}
		rows = append(rows, []string{
			Bold(task.Name),
			fmt.Sprintf("%d", task.DurationDays),
			deps,
			priority,
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if len(tpl.Milestones) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Milestones"))
		b.WriteString("\n")
		for _, m := range tpl.Milestones {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StylePurple.Render("◆"), StyleFg.Render(m.Title),
				Dim(fmt.Sprintf("day %d", m.OffsetDays))))
		}
	}

	return RenderBox("", b.String())
}
