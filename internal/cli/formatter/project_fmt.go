package formatter

import (
	"fmt"
	"strings"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// FormatProjectList renders all projects as a compact table.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"CODE", "NAME", "STATUS", "START", "END", "TASKS"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		rows = append(rows, []string{
			Dim(p.Code),
			Bold(p.Name),
			StatusPill(p.Status),
			p.StartDate.Format("Jan 2, 2006"),
			FormatDatePtr(p.EndDate),
			fmt.Sprintf("%d", len(p.Tasks)),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectShow renders one project's detail card with its task plan and
// milestones.
func FormatProjectShow(p *domain.Project) string {
	var b strings.Builder

	titleLine := fmt.Sprintf("%s  %s  %s",
		StyleBold.Render(p.Name), Dim(p.Code), StatusPill(p.Status))
	b.WriteString(titleLine + "\n\n")

	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("CLIENT  "), StyleFg.Render(p.ClientID)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("TEMPLATE"), StyleFg.Render(p.TemplateID)))
	b.WriteString(fmt.Sprintf("  %s  %s", StyleDim.Render("SCHEDULE"), p.StartDate.Format("Jan 2, 2006")))
	if p.EndDate != nil {
		b.WriteString(Dim(" to ") + p.EndDate.Format("Jan 2, 2006"))
	}
	b.WriteString("\n")
	if p.Budget != nil {
		b.WriteString(fmt.Sprintf("  %s  %s %s\n",
			StyleDim.Render("BUDGET  "), FormatPoints(*p.Budget), Dim(p.Currency)))
	}

	b.WriteString("\n")
	headers := []string{"ID", "TASK", "STATUS", "PRIORITY", "DUE"}
	rows := make([][]string, 0, len(p.Tasks))
	for i := range p.Tasks {
		t := &p.Tasks[i]
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Name),
			TaskStatusPill(t.Status),
			PriorityBadge(t.Priority),
			FormatDatePtr(t.DueDate),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if len(p.Milestones) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Milestones"))
		b.WriteString("\n")
		for _, m := range p.Milestones {
			marker := StylePurple.Render("◆")
			if m.Completed {
				marker = StyleDim.Render("✔")
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				marker, StyleFg.Render(m.Title), Dim(m.DueDate.Format("Jan 2, 2006"))))
		}
	}

	return RenderBox("", b.String())
}

// FormatOnboardResult summarizes the projects created by one onboarding batch.
func FormatOnboardResult(projects []*domain.Project) string {
	var b strings.Builder

	b.WriteString(StyleGreen.Render(fmt.Sprintf("Created %d project(s)", len(projects))) + "\n\n")

	headers := []string{"CODE", "NAME", "START", "END", "TASKS"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			Dim(p.Code),
			Bold(p.Name),
			p.StartDate.Format("Jan 2, 2006"),
			FormatDatePtr(p.EndDate),
			fmt.Sprintf("%d", len(p.Tasks)),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("Onboarding", b.String())
}
