package formatter

import (
	"fmt"
	"strings"

	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
)

// FormatPortfolio formats the cross-project portfolio into a styled dashboard.
func FormatPortfolio(entries []contract.PortfolioEntry) string {
	var b strings.Builder

	headers := []string{"CODE", "NAME", "STATUS", "PROGRESS", "HEALTH", "MILESTONE", "FORECAST"}
	rows := make([][]string, 0, len(entries))

	for _, e := range entries {
		milestone := Dim("--")
		if e.NextMilestone != nil {
			milestone = fmt.Sprintf("%s %s",
				StyleFg.Render(e.NextMilestone.Title),
				Dim(RelativeDate(e.NextMilestone.DueDate)))
		}

		forecast := Dim("--")
		if e.ForecastCompletion != nil {
			forecast = StyleFg.Render(HumanDate(*e.ForecastCompletion))
		}

		rows = append(rows, []string{
			Dim(e.Code),
			Bold(e.Name),
			StatusPill(e.Status),
			Progress(e.Progress),
			HealthIndicator(e.Health),
			milestone,
			forecast,
		})
	}

	b.WriteString(RenderTable(headers, rows))

	// Summary line.
	blocked, atRisk, onTrack := countByHealth(entries)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s, %s, %s\n",
		StyleRed.Render(fmt.Sprintf("%d Blocked", blocked)),
		StyleYellow.Render(fmt.Sprintf("%d At Risk", atRisk)),
		StyleGreen.Render(fmt.Sprintf("%d On Track", onTrack))))

	return RenderBox("Portfolio", b.String())
}

func countByHealth(entries []contract.PortfolioEntry) (blocked, atRisk, onTrack int) {
	for _, e := range entries {
		switch e.Health {
		case domain.HealthBlocked:
			blocked++
		case domain.HealthAtRisk:
			atRisk++
		case domain.HealthOnTrack:
			onTrack++
		}
	}
	return blocked, atRisk, onTrack
}
