package export

import (
	"strings"

	"timeTracker/internal/models/sheet"
)

// SummaryLabel heads the totals block of a share text.
const SummaryLabel = "Resumen:\n"

// ShareText renders the sheet as clipboard-ready text: one
// tab-separated line per task in date order, then a totals block for
// every date with hours. Hours switch to comma decimals here, at the
// presentation boundary only; storage stays dot-canonical.
func ShareText(groups []*sheet.TaskGroup, summary []*sheet.SummaryEntry, userName string) string {
	var b strings.Builder

	for _, group := range groups {
		for _, task := range group.Tasks {
			if task.Hours == "" && task.Description == "" {
				continue
			}
			finished := ""
			if task.Finished {
				finished = ". Completo."
			}
			b.WriteString(task.EffectiveDate(group))
			b.WriteString("\t")
			b.WriteString(strings.ReplaceAll(task.Hours, ".", ","))
			b.WriteString("\t")
			b.WriteString(task.Description)
			b.WriteString(finished)
			b.WriteString("\t")
			b.WriteString(userName)
			b.WriteString("\n")
		}
	}

	b.WriteString(SummaryLabel)
	for _, entry := range summary {
		if sheet.ParseHours(entry.TotalHours) > 0 {
			b.WriteString(entry.Date)
			b.WriteString(": ")
			b.WriteString(entry.TotalHours)
			b.WriteString(" hs.\n")
		}
	}

	return b.String()
}
