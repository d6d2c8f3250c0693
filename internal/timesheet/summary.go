package timesheet

import (
	"timeTracker/internal/models/sheet"
)

// CalculateSummary derives the per-date hour totals, one entry per
// group in input order. It is recomputed after every mutation rather
// than maintained incrementally.
func CalculateSummary(groups []*sheet.TaskGroup) []*sheet.SummaryEntry {
	summary := make([]*sheet.SummaryEntry, 0, len(groups))
	for _, group := range groups {
		total := 0.0
		for _, task := range group.Tasks {
			total += sheet.ParseHours(task.Hours)
		}
		summary = append(summary, &sheet.SummaryEntry{
			Date:       group.Date,
			TotalHours: sheet.FormatHours(total),
		})
	}
	return summary
}
