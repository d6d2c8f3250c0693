package sheet

import (
	"github.com/google/uuid"
)

// Task is a single unit of work inside a date group.
// Hours stays a string so the UI can edit it in place; it is parsed
// only when totals are computed.
type Task struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Hours       string `json:"hours"`
	Description string `json:"description"`
	Finished    bool   `json:"finished"`
}

// TaskGroup holds every task that shares one calendar date.
// Task order is meaningful for display, not for totals.
type TaskGroup struct {
	ID    string  `json:"id"`
	Date  string  `json:"date"`
	Tasks []*Task `json:"tasks"`
}

// SummaryEntry is derived per group, never stored.
type SummaryEntry struct {
	Date       string `json:"date"`
	TotalHours string `json:"totalHours"`
}

// NewTask assigns a fresh id and normalizes date and hours.
// Content of hours/description is accepted as-is, validation is the
// caller's concern.
func NewTask(date, hours, description string, finished bool) *Task {
	return &Task{
		ID:          uuid.NewString(),
		Date:        NormalizeDate(date),
		Hours:       NormalizeHours(hours),
		Description: description,
		Finished:    finished,
	}
}

// NewGroupID derives a group id from the date plus a random suffix,
// unique even when two groups appear for the same date before a merge.
func NewGroupID(date string) string {
	return "group-" + date + "-" + uuid.NewString()
}

// EffectiveDate is the task's own date if set, else the group's.
func (t *Task) EffectiveDate(g *TaskGroup) string {
	if t.Date != "" {
		return t.Date
	}
	return g.Date
}

func (t *Task) Clone() *Task {
	c := *t
	return &c
}

func (g *TaskGroup) Clone() *TaskGroup {
	c := &TaskGroup{
		ID:    g.ID,
		Date:  g.Date,
		Tasks: make([]*Task, len(g.Tasks)),
	}
	for i, t := range g.Tasks {
		c.Tasks[i] = t.Clone()
	}
	return c
}

// CloneGroups deep-copies a whole collection. Used at storage
// boundaries so callers never share task pointers with a repository.
func CloneGroups(groups []*TaskGroup) []*TaskGroup {
	cloned := make([]*TaskGroup, len(groups))
	for i, g := range groups {
		cloned[i] = g.Clone()
	}
	return cloned
}
