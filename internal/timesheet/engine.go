package timesheet

import (
	"sort"

	"timeTracker/internal/models/sheet"
)

// Pure operations over grouped task collections. Every function
// returns a new slice and never mutates its input; unmatched ids are
// no-ops so a handler firing against stale state cannot corrupt the
// sheet.

// Regroup partitions every task by its effective date and rebuilds the
// collection sorted ascending by date. This is the single place where
// two groups carrying the same date get merged, so all date-changing
// mutations route through it.
func Regroup(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
	flat := make([]*sheet.Task, 0)
	for _, group := range groups {
		for _, task := range group.Tasks {
			cloned := task.Clone()
			cloned.Date = sheet.NormalizeDate(task.EffectiveDate(group))
			flat = append(flat, cloned)
		}
	}
	return regroupTasks(flat)
}

// regroupTasks buckets a flat task list by date, preserving the
// relative order tasks were encountered within each date.
func regroupTasks(tasks []*sheet.Task) []*sheet.TaskGroup {
	byDate := make(map[string][]*sheet.Task)
	dates := make([]string, 0)

	for _, task := range tasks {
		if _, ok := byDate[task.Date]; !ok {
			dates = append(dates, task.Date)
		}
		byDate[task.Date] = append(byDate[task.Date], task)
	}

	sort.Strings(dates)

	groups := make([]*sheet.TaskGroup, 0, len(dates))
	for _, date := range dates {
		groups = append(groups, &sheet.TaskGroup{
			ID:    sheet.NewGroupID(date),
			Date:  date,
			Tasks: byDate[date],
		})
	}
	return groups
}

// AddTask appends a new task to the group matching the date, or
// creates that group and inserts it in date order.
func AddTask(groups []*sheet.TaskGroup, date, hours, description string, finished bool) []*sheet.TaskGroup {
	task := sheet.NewTask(date, hours, description, finished)

	for i, group := range groups {
		if group.Date == task.Date {
			updated := copyGroups(groups)
			target := group.Clone()
			target.Tasks = append(target.Tasks, task)
			updated[i] = target
			return updated
		}
	}

	updated := append(copyGroups(groups), &sheet.TaskGroup{
		ID:    sheet.NewGroupID(task.Date),
		Date:  task.Date,
		Tasks: []*sheet.Task{task},
	})
	sort.SliceStable(updated, func(i, j int) bool {
		return updated[i].Date < updated[j].Date
	})
	return updated
}

// AddTaskToGroup appends a new task stamped with the target group's
// own date. Unknown groupId is a defensive no-op.
func AddTaskToGroup(groups []*sheet.TaskGroup, groupID, hours, description string) []*sheet.TaskGroup {
	for i, group := range groups {
		if group.ID == groupID {
			updated := copyGroups(groups)
			target := group.Clone()
			target.Tasks = append(target.Tasks, sheet.NewTask(group.Date, hours, description, false))
			updated[i] = target
			return updated
		}
	}
	return groups
}

// UpdateTask applies field options to the task matched by
// (groupId, taskId); everything else keeps its ids and order.
func UpdateTask(groups []*sheet.TaskGroup, groupID, taskID string, options ...sheet.TaskOption) []*sheet.TaskGroup {
	gi, ti := findTask(groups, groupID, taskID)
	if gi < 0 {
		return groups
	}

	updated := copyGroups(groups)
	group := groups[gi].Clone()
	for _, opt := range options {
		opt(group.Tasks[ti])
	}
	updated[gi] = group
	return updated
}

// DeleteTask removes the task; a group left empty is dropped from the
// collection entirely.
func DeleteTask(groups []*sheet.TaskGroup, groupID, taskID string) []*sheet.TaskGroup {
	gi, ti := findTask(groups, groupID, taskID)
	if gi < 0 {
		return groups
	}

	group := groups[gi].Clone()
	group.Tasks = append(group.Tasks[:ti], group.Tasks[ti+1:]...)

	updated := copyGroups(groups)
	if len(group.Tasks) == 0 {
		return append(updated[:gi], updated[gi+1:]...)
	}
	updated[gi] = group
	return updated
}

// UpdateTaskDate re-stamps one task's date and reorganizes the whole
// collection through the regroup step, so the task migrates to (or
// creates) the group for the new date and its old group disappears
// when emptied.
func UpdateTaskDate(groups []*sheet.TaskGroup, groupID, taskID, newDate string) []*sheet.TaskGroup {
	if gi, _ := findTask(groups, groupID, taskID); gi < 0 {
		return groups
	}

	flat := make([]*sheet.Task, 0)
	var target *sheet.Task

	for _, group := range groups {
		for _, task := range group.Tasks {
			cloned := task.Clone()
			if group.ID == groupID && task.ID == taskID {
				cloned.Date = sheet.NormalizeDate(newDate)
				target = cloned
				continue
			}
			cloned.Date = sheet.NormalizeDate(task.EffectiveDate(group))
			flat = append(flat, cloned)
		}
	}

	// The moved task goes last so it ends up appended within its new
	// date bucket, same as a fresh add.
	flat = append(flat, target)
	return regroupTasks(flat)
}

// MoveTask removes the task from its source group, re-stamps it with
// the destination group's date and appends it there. The source group
// is dropped when emptied. Same source and destination is a no-op,
// reordering within one group is ReorderTask's job.
func MoveTask(groups []*sheet.TaskGroup, fromGroupID, taskID, toGroupID string) []*sheet.TaskGroup {
	if fromGroupID == toGroupID {
		return groups
	}
	fromIdx, taskIdx := findTask(groups, fromGroupID, taskID)
	toIdx := findGroup(groups, toGroupID)
	if fromIdx < 0 || toIdx < 0 {
		return groups
	}

	updated := copyGroups(groups)

	source := groups[fromIdx].Clone()
	moved := source.Tasks[taskIdx]
	source.Tasks = append(source.Tasks[:taskIdx], source.Tasks[taskIdx+1:]...)
	updated[fromIdx] = source

	dest := groups[toIdx].Clone()
	moved.Date = dest.Date
	dest.Tasks = append(dest.Tasks, moved)
	updated[toIdx] = dest

	if len(source.Tasks) == 0 {
		return append(updated[:fromIdx], updated[fromIdx+1:]...)
	}
	return updated
}

// ReorderTask repositions a task inside one group, splice semantics:
// remove at fromIndex, insert at toIndex. Grouping is untouched.
func ReorderTask(groups []*sheet.TaskGroup, groupID string, fromIndex, toIndex int) []*sheet.TaskGroup {
	gi := findGroup(groups, groupID)
	if gi < 0 {
		return groups
	}
	group := groups[gi]
	if fromIndex < 0 || fromIndex >= len(group.Tasks) ||
		toIndex < 0 || toIndex >= len(group.Tasks) || fromIndex == toIndex {
		return groups
	}

	cloned := group.Clone()
	tasks := cloned.Tasks
	moved := tasks[fromIndex]
	tasks = append(tasks[:fromIndex], tasks[fromIndex+1:]...)
	tasks = append(tasks[:toIndex], append([]*sheet.Task{moved}, tasks[toIndex:]...)...)
	cloned.Tasks = tasks

	updated := copyGroups(groups)
	updated[gi] = cloned
	return updated
}

// ReorderGroups repositions a whole group in the top-level sequence.
// Manual order is a transient view override: the next date-changing
// mutation re-sorts by date, which stays canonical.
func ReorderGroups(groups []*sheet.TaskGroup, fromIndex, toIndex int) []*sheet.TaskGroup {
	if fromIndex < 0 || fromIndex >= len(groups) ||
		toIndex < 0 || toIndex >= len(groups) || fromIndex == toIndex {
		return groups
	}

	updated := copyGroups(groups)
	moved := updated[fromIndex]
	updated = append(updated[:fromIndex], updated[fromIndex+1:]...)
	updated = append(updated[:toIndex], append([]*sheet.TaskGroup{moved}, updated[toIndex:]...)...)
	return updated
}

func copyGroups(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
	copied := make([]*sheet.TaskGroup, len(groups))
	copy(copied, groups)
	return copied
}

func findGroup(groups []*sheet.TaskGroup, groupID string) int {
	for i, group := range groups {
		if group.ID == groupID {
			return i
		}
	}
	return -1
}

func findTask(groups []*sheet.TaskGroup, groupID, taskID string) (int, int) {
	gi := findGroup(groups, groupID)
	if gi < 0 {
		return -1, -1
	}
	for ti, task := range groups[gi].Tasks {
		if task.ID == taskID {
			return gi, ti
		}
	}
	return -1, -1
}
