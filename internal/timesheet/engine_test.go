package timesheet_test

import (
	"testing"

	"timeTracker/internal/models/sheet"
	"timeTracker/internal/timesheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskIDs(g *sheet.TaskGroup) []string {
	ids := make([]string, 0, len(g.Tasks))
	for _, t := range g.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func totalTasks(groups []*sheet.TaskGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Tasks)
	}
	return n
}

// TestAddTask_NewGroup covers the empty-collection scenario.
func TestAddTask_NewGroup(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "4", "Fix pump", false)

	require.Len(t, groups, 1)
	assert.Equal(t, "2024-03-10", groups[0].Date)
	require.Len(t, groups[0].Tasks, 1)

	task := groups[0].Tasks[0]
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "4", task.Hours)
	assert.Equal(t, "Fix pump", task.Description)
	assert.False(t, task.Finished)

	summary := timesheet.CalculateSummary(groups)
	require.Len(t, summary, 1)
	assert.Equal(t, "2024-03-10", summary[0].Date)
	assert.Equal(t, "4.0", summary[0].TotalHours)
}

// TestAddTask_ExistingGroup appends instead of creating a duplicate
// group for the same date.
func TestAddTask_ExistingGroup(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "4", "Fix pump", false)
	groups = timesheet.AddTask(groups, "2024-03-10", "2", "Check valves", true)

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Tasks, 2)
	assert.Equal(t, "Check valves", groups[0].Tasks[1].Description)
	assert.True(t, groups[0].Tasks[1].Finished)
}

// TestAddTask_KeepsDateOrder inserts new groups in ascending date
// order regardless of insertion order.
func TestAddTask_KeepsDateOrder(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-12", "1", "c", false)
	groups = timesheet.AddTask(groups, "2024-03-10", "1", "a", false)
	groups = timesheet.AddTask(groups, "2024-03-11", "1", "b", false)

	require.Len(t, groups, 3)
	assert.Equal(t, "2024-03-10", groups[0].Date)
	assert.Equal(t, "2024-03-11", groups[1].Date)
	assert.Equal(t, "2024-03-12", groups[2].Date)
}

// TestAddTask_NormalizesDisplayDates accepts the localized display
// formats and groups them with their ISO equivalent.
func TestAddTask_NormalizesDisplayDates(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "1", "iso", false)
	groups = timesheet.AddTask(groups, "10/03/2024", "2", "slash", false)
	groups = timesheet.AddTask(groups, "10-03-2024", "3", "dash", false)

	require.Len(t, groups, 1)
	assert.Equal(t, "2024-03-10", groups[0].Date)
	assert.Len(t, groups[0].Tasks, 3)
}

// TestAddTask_OpaqueDateKey keeps unrecognized dates as opaque keys:
// same string, same group.
func TestAddTask_OpaqueDateKey(t *testing.T) {
	groups := timesheet.AddTask(nil, "someday", "1", "a", false)
	groups = timesheet.AddTask(groups, "someday", "2", "b", false)

	require.Len(t, groups, 1)
	assert.Equal(t, "someday", groups[0].Date)
	assert.Len(t, groups[0].Tasks, 2)
}

// TestAddTask_DoesNotMutateInput checks the copy-on-write contract.
func TestAddTask_DoesNotMutateInput(t *testing.T) {
	original := timesheet.AddTask(nil, "2024-03-10", "4", "Fix pump", false)

	timesheet.AddTask(original, "2024-03-10", "2", "extra", false)
	timesheet.AddTask(original, "2024-03-11", "2", "extra", false)

	require.Len(t, original, 1)
	assert.Len(t, original[0].Tasks, 1)
}

// TestAddTaskToGroup appends with the group's own date.
func TestAddTaskToGroup(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "4", "Fix pump", false)

	updated := timesheet.AddTaskToGroup(groups, groups[0].ID, "2", "Check valves")
	require.Len(t, updated, 1)
	require.Len(t, updated[0].Tasks, 2)
	assert.Equal(t, "2024-03-10", updated[0].Tasks[1].Date)

	// unknown group id is a silent no-op
	same := timesheet.AddTaskToGroup(groups, "missing", "2", "x")
	assert.Equal(t, groups, same)
}

// TestUpdateTask replaces only the named field and keeps ids and
// order intact.
func TestUpdateTask(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "4", "Fix pump", false)
	groups = timesheet.AddTask(groups, "2024-03-10", "2", "Check valves", false)

	groupID := groups[0].ID
	taskID := groups[0].Tasks[0].ID

	updated := timesheet.UpdateTask(groups, groupID, taskID, sheet.WithHours("3,5"))

	assert.Equal(t, "3.5", updated[0].Tasks[0].Hours)
	assert.Equal(t, taskID, updated[0].Tasks[0].ID)
	assert.Equal(t, groupID, updated[0].ID)
	assert.Equal(t, "Check valves", updated[0].Tasks[1].Description)

	// input untouched
	assert.Equal(t, "4", groups[0].Tasks[0].Hours)
}

// TestUpdateTask_NoOpOnUnknownIDs returns the input unchanged for
// stale references.
func TestUpdateTask_NoOpOnUnknownIDs(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "4", "Fix pump", false)

	assert.Equal(t, groups, timesheet.UpdateTask(groups, "missing", groups[0].Tasks[0].ID, sheet.WithHours("1")))
	assert.Equal(t, groups, timesheet.UpdateTask(groups, groups[0].ID, "missing", sheet.WithHours("1")))
}

// TestDeleteTask_PrunesEmptyGroup removes a group that loses its last
// task.
func TestDeleteTask_PrunesEmptyGroup(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "4", "Fix pump", false)
	groups = timesheet.AddTask(groups, "2024-03-11", "2", "Check valves", false)

	updated := timesheet.DeleteTask(groups, groups[0].ID, groups[0].Tasks[0].ID)

	require.Len(t, updated, 1)
	assert.Equal(t, "2024-03-11", updated[0].Date)
	for _, g := range updated {
		assert.NotEmpty(t, g.Tasks)
	}
}

func TestDeleteTask_NoOpOnUnknownIDs(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "4", "Fix pump", false)

	assert.Equal(t, groups, timesheet.DeleteTask(groups, groups[0].ID, "missing"))
	assert.Equal(t, groups, timesheet.DeleteTask(groups, "missing", groups[0].Tasks[0].ID))
}

// TestUpdateTaskDate_MergesGroups is the defining regroup case: the
// moved task lands in the existing group for the new date and its old
// group disappears.
func TestUpdateTaskDate_MergesGroups(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-01-01", "1", "task A", false)
	groups = timesheet.AddTask(groups, "2024-01-02", "2", "task B", false)

	taskA := groups[0].Tasks[0].ID

	updated := timesheet.UpdateTaskDate(groups, groups[0].ID, taskA, "2024-01-02")

	require.Len(t, updated, 1)
	assert.Equal(t, "2024-01-02", updated[0].Date)
	require.Len(t, updated[0].Tasks, 2)
	// existing task keeps its slot, the moved one is appended
	assert.Equal(t, "task B", updated[0].Tasks[0].Description)
	assert.Equal(t, "task A", updated[0].Tasks[1].Description)
	assert.Equal(t, taskA, updated[0].Tasks[1].ID)
}

// TestUpdateTaskDate_CreatesGroup migrates the task into a brand new
// group inserted in date order.
func TestUpdateTaskDate_CreatesGroup(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-01-05", "1", "task A", false)
	groups = timesheet.AddTask(groups, "2024-01-05", "2", "task B", false)

	updated := timesheet.UpdateTaskDate(groups, groups[0].ID, groups[0].Tasks[0].ID, "2024-01-01")

	require.Len(t, updated, 2)
	assert.Equal(t, "2024-01-01", updated[0].Date)
	assert.Equal(t, "2024-01-05", updated[1].Date)
	assert.Equal(t, "task A", updated[0].Tasks[0].Description)
	assert.Equal(t, "task B", updated[1].Tasks[0].Description)
}

func TestUpdateTaskDate_NoOpOnUnknownIDs(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-01-01", "1", "task A", false)

	assert.Equal(t, groups, timesheet.UpdateTaskDate(groups, "missing", groups[0].Tasks[0].ID, "2024-01-02"))
	assert.Equal(t, groups, timesheet.UpdateTaskDate(groups, groups[0].ID, "missing", "2024-01-02"))
}

// TestMoveTask re-stamps the date, appends at the destination and
// drops an emptied source group.
func TestMoveTask(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-01-01", "1", "task A", false)
	groups = timesheet.AddTask(groups, "2024-01-02", "2", "task B", false)

	before := totalTasks(groups)
	taskA := groups[0].Tasks[0].ID

	updated := timesheet.MoveTask(groups, groups[0].ID, taskA, groups[1].ID)

	assert.Equal(t, before, totalTasks(updated))
	require.Len(t, updated, 1)
	assert.Equal(t, "2024-01-02", updated[0].Date)
	require.Len(t, updated[0].Tasks, 2)
	assert.Equal(t, taskA, updated[0].Tasks[1].ID)
	assert.Equal(t, "2024-01-02", updated[0].Tasks[1].Date)

	// source collection untouched
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-01-01", groups[0].Tasks[0].Date)
}

func TestMoveTask_NoOps(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-01-01", "1", "task A", false)
	groups = timesheet.AddTask(groups, "2024-01-02", "2", "task B", false)

	tests := []struct {
		name string
		from string
		task string
		to   string
	}{
		{name: "same source and destination", from: groups[0].ID, task: groups[0].Tasks[0].ID, to: groups[0].ID},
		{name: "unknown source group", from: "missing", task: groups[0].Tasks[0].ID, to: groups[1].ID},
		{name: "unknown task", from: groups[0].ID, task: "missing", to: groups[1].ID},
		{name: "unknown destination group", from: groups[0].ID, task: groups[0].Tasks[0].ID, to: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, groups, timesheet.MoveTask(groups, tt.from, tt.task, tt.to))
		})
	}
}

// TestReorderTask uses splice semantics inside one group.
func TestReorderTask(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-01-01", "1", "a", false)
	groups = timesheet.AddTask(groups, "2024-01-01", "2", "b", false)
	groups = timesheet.AddTask(groups, "2024-01-01", "3", "c", false)

	updated := timesheet.ReorderTask(groups, groups[0].ID, 0, 2)

	require.Len(t, updated[0].Tasks, 3)
	assert.Equal(t, "b", updated[0].Tasks[0].Description)
	assert.Equal(t, "c", updated[0].Tasks[1].Description)
	assert.Equal(t, "a", updated[0].Tasks[2].Description)

	// input untouched
	assert.Equal(t, "a", groups[0].Tasks[0].Description)
}

func TestReorderTask_NoOps(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-01-01", "1", "a", false)
	groups = timesheet.AddTask(groups, "2024-01-01", "2", "b", false)

	assert.Equal(t, groups, timesheet.ReorderTask(groups, "missing", 0, 1))
	assert.Equal(t, groups, timesheet.ReorderTask(groups, groups[0].ID, 0, 0))
	assert.Equal(t, groups, timesheet.ReorderTask(groups, groups[0].ID, -1, 1))
	assert.Equal(t, groups, timesheet.ReorderTask(groups, groups[0].ID, 0, 5))
}

// TestReorderGroups swaps positions without altering contents.
func TestReorderGroups(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "1", "a", false)
	groups = timesheet.AddTask(groups, "2024-03-11", "2", "b", false)

	updated := timesheet.ReorderGroups(groups, 0, 1)

	require.Len(t, updated, 2)
	assert.Equal(t, "2024-03-11", updated[0].Date)
	assert.Equal(t, "2024-03-10", updated[1].Date)
	assert.Equal(t, taskIDs(groups[0]), taskIDs(updated[1]))
	assert.Equal(t, taskIDs(groups[1]), taskIDs(updated[0]))
}

func TestReorderGroups_NoOps(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "1", "a", false)
	groups = timesheet.AddTask(groups, "2024-03-11", "2", "b", false)

	assert.Equal(t, groups, timesheet.ReorderGroups(groups, 0, 0))
	assert.Equal(t, groups, timesheet.ReorderGroups(groups, -1, 1))
	assert.Equal(t, groups, timesheet.ReorderGroups(groups, 0, 2))
}

// TestReorderGroups_ManualOrderIsTransient documents the policy: the
// next date-changing mutation restores canonical date order.
func TestReorderGroups_ManualOrderIsTransient(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "1", "a", false)
	groups = timesheet.AddTask(groups, "2024-03-11", "2", "b", false)

	reordered := timesheet.ReorderGroups(groups, 0, 1)
	require.Equal(t, "2024-03-11", reordered[0].Date)

	regrouped := timesheet.Regroup(reordered)
	assert.Equal(t, "2024-03-10", regrouped[0].Date)
	assert.Equal(t, "2024-03-11", regrouped[1].Date)
}

// TestRegroup_Idempotence re-running regroup over its own output
// yields the same partition.
func TestRegroup_Idempotence(t *testing.T) {
	groups := timesheet.AddTask(nil, "2024-03-10", "1", "a", false)
	groups = timesheet.AddTask(groups, "2024-03-11", "2", "b", false)
	groups = timesheet.AddTask(groups, "2024-03-10", "3", "c", false)

	once := timesheet.Regroup(groups)
	twice := timesheet.Regroup(once)

	require.Equal(t, len(once), len(twice))
	for i := range once {
		assert.Equal(t, once[i].Date, twice[i].Date)
		assert.Equal(t, taskIDs(once[i]), taskIDs(twice[i]))
	}
}

// TestRegroup_MergesDuplicateDates is the single merge point for
// groups that ended up sharing a date.
func TestRegroup_MergesDuplicateDates(t *testing.T) {
	groups := []*sheet.TaskGroup{
		{
			ID:    sheet.NewGroupID("2024-03-10"),
			Date:  "2024-03-10",
			Tasks: []*sheet.Task{{ID: "t1", Date: "2024-03-10", Hours: "1"}},
		},
		{
			ID:    sheet.NewGroupID("2024-03-10"),
			Date:  "2024-03-10",
			Tasks: []*sheet.Task{{ID: "t2", Date: "2024-03-10", Hours: "2"}},
		},
	}

	merged := timesheet.Regroup(groups)

	require.Len(t, merged, 1)
	assert.Equal(t, []string{"t1", "t2"}, taskIDs(merged[0]))
}

// TestRegroup_InheritsGroupDate gives tasks without their own date
// the date of the group they live in.
func TestRegroup_InheritsGroupDate(t *testing.T) {
	groups := []*sheet.TaskGroup{
		{
			ID:   sheet.NewGroupID("2024-03-10"),
			Date: "2024-03-10",
			Tasks: []*sheet.Task{
				{ID: "t1", Date: "", Hours: "1"},
				{ID: "t2", Date: "2024-03-11", Hours: "2"},
			},
		},
	}

	regrouped := timesheet.Regroup(groups)

	require.Len(t, regrouped, 2)
	assert.Equal(t, "2024-03-10", regrouped[0].Date)
	assert.Equal(t, "2024-03-10", regrouped[0].Tasks[0].Date)
	assert.Equal(t, []string{"t1"}, taskIDs(regrouped[0]))
	assert.Equal(t, []string{"t2"}, taskIDs(regrouped[1]))
}
