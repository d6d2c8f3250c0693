package dto

import (
	"timeTracker/internal/models/sheet"
)

type LoginRequest struct {
	Name string `json:"name"`
}

type CreateTaskRequest struct {
	Date        string `json:"date"`
	Hours       string `json:"hours"`
	Description string `json:"description"`
	Finished    bool   `json:"finished"`
}

type AddToGroupRequest struct {
	Hours       string `json:"hours"`
	Description string `json:"description"`
}

type UpdateTaskRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type UpdateDateRequest struct {
	Date string `json:"date"`
}

type MoveTaskRequest struct {
	FromGroupID string `json:"fromGroupId"`
	TaskID      string `json:"taskId"`
	ToGroupID   string `json:"toGroupId"`
}

type ReorderTaskRequest struct {
	GroupID   string `json:"groupId"`
	FromIndex int    `json:"fromIndex"`
	ToIndex   int    `json:"toIndex"`
}

type ReorderGroupsRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

// DropRequest carries a finished drag gesture: what was picked up and
// where it was released. Kind is "group" or "task".
type DropRequest struct {
	Source DragSource `json:"source"`
	Target DragTarget `json:"target"`
}

type DragSource struct {
	Kind       string `json:"kind"`
	GroupIndex int    `json:"groupIndex"`
	TaskIndex  int    `json:"taskIndex"`
}

type DragTarget struct {
	GroupIndex int `json:"groupIndex"`
	TaskIndex  int `json:"taskIndex"`
}

type SheetResponse struct {
	Groups  []*sheet.TaskGroup    `json:"groups"`
	Summary []*sheet.SummaryEntry `json:"summary"`
}

func ToSheetResponse(groups []*sheet.TaskGroup, summary []*sheet.SummaryEntry) SheetResponse {
	if groups == nil {
		groups = []*sheet.TaskGroup{}
	}
	if summary == nil {
		summary = []*sheet.SummaryEntry{}
	}
	return SheetResponse{Groups: groups, Summary: summary}
}
