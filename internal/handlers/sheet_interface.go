package handlers

import (
	"context"

	"timeTracker/internal/dragdrop"
	"timeTracker/internal/models/sheet"
	"timeTracker/internal/models/user"
)

type Service interface {
	HealthCheck(ctx context.Context) error
	Login(ctx context.Context, rawName string) (*user.User, error)
	ListUsers(ctx context.Context) ([]*user.User, error)
	GetSheet(ctx context.Context, userName string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	Summary(ctx context.Context, userName string) ([]*sheet.SummaryEntry, error)
	AddTask(ctx context.Context, userName, date, hours, description string, finished bool) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	AddTaskToGroup(ctx context.Context, userName, groupID, hours, description string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	UpdateTaskField(ctx context.Context, userName, groupID, taskID, field, value string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	UpdateTaskDate(ctx context.Context, userName, groupID, taskID, newDate string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	DeleteTask(ctx context.Context, userName, groupID, taskID string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	MoveTask(ctx context.Context, userName, fromGroupID, taskID, toGroupID string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	ReorderTask(ctx context.Context, userName, groupID string, fromIndex, toIndex int) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	ReorderGroups(ctx context.Context, userName string, fromIndex, toIndex int) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	ResolveDrop(ctx context.Context, userName string, source dragdrop.Source, target dragdrop.Target) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	Export(ctx context.Context, userName string) ([]byte, error)
	Import(ctx context.Context, userName string, document []byte) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error)
	Share(ctx context.Context, userName string) (string, error)
	ClearAll(ctx context.Context, userName string) error
}
