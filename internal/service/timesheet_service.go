package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"timeTracker/internal/dragdrop"
	"timeTracker/internal/export"
	"timeTracker/internal/logger"
	"timeTracker/internal/models/sheet"
	"timeTracker/internal/models/user"
	repo "timeTracker/internal/repository"
	"timeTracker/internal/timesheet"

	"go.uber.org/zap"
)

// TimesheetService orchestrates load -> pure engine operation -> save
// and recomputes the summary after every mutation. Business rule
// violations come back as *BusinessError; stale-id operations are
// silent no-ops by engine contract.

type TimesheetService struct {
	repo SheetRepository
}

func NewTimesheetService(repo SheetRepository) TimesheetService {
	return TimesheetService{
		repo: repo,
	}
}

// wellKnownRoles carries the fixed role assignments the app ships
// with; anyone else signs in as operario.
var wellKnownRoles = map[string]user.Role{
	"Anto":  user.RoleTecnico,
	"Pame":  user.RoleDesarrollo,
	"Jorge": user.RoleTecnico,
	"Rosi":  user.RoleFinanzas,
	"Pablo": user.RoleAdmin,
}

func roleFor(name string) user.Role {
	if role, ok := wellKnownRoles[name]; ok {
		return role
	}
	return user.RoleOperario
}

func (s *TimesheetService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// Login formats the raw name (first word, capitalized), registers it
// on first sight and returns the user with their role.
func (s *TimesheetService) Login(ctx context.Context, rawName string) (*user.User, error) {
	name := user.FormatName(rawName)
	if name == "" {
		return nil, NewValidationError("name", "name must not be empty")
	}

	existing, err := s.repo.GetUser(ctx, name)
	if err == nil {
		// Well-known roles come from the table, not from the stored
		// row: a sheet Save before first login registers the row with
		// the storage default role.
		if role, ok := wellKnownRoles[name]; ok {
			existing.Role = role
		}
		return existing, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	created := &user.User{Name: name, Role: roleFor(name)}
	if err := s.repo.AddUser(ctx, created); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			return created, nil
		}
		return nil, fmt.Errorf("registering user: %w", err)
	}

	logger.Info("Service: user registered",
		zap.String("user", name),
		zap.String("role", string(created.Role)))
	return created, nil
}

func (s *TimesheetService) ListUsers(ctx context.Context) ([]*user.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetSheet returns the stored groups plus their derived summary.
func (s *TimesheetService) GetSheet(ctx context.Context, userName string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	groups, err := s.repo.Load(ctx, userName)
	if err != nil {
		return nil, nil, fmt.Errorf("loading sheet: %w", err)
	}
	return groups, timesheet.CalculateSummary(groups), nil
}

func (s *TimesheetService) Summary(ctx context.Context, userName string) ([]*sheet.SummaryEntry, error) {
	groups, err := s.repo.Load(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("loading sheet: %w", err)
	}
	return timesheet.CalculateSummary(groups), nil
}

func (s *TimesheetService) AddTask(ctx context.Context, userName, date, hours, description string, finished bool) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	return s.mutate(ctx, userName, func(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
		return timesheet.AddTask(groups, date, hours, description, finished)
	})
}

func (s *TimesheetService) AddTaskToGroup(ctx context.Context, userName, groupID, hours, description string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	return s.mutate(ctx, userName, func(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
		return timesheet.AddTaskToGroup(groups, groupID, hours, description)
	})
}

// UpdateTaskField routes one named-field edit into the engine. A date
// edit is special: it goes through the regroup path so the task
// migrates between groups.
func (s *TimesheetService) UpdateTaskField(ctx context.Context, userName, groupID, taskID, field, value string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	var option sheet.TaskOption

	switch strings.ToLower(field) {
	case "date":
		return s.UpdateTaskDate(ctx, userName, groupID, taskID, value)
	case "hours":
		option = sheet.WithHours(value)
	case "description":
		option = sheet.WithDescription(value)
	case "finished":
		finished, err := strconv.ParseBool(value)
		if err != nil {
			return nil, nil, NewValidationError("finished", "value must be a boolean")
		}
		option = sheet.WithFinished(finished)
	default:
		return nil, nil, NewValidationError("field", fmt.Sprintf("unknown task field '%s'", field))
	}

	return s.mutate(ctx, userName, func(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
		return timesheet.UpdateTask(groups, groupID, taskID, option)
	})
}

func (s *TimesheetService) UpdateTaskDate(ctx context.Context, userName, groupID, taskID, newDate string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	return s.mutate(ctx, userName, func(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
		return timesheet.UpdateTaskDate(groups, groupID, taskID, newDate)
	})
}

func (s *TimesheetService) DeleteTask(ctx context.Context, userName, groupID, taskID string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	return s.mutate(ctx, userName, func(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
		return timesheet.DeleteTask(groups, groupID, taskID)
	})
}

func (s *TimesheetService) MoveTask(ctx context.Context, userName, fromGroupID, taskID, toGroupID string) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	return s.mutate(ctx, userName, func(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
		return timesheet.MoveTask(groups, fromGroupID, taskID, toGroupID)
	})
}

func (s *TimesheetService) ReorderTask(ctx context.Context, userName, groupID string, fromIndex, toIndex int) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	return s.mutate(ctx, userName, func(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
		return timesheet.ReorderTask(groups, groupID, fromIndex, toIndex)
	})
}

func (s *TimesheetService) ReorderGroups(ctx context.Context, userName string, fromIndex, toIndex int) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	return s.mutate(ctx, userName, func(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
		return timesheet.ReorderGroups(groups, fromIndex, toIndex)
	})
}

// ResolveDrop replays a completed drag gesture through the state
// machine and applies whichever mutation it resolves to. Out-of-range
// indexes mean the UI dropped against stale state: no-op.
func (s *TimesheetService) ResolveDrop(ctx context.Context, userName string, source dragdrop.Source, target dragdrop.Target) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	return s.mutate(ctx, userName, func(groups []*sheet.TaskGroup) []*sheet.TaskGroup {
		machine := dragdrop.New()
		switch source.Kind {
		case dragdrop.KindGroup:
			machine.StartGroup(source.GroupIndex)
		case dragdrop.KindTask:
			machine.StartTask(source.GroupIndex, source.TaskIndex)
		default:
			return groups
		}

		resolution := machine.Drop(target)
		switch resolution.Op {
		case dragdrop.OpReorderGroups:
			return timesheet.ReorderGroups(groups, resolution.FromGroup, resolution.ToGroup)
		case dragdrop.OpReorderTask:
			if resolution.FromGroup < 0 || resolution.FromGroup >= len(groups) {
				return groups
			}
			return timesheet.ReorderTask(groups, groups[resolution.FromGroup].ID, resolution.FromTask, resolution.ToTask)
		case dragdrop.OpMoveTask:
			if resolution.FromGroup < 0 || resolution.FromGroup >= len(groups) ||
				resolution.ToGroup < 0 || resolution.ToGroup >= len(groups) ||
				resolution.FromTask < 0 || resolution.FromTask >= len(groups[resolution.FromGroup].Tasks) {
				return groups
			}
			from := groups[resolution.FromGroup]
			return timesheet.MoveTask(groups, from.ID, from.Tasks[resolution.FromTask].ID, groups[resolution.ToGroup].ID)
		}
		return groups
	})
}

// Export serializes the user's sheet to the canonical JSON document.
func (s *TimesheetService) Export(ctx context.Context, userName string) ([]byte, error) {
	groups, err := s.repo.Load(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("loading sheet: %w", err)
	}
	return export.ToJSON(groups)
}

// Import replaces the user's whole sheet with the parsed document,
// all-or-nothing.
func (s *TimesheetService) Import(ctx context.Context, userName string, document []byte) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	groups, err := export.FromJSON(document)
	if err != nil {
		logger.Warn("Service: import rejected",
			zap.String("user", userName),
			zap.Error(err))
		return nil, nil, NewImportError(err)
	}

	if err := s.repo.Save(ctx, userName, groups); err != nil {
		return nil, nil, fmt.Errorf("saving imported sheet: %w", err)
	}
	return groups, timesheet.CalculateSummary(groups), nil
}

// Share renders the clipboard text block for the user's sheet.
func (s *TimesheetService) Share(ctx context.Context, userName string) (string, error) {
	groups, err := s.repo.Load(ctx, userName)
	if err != nil {
		return "", fmt.Errorf("loading sheet: %w", err)
	}
	return export.ShareText(groups, timesheet.CalculateSummary(groups), userName), nil
}

// ClearAll wipes the user's sheet. Callers must obtain explicit
// confirmation before invoking it.
func (s *TimesheetService) ClearAll(ctx context.Context, userName string) error {
	if err := s.repo.Clear(ctx, userName); err != nil {
		return fmt.Errorf("clearing sheet: %w", err)
	}
	logger.Info("Service: sheet cleared", zap.String("user", userName))
	return nil
}

func (s *TimesheetService) mutate(ctx context.Context, userName string, op func([]*sheet.TaskGroup) []*sheet.TaskGroup) ([]*sheet.TaskGroup, []*sheet.SummaryEntry, error) {
	groups, err := s.repo.Load(ctx, userName)
	if err != nil {
		return nil, nil, fmt.Errorf("loading sheet: %w", err)
	}

	updated := op(groups)

	if err := s.repo.Save(ctx, userName, updated); err != nil {
		return nil, nil, fmt.Errorf("saving sheet: %w", err)
	}
	return updated, timesheet.CalculateSummary(updated), nil
}
