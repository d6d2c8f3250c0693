package service

import (
	"context"

	"timeTracker/internal/models/sheet"
	"timeTracker/internal/models/user"
)

// SheetRepository persists one grouped sheet per user. Load returns an
// empty collection when nothing is stored; Save replaces the whole
// document (last write wins).
type SheetRepository interface {
	HealthCheck(ctx context.Context) error
	Load(ctx context.Context, userName string) ([]*sheet.TaskGroup, error)
	Save(ctx context.Context, userName string, groups []*sheet.TaskGroup) error
	Clear(ctx context.Context, userName string) error
	GetUser(ctx context.Context, name string) (*user.User, error)
	AddUser(ctx context.Context, u *user.User) error
	ListUsers(ctx context.Context) ([]*user.User, error)
}
