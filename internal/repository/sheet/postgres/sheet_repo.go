package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"timeTracker/internal/logger"
	"timeTracker/internal/models/sheet"
	"timeTracker/internal/models/user"
	repo "timeTracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Storage persists sheets document-style: Save replaces every row the
// user owns inside one transaction, mirroring the whole-document
// last-write-wins contract of the storage boundary.
type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Storage, error) {
	if err := runMigrations(connString); err != nil {
		logger.Error("Repository: schema migration failed", err)
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: failed to parse pool config", err)
		return nil, fmt.Errorf("parsing pool config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: failed to create pool", err)
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: ping failed", err)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("Repository: connected to PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: closed all PostgreSQL connections")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: ping failed", err)
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

func (s *Storage) Load(ctx context.Context, userName string) ([]*sheet.TaskGroup, error) {
	start := time.Now()

	query := `SELECT g.id, g.group_date, t.id, t.task_date, t.hours, t.description, t.finished
				FROM task_groups g
				JOIN tasks t ON t.group_id = g.id
				WHERE g.user_name = $1
				ORDER BY g.position, t.position`

	rows, err := s.pool.Query(ctx, query, userName)
	if err != nil {
		logger.Error("Repository: failed to load sheet", err, zap.String("user", userName))
		return nil, fmt.Errorf("loading sheet: %w", err)
	}
	defer rows.Close()

	groups := []*sheet.TaskGroup{}
	var current *sheet.TaskGroup

	for rows.Next() {
		var groupID, groupDate string
		task := &sheet.Task{}

		if err := rows.Scan(&groupID, &groupDate, &task.ID, &task.Date, &task.Hours, &task.Description, &task.Finished); err != nil {
			logger.Error("Repository: failed to scan sheet row", err, zap.String("user", userName))
			return nil, fmt.Errorf("scanning sheet row: %w", err)
		}

		if current == nil || current.ID != groupID {
			current = &sheet.TaskGroup{ID: groupID, Date: groupDate}
			groups = append(groups, current)
		}
		current.Tasks = append(current.Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading sheet: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: slow query", zap.Duration("ms", time.Since(start)))
	}
	return groups, nil
}

func (s *Storage) Save(ctx context.Context, userName string, groups []*sheet.TaskGroup) error {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: failed to begin transaction", err)
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The sheet owner row must exist before groups reference it.
	_, err = tx.Exec(ctx,
		`INSERT INTO users (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, userName)
	if err != nil {
		return fmt.Errorf("ensuring user row: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM task_groups WHERE user_name = $1`, userName)
	if err != nil {
		logger.Error("Repository: failed to replace sheet", err, zap.String("user", userName))
		return fmt.Errorf("replacing sheet: %w", err)
	}

	for gi, group := range groups {
		_, err = tx.Exec(ctx,
			`INSERT INTO task_groups (id, user_name, group_date, position) VALUES ($1, $2, $3, $4)`,
			group.ID, userName, group.Date, gi)
		if err != nil {
			return fmt.Errorf("inserting group %s: %w", group.ID, err)
		}

		for ti, task := range group.Tasks {
			_, err = tx.Exec(ctx,
				`INSERT INTO tasks (id, group_id, task_date, hours, description, finished, position)
					VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				task.ID, group.ID, task.Date, task.Hours, task.Description, task.Finished, ti)
			if err != nil {
				return fmt.Errorf("inserting task %s: %w", task.ID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: failed to commit sheet", err, zap.String("user", userName))
		return fmt.Errorf("committing sheet: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: slow operation", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Clear(ctx context.Context, userName string) error {
	start := time.Now()

	_, err := s.pool.Exec(ctx, `DELETE FROM task_groups WHERE user_name = $1`, userName)
	if err != nil {
		logger.Error("Repository: failed to clear sheet", err, zap.String("user", userName))
		return fmt.Errorf("clearing sheet: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: slow operation", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, name string) (*user.User, error) {
	u := &user.User{}

	err := s.pool.QueryRow(ctx,
		`SELECT name, role FROM users WHERE name = $1`, name).Scan(&u.Name, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: failed to get user", err, zap.String("user", name))
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

func (s *Storage) AddUser(ctx context.Context, u *user.User) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO users (name, role) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		u.Name, u.Role)
	if err != nil {
		logger.Error("Repository: failed to add user", err, zap.String("user", u.Name))
		return fmt.Errorf("adding user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrUserExists
	}
	return nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*user.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, role FROM users ORDER BY created_at, name`)
	if err != nil {
		logger.Error("Repository: failed to list users", err)
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.Name, &u.Role); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
