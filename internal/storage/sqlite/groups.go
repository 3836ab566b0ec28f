package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fitconnect/community/internal/domain"
	"github.com/fitconnect/community/internal/models"
)

// CreateGroup inserts a new group into the database.
// ID and CreatedAt are generated if not set.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO groups (id, name, description, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.Description, group.CreatedAt,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return domain.ErrConflict("group with name %q already exists", group.Name)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

// GetGroupByID retrieves a group by ID. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	return s.getGroup(ctx, "SELECT id, name, description, created_at FROM groups WHERE id = ?", id)
}

// GetGroupByName retrieves a group by name. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetGroupByName(ctx context.Context, name string) (*models.Group, error) {
	return s.getGroup(ctx, "SELECT id, name, description, created_at FROM groups WHERE name = ?", name)
}

func (s *SQLiteStore) getGroup(ctx context.Context, query string, arg string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // group not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// ListGroups returns all groups.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, created_at FROM groups",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}
