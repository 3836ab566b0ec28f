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

// CreateUser inserts a new user into the database.
// ID and CreatedAt are generated if not set.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.CreatedAt,
	)
	if err != nil {
		// The unique indexes on username and email are the authoritative
		// backstop for races past the service-layer pre-checks.
		if isConstraintViolation(err) {
			return domain.ErrConflict("user with username %q or email %q already exists", user.Username, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, username, email, created_at FROM users WHERE id = ?", id)
}

// GetUserByEmail retrieves a user by email address. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, username, email, created_at FROM users WHERE email = ?", email)
}

// GetUserByUsername retrieves a user by username. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, username, email, created_at FROM users WHERE username = ?", username)
}

func (s *SQLiteStore) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // user not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, email, created_at FROM users",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
