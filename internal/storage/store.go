// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/fitconnect/community/internal/models"
)

// UserStore defines persistence operations for user records.
// Lookups return (nil, nil) when no matching record exists; a non-nil
// error always indicates a storage failure.
type UserStore interface {
	// CreateUser persists a new user. Missing ID and CreatedAt fields
	// are populated by the store. Returns a domain.ConflictError if the
	// username or email is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ListUsers returns all users in storage order.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// GroupStore defines persistence operations for group records.
type GroupStore interface {
	// CreateGroup persists a new group. Missing ID and CreatedAt fields
	// are populated by the store. Returns a domain.ConflictError if the
	// name is already taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	GetGroupByID(ctx context.Context, id string) (*models.Group, error)
	GetGroupByName(ctx context.Context, name string) (*models.Group, error)

	// ListGroups returns all groups in storage order.
	ListGroups(ctx context.Context) ([]*models.Group, error)
}

// MembershipStore defines persistence operations for the (user, group, role)
// join relation. The composite uniqueness of (UserID, GroupID) and the
// foreign keys to users and groups are enforced by the storage engine as the
// authoritative backstop against check-then-act races in the service layer.
type MembershipStore interface {
	// CreateMembership persists a new membership. Missing ID and JoinedAt
	// fields are populated by the store. Returns a domain.ConflictError if
	// the (UserID, GroupID) pair already exists.
	CreateMembership(ctx context.Context, membership *models.Membership) error

	GetMembershipByID(ctx context.Context, id string) (*models.Membership, error)
	GetMembershipByUserAndGroup(ctx context.Context, userID, groupID string) (*models.Membership, error)

	ListMembershipsByGroup(ctx context.Context, groupID string) ([]*models.Membership, error)
	ListAdminsByGroup(ctx context.Context, groupID string) ([]*models.Membership, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error)

	// ListMemberships returns every membership row. Used by the group
	// service to filter groups by member in memory.
	ListMemberships(ctx context.Context) ([]*models.Membership, error)

	// UpdateMembershipRole sets the role on an existing membership and
	// returns the refreshed record, or (nil, nil) if the id is unknown.
	UpdateMembershipRole(ctx context.Context, id string, role models.Role) (*models.Membership, error)

	// DeleteMembership removes the membership for the given pair and
	// reports whether a row was actually deleted.
	DeleteMembership(ctx context.Context, userID, groupID string) (bool, error)

	CountMembersByGroup(ctx context.Context, groupID string) (int, error)
	CountGroupsByUser(ctx context.Context, userID string) (int, error)
}

// Store combines all entity stores behind one handle.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore
	MembershipStore

	// Close releases any resources held by the store.
	Close() error
}
