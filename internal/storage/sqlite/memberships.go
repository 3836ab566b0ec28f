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

const membershipColumns = "id, user_id, group_id, role, joined_at"

// CreateMembership inserts a new membership row.
// ID and JoinedAt are generated if not set; an unset role defaults to MEMBER.
func (s *SQLiteStore) CreateMembership(ctx context.Context, membership *models.Membership) error {
	if membership.ID == "" {
		membership.ID = uuid.New().String()
	}
	if membership.JoinedAt == 0 {
		membership.JoinedAt = time.Now().Unix()
	}
	if membership.Role == "" {
		membership.Role = models.RoleMember
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO memberships (id, user_id, group_id, role, joined_at) VALUES (?, ?, ?, ?, ?)",
		membership.ID, membership.UserID, membership.GroupID, membership.Role, membership.JoinedAt,
	)
	if err != nil {
		// UNIQUE(user_id, group_id) backstops the service-layer pre-check.
		if isConstraintViolation(err) {
			return domain.ErrConflict("user %s is already a member of group %s", membership.UserID, membership.GroupID)
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// GetMembershipByID retrieves a membership by ID. Returns (nil, nil) if not found.
func (s *SQLiteStore) GetMembershipByID(ctx context.Context, id string) (*models.Membership, error) {
	return s.getMembership(ctx,
		"SELECT "+membershipColumns+" FROM memberships WHERE id = ?", id)
}

// GetMembershipByUserAndGroup retrieves the membership for a (user, group)
// pair. Returns (nil, nil) if the user is not a member of the group.
func (s *SQLiteStore) GetMembershipByUserAndGroup(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	return s.getMembership(ctx,
		"SELECT "+membershipColumns+" FROM memberships WHERE user_id = ? AND group_id = ?", userID, groupID)
}

func (s *SQLiteStore) getMembership(ctx context.Context, query string, args ...interface{}) (*models.Membership, error) {
	m := &models.Membership{}
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.UserID,
		&m.GroupID,
		&m.Role,
		&m.JoinedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // membership not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

// ListMembershipsByGroup returns all memberships for a group.
func (s *SQLiteStore) ListMembershipsByGroup(ctx context.Context, groupID string) ([]*models.Membership, error) {
	return s.listMemberships(ctx,
		"SELECT "+membershipColumns+" FROM memberships WHERE group_id = ?", groupID)
}

// ListAdminsByGroup returns the memberships of a group restricted to role ADMIN.
func (s *SQLiteStore) ListAdminsByGroup(ctx context.Context, groupID string) ([]*models.Membership, error) {
	return s.listMemberships(ctx,
		"SELECT "+membershipColumns+" FROM memberships WHERE group_id = ? AND role = ?", groupID, models.RoleAdmin)
}

// ListMembershipsByUser returns all memberships for a user.
func (s *SQLiteStore) ListMembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	return s.listMemberships(ctx,
		"SELECT "+membershipColumns+" FROM memberships WHERE user_id = ?", userID)
}

// ListMemberships returns every membership row.
func (s *SQLiteStore) ListMemberships(ctx context.Context) ([]*models.Membership, error) {
	return s.listMemberships(ctx, "SELECT "+membershipColumns+" FROM memberships")
}

func (s *SQLiteStore) listMemberships(ctx context.Context, query string, args ...interface{}) ([]*models.Membership, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		m := &models.Membership{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.GroupID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return memberships, nil
}

// UpdateMembershipRole sets the role on an existing membership and returns
// the refreshed record. Returns (nil, nil) if the id is unknown.
func (s *SQLiteStore) UpdateMembershipRole(ctx context.Context, id string, role models.Role) (*models.Membership, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE memberships SET role = ? WHERE id = ?",
		role, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update membership role: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return s.GetMembershipByID(ctx, id)
}

// DeleteMembership removes the membership for the given pair and reports
// whether a row was deleted.
func (s *SQLiteStore) DeleteMembership(ctx context.Context, userID, groupID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM memberships WHERE user_id = ? AND group_id = ?",
		userID, groupID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete membership: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// CountMembersByGroup returns the number of memberships in a group.
// Unknown groups count as 0.
func (s *SQLiteStore) CountMembersByGroup(ctx context.Context, groupID string) (int, error) {
	return s.countMemberships(ctx,
		"SELECT COUNT(*) FROM memberships WHERE group_id = ?", groupID)
}

// CountGroupsByUser returns the number of groups a user belongs to.
// Unknown users count as 0.
func (s *SQLiteStore) CountGroupsByUser(ctx context.Context, userID string) (int, error) {
	return s.countMemberships(ctx,
		"SELECT COUNT(*) FROM memberships WHERE user_id = ?", userID)
}

func (s *SQLiteStore) countMemberships(ctx context.Context, query string, arg string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count memberships: %w", err)
	}
	return count, nil
}
