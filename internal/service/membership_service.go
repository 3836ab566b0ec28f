package service

import (
	"context"
	"log/slog"

	"github.com/fitconnect/community/internal/domain"
	"github.com/fitconnect/community/internal/models"
	"github.com/fitconnect/community/internal/storage"
)

// userProber is the slice of UserService the membership coordinator needs.
// Narrow interfaces here keep the services independently testable.
type userProber interface {
	UserExists(ctx context.Context, id string) (bool, error)
}

// groupProber is the slice of GroupService the membership coordinator needs.
type groupProber interface {
	GroupExists(ctx context.Context, id string) (bool, error)
}

// MembershipService coordinates the membership relation across users and
// groups: it validates that both sides exist before creating a membership,
// enforces one membership per (user, group) pair, and answers role-based
// queries.
type MembershipService struct {
	store  storage.MembershipStore
	users  userProber
	groups groupProber
}

// NewMembershipService creates a MembershipService. users and groups are
// typically the *UserService and *GroupService built at process start.
func NewMembershipService(store storage.MembershipStore, users userProber, groups groupProber) *MembershipService {
	return &MembershipService{
		store:  store,
		users:  users,
		groups: groups,
	}
}

// AddMemberToGroup creates a membership for the (user, group) pair with the
// given role (empty role defaults to MEMBER). All checks run before the
// write, so failure paths leave no partial state; the storage uniqueness
// constraint backstops the pair check against concurrent calls.
func (s *MembershipService) AddMemberToGroup(ctx context.Context, userID, groupID string, role models.Role) (*models.Membership, error) {
	if userID == "" || groupID == "" {
		return nil, domain.ErrValidation("userId and groupId are required")
	}
	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return nil, domain.ErrValidation("invalid role %q", role)
	}

	userExists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, domain.ErrNotFound("user with ID %s not found", userID)
	}

	groupExists, err := s.groups.GroupExists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !groupExists {
		return nil, domain.ErrNotFound("group with ID %s not found", groupID)
	}

	existing, err := s.store.GetMembershipByUserAndGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict("user %s is already a member of group %s", userID, groupID)
	}

	membership := &models.Membership{
		UserID:  userID,
		GroupID: groupID,
		Role:    role,
	}
	if err := s.store.CreateMembership(ctx, membership); err != nil {
		return nil, err
	}

	slog.Info("member added to group",
		"membership_id", membership.ID,
		"user_id", userID,
		"group_id", groupID,
		"role", membership.Role,
	)
	return membership, nil
}

// IsUserInGroup reports whether a membership exists for the pair. It is a
// pure membership lookup: neither the user nor the group is required to
// exist.
func (s *MembershipService) IsUserInGroup(ctx context.Context, userID, groupID string) (bool, error) {
	if userID == "" || groupID == "" {
		return false, domain.ErrValidation("userId and groupId are required")
	}

	membership, err := s.store.GetMembershipByUserAndGroup(ctx, userID, groupID)
	if err != nil {
		return false, err
	}
	return membership != nil, nil
}

// IsUserAdmin reports whether a membership exists for the pair and carries
// the ADMIN role.
func (s *MembershipService) IsUserAdmin(ctx context.Context, userID, groupID string) (bool, error) {
	if userID == "" || groupID == "" {
		return false, domain.ErrValidation("userId and groupId are required")
	}

	membership, err := s.store.GetMembershipByUserAndGroup(ctx, userID, groupID)
	if err != nil {
		return false, err
	}
	return membership != nil && membership.Role == models.RoleAdmin, nil
}

// GetGroupMembers returns all memberships of a group. The group must exist:
// a missing group is NotFound, distinct from a group with zero members.
func (s *MembershipService) GetGroupMembers(ctx context.Context, groupID string) ([]*models.Membership, error) {
	if groupID == "" {
		return nil, domain.ErrValidation("groupId is required")
	}

	if err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}

	return s.store.ListMembershipsByGroup(ctx, groupID)
}

// GetGroupAdmins returns the memberships of a group restricted to role
// ADMIN, with the same group-existence precondition as GetGroupMembers.
func (s *MembershipService) GetGroupAdmins(ctx context.Context, groupID string) ([]*models.Membership, error) {
	if groupID == "" {
		return nil, domain.ErrValidation("groupId is required")
	}

	if err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}

	return s.store.ListAdminsByGroup(ctx, groupID)
}

// GetUserGroups returns all memberships of a user. The user must exist.
func (s *MembershipService) GetUserGroups(ctx context.Context, userID string) ([]*models.Membership, error) {
	if userID == "" {
		return nil, domain.ErrValidation("userId is required")
	}

	userExists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, domain.ErrNotFound("user with ID %s not found", userID)
	}

	return s.store.ListMembershipsByUser(ctx, userID)
}

// UpdateMemberRole sets the role on an existing membership and returns the
// refreshed record. Setting the same role twice is a no-op that succeeds.
func (s *MembershipService) UpdateMemberRole(ctx context.Context, membershipID string, role models.Role) (*models.Membership, error) {
	if membershipID == "" || role == "" {
		return nil, domain.ErrValidation("membershipId and role are required")
	}
	if !role.Valid() {
		return nil, domain.ErrValidation("invalid role %q", role)
	}

	membership, err := s.store.GetMembershipByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, domain.ErrNotFound("membership with ID %s not found", membershipID)
	}

	updated, err := s.store.UpdateMembershipRole(ctx, membershipID, role)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Row vanished between the lookup and the update.
		return nil, domain.ErrNotFound("membership with ID %s not found", membershipID)
	}

	slog.Info("member role updated",
		"membership_id", membershipID,
		"role", role,
	)
	return updated, nil
}

// RemoveMemberFromGroup deletes the membership for the pair. Removing a
// pair that is not a member yields NotFound, not silent success.
func (s *MembershipService) RemoveMemberFromGroup(ctx context.Context, userID, groupID string) error {
	if userID == "" || groupID == "" {
		return domain.ErrValidation("userId and groupId are required")
	}

	membership, err := s.store.GetMembershipByUserAndGroup(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if membership == nil {
		return domain.ErrNotFound("user %s is not a member of group %s", userID, groupID)
	}

	deleted, err := s.store.DeleteMembership(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound("user %s is not a member of group %s", userID, groupID)
	}

	slog.Info("member removed from group", "user_id", userID, "group_id", groupID)
	return nil
}

// CountGroupMembers returns the number of memberships in a group.
// Unlike GetGroupMembers, there is no existence precondition: an unknown
// group counts as 0. Changing that to NotFound is a product decision, so
// the asymmetry stands for now.
func (s *MembershipService) CountGroupMembers(ctx context.Context, groupID string) (int, error) {
	if groupID == "" {
		return 0, domain.ErrValidation("groupId is required")
	}
	return s.store.CountMembersByGroup(ctx, groupID)
}

// CountUserGroups returns the number of groups a user belongs to, with the
// same no-existence-check semantics as CountGroupMembers.
func (s *MembershipService) CountUserGroups(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, domain.ErrValidation("userId is required")
	}
	return s.store.CountGroupsByUser(ctx, userID)
}

func (s *MembershipService) requireGroup(ctx context.Context, groupID string) error {
	groupExists, err := s.groups.GroupExists(ctx, groupID)
	if err != nil {
		return err
	}
	if !groupExists {
		return domain.ErrNotFound("group with ID %s not found", groupID)
	}
	return nil
}
