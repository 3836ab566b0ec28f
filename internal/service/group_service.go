package service

import (
	"context"
	"log/slog"

	"github.com/fitconnect/community/internal/domain"
	"github.com/fitconnect/community/internal/models"
	"github.com/fitconnect/community/internal/storage"
)

// GroupService manages groups and enforces name uniqueness.
// It reads memberships only to answer which groups a user belongs to.
type GroupService struct {
	groups      storage.GroupStore
	memberships storage.MembershipStore
}

// NewGroupService creates a GroupService backed by the given stores.
func NewGroupService(groups storage.GroupStore, memberships storage.MembershipStore) *GroupService {
	return &GroupService{groups: groups, memberships: memberships}
}

// CreateGroup creates a new group with an optional description.
func (s *GroupService) CreateGroup(ctx context.Context, name, description string) (*models.Group, error) {
	if name == "" {
		return nil, domain.ErrValidation("name is required")
	}

	existing, err := s.groups.GetGroupByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict("a group with name %s already exists", name)
	}

	group := &models.Group{
		Name:        name,
		Description: description,
	}
	if err := s.groups.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "name", group.Name)
	return group, nil
}

// GetGroupByID returns the group with the given id.
func (s *GroupService) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	if id == "" {
		return nil, domain.ErrValidation("groupId is required")
	}

	group, err := s.groups.GetGroupByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrNotFound("group with ID %s not found", id)
	}

	return group, nil
}

// GetGroupByName returns the group with the given name, or nil if no such
// group exists. Absence is not an error.
func (s *GroupService) GetGroupByName(ctx context.Context, name string) (*models.Group, error) {
	if name == "" {
		return nil, domain.ErrValidation("name is required")
	}
	return s.groups.GetGroupByName(ctx, name)
}

// ListAllGroups returns every group, in storage order.
func (s *GroupService) ListAllGroups(ctx context.Context) ([]*models.Group, error) {
	return s.groups.ListGroups(ctx)
}

// GetGroupsForUser returns the groups whose membership set contains the
// given user. There is no dedicated join query: the full group and
// membership lists are filtered in memory.
func (s *GroupService) GetGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	if userID == "" {
		return nil, domain.ErrValidation("userId is required")
	}

	groups, err := s.groups.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	memberships, err := s.memberships.ListMemberships(ctx)
	if err != nil {
		return nil, err
	}

	memberOf := make(map[string]bool)
	for _, m := range memberships {
		if m.UserID == userID {
			memberOf[m.GroupID] = true
		}
	}

	var result []*models.Group
	for _, g := range groups {
		if memberOf[g.ID] {
			result = append(result, g)
		}
	}
	return result, nil
}

// GroupExists reports whether a group with the given id exists.
func (s *GroupService) GroupExists(ctx context.Context, id string) (bool, error) {
	group, err := s.groups.GetGroupByID(ctx, id)
	if err != nil {
		return false, err
	}
	return group != nil, nil
}
