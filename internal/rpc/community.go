// Package rpc provides the Connect binding for the community service.
//
// It exposes the same operations as the REST API under the RPC service name
// community.v1.CommunityService, with snake_case message fields for
// cross-language compatibility. Handlers are declared directly against
// connect.NewUnaryHandler; both transports call the same service methods.
package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/fitconnect/community/internal/domain"
	"github.com/fitconnect/community/internal/models"
	"github.com/fitconnect/community/internal/service"
)

// Procedure names for the CommunityService RPC surface.
const (
	BasePath = "/community.v1.CommunityService/"

	ProcCreateUser       = BasePath + "CreateUser"
	ProcGetUser          = BasePath + "GetUser"
	ProcCreateGroup      = BasePath + "CreateGroup"
	ProcAddMemberToGroup = BasePath + "AddMemberToGroup"
	ProcIsUserInGroup    = BasePath + "IsUserInGroup"
	ProcIsAdmin          = BasePath + "IsAdmin"
	ProcGetGroupMembers  = BasePath + "GetGroupMembers"
)

// Request and response messages. Entity-returning procedures respond with
// the shared view records from internal/models, whose JSON tags already
// follow the wire contract.

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddMemberToGroupRequest struct {
	UserID  string `json:"user_id"`
	GroupID string `json:"group_id"`
	Role    string `json:"role"`
}

type MembershipPairRequest struct {
	UserID  string `json:"user_id"`
	GroupID string `json:"group_id"`
}

type IsUserInGroupResponse struct {
	IsInGroup bool `json:"is_in_group"`
}

type IsAdminResponse struct {
	IsAdmin bool `json:"is_admin"`
}

type GetGroupMembersRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupMembersResponse struct {
	Members []*models.Membership `json:"members"`
}

// CommunityServer implements the CommunityService procedures.
type CommunityServer struct {
	users       *service.UserService
	groups      *service.GroupService
	memberships *service.MembershipService
}

// NewCommunityServer creates a CommunityServer with its service dependencies.
func NewCommunityServer(users *service.UserService, groups *service.GroupService, memberships *service.MembershipService) *CommunityServer {
	return &CommunityServer{
		users:       users,
		groups:      groups,
		memberships: memberships,
	}
}

// Handler returns the base path and an http.Handler serving every
// CommunityService procedure, mirroring the (path, handler) shape of
// generated Connect code so main can mount it on its mux.
func (s *CommunityServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ProcCreateUser, connect.NewUnaryHandler(ProcCreateUser, s.createUser, opts...))
	mux.Handle(ProcGetUser, connect.NewUnaryHandler(ProcGetUser, s.getUser, opts...))
	mux.Handle(ProcCreateGroup, connect.NewUnaryHandler(ProcCreateGroup, s.createGroup, opts...))
	mux.Handle(ProcAddMemberToGroup, connect.NewUnaryHandler(ProcAddMemberToGroup, s.addMemberToGroup, opts...))
	mux.Handle(ProcIsUserInGroup, connect.NewUnaryHandler(ProcIsUserInGroup, s.isUserInGroup, opts...))
	mux.Handle(ProcIsAdmin, connect.NewUnaryHandler(ProcIsAdmin, s.isAdmin, opts...))
	mux.Handle(ProcGetGroupMembers, connect.NewUnaryHandler(ProcGetGroupMembers, s.getGroupMembers, opts...))

	return BasePath, mux
}

func (s *CommunityServer) createUser(ctx context.Context, req *connect.Request[CreateUserRequest]) (*connect.Response[models.User], error) {
	user, err := s.users.CreateUser(ctx, req.Msg.Username, req.Msg.Email)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(user), nil
}

func (s *CommunityServer) getUser(ctx context.Context, req *connect.Request[GetUserRequest]) (*connect.Response[models.User], error) {
	user, err := s.users.GetUserProfile(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(user), nil
}

func (s *CommunityServer) createGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[models.Group], error) {
	group, err := s.groups.CreateGroup(ctx, req.Msg.Name, req.Msg.Description)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(group), nil
}

func (s *CommunityServer) addMemberToGroup(ctx context.Context, req *connect.Request[AddMemberToGroupRequest]) (*connect.Response[models.Membership], error) {
	role, ok := models.ParseRole(req.Msg.Role)
	if !ok {
		return nil, connectError(domain.ErrValidation("invalid role %q", req.Msg.Role))
	}

	membership, err := s.memberships.AddMemberToGroup(ctx, req.Msg.UserID, req.Msg.GroupID, role)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(membership), nil
}

func (s *CommunityServer) isUserInGroup(ctx context.Context, req *connect.Request[MembershipPairRequest]) (*connect.Response[IsUserInGroupResponse], error) {
	inGroup, err := s.memberships.IsUserInGroup(ctx, req.Msg.UserID, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&IsUserInGroupResponse{IsInGroup: inGroup}), nil
}

func (s *CommunityServer) isAdmin(ctx context.Context, req *connect.Request[MembershipPairRequest]) (*connect.Response[IsAdminResponse], error) {
	isAdmin, err := s.memberships.IsUserAdmin(ctx, req.Msg.UserID, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&IsAdminResponse{IsAdmin: isAdmin}), nil
}

func (s *CommunityServer) getGroupMembers(ctx context.Context, req *connect.Request[GetGroupMembersRequest]) (*connect.Response[GetGroupMembersResponse], error) {
	members, err := s.memberships.GetGroupMembers(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}
	if members == nil {
		members = []*models.Membership{}
	}
	return connect.NewResponse(&GetGroupMembersResponse{Members: members}), nil
}
