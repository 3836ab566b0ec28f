package service

import (
	"path/filepath"
	"testing"

	"github.com/fitconnect/community/internal/storage/sqlite"
)

// testEnv wires the three services against a throwaway SQLite database,
// the same way cmd/server does at process start.
type testEnv struct {
	users       *UserService
	groups      *GroupService
	memberships *MembershipService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	users := NewUserService(store)
	groups := NewGroupService(store, store)
	memberships := NewMembershipService(store, users, groups)

	return &testEnv{users: users, groups: groups, memberships: memberships}
}
