package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitconnect/community/internal/domain"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.CreateUser(ctx, "alice", "a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotZero(t, user.CreatedAt)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateUser(ctx, "alice", "a@x.com")
	require.NoError(t, err)

	_, err = env.users.CreateUser(ctx, "bob", "a@x.com")
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Message, "a@x.com")
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateUser(ctx, "alice", "a@x.com")
	require.NoError(t, err)

	_, err = env.users.CreateUser(ctx, "alice", "b@x.com")
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Message, "alice")
}

func TestCreateUserDualCollisionReportsEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateUser(ctx, "alice", "a@x.com")
	require.NoError(t, err)

	// Both username and email collide; the email check runs first so the
	// conflict message names the email.
	_, err = env.users.CreateUser(ctx, "alice", "a@x.com")
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Message, "email")
}

func TestGetUserProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.CreateUser(ctx, "alice", "a@x.com")
	require.NoError(t, err)

	got, err := env.users.GetUserProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = env.users.GetUserProfile(ctx, "")
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = env.users.GetUserProfile(ctx, "nonexistent-id")
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGetUserByEmailAbsenceIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.GetUserByEmail(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = env.users.GetUserByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)

	_, err = env.users.GetUserByEmail(ctx, "")
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestUserExists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.CreateUser(ctx, "alice", "a@x.com")
	require.NoError(t, err)

	exists, err := env.users.UserExists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = env.users.UserExists(ctx, "nonexistent-id")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListAllUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, u := range []struct{ username, email string }{
		{"alice", "a@x.com"},
		{"bob", "b@x.com"},
	} {
		_, err := env.users.CreateUser(ctx, u.username, u.email)
		require.NoError(t, err)
	}

	users, err := env.users.ListAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
