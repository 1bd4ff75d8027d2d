package services_test

import (
	"testing"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signup(username, email string) services.SignupInput {
	return services.SignupInput{Username: username, Email: email, Password: "s3cret-pass", Name: username}
}

func TestSignupFirstUserIsAdmin(t *testing.T) {
	f := setup(t)
	svc := services.NewAuthService(f.store, f.branch.ID)

	first, err := svc.Signup(t.Context(), signup("abebe", "Abebe@Example.com"))
	require.NoError(t, err)
	second, err := svc.Signup(t.Context(), signup("almaz", "almaz@example.com"))
	require.NoError(t, err)

	assert.True(t, first.IsAdmin)
	assert.False(t, second.IsAdmin)
	assert.Equal(t, "abebe@example.com", first.Email)
	assert.Equal(t, f.branch.ID, second.BranchID)
	assert.NotEqual(t, "s3cret-pass", first.Password)
}

func TestSignupDuplicates(t *testing.T) {
	f := setup(t)
	svc := services.NewAuthService(f.store, f.branch.ID)
	_, err := svc.Signup(t.Context(), signup("abebe", "abebe@example.com"))
	require.NoError(t, err)

	_, err = svc.Signup(t.Context(), signup("abebe", "other@example.com"))
	assert.ErrorIs(t, err, services.ErrUsernameTaken)

	_, err = svc.Signup(t.Context(), signup("other", "abebe@example.com"))
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestLoginIssuesToken(t *testing.T) {
	f := setup(t)
	svc := services.NewAuthService(f.store, f.branch.ID)
	user, err := svc.Signup(t.Context(), signup("abebe", "abebe@example.com"))
	require.NoError(t, err)

	token, got, err := svc.Login(t.Context(), "abebe", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, f.branch.ID, claims.BranchID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := setup(t)
	svc := services.NewAuthService(f.store, f.branch.ID)
	_, err := svc.Signup(t.Context(), signup("abebe", "abebe@example.com"))
	require.NoError(t, err)

	_, _, err = svc.Login(t.Context(), "abebe", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(t.Context(), "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	f := setup(t)
	svc := services.NewAuthService(f.store, f.branch.ID)
	user, err := svc.Signup(t.Context(), signup("abebe", "abebe@example.com"))
	require.NoError(t, err)

	got, err := svc.Profile(t.Context(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Branch)
	assert.Equal(t, "Main Branch", got.Branch.Name)

	_, err = svc.Profile(t.Context(), 999)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
