// Copyright (c) 2026 Workbay. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/platform/sec"
	"github.com/workbay/workbay/internal/users/auth"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Deactivate(_ context.Context, id string) error {
	if user, ok := f.users[id]; ok {
		user.IsActive = false
		return nil
	}
	return apperr.NotFound("User")
}

// fakeIssuer mints predictable tokens.
type fakeIssuer struct{}

func (fakeIssuer) Issue(userID, _, _ string) (string, error) {
	return "token-for-" + userID, nil
}

func (fakeIssuer) TTL() time.Duration { return time.Hour }

func newTestService() (*auth.Service, *fakeUserRepository) {
	repo := newFakeUserRepository()
	return auth.NewService(repo, fakeIssuer{}), repo
}

func registerInput() auth.RegisterInput {
	return auth.RegisterInput{
		Username:      "grace",
		Email:         "grace@example.com",
		Password:      "hunter2hunter2",
		FullName:      "Grace Hopper",
		Role:          sec.RoleDeveloper,
		TermsAccepted: true,
	}
}

/*
TestRegister_Success verifies the happy path: hashed credential, active
account, chosen role.
*/
func TestRegister_Success(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "grace", user.Username)
	assert.Equal(t, sec.RoleDeveloper, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.TermsAccepted)

	// Stored credential is a hash that verifies, never the plaintext.
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("hunter2hunter2", user.PasswordHash))
}

/*
TestRegister_Guards covers terms acceptance, role restrictions, and
identity conflicts.
*/
func TestRegister_Guards(t *testing.T) {
	service, _ := newTestService()

	// Seed an existing account.
	_, err := service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	tests := []struct {
		name     string
		mutate   func(*auth.RegisterInput)
		wantCode string
	}{
		{"terms_not_accepted", func(in *auth.RegisterInput) {
			in.Username, in.Email = "fresh", "fresh@example.com"
			in.TermsAccepted = false
		}, "UNPROCESSABLE"},
		{"admin_role_rejected", func(in *auth.RegisterInput) {
			in.Username, in.Email = "fresh", "fresh@example.com"
			in.Role = sec.RoleAdmin
		}, "UNPROCESSABLE"},
		{"duplicate_email", func(in *auth.RegisterInput) {
			in.Username = "othername"
		}, "CONFLICT"},
		{"duplicate_username", func(in *auth.RegisterInput) {
			in.Email = "other@example.com"
		}, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := registerInput()
			tt.mutate(&input)

			_, err := service.Register(context.Background(), input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantCode, appError.Code)
		})
	}
}

/*
TestLogin_Success verifies login by username and by email, and the token
envelope shape.
*/
func TestLogin_Success(t *testing.T) {
	service, _ := newTestService()

	registered, err := service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	for _, login := range []string{"grace", "grace@example.com"} {
		result, err := service.Login(context.Background(), auth.LoginInput{
			Login:    login,
			Password: "hunter2hunter2",
		})
		require.NoError(t, err, "login via %q", login)

		assert.Equal(t, "token-for-"+registered.ID, result.AccessToken)
		assert.Equal(t, "bearer", result.TokenType)
		assert.Equal(t, int64(3600), result.ExpiresIn)
		assert.Equal(t, registered.ID, result.User.ID)
	}
}

/*
TestLogin_Failures verifies unknown users, wrong passwords, and deactivated
accounts all fail with the identical generic message.
*/
func TestLogin_Failures(t *testing.T) {
	service, repo := newTestService()

	registered, err := service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	deactivated, err := service.Register(context.Background(), auth.RegisterInput{
		Username:      "gone",
		Email:         "gone@example.com",
		Password:      "hunter2hunter2",
		Role:          sec.RoleClient,
		TermsAccepted: true,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(context.Background(), deactivated.ID))

	tests := []struct {
		name  string
		input auth.LoginInput
	}{
		{"unknown_user", auth.LoginInput{Login: "nobody", Password: "whatever"}},
		{"wrong_password", auth.LoginInput{Login: registered.Username, Password: "incorrect"}},
		{"deactivated_account", auth.LoginInput{Login: "gone", Password: "hunter2hunter2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 401, appError.HTTPStatus)
			assert.Equal(t, "Invalid login credentials", appError.Message)
		})
	}
}

/*
TestResolver covers the guard's subject lookup: live users resolve, missing
and deactivated ones do not.
*/
func TestResolver(t *testing.T) {
	service, repo := newTestService()
	resolver := auth.NewResolver(repo)

	registered, err := service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	principal, err := resolver.ResolveSubject(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, principal.UserID)
	assert.Equal(t, registered.Username, principal.Username)
	assert.Equal(t, sec.RoleDeveloper, principal.Role)

	_, err = resolver.ResolveSubject(context.Background(), "missing-id")
	assert.Error(t, err)

	require.NoError(t, repo.Deactivate(context.Background(), registered.ID))
	_, err = resolver.ResolveSubject(context.Background(), registered.ID)
	assert.Error(t, err)
}
