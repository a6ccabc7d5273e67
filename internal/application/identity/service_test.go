package identity

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/domain/user"
	"lumen/internal/infrastructure/auth"
	"lumen/internal/shared/authorization"
	"lumen/internal/shared/errors"
	"lumen/internal/shared/logger"
)

type mockUserRepo struct {
	getByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return nil, user.ErrNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error { return nil }

type mockRoleRepo struct {
	getRolesFunc func(ctx context.Context, userID uint) ([]string, error)
}

func (m *mockRoleRepo) HasRole(ctx context.Context, userID uint, role string) (bool, error) {
	return false, nil
}

func (m *mockRoleRepo) AssignRole(ctx context.Context, userID uint, role string) error { return nil }
func (m *mockRoleRepo) RevokeRole(ctx context.Context, userID uint, role string) error { return nil }

func (m *mockRoleRepo) GetRoles(ctx context.Context, userID uint) ([]string, error) {
	if m.getRolesFunc != nil {
		return m.getRolesFunc(ctx, userID)
	}
	return []string{"user"}, nil
}

func testLogger(t *testing.T) logger.Interface {
	t.Helper()
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newService(t *testing.T, users *mockUserRepo, roles *mockRoleRepo) *Service {
	t.Helper()
	hasher := auth.NewBcryptPasswordHasher(4)
	tokens := auth.NewJWTService("test-secret-test-secret-test-secret", 15, 7)
	return NewService(users, roles, hasher, tokens, testLogger(t))
}

func seededUser(t *testing.T, password string) *user.User {
	t.Helper()
	hash, err := auth.NewBcryptPasswordHasher(4).Hash(password)
	require.NoError(t, err)
	return &user.User{ID: 1, Email: "owner@example.com", Name: "Owner", PasswordHash: hash}
}

func TestLogin_Success(t *testing.T) {
	u := seededUser(t, "correct-horse-battery")
	users := &mockUserRepo{getByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
		if email != u.Email {
			return nil, user.ErrNotFound
		}
		return u, nil
	}}
	roles := &mockRoleRepo{getRolesFunc: func(context.Context, uint) ([]string, error) {
		return []string{"user", "admin"}, nil
	}}
	svc := newService(t, users, roles)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "correct-horse-battery",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.User.Role)
	assert.Equal(t, uint(1), resp.User.ID)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	u := seededUser(t, "correct-horse-battery")
	users := &mockUserRepo{getByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
		if email != u.Email {
			return nil, user.ErrNotFound
		}
		return u, nil
	}}
	svc := newService(t, users, &mockRoleRepo{})

	_, wrongPassErr := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong-password",
	})
	_, unknownEmailErr := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong-password",
	})

	require.Error(t, wrongPassErr)
	require.Error(t, unknownEmailErr)
	assert.Equal(t, wrongPassErr.Error(), unknownEmailErr.Error())

	appErr := errors.GetAppError(wrongPassErr)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
}

func TestLogin_ValidationFailures(t *testing.T) {
	svc := newService(t, &mockUserRepo{}, &mockRoleRepo{})

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"missing email", LoginRequest{Password: "long-enough-pass"}},
		{"invalid email", LoginRequest{Email: "nope", Password: "long-enough-pass"}},
		{"short password", LoginRequest{Email: "a@b.co", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestLogin_RoleLookupFailureDefaultsToUser(t *testing.T) {
	u := seededUser(t, "correct-horse-battery")
	users := &mockUserRepo{getByEmailFunc: func(context.Context, string) (*user.User, error) {
		return u, nil
	}}
	roles := &mockRoleRepo{getRolesFunc: func(context.Context, uint) ([]string, error) {
		return nil, stderrors.New("driver: bad connection")
	}}
	svc := newService(t, users, roles)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "correct-horse-battery",
	})

	require.NoError(t, err)
	assert.Equal(t, authorization.RoleUser.String(), resp.User.Role)
}

func TestRefresh_RotatesPair(t *testing.T) {
	tokens := auth.NewJWTService("test-secret-test-secret-test-secret", 15, 7)
	pair, err := tokens.Generate(1, authorization.RoleUser)
	require.NoError(t, err)

	svc := NewService(&mockUserRepo{}, &mockRoleRepo{}, auth.NewBcryptPasswordHasher(4), tokens, testLogger(t))

	resp, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	tokens := auth.NewJWTService("test-secret-test-secret-test-secret", 15, 7)
	pair, err := tokens.Generate(1, authorization.RoleUser)
	require.NoError(t, err)

	svc := NewService(&mockUserRepo{}, &mockRoleRepo{}, auth.NewBcryptPasswordHasher(4), tokens, testLogger(t))

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.AccessToken})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
}
