package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hostel-management/internal/access"
	"hostel-management/internal/data/entity"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/testutil"
	"hostel-management/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(t *testing.T) (AuthService, *testutil.Repositories) {
	repos := testutil.NewRepositories(t)
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}
	return NewAuthService(repos.Repository(), config, testutil.Clock, zap.NewNop()), repos
}

func userWithPassword(t *testing.T, role access.Role, password string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := testutil.NewUser(role)
	u.PasswordHash = hash
	return u
}

func TestRegister_AlwaysCreatesStudent(t *testing.T) {
	svc, repos := newTestAuthService(t)

	repos.User.On("FindByEmail", mock.Anything, "amina@example.com").Return(nil, nil)
	repos.User.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == access.RoleStudent && u.IsActive && u.Email == "amina@example.com" && u.PasswordHash != "secret-pass"
	})).Return(nil)
	repos.Session.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.ExpiresAt.Equal(testutil.Now.Add(24*time.Hour)) && *s.UserAgent == "test-agent"
	})).Return(nil)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		FullName: "Amina Otieno",
		Email:    "Amina@Example.com",
		Password: "secret-pass",
	}, SessionMeta{UserAgent: "test-agent"})

	require.NoError(t, err)
	assert.Equal(t, access.RoleStudent, resp.Role)
	assert.NotEmpty(t, resp.Token)
	repos.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repos := newTestAuthService(t)
	repos.User.On("FindByEmail", mock.Anything, "taken@example.com").Return(testutil.NewUser(access.RoleStudent), nil)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		FullName: "Someone Else",
		Email:    "taken@example.com",
		Password: "secret-pass",
	}, SessionMeta{})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{Email: "nope"}, SessionMeta{})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	svc, repos := newTestAuthService(t)
	user := userWithPassword(t, access.RoleAccountant, "correct-horse")

	repos.User.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	repos.Session.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{Email: user.Email, Password: "correct-horse"}, SessionMeta{})

	require.NoError(t, err)
	assert.Equal(t, access.RoleAccountant, resp.Role)
	assert.Equal(t, user.ID.String(), resp.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repos := newTestAuthService(t)
	user := userWithPassword(t, access.RoleStudent, "correct-horse")
	repos.User.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), &request.LoginRequest{Email: user.Email, Password: "battery-staple"}, SessionMeta{})

	assert.ErrorIs(t, err, ErrUnauthorized)
	repos.Session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Deactivated(t *testing.T) {
	svc, repos := newTestAuthService(t)
	user := userWithPassword(t, access.RoleStaff, "correct-horse")
	user.IsActive = false
	repos.User.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), &request.LoginRequest{Email: user.Email, Password: "correct-horse"}, SessionMeta{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthenticate(t *testing.T) {
	token := uuid.New()
	user := testutil.NewUser(access.RoleStaff)
	session := &entity.Session{UserID: user.ID, Token: token, ExpiresAt: testutil.Now.Add(time.Hour)}

	t.Run("valid session", func(t *testing.T) {
		svc, repos := newTestAuthService(t)
		repos.Session.On("FindValidSession", mock.Anything, token).Return(session, nil)
		repos.User.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		got, err := svc.Authenticate(context.Background(), token.String())

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("malformed token", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		_, err := svc.Authenticate(context.Background(), "abc")

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc, repos := newTestAuthService(t)
		repos.Session.On("FindValidSession", mock.Anything, token).Return(nil, nil)

		_, err := svc.Authenticate(context.Background(), token.String())

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("deactivated user", func(t *testing.T) {
		svc, repos := newTestAuthService(t)
		inactive := *user
		inactive.IsActive = false
		repos.Session.On("FindValidSession", mock.Anything, token).Return(session, nil)
		repos.User.On("FindByID", mock.Anything, user.ID).Return(&inactive, nil)

		_, err := svc.Authenticate(context.Background(), token.String())

		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestLogout_AlreadyRevoked(t *testing.T) {
	svc, repos := newTestAuthService(t)
	token := uuid.New()
	repos.Session.On("Revoke", mock.Anything, token).Return(fmt.Errorf("revoke session: %w", repository.ErrNotFound))

	err := svc.Logout(context.Background(), token.String())

	assert.ErrorIs(t, err, ErrUnauthorized)
}
