package usecase

import (
	"context"
	"testing"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/data/repository"
	"hotel-reservations/internal/dto/request"
	"hotel-reservations/pkg/apperrors"
	"hotel-reservations/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) (AuthService, *fakeUserRepo, *fakeSessionRepo) {
	t.Helper()

	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	repo := &repository.Repository{
		User:    users,
		Session: sessions,
	}
	config := &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}

	return NewAuthService(repo, config, zap.NewNop()), users, sessions
}

func registerReq() *request.RegisterRequest {
	return &request.RegisterRequest{
		Username: "anapereira",
		Email:    "ana@example.com",
		Password: "s3cretpw",
	}
}

func TestRegister_CreatesGuestAccount(t *testing.T) {
	service, users, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := service.Register(ctx, registerReq())
	require.NoError(t, err)
	assert.Equal(t, "anapereira", resp.Username)
	assert.Equal(t, entity.RoleGuest, resp.Role)
	assert.Nil(t, resp.HotelID)
	assert.NotEmpty(t, resp.Token)

	stored, err := users.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleGuest, stored.Role)
	assert.True(t, stored.IsActive)
	// Password is stored hashed.
	assert.NotEqual(t, "s3cretpw", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("s3cretpw", stored.PasswordHash))
}

func TestRegister_DuplicateEmailAndUsername(t *testing.T) {
	service, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = service.Register(ctx, registerReq())
	assert.True(t, apperrors.IsConflict(err))

	req := registerReq()
	req.Email = "ana2@example.com"
	_, err = service.Register(ctx, req)
	assert.True(t, apperrors.IsConflict(err))
}

func TestLogin(t *testing.T) {
	service, users, _ := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerReq())
	require.NoError(t, err)

	// By username.
	resp, err := service.Login(ctx, &request.LoginRequest{Username: "anapereira", Password: "s3cretpw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// By email.
	resp, err = service.Login(ctx, &request.LoginRequest{Username: "ana@example.com", Password: "s3cretpw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Wrong password.
	_, err = service.Login(ctx, &request.LoginRequest{Username: "anapereira", Password: "wrongpw"})
	assert.True(t, apperrors.IsAuthorization(err))

	// Unknown user.
	_, err = service.Login(ctx, &request.LoginRequest{Username: "nobody", Password: "s3cretpw"})
	assert.True(t, apperrors.IsAuthorization(err))

	// Deactivated account.
	stored, err := users.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, users.Create(ctx, stored))
	_, err = service.Login(ctx, &request.LoginRequest{Username: "anapereira", Password: "s3cretpw"})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestLogout(t *testing.T) {
	service, _, sessions := newAuthService(t)
	ctx := context.Background()

	resp, err := service.Register(ctx, registerReq())
	require.NoError(t, err)

	session, err := sessions.FindValidSession(ctx, resp.Token)
	require.NoError(t, err)
	require.NotNil(t, session)

	require.NoError(t, service.Logout(ctx, resp.Token))

	session, err = sessions.FindValidSession(ctx, resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session)

	// Malformed token.
	err = service.Logout(ctx, "not-a-uuid")
	assert.True(t, apperrors.IsValidation(err))
}
