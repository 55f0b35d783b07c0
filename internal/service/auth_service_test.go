package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/config"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

type fakeUserReader struct {
	user      *models.User
	lastLogin string
}

func (f *fakeUserReader) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user == nil || f.user.Email != email {
		return nil, sql.ErrNoRows
	}
	return f.user, nil
}

func (f *fakeUserReader) FindByID(_ context.Context, id string) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.user, nil
}

func (f *fakeUserReader) UpdateLastLogin(_ context.Context, id string, _ time.Time) error {
	f.lastLogin = id
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "smart-scheduler", Expiration: time.Hour}
}

func coordinatorUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "usr-1",
		Email:        "sara@example.edu",
		PasswordHash: string(hash),
		FullName:     "Sara Ali",
		Role:         models.RoleCoordinator,
		Active:       true,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	users := &fakeUserReader{user: coordinatorUser(t, "s3cret")}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "sara@example.edu", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, models.RoleCoordinator, resp.User.Role)
	assert.Equal(t, "usr-1", users.lastLogin)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, models.RoleCoordinator, claims.Role)
	assert.Equal(t, "smart-scheduler", claims.Issuer)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	users := &fakeUserReader{user: coordinatorUser(t, "s3cret")}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "sara@example.edu", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&fakeUserReader{}, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.edu", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	user := coordinatorUser(t, "s3cret")
	user.Active = false
	svc := NewAuthService(&fakeUserReader{user: user}, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "sara@example.edu", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService(&fakeUserReader{}, testJWTConfig(), nil, zap.NewNop())

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	users := &fakeUserReader{user: coordinatorUser(t, "s3cret")}
	cfg := testJWTConfig()
	cfg.Expiration = -time.Minute
	svc := NewAuthService(users, cfg, nil, zap.NewNop())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "sara@example.edu", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenWrongSecret(t *testing.T) {
	users := &fakeUserReader{user: coordinatorUser(t, "s3cret")}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "sara@example.edu", Password: "s3cret"})
	require.NoError(t, err)

	other := NewAuthService(users, config.JWTConfig{Secret: "different", Issuer: "smart-scheduler", Expiration: time.Hour}, nil, zap.NewNop())
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}

func TestAuthServiceMe(t *testing.T) {
	users := &fakeUserReader{user: coordinatorUser(t, "s3cret")}
	svc := NewAuthService(users, testJWTConfig(), nil, zap.NewNop())

	info, err := svc.Me(context.Background(), "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "Sara Ali", info.FullName)

	_, err = svc.Me(context.Background(), "usr-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
