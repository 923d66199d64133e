package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scamshield/internal/apperr"
	"scamshield/internal/models"
)

type fakeAuthRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[string]*models.User), nextID: 1}
}

func (r *fakeAuthRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.Username] = user
	return nil
}

func (r *fakeAuthRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", apperr.ErrNotFound, username)
	}
	return u, nil
}

func (r *fakeAuthRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
}

var testSecret = []byte("test-secret")

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), testSecret, zap.NewNop())
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "correcthorse", user.PasswordHash)

	token, expiresAt, err := svc.Login(ctx, "alice", "correcthorse")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), testSecret, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "batterystaple")
	assert.True(t, errors.Is(err, ErrUserAlreadyExists))
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), testSecret, zap.NewNop())

	_, err := svc.Register(context.Background(), "", "correcthorse")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = svc.Register(context.Background(), "bob", "short")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), testSecret, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong-password")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, _, err = svc.Login(ctx, "nobody", "whatever")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}
