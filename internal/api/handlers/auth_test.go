package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/citynights/server/internal/auth"
	"github.com/citynights/server/internal/domain/users"
)

type memoryUserRepo struct {
	byUsername map[string]*users.User
}

func (m *memoryUserRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) Create(_ context.Context, user *users.User) error {
	m.byUsername[user.Username] = user
	return nil
}

func testAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &memoryUserRepo{byUsername: map[string]*users.User{
		"alice": {
			ID:           "01HYX3KQW7ERTV9XNBM2P8QJZF",
			Username:     "alice",
			PasswordHash: string(hash),
			Role:         string(auth.RoleEditor),
		},
	}}
	manager := auth.NewJWTManager("test-secret", time.Hour, "citynights")
	return NewAuthHandler(users.NewService(repo, manager), "test")
}

func TestLoginSuccess(t *testing.T) {
	handler := testAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"alice","password":"s3cret","clientType":"dashboard"}`))
	res := httptest.NewRecorder()

	handler.Login(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var body loginResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	require.Equal(t, "alice", body.Username)
	require.Equal(t, string(auth.RoleEditor), body.Role)

	manager := auth.NewJWTManager("test-secret", time.Hour, "citynights")
	claims, err := manager.Validate(body.Token)
	require.NoError(t, err)
	require.Equal(t, auth.ClientTypeDashboard, claims.ClientType)
}

func TestLoginWrongPassword(t *testing.T) {
	handler := testAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	res := httptest.NewRecorder()

	handler.Login(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLoginMalformedBody(t *testing.T) {
	handler := testAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`not json`))
	res := httptest.NewRecorder()

	handler.Login(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}
