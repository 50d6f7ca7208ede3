package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/citynights/server/internal/api/problem"
	"github.com/citynights/server/internal/auth"
	"github.com/citynights/server/internal/domain/users"
	"github.com/citynights/server/internal/metrics"
)

type AuthHandler struct {
	Users *users.Service
	Env   string
}

func NewAuthHandler(service *users.Service, env string) *AuthHandler {
	return &AuthHandler{Users: service, Env: env}
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	ClientType string `json:"clientType"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Users == nil {
		problem.Internal(w, r, nil, "")
		return
	}

	payload, err := decodeBody(r)
	if err != nil {
		problem.BadRequest(w, r, err, h.Env)
		return
	}

	req := loginRequest{}
	if username, ok := payload["username"].(string); ok {
		req.Username = strings.TrimSpace(username)
	}
	if password, ok := payload["password"].(string); ok {
		req.Password = password
	}
	if clientType, ok := payload["clientType"].(string); ok {
		req.ClientType = clientType
	}

	token, user, err := h.Users.Login(r.Context(), req.Username, req.Password, auth.NormalizeClientType(req.ClientType))
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			problem.Unauthorized(w, r, err, h.Env)
			return
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		problem.Internal(w, r, err, h.Env)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Username: user.Username, Role: user.Role})
}
