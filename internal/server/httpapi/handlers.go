package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpashkov/videovault/internal/common"
)

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeCredentials(r *http.Request) (*credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, false
	}
	if req.Login == "" || req.Password == "" {
		return nil, false
	}
	return &req, true
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "login and password are required")
		return
	}

	user, err := s.auth.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			writeError(w, http.StatusConflict, "login already taken")
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "user registered", "login", user.Login)
	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Login: user.Login})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "login and password are required")
		return
	}

	pair, payload, err := s.auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// A single generic message for both unknown login and wrong
			// password, to avoid user enumeration.
			writeError(w, http.StatusUnauthorized, "login or password incorrect")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.setAuthCookies(w, pair)
	s.logger.Info(r.Context(), "user logged in", "login", payload.Login)
	writeJSON(w, http.StatusOK, userResponse{ID: payload.ID, Login: payload.Login})
}

func (s *HTTPServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookieName)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pair, payload, err := s.auth.Refresh(r.Context(), c.Value)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.clearAuthCookies(w)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		s.logger.Error(r.Context(), "refresh failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, userResponse{ID: payload.ID, Login: payload.Login})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	payload := PayloadFromContext(r.Context())

	// A missing refresh cookie still clears the client side; Logout on a
	// non-existent row is a no-op, so a replayed logout stays safe.
	if c, err := r.Cookie(refreshCookieName); err == nil && c.Value != "" {
		if err := s.auth.Logout(r.Context(), c.Value, payload.ID); err != nil {
			s.logger.Error(r.Context(), "logout failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	s.clearAuthCookies(w)
	s.logger.Info(r.Context(), "user logged out", "login", payload.Login)
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	payload := PayloadFromContext(r.Context())
	writeJSON(w, http.StatusOK, userResponse{ID: payload.ID, Login: payload.Login})
}
