package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mpashkov/videovault/internal/server/auth"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	payloadKey   ctxKey = "payload"
)

const requestIDHeader = "X-Request-Id"

// requestID assigns each request a unique id, echoed in the response
// header and attached to every log line downstream.
func (s *HTTPServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests logs method, path, and duration of every request. Bodies and
// tokens are never logged.
func (s *HTTPServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"duration", time.Since(start).String(),
		)
	})
}

// authenticate verifies the access token and stores its payload in the
// request context. The token may arrive as a cookie or a bearer header.
// Verification is pure: an expired access token is a 401 here, never a
// silent renewal; clients renew through the refresh endpoint.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := accessTokenFromRequest(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		payload, err := s.auth.VerifyAccess(token)
		if err != nil {
			s.logger.Debug(r.Context(), "access token rejected", "reason", err.Error())
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), payloadKey, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accessTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(accessCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return after
	}
	return ""
}

// PayloadFromContext returns the authenticated identity stored by the
// authenticate middleware, or nil when the request is anonymous.
func PayloadFromContext(ctx context.Context) *auth.Payload {
	p, _ := ctx.Value(payloadKey).(*auth.Payload)
	return p
}

// RequestIDFromContext returns the request id assigned by the requestID
// middleware, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
