package server

import (
	"context"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyAccessToken stores the Discord access token resolved from the
// request's session.
const ContextKeyAccessToken ContextKey = "access_token"

// denyFunc is how RequireSession rejects an unauthenticated request: HTML
// routes redirect to the landing page, JSON routes answer 401.
type denyFunc func(w http.ResponseWriter, r *http.Request)

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
}

func unauthorizedJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"not authenticated"}`))
}

// RequireSession resolves the access token from the session cookie and
// injects it into the request context. A missing cookie, a cookie that fails
// verification, and a session id with no live store record are all treated
// identically: the request is unauthenticated and deny runs without any
// downstream call being made.
func (s *Server) RequireSession(deny denyFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil {
				deny(w, r)
				return
			}

			token, ok := s.sessions.Resolve(r.Context(), cookie.Value)
			if !ok {
				deny(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAccessToken, token)
			next(w, r.WithContext(ctx))
		}
	}
}

// accessTokenFromContext returns the token RequireSession stored.
func accessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ContextKeyAccessToken).(string)
	return token
}
