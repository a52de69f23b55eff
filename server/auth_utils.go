package server

import (
	"net/http"

	"github.com/villicusbot/web/session"
)

// sessionCookieName is the signed session cookie for this application.
const sessionCookieName = session.CookieName

// setSessionCookie writes the signed session cookie. It is a browser-session
// cookie (no Max-Age): in direct mode the token dies with the browser, in
// store-backed mode the server-side record's TTL bounds the session. Secure
// is only set when the request arrived over https so local development over
// plain http still works.
func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
	})
}
