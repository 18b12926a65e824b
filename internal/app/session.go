package app

import "net/http"

// sessionKey doubles as the session record key and the request context key
// for the caller identity the upstream authenticator put in the session.
type sessionKey string

const (
	SessionKeyUserId  = sessionKey("userID")
	SessionKeyIsAdmin = sessionKey("isAdmin")
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetUserId(r *http.Request) int {
	userId, ok := r.Context().Value(SessionKeyUserId).(int)
	if !ok {
		return 0
	}

	return userId
}

func (app *Application) contextIsAdmin(r *http.Request) bool {
	isAdmin, ok := r.Context().Value(SessionKeyIsAdmin).(bool)
	if !ok {
		return false
	}

	return isAdmin
}
