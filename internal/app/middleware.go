package app

import (
	"context"
	"net/http"
)

// authenticate copies the caller identity from the session into the request
// context. Identity issuance lives upstream; this layer only consumes the
// userID and isAdmin claims it finds.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
		if userId != 0 {
			ctx := context.WithValue(r.Context(), SessionKeyUserId, userId)

			if app.sessionManager.GetBool(r.Context(), SessionKeyIsAdmin.String()) {
				ctx = context.WithValue(ctx, SessionKeyIsAdmin, true)
			}

			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.contextGetUserId(r) == 0 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.contextIsAdmin(r) {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
