// Package middle contains middleware for use with the relay server.
package middle

import (
	"context"
	"net/http"
	"time"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/result"
	"github.com/dekarrin/salvo/server/token"
)

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthPlayer
)

// AuthHandler is middleware that extracts the bearer token from a request and
// looks up the player it was issued to.
//
// AuthPlayer and AuthLoggedIn are added to the request context before the
// request is passed on. When auth is required, a request without a valid token
// gets an HTTP-401 and never reaches the next handler.
type AuthHandler struct {
	db            dao.PlayerRepository
	secret        []byte
	required      bool
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	var player dao.Player

	tok, err := token.Get(req)
	if err != nil {
		// deliberately leaving as embedded if instead of &&
		if ah.required {
			ah.reject(w, err)
			return
		}
	} else {
		lookup, err := token.Validate(req.Context(), tok, ah.secret, ah.db)
		if err != nil {
			if ah.required {
				ah.reject(w, err)
				return
			}
		} else {
			player = lookup
			loggedIn = true
		}
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthPlayer, player)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

func (ah *AuthHandler) reject(w http.ResponseWriter, err error) {
	r := result.Unauthorized("", err.Error())
	time.Sleep(ah.unauthedDelay)
	r.WriteResponse(w)
}

// RequireAuth returns middleware that rejects requests without a valid token.
func RequireAuth(db dao.PlayerRepository, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			required:      true,
			next:          next,
		}
	}
}

// OptionalAuth returns middleware that looks up the player if a valid token is
// present but lets every request through.
func OptionalAuth(db dao.PlayerRepository, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			required:      false,
			next:          next,
		}
	}
}
