package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/middle"
	"github.com/dekarrin/salvo/server/result"
	"github.com/dekarrin/salvo/server/serr"
	"github.com/dekarrin/salvo/server/token"
)

// HTTPCreateLogin returns a HandlerFunc that uses the API to log in a player
// with a username and password and return the auth token for that player.
func (api API) HTTPCreateLogin() http.HandlerFunc {
	return api.httpEndpoint(api.epCreateLogin)
}

func (api API) epCreateLogin(req *http.Request) result.Result {
	loginData := LoginRequest{}
	err := parseJSON(req, &loginData)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	if loginData.Username == "" {
		return result.BadRequest("username: property is empty or missing from request", "empty username")
	}
	if loginData.Password == "" {
		return result.BadRequest("password: property is empty or missing from request", "empty password")
	}

	p, err := api.Backend.Login(req.Context(), loginData.Username, loginData.Password)
	if err != nil {
		if errors.Is(err, serr.ErrBadCredentials) {
			return result.Unauthorized(serr.ErrBadCredentials.Error(), "player '%s': %s", loginData.Username, err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	tok, err := token.Generate(api.Secret, p)
	if err != nil {
		return result.InternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{
		Token:    tok,
		PlayerID: p.ID.String(),
	}
	return result.Created(resp, "player '%s' successfully logged in", p.Username)
}

// HTTPDeleteLogin returns a HandlerFunc that deletes the active login of a
// player. Players can only log themselves out.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the player to log out and the logged-in player of the client
// making the request.
func (api API) HTTPDeleteLogin() http.HandlerFunc {
	return api.httpEndpoint(api.epDeleteLogin)
}

func (api API) epDeleteLogin(req *http.Request) result.Result {
	id := requireIDParam(req)
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)

	if id != player.ID {
		return result.Forbidden("player '%s' logout of player %s: forbidden", player.Username, id)
	}

	_, err := api.Backend.Logout(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not log out player: " + err.Error())
	}

	return result.NoContent("player '%s' successfully logged out", player.Username)
}
