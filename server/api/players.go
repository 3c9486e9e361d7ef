package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/middle"
	"github.com/dekarrin/salvo/server/result"
	"github.com/dekarrin/salvo/server/serr"
)

// HTTPCreatePlayer returns a HandlerFunc that registers a new player account.
// No login is required.
func (api API) HTTPCreatePlayer() http.HandlerFunc {
	return api.httpEndpoint(api.epCreatePlayer)
}

func (api API) epCreatePlayer(req *http.Request) result.Result {
	var create PlayerModel
	err := parseJSON(req, &create)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if create.Username == "" {
		return result.BadRequest("username: property is empty or missing from request", "empty username")
	}
	if create.Password == "" {
		return result.BadRequest("password: property is empty or missing from request", "empty password")
	}

	p, err := api.Backend.CreatePlayer(req.Context(), create.Username, create.Password)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict("Player with that username already exists", "player '%s' already exists", create.Username)
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := playerModel(p)
	return result.Created(resp, "player '%s' (%s) created", resp.Username, resp.ID)
}

// HTTPGetPlayer returns a HandlerFunc that gets an existing player. Players may
// only retrieve themselves.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the player being retrieved and the logged-in player of the client
// making the request.
func (api API) HTTPGetPlayer() http.HandlerFunc {
	return api.httpEndpoint(api.epGetPlayer)
}

func (api API) epGetPlayer(req *http.Request) result.Result {
	id := requireIDParam(req)
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)

	if id != player.ID {
		return result.Forbidden("player '%s' get player %s: forbidden", player.Username, id)
	}

	p, err := api.Backend.GetPlayer(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get player: " + err.Error())
	}

	return result.OK(playerModel(p), "player '%s' successfully got self", player.Username)
}

// HTTPGetAllPlayers returns a HandlerFunc that lists every player so that
// opponents can be found. Passwords are never included.
func (api API) HTTPGetAllPlayers() http.HandlerFunc {
	return api.httpEndpoint(api.epGetAllPlayers)
}

func (api API) epGetAllPlayers(req *http.Request) result.Result {
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)

	players, err := api.Backend.GetAllPlayers(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]PlayerModel, len(players))
	for i := range players {
		resp[i] = playerModel(players[i])
	}

	return result.OK(resp, "player '%s' got all players", player.Username)
}

// HTTPUpdatePlayer returns a HandlerFunc that changes the username of a
// player. Players may only rename themselves.
func (api API) HTTPUpdatePlayer() http.HandlerFunc {
	return api.httpEndpoint(api.epUpdatePlayer)
}

func (api API) epUpdatePlayer(req *http.Request) result.Result {
	id := requireIDParam(req)
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)

	if id != player.ID {
		return result.Forbidden("player '%s' update player %s: forbidden", player.Username, id)
	}

	var update PlayerModel
	err := parseJSON(req, &update)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if update.Username == "" {
		return result.BadRequest("username: property is empty or missing from request", "empty username")
	}

	p, err := api.Backend.RenamePlayer(req.Context(), id, update.Username)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict("Player with that username already exists", "player '%s' already exists", update.Username)
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(playerModel(p), "player '%s' renamed to '%s'", player.Username, p.Username)
}

// HTTPDeletePlayer returns a HandlerFunc that deletes a player account and
// its command history. Players may only delete themselves.
func (api API) HTTPDeletePlayer() http.HandlerFunc {
	return api.httpEndpoint(api.epDeletePlayer)
}

func (api API) epDeletePlayer(req *http.Request) result.Result {
	id := requireIDParam(req)
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)

	if id != player.ID {
		return result.Forbidden("player '%s' delete player %s: forbidden", player.Username, id)
	}

	_, err := api.Backend.DeletePlayer(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not delete player: " + err.Error())
	}

	return result.NoContent("player '%s' deleted", player.Username)
}
