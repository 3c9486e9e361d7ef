package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/salvo/internal/cmderr"
	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/middle"
	"github.com/dekarrin/salvo/server/result"
	"github.com/dekarrin/salvo/server/serr"
)

// RuleUnknownCommand is the rule reported when the first word of a submitted
// line is not a command at all.
const RuleUnknownCommand = "unknown-command"

// HTTPCreateCommand returns a HandlerFunc that validates a command line sent by
// the logged-in player and records it in the history of a game.
//
// A line that does not validate gets an HTTP-400 whose body names the rule
// it broke and the offending input.
func (api API) HTTPCreateCommand() http.HandlerFunc {
	return api.httpEndpoint(api.epCreateCommand)
}

func (api API) epCreateCommand(req *http.Request) result.Result {
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)

	var submit CommandRequest
	err := parseJSON(req, &submit)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if submit.Game == "" {
		return result.BadRequest("game: property is empty or missing from request", "empty game")
	}
	if submit.Line == "" {
		return result.BadRequest("line: property is empty or missing from request", "empty line")
	}

	c, err := api.Backend.SubmitCommand(req.Context(), player.ID, submit.Game, submit.Line)
	if err != nil {
		if errors.Is(err, serr.ErrBadCommand) {
			return badCommand(submit.Line, err)
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			// the player was deleted after their token was checked
			return result.Unauthorized("", err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(commandModel(c), "player '%s' sent %s to game %q", player.Username, c.Name, c.Game)
}

func badCommand(line string, err error) result.Result {
	input := line
	rule := cmderr.RuleOf(err).String()

	var iae *cmderr.InvalidArgumentsError
	if errors.As(err, &iae) {
		input = iae.Input
	} else if errors.Is(err, cmderr.ErrUnknownCommand) {
		rule = RuleUnknownCommand
	}

	return result.BadCommand(cmderr.GameMessage(err), rule, input, "bad command %q: %s", line, err.Error())
}

// HTTPGetCommands returns a HandlerFunc that gets the command history of the
// logged-in player, optionally limited to the game named in the "game" query
// parameter.
func (api API) HTTPGetCommands() http.HandlerFunc {
	return api.httpEndpoint(api.epGetCommands)
}

func (api API) epGetCommands(req *http.Request) result.Result {
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)
	game := req.URL.Query().Get("game")

	coms, err := api.Backend.GetCommands(req.Context(), player.ID, game)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]CommandModel, len(coms))
	for i := range coms {
		resp[i] = commandModel(coms[i])
	}

	return result.OK(resp, "player '%s' got %d command(s)", player.Username, len(resp))
}

// HTTPGetCommand returns a HandlerFunc that gets one command from the history
// of the logged-in player.
func (api API) HTTPGetCommand() http.HandlerFunc {
	return api.httpEndpoint(api.epGetCommand)
}

func (api API) epGetCommand(req *http.Request) result.Result {
	id := requireIDParam(req)
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)

	c, err := api.Backend.GetCommand(req.Context(), player.ID, id.String())
	if err != nil {
		if errors.Is(err, serr.ErrPermissions) {
			return result.Forbidden("player '%s' get command %s: %s", player.Username, id, err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(commandModel(c), "player '%s' got command %s", player.Username, id)
}

// HTTPDeleteCommand returns a HandlerFunc that withdraws a command from the
// history of the logged-in player.
func (api API) HTTPDeleteCommand() http.HandlerFunc {
	return api.httpEndpoint(api.epDeleteCommand)
}

func (api API) epDeleteCommand(req *http.Request) result.Result {
	id := requireIDParam(req)
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)

	_, err := api.Backend.DeleteCommand(req.Context(), player.ID, id.String())
	if err != nil {
		if errors.Is(err, serr.ErrPermissions) {
			return result.Forbidden("player '%s' delete command %s: %s", player.Username, id, err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.NoContent("player '%s' withdrew command %s", player.Username, id)
}
