package api

import (
	"net/http"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/middle"
	"github.com/dekarrin/salvo/server/result"
	"github.com/dekarrin/salvo/server/token"
)

// HTTPCreateToken returns a HandlerFunc that creates a new token for the
// player the client is logged in as.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in player of the client making the request.
func (api API) HTTPCreateToken() http.HandlerFunc {
	return api.httpEndpoint(api.epCreateToken)
}

func (api API) epCreateToken(req *http.Request) result.Result {
	player := req.Context().Value(middle.AuthPlayer).(dao.Player)

	tok, err := token.Generate(api.Secret, player)
	if err != nil {
		return result.InternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{
		Token:    tok,
		PlayerID: player.ID.String(),
	}
	return result.Created(resp, "player '%s' successfully created new token", player.Username)
}
