package api

import (
	"net/http"

	"github.com/dekarrin/salvo/internal/version"
	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/middle"
	"github.com/dekarrin/salvo/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// a value denoting whether the client making the request is logged-in.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.httpEndpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn := req.Context().Value(middle.AuthLoggedIn).(bool)

	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Salvo = version.Current

	who := "unauthed client"
	if loggedIn {
		player := req.Context().Value(middle.AuthPlayer).(dao.Player)
		who = "player '" + player.Username + "'"
	}
	return result.OK(resp, "%s got API info", who)
}
