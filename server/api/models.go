package api

import (
	"time"

	"github.com/dekarrin/salvo/server/dao"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"player_id"`
}

type PlayerModel struct {
	URI            string `json:"uri"`
	ID             string `json:"id,omitempty"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Created        string `json:"created,omitempty"`
	Modified       string `json:"modified,omitempty"`
	LastLogoutTime string `json:"last_logout,omitempty"`
	LastLoginTime  string `json:"last_login,omitempty"`
}

type CommandRequest struct {
	Game string `json:"game"`
	Line string `json:"line"`
}

type CommandModel struct {
	URI      string   `json:"uri"`
	ID       string   `json:"id"`
	Game     string   `json:"game"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Args     []string `json:"args"`
	Line     string   `json:"line"`
	Created  string   `json:"created"`
}

type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		Salvo  string `json:"salvo"`
	} `json:"version"`
}

func playerModel(p dao.Player) PlayerModel {
	m := PlayerModel{
		URI:            PathPrefix + "/players/" + p.ID.String(),
		ID:             p.ID.String(),
		Username:       p.Username,
		Created:        p.Created.Format(time.RFC3339),
		Modified:       p.Modified.Format(time.RFC3339),
		LastLogoutTime: p.LastLogoutTime.Format(time.RFC3339),
	}
	if !p.LastLoginTime.IsZero() {
		m.LastLoginTime = p.LastLoginTime.Format(time.RFC3339)
	}
	return m
}

func commandModel(c dao.Command) CommandModel {
	args := c.Args
	if args == nil {
		args = []string{}
	}
	return CommandModel{
		URI:      PathPrefix + "/commands/" + c.ID.String(),
		ID:       c.ID.String(),
		Game:     c.Game,
		PlayerID: c.PlayerID.String(),
		Name:     c.Name,
		Args:     args,
		Line:     c.Line,
		Created:  c.Created.Format(time.RFC3339),
	}
}
