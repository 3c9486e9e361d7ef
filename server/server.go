// Package server is the relay server. Players register and log in over HTTP,
// then submit command lines; every line is run through the command Dispatcher
// and the validated commands are recorded for the game to consume.
//
// server:
//   - POST   /players        - register a new player account.
//   - GET    /players        - list all players (auth required).
//   - GET    /players/{id}   - get info on self (auth required).
//   - PATCH  /players/{id}   - change the username of self (auth required).
//   - DELETE /players/{id}   - delete self and all commands of self (auth required).
//   - POST   /login          - accepts username and password and returns a jwt.
//   - DELETE /login/{id}     - ends the login session of self.
//   - POST   /tokens         - refreshes the token without requiring credentials (auth required).
//   - POST   /commands       - validates and records a command line (auth required).
//   - GET    /commands       - return command history, optionally for one game (auth required).
//   - GET    /commands/{id}  - gets a particular command from history (auth required).
//   - DELETE /commands/{id}  - withdraws a command from history (auth required).
//   - GET    /info           - get version info on the server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/salvo/internal/command"
	"github.com/dekarrin/salvo/server/api"
	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/relay"
	"github.com/go-chi/chi/v5"
)

// SalvoServer is an HTTP REST server that relays validated game commands. The
// zero-value of a SalvoServer should not be used directly; call New() to get
// one ready for use.
type SalvoServer struct {
	router chi.Router
	db     dao.Store
	cfg    Config
	log    *log.Logger
	srv    *http.Server
}

// New creates a new SalvoServer from cfg, filling in defaults for anything
// that is not set. Log output goes to lg, or the standard logger if lg is nil.
func New(cfg Config, lg *log.Logger) (*SalvoServer, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if lg == nil {
		lg = log.Default()
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect DB: %w", err)
	}

	var debugLog command.Logger
	if cfg.Debug {
		debugLog = lg
	}

	a := api.API{
		Backend: relay.Service{
			DB:         db,
			Dispatcher: command.NewDispatcher(command.DefaultRegistry(), debugLog),
		},
		UnauthDelay: cfg.UnauthDelay(),
		Secret:      cfg.TokenSecret,
		Log:         lg,
	}

	// already checked by Validate
	host, port, _ := ParseListenAddress(cfg.ListenAddress)

	ss := &SalvoServer{
		router: newRouter(a),
		db:     db,
		cfg:    cfg,
		log:    lg,
	}
	ss.srv = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: ss.router,
	}
	return ss, nil
}

// Handler returns the root handler of the server.
func (ss *SalvoServer) Handler() http.Handler {
	return ss.router
}

// ServeForever begins listening on the configured address for HTTP REST client
// requests. It returns when the server is shut down or fails to listen.
func (ss *SalvoServer) ServeForever() error {
	ss.log.Printf("INFO  Listening on %s", ss.srv.Addr)
	err := ss.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops a server started with ServeForever.
func (ss *SalvoServer) Shutdown(ctx context.Context) error {
	return ss.srv.Shutdown(ctx)
}

// Close releases the persistence layer. It should be called after the server
// has stopped serving.
func (ss *SalvoServer) Close() error {
	return ss.db.Close()
}
