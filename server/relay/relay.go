// Package relay has the service layer of the relay server. A Service accepts
// command lines from authenticated players, validates them, and records the
// validated commands as the history that game-state collaborators read from.
//
// Service is the programmatic way into a relay; package api exposes it over
// HTTP.
package relay

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/dekarrin/salvo/internal/command"
	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/serr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service performs the actions of a relay. DB and Dispatcher must be set
// before use.
type Service struct {
	// DB is the persistence layer.
	DB dao.Store

	// Dispatcher validates submitted command lines.
	Dispatcher *command.Dispatcher

	// HashCost is the bcrypt cost used for new passwords. If not set,
	// bcrypt.DefaultCost is used.
	HashCost int
}

func (svc Service) hashCost() int {
	if svc.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return svc.HashCost
}

// CreatePlayer creates a new player account with the given username and
// password.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If a player with that username
// already exists, it will match serr.ErrAlreadyExists. If the username or
// password is unusable, it will match serr.ErrBadArgument. If the error occured
// due to an unexpected problem with the DB, it will match serr.ErrDB.
func (svc Service) CreatePlayer(ctx context.Context, username, password string) (dao.Player, error) {
	if strings.TrimSpace(username) == "" {
		return dao.Player{}, serr.New("username cannot be blank", serr.ErrBadArgument)
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return dao.Player{}, serr.New("username cannot contain whitespace", serr.ErrBadArgument)
	}
	if password == "" {
		return dao.Player{}, serr.New("password cannot be blank", serr.ErrBadArgument)
	}

	_, err := svc.DB.Players().GetByUsername(ctx, username)
	if err == nil {
		return dao.Player{}, serr.New("a player with that username already exists", serr.ErrAlreadyExists)
	} else if !errors.Is(err, dao.ErrNotFound) {
		return dao.Player{}, serr.WrapDB("", err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), svc.hashCost())
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return dao.Player{}, serr.New("password is too long", err, serr.ErrBadArgument)
		}
		return dao.Player{}, serr.New("password could not be encrypted", err)
	}

	p, err := svc.DB.Players().Create(ctx, dao.Player{
		Username: username,
		Password: base64.StdEncoding.EncodeToString(passHash),
	})
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Player{}, serr.New("a player with that username already exists", serr.ErrAlreadyExists)
		}
		return dao.Player{}, serr.WrapDB("could not create player", err)
	}

	return p, nil
}

// Login verifies the provided username and password and returns the player
// they belong to, with its last login time updated.
//
// The returned error, if non-nil, will match serr.ErrBadCredentials if the
// credentials do not match a player, or serr.ErrDB if there was a problem with
// the DB.
func (svc Service) Login(ctx context.Context, username, password string) (dao.Player, error) {
	p, err := svc.DB.Players().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Player{}, serr.ErrBadCredentials
		}
		return dao.Player{}, serr.WrapDB("", err)
	}

	bcryptHash, err := base64.StdEncoding.DecodeString(p.Password)
	if err != nil {
		return dao.Player{}, err
	}

	err = bcrypt.CompareHashAndPassword(bcryptHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dao.Player{}, serr.ErrBadCredentials
		}
		return dao.Player{}, serr.WrapDB("", err)
	}

	p.LastLoginTime = time.Now()
	p, err = svc.DB.Players().Update(ctx, p.ID, p)
	if err != nil {
		return dao.Player{}, serr.WrapDB("could not update player", err)
	}

	return p, nil
}

// Logout marks the player with the given ID as having logged out, which
// invalidates every token issued to them so far.
//
// The returned error, if non-nil, will match serr.ErrNotFound if the player
// does not exist, or serr.ErrDB if there was a problem with the DB.
func (svc Service) Logout(ctx context.Context, who uuid.UUID) (dao.Player, error) {
	existing, err := svc.DB.Players().GetByID(ctx, who)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Player{}, serr.ErrNotFound
		}
		return dao.Player{}, serr.WrapDB("could not retrieve player", err)
	}

	// token keys use whole seconds of the logout time, so it must move
	// forward by at least one second.
	now := time.Now()
	if now.Unix() <= existing.LastLogoutTime.Unix() {
		now = existing.LastLogoutTime.Add(time.Second)
	}
	existing.LastLogoutTime = now

	updated, err := svc.DB.Players().Update(ctx, existing.ID, existing)
	if err != nil {
		return dao.Player{}, serr.WrapDB("could not update player", err)
	}

	return updated, nil
}

// GetPlayer returns the player with the given ID.
//
// The returned error, if non-nil, will match serr.ErrNotFound if no player has
// that ID, serr.ErrBadArgument if id is not a valid ID, or serr.ErrDB if there
// was a problem with the DB.
func (svc Service) GetPlayer(ctx context.Context, id string) (dao.Player, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Player{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	p, err := svc.DB.Players().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Player{}, serr.ErrNotFound
		}
		return dao.Player{}, serr.WrapDB("could not get player", err)
	}

	return p, nil
}

// GetAllPlayers returns every player, ordered by username.
func (svc Service) GetAllPlayers(ctx context.Context) ([]dao.Player, error) {
	players, err := svc.DB.Players().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return players, nil
}

// RenamePlayer changes the username of the player with the given ID.
//
// The returned error, if non-nil, will match serr.ErrAlreadyExists if another
// player has that username, serr.ErrBadArgument if the username is unusable,
// serr.ErrNotFound if the player does not exist, or serr.ErrDB if there was a
// problem with the DB.
func (svc Service) RenamePlayer(ctx context.Context, id uuid.UUID, username string) (dao.Player, error) {
	if strings.TrimSpace(username) == "" {
		return dao.Player{}, serr.New("username cannot be blank", serr.ErrBadArgument)
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return dao.Player{}, serr.New("username cannot contain whitespace", serr.ErrBadArgument)
	}

	existing, err := svc.DB.Players().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Player{}, serr.ErrNotFound
		}
		return dao.Player{}, serr.WrapDB("could not retrieve player", err)
	}

	// the username index is the only arbiter of uniqueness
	existing.Username = username
	updated, err := svc.DB.Players().Update(ctx, id, existing)
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Player{}, serr.New("a player with that username already exists", serr.ErrAlreadyExists)
		} else if errors.Is(err, dao.ErrNotFound) {
			return dao.Player{}, serr.ErrNotFound
		}
		return dao.Player{}, serr.WrapDB("could not update player", err)
	}

	return updated, nil
}

// DeletePlayer removes the player with the given ID along with every command
// they submitted.
//
// The returned error, if non-nil, will match serr.ErrNotFound if the player
// does not exist, or serr.ErrDB if there was a problem with the DB.
func (svc Service) DeletePlayer(ctx context.Context, id uuid.UUID) (dao.Player, error) {
	coms, err := svc.DB.Commands().GetAllByPlayer(ctx, id)
	if err != nil {
		return dao.Player{}, serr.WrapDB("could not get commands of player", err)
	}
	for i := range coms {
		_, err := svc.DB.Commands().Delete(ctx, coms[i].ID)
		if err != nil && !errors.Is(err, dao.ErrNotFound) {
			return dao.Player{}, serr.WrapDB("could not delete command", err)
		}
	}

	p, err := svc.DB.Players().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Player{}, serr.ErrNotFound
		}
		return dao.Player{}, serr.WrapDB("could not delete player", err)
	}

	return p, nil
}
