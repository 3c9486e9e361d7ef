package relay

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/serr"
	"github.com/google/uuid"
)

// SubmitCommand validates line as a command from the given player and, if it
// is valid, records it in the history of game.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If line is not a valid
// command, it will match serr.ErrBadCommand and also wrap the error from the
// command Dispatcher, so the violated rule can be read with cmderr.RuleOf. If
// game or line is blank, it will match serr.ErrBadArgument. If the player does
// not exist, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB.
func (svc Service) SubmitCommand(ctx context.Context, playerID uuid.UUID, game, line string) (dao.Command, error) {
	game = strings.TrimSpace(game)
	if game == "" {
		return dao.Command{}, serr.New("game cannot be blank", serr.ErrBadArgument)
	}

	cmd, err := svc.Dispatcher.Dispatch(line)
	if err != nil {
		return dao.Command{}, serr.New("", err, serr.ErrBadCommand)
	}
	if cmd.IsZero() {
		return dao.Command{}, serr.New("line cannot be blank", serr.ErrBadArgument)
	}

	rec, err := svc.DB.Commands().Create(ctx, dao.Command{
		PlayerID: playerID,
		Game:     game,
		Name:     cmd.Name(),
		Args:     cmd.Args(),
		Line:     line,
	})
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Command{}, serr.New("player does not exist", serr.ErrNotFound)
		}
		return dao.Command{}, serr.WrapDB("could not record command", err)
	}

	return rec, nil
}

// GetCommands returns the commands that the given player submitted, oldest
// first. If game is not empty, only the commands sent to that game are
// returned.
func (svc Service) GetCommands(ctx context.Context, playerID uuid.UUID, game string) ([]dao.Command, error) {
	game = strings.TrimSpace(game)

	if game == "" {
		coms, err := svc.DB.Commands().GetAllByPlayer(ctx, playerID)
		if err != nil {
			return nil, serr.WrapDB("", err)
		}
		return coms, nil
	}

	all, err := svc.DB.Commands().GetAllByGame(ctx, game)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}

	var coms []dao.Command
	for i := range all {
		if all[i].PlayerID == playerID {
			coms = append(coms, all[i])
		}
	}
	return coms, nil
}

// GetCommand returns the command with the given ID. Players may only retrieve
// their own commands.
//
// The returned error, if non-nil, will match serr.ErrNotFound if no command
// has that ID, serr.ErrPermissions if it belongs to a different player,
// serr.ErrBadArgument if id is not a valid ID, or serr.ErrDB if there was a
// problem with the DB.
func (svc Service) GetCommand(ctx context.Context, playerID uuid.UUID, id string) (dao.Command, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Command{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	c, err := svc.DB.Commands().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Command{}, serr.ErrNotFound
		}
		return dao.Command{}, serr.WrapDB("could not get command", err)
	}

	if c.PlayerID != playerID {
		return dao.Command{}, serr.New("command belongs to another player", serr.ErrPermissions)
	}

	return c, nil
}

// DeleteCommand withdraws the command with the given ID from history. Players
// may only withdraw their own commands.
//
// The returned error, if non-nil, matches the same errors as GetCommand.
func (svc Service) DeleteCommand(ctx context.Context, playerID uuid.UUID, id string) (dao.Command, error) {
	c, err := svc.GetCommand(ctx, playerID, id)
	if err != nil {
		return dao.Command{}, err
	}

	c, err = svc.DB.Commands().Delete(ctx, c.ID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Command{}, serr.ErrNotFound
		}
		return dao.Command{}, serr.WrapDB("could not delete command", err)
	}

	return c, nil
}
