package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/google/uuid"
)

type CommandsDB struct {
	db *sql.DB
}

func (repo *CommandsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS commands (
		id TEXT NOT NULL PRIMARY KEY,
		player_id TEXT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		game TEXT NOT NULL,
		name TEXT NOT NULL,
		args TEXT NOT NULL,
		line TEXT NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (repo *CommandsDB) Create(ctx context.Context, c dao.Command) (dao.Command, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Command{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO commands (id, player_id, game, name, args, line, created) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Command{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(c.PlayerID),
		c.Game,
		c.Name,
		convertToDB_Args(c.Args),
		c.Line,
		convertToDB_Time(time.Now()),
	)
	if err != nil {
		return dao.Command{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *CommandsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Command, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, player_id, game, name, args, line, created FROM commands WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	return scanCommand(row)
}

func (repo *CommandsDB) GetAllByPlayer(ctx context.Context, playerID uuid.UUID) ([]dao.Command, error) {
	return repo.queryAll(ctx, `SELECT id, player_id, game, name, args, line, created FROM commands WHERE player_id = ? ORDER BY rowid;`,
		convertToDB_UUID(playerID),
	)
}

func (repo *CommandsDB) GetAllByGame(ctx context.Context, game string) ([]dao.Command, error) {
	return repo.queryAll(ctx, `SELECT id, player_id, game, name, args, line, created FROM commands WHERE game = ? ORDER BY rowid;`,
		game,
	)
}

func (repo *CommandsDB) queryAll(ctx context.Context, query string, args ...interface{}) ([]dao.Command, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Command
	for rows.Next() {
		c, err := scanCommand(rows)
		if err != nil {
			return all, err
		}
		all = append(all, c)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *CommandsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Command, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM commands WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *CommandsDB) Close() error {
	return repo.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCommand(row scanner) (dao.Command, error) {
	var c dao.Command
	var id, playerID, args string
	var created int64

	err := row.Scan(&id, &playerID, &c.Game, &c.Name, &args, &c.Line, &created)
	if err != nil {
		return dao.Command{}, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &c.ID); err != nil {
		return c, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := convertFromDB_UUID(playerID, &c.PlayerID); err != nil {
		return c, fmt.Errorf("stored player ID %q is invalid: %w", playerID, err)
	}
	if err := convertFromDB_Args(args, &c.Args); err != nil {
		return c, fmt.Errorf("stored args are invalid: %w", err)
	}
	if err := convertFromDB_Time(created, &c.Created); err != nil {
		return c, fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}

	return c, nil
}
