package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/google/uuid"
)

type PlayersDB struct {
	db *sql.DB
}

func (repo *PlayersDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS players (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL,
		last_logout_time INTEGER NOT NULL,
		last_login_time INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (repo *PlayersDB) Create(ctx context.Context, p dao.Player) (dao.Player, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Player{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO players (id, username, password, created, modified, last_logout_time, last_login_time) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Player{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()
	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		p.Username,
		p.Password,
		convertToDB_Time(now),
		convertToDB_Time(now),
		convertToDB_Time(now),
		convertToDB_Time(time.Time{}),
	)
	if err != nil {
		return dao.Player{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *PlayersDB) GetAll(ctx context.Context) ([]dao.Player, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, username, password, created, modified, last_logout_time, last_login_time FROM players ORDER BY username;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Player

	for rows.Next() {
		var id string
		var p dao.Player
		var created, modified, logout, login int64

		err = rows.Scan(&id, &p.Username, &p.Password, &created, &modified, &logout, &login)
		if err != nil {
			return nil, wrapDBError(err)
		}

		if err := convertFromDB_UUID(id, &p.ID); err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
		}
		if err := scanPlayerTimes(&p, created, modified, logout, login); err != nil {
			return all, err
		}

		all = append(all, p)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *PlayersDB) Update(ctx context.Context, id uuid.UUID, p dao.Player) (dao.Player, error) {
	// deliberately not updating created
	res, err := repo.db.ExecContext(ctx, `UPDATE players SET id=?, username=?, password=?, last_logout_time=?, last_login_time=?, modified=? WHERE id=?;`,
		convertToDB_UUID(p.ID),
		p.Username,
		p.Password,
		convertToDB_Time(p.LastLogoutTime),
		convertToDB_Time(p.LastLoginTime),
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.Player{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.Player{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.Player{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, p.ID)
}

func (repo *PlayersDB) GetByUsername(ctx context.Context, username string) (dao.Player, error) {
	p := dao.Player{
		Username: username,
	}
	var id string
	var created, modified, logout, login int64

	row := repo.db.QueryRowContext(ctx, `SELECT id, password, created, modified, last_logout_time, last_login_time FROM players WHERE username = ?;`,
		username,
	)
	err := row.Scan(&id, &p.Password, &created, &modified, &logout, &login)
	if err != nil {
		return p, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &p.ID); err != nil {
		return p, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := scanPlayerTimes(&p, created, modified, logout, login); err != nil {
		return p, err
	}

	return p, nil
}

func (repo *PlayersDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Player, error) {
	p := dao.Player{
		ID: id,
	}
	var created, modified, logout, login int64

	row := repo.db.QueryRowContext(ctx, `SELECT username, password, created, modified, last_logout_time, last_login_time FROM players WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	err := row.Scan(&p.Username, &p.Password, &created, &modified, &logout, &login)
	if err != nil {
		return p, wrapDBError(err)
	}

	if err := scanPlayerTimes(&p, created, modified, logout, login); err != nil {
		return p, err
	}

	return p, nil
}

func (repo *PlayersDB) Delete(ctx context.Context, id uuid.UUID) (dao.Player, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, convertToDB_UUID(id))
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

func (repo *PlayersDB) Close() error {
	return repo.db.Close()
}

func scanPlayerTimes(p *dao.Player, created, modified, logout, login int64) error {
	if err := convertFromDB_Time(created, &p.Created); err != nil {
		return fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}
	if err := convertFromDB_Time(modified, &p.Modified); err != nil {
		return fmt.Errorf("stored modified time %d is invalid: %w", modified, err)
	}
	if err := convertFromDB_Time(logout, &p.LastLogoutTime); err != nil {
		return fmt.Errorf("stored last_logout_time %d is invalid: %w", logout, err)
	}
	if err := convertFromDB_Time(login, &p.LastLoginTime); err != nil {
		return fmt.Errorf("stored last_login_time %d is invalid: %w", login, err)
	}
	return nil
}
