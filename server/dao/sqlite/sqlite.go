// Package sqlite provides a dao.Store backed by a SQLite database file using
// the pure-Go modernc driver.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/salvo/server/dao"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type store struct {
	dbFilename string

	db *sql.DB

	players *PlayersDB
	coms    *CommandsDB
}

// NewDatastore opens (creating if needed) the data file in storageDir and
// returns a dao.Store that uses it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "data.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	// the pragma is applied to every pooled connection, so deleting a player
	// cascades to their commands.
	var err error
	st.db, err = sql.Open("sqlite", fileName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.players = &PlayersDB{db: st.db}
	if err := st.players.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("players: %w", err)
	}

	st.coms = &CommandsDB{db: st.db}
	if err := st.coms.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("commands: %w", err)
	}

	return st, nil
}

func (s *store) Players() dao.PlayerRepository {
	return s.players
}

func (s *store) Commands() dao.CommandRepository {
	return s.coms
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// the driver gives extended codes; the low byte is the primary code
		if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return fmt.Errorf("%w: %w", dao.ErrConstraintViolation, err)
		}
		return fmt.Errorf("%s: %w", sqlite.ErrorCodeString[sqliteErr.Code()], err)
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
