// Package inmem provides a dao.Store that keeps everything in memory. All data
// is lost when the process exits.
package inmem

import (
	"fmt"

	"github.com/dekarrin/salvo/server/dao"
)

type store struct {
	players *InMemoryPlayersRepository
	coms    *InMemoryCommandsRepository
}

// NewDatastore creates an empty in-memory dao.Store.
func NewDatastore() dao.Store {
	players := NewPlayersRepository()
	return &store{
		players: players,
		coms:    NewCommandsRepository(players),
	}
}

func (s *store) Players() dao.PlayerRepository {
	return s.players
}

func (s *store) Commands() dao.CommandRepository {
	return s.coms
}

func (s *store) Close() error {
	var err error

	if nextErr := s.players.Close(); nextErr != nil {
		err = fmt.Errorf("players: %w", nextErr)
	}
	if nextErr := s.coms.Close(); nextErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, commands: %w", err, nextErr)
		} else {
			err = fmt.Errorf("commands: %w", nextErr)
		}
	}

	return err
}
