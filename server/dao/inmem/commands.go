package inmem

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/google/uuid"
)

// NewCommandsRepository creates a new Commands repo. If playerRepo is given,
// Create rejects commands from players that do not exist in it.
func NewCommandsRepository(playerRepo dao.PlayerRepository) *InMemoryCommandsRepository {
	return &InMemoryCommandsRepository{
		playerRepo: playerRepo,
		coms:       make(map[uuid.UUID]dao.Command),
	}
}

type InMemoryCommandsRepository struct {
	mtx        sync.RWMutex
	playerRepo dao.PlayerRepository
	coms       map[uuid.UUID]dao.Command

	// order holds IDs in creation order.
	order []uuid.UUID
}

func (imcr *InMemoryCommandsRepository) Close() error {
	return nil
}

func (imcr *InMemoryCommandsRepository) Create(ctx context.Context, c dao.Command) (dao.Command, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Command{}, fmt.Errorf("could not generate ID: %w", err)
	}

	if imcr.playerRepo != nil {
		if _, err := imcr.playerRepo.GetByID(ctx, c.PlayerID); err != nil {
			if errors.Is(err, dao.ErrNotFound) {
				return dao.Command{}, dao.ErrConstraintViolation
			}
			return dao.Command{}, err
		}
	}

	c.ID = newUUID
	c.Created = time.Now()
	c.Args = append([]string{}, c.Args...)

	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	imcr.coms[c.ID] = c
	imcr.order = append(imcr.order, c.ID)

	return c, nil
}

func (imcr *InMemoryCommandsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Command, error) {
	imcr.mtx.RLock()
	defer imcr.mtx.RUnlock()

	c, ok := imcr.coms[id]
	if !ok {
		return dao.Command{}, dao.ErrNotFound
	}

	return c, nil
}

func (imcr *InMemoryCommandsRepository) GetAllByPlayer(ctx context.Context, playerID uuid.UUID) ([]dao.Command, error) {
	return imcr.filter(func(c dao.Command) bool {
		return c.PlayerID == playerID
	}), nil
}

func (imcr *InMemoryCommandsRepository) GetAllByGame(ctx context.Context, game string) ([]dao.Command, error) {
	return imcr.filter(func(c dao.Command) bool {
		return c.Game == game
	}), nil
}

func (imcr *InMemoryCommandsRepository) filter(keep func(dao.Command) bool) []dao.Command {
	imcr.mtx.RLock()
	defer imcr.mtx.RUnlock()

	var matched []dao.Command
	for _, id := range imcr.order {
		if c := imcr.coms[id]; keep(c) {
			matched = append(matched, c)
		}
	}
	return matched
}

func (imcr *InMemoryCommandsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Command, error) {
	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	c, ok := imcr.coms[id]
	if !ok {
		return dao.Command{}, dao.ErrNotFound
	}

	delete(imcr.coms, id)
	for i := range imcr.order {
		if imcr.order[i] == id {
			imcr.order = append(imcr.order[:i], imcr.order[i+1:]...)
			break
		}
	}

	return c, nil
}
