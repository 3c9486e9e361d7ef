package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/google/uuid"
)

// NewPlayersRepository creates a new, empty players repo.
func NewPlayersRepository() *InMemoryPlayersRepository {
	return &InMemoryPlayersRepository{
		players:         make(map[uuid.UUID]dao.Player),
		byUsernameIndex: make(map[string]uuid.UUID),
	}
}

type InMemoryPlayersRepository struct {
	mtx             sync.RWMutex
	players         map[uuid.UUID]dao.Player
	byUsernameIndex map[string]uuid.UUID
}

func (impr *InMemoryPlayersRepository) Close() error {
	return nil
}

func (impr *InMemoryPlayersRepository) Create(ctx context.Context, p dao.Player) (dao.Player, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Player{}, fmt.Errorf("could not generate ID: %w", err)
	}

	impr.mtx.Lock()
	defer impr.mtx.Unlock()

	if _, ok := impr.byUsernameIndex[p.Username]; ok {
		return dao.Player{}, dao.ErrConstraintViolation
	}

	now := time.Now()
	p.ID = newUUID
	p.Created = now
	p.Modified = now
	p.LastLogoutTime = now

	impr.players[p.ID] = p
	impr.byUsernameIndex[p.Username] = p.ID

	return p, nil
}

func (impr *InMemoryPlayersRepository) GetAll(ctx context.Context) ([]dao.Player, error) {
	impr.mtx.RLock()
	defer impr.mtx.RUnlock()

	all := make([]dao.Player, 0, len(impr.players))
	for k := range impr.players {
		all = append(all, impr.players[k])
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Username < all[j].Username
	})

	return all, nil
}

func (impr *InMemoryPlayersRepository) Update(ctx context.Context, id uuid.UUID, p dao.Player) (dao.Player, error) {
	impr.mtx.Lock()
	defer impr.mtx.Unlock()

	existing, ok := impr.players[id]
	if !ok {
		return dao.Player{}, dao.ErrNotFound
	}

	// check for conflicts on this table only
	if p.Username != existing.Username {
		if _, ok := impr.byUsernameIndex[p.Username]; ok {
			return dao.Player{}, dao.ErrConstraintViolation
		}
	}
	if p.ID != id {
		if _, ok := impr.players[p.ID]; ok {
			return dao.Player{}, dao.ErrConstraintViolation
		}
	}

	p.Created = existing.Created
	p.Modified = time.Now()

	delete(impr.byUsernameIndex, existing.Username)
	delete(impr.players, id)

	impr.players[p.ID] = p
	impr.byUsernameIndex[p.Username] = p.ID

	return p, nil
}

func (impr *InMemoryPlayersRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Player, error) {
	impr.mtx.RLock()
	defer impr.mtx.RUnlock()

	p, ok := impr.players[id]
	if !ok {
		return dao.Player{}, dao.ErrNotFound
	}

	return p, nil
}

func (impr *InMemoryPlayersRepository) GetByUsername(ctx context.Context, username string) (dao.Player, error) {
	impr.mtx.RLock()
	defer impr.mtx.RUnlock()

	id, ok := impr.byUsernameIndex[username]
	if !ok {
		return dao.Player{}, dao.ErrNotFound
	}

	return impr.players[id], nil
}

func (impr *InMemoryPlayersRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Player, error) {
	impr.mtx.Lock()
	defer impr.mtx.Unlock()

	p, ok := impr.players[id]
	if !ok {
		return dao.Player{}, dao.ErrNotFound
	}

	delete(impr.byUsernameIndex, p.Username)
	delete(impr.players, p.ID)

	return p, nil
}
