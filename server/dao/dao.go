// Package dao provides data access objects for use in the Salvo relay server.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Players() PlayerRepository
	Commands() CommandRepository
	Close() error
}

// PlayerRepository holds the accounts of players that can submit commands.
type PlayerRepository interface {
	// Create creates a new Player. All attributes except for auto-generated
	// fields are taken from the provided Player.
	Create(ctx context.Context, p Player) (Player, error)
	GetByID(ctx context.Context, id uuid.UUID) (Player, error)
	GetByUsername(ctx context.Context, username string) (Player, error)
	GetAll(ctx context.Context) ([]Player, error)
	Update(ctx context.Context, id uuid.UUID, p Player) (Player, error)
	Delete(ctx context.Context, id uuid.UUID) (Player, error)
	Close() error
}

// CommandRepository holds the history of validated commands. Commands are
// returned in the order they were created.
type CommandRepository interface {
	// Create creates a new Command. All attributes except for auto-generated
	// fields are taken from the provided Command.
	Create(ctx context.Context, c Command) (Command, error)
	GetByID(ctx context.Context, id uuid.UUID) (Command, error)
	GetAllByPlayer(ctx context.Context, playerID uuid.UUID) ([]Command, error)
	GetAllByGame(ctx context.Context, game string) ([]Command, error)
	Delete(ctx context.Context, id uuid.UUID) (Command, error)
	Close() error
}

// Player is an account that can log in and submit commands.
type Player struct {
	ID             uuid.UUID
	Username       string
	Password       string
	Created        time.Time
	Modified       time.Time
	LastLogoutTime time.Time
	LastLoginTime  time.Time
}

// Command is a command that was validated and accepted from a player.
type Command struct {
	ID       uuid.UUID
	PlayerID uuid.UUID

	// Game is the label of the game the command was sent to.
	Game string

	// Name is the canonical name of the command.
	Name string

	// Args are the validated arguments of the command.
	Args []string

	// Line is the input exactly as the player sent it.
	Line string

	Created time.Time
}
