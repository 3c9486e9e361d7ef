package salvo

import (
	"fmt"

	"github.com/dekarrin/salvo/internal/command"
)

// Acknowledger is an Executor that performs no game logic of its own. It
// reports each command back to the player in its typed form, which is what a
// console session without a connected game shows.
type Acknowledger struct{}

// Execute returns a description of cmd.
func (Acknowledger) Execute(cmd command.Command) (string, error) {
	switch cmd.Name() {
	case (command.Fire{}).Name():
		target, err := command.Target(cmd)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Firing at %s...", target), nil
	case (command.Place{}).Name():
		pl, err := command.PlacementOf(cmd)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Placing %s (%d cells) at %s, %s", pl.Ship, pl.Ship.Size(), pl.Bow, pl.Orientation), nil
	case command.Ready.Name():
		return "Your fleet is ready", nil
	default:
		return fmt.Sprintf("OK: %s", cmd), nil
	}
}
