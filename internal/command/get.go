package command

import (
	"bufio"
	"fmt"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/salvo/internal/cmderr"
)

// Reader is a type that can be used for getting command input.
type Reader interface {
	// ReadCommand reads a single line of input. It will block until one is
	// ready. When error is io.EOF, the returned string will always be empty.
	ReadCommand() (string, error)

	// Close releases any resources held by the Reader.
	Close() error
}

// Get obtains a single command by reading from the provided Reader. It reads a
// line of input and dispatches it, returning the command if successful. If it
// is not, the player-facing reason is written to ostream, wrapped to width,
// and input is read until a valid command is encountered.
//
// Note that this function does not check if the command is legal in the
// current state of the game, only that it is well-formed.
func Get(cmdStream Reader, d *Dispatcher, ostream *bufio.Writer, width int) (Command, error) {
	var cmd Command
	gotValidCommand := false

	for !gotValidCommand {
		input, err := cmdStream.ReadCommand()
		if err != nil {
			return cmd, fmt.Errorf("could not get input: %w", err)
		}

		cmd, err = d.Dispatch(input)
		if err != nil {
			consoleMessage := cmderr.GameMessage(err)
			errMsg := rosed.Edit(consoleMessage).Wrap(width).String() + "\nTry HELP for valid commands\n"
			if _, err := ostream.WriteString(errMsg); err != nil {
				return cmd, fmt.Errorf("could not write output: %w", err)
			}
			if err := ostream.Flush(); err != nil {
				return cmd, fmt.Errorf("could not flush output: %w", err)
			}
		} else if !cmd.IsZero() {
			gotValidCommand = true
		}
	}

	return cmd, nil
}
