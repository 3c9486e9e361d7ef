// Package salvo contains a CLI-driven engine for reading Salvo commands from a
// player and handing each well-formed one to the game until the player quits.
package salvo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/salvo/internal/cmderr"
	"github.com/dekarrin/salvo/internal/command"
	"github.com/dekarrin/salvo/internal/input"
)

// Executor carries out validated commands against the game. It is the only
// thing that decides whether a command is a legal move.
type Executor interface {
	// Execute performs cmd and returns the text to show the player.
	Execute(cmd command.Command) (string, error)
}

// Engine contains the things needed to run a session from an interactive shell
// attached to an input stream and an output stream.
type Engine struct {
	in          *input.LineReader
	out         *bufio.Writer
	disp        *command.Dispatcher
	exec        Executor
	forceDirect bool
	running     bool
}

const consoleOutputWidth = 80

// New creates a new engine ready to operate on the given input and output
// streams. Commands are dispatched with disp and, once valid, handed to exec.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. If disp is nil, a Dispatcher over the default
// command set is used. If exec is nil, commands are acknowledged with an
// Acknowledger.
func New(inputStream io.Reader, outputStream io.Writer, disp *command.Dispatcher, exec Executor, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if disp == nil {
		disp = command.NewDispatcher(nil, nil)
	}
	if exec == nil {
		exec = Acknowledger{}
	}

	eng := &Engine{
		out:         bufio.NewWriter(outputStream),
		disp:        disp,
		exec:        exec,
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		var err error
		eng.in, err = input.NewInteractive("> ")
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirect(inputStream)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading commands from the streams and handing them to
// the Executor until the QUIT command is received or input ends.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Welcome to Salvo\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "================\n"
	introMsg += "Type HELP for commands\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() {
		eng.running = false
	}()

	for eng.running {
		cmd, err := command.Get(eng.in, eng.disp, eng.out, consoleOutputWidth)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}

		switch cmd.Name() {
		case command.Quit.Name():
			eng.running = false
			continue
		case (command.Help{}).Name():
			if err := eng.write(HelpText(eng.disp.Registry(), cmd.Arg(0), consoleOutputWidth)); err != nil {
				return err
			}
			continue
		}

		output, err := eng.exec.Execute(cmd)
		if err != nil {
			output = cmderr.GameMessage(err)
		}
		output = rosed.Edit(output).Wrap(consoleOutputWidth).String()
		if err := eng.write(output + "\n"); err != nil {
			return err
		}
	}

	return eng.write("Goodbye\n")
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

// HelpText gives the help for the commands in reg. If topic names a command,
// only the help for that command is given.
func HelpText(reg *command.Registry, topic string, width int) string {
	variants := reg.Variants()
	if topic != "" {
		v, ok := reg.Lookup(topic)
		if !ok {
			return fmt.Sprintf("There is no command called %q\n", topic)
		}
		variants = []command.Variant{v}
	}

	data := [][]string{{"Command", "Aliases", "Description"}}
	for _, v := range variants {
		aliases := strings.ToUpper(strings.Join(reg.Aliases(v.Name()), ", "))
		data = append(data, []string{v.Usage(), aliases, v.Description()})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, width, tableOpts).
		String() + "\n"
}
