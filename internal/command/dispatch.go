package command

import (
	"io"
	"log"
	"strings"

	"github.com/dekarrin/salvo/internal/cmderr"
)

// Dispatcher turns complete lines of player input into validated Commands. It
// holds no state between calls and may be used from multiple goroutines as
// long as its Registry is not modified.
type Dispatcher struct {
	reg *Registry
	log Logger
}

// NewDispatcher creates a Dispatcher that looks commands up in reg and writes
// diagnostics to lg. If reg is nil, DefaultRegistry() is used. If lg is nil,
// diagnostics are discarded.
func NewDispatcher(reg *Registry, lg Logger) *Dispatcher {
	if reg == nil {
		reg = DefaultRegistry()
	}
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{reg: reg, log: lg}
}

// Registry returns the Registry that d looks commands up in.
func (d *Dispatcher) Registry() *Registry {
	return d.reg
}

// Dispatch parses a command from the given line of input. The first word
// selects the command and the rest of the line is handed to that command for
// parsing and validation.
//
// If line is empty or composed only of whitespace, the zero Command and a nil
// error are returned. If the first word is not a known command, the returned
// error matches cmderr.ErrUnknownCommand. If the arguments are not valid for
// the command, the error is an *cmderr.InvalidArgumentsError; this is the
// case both when the arguments cannot be split into the right number of
// tokens and when a token breaks one of the command's rules.
func (d *Dispatcher) Dispatch(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, nil
	}

	name := strings.Fields(line)[0]
	raw := strings.TrimSpace(line[len(name):])

	v, ok := d.reg.Lookup(name)
	if !ok {
		return Command{}, cmderr.WrapInterpreterf(cmderr.ErrUnknownCommand, "I don't know what you mean by %q", name)
	}

	d.log.Printf("DEBUG validating %s args: %q", v.Name(), strings.Fields(raw))

	cmd, err := Build(v, raw)
	if err != nil {
		d.log.Printf("DEBUG rejected %s args: %v", v.Name(), err)
		return Command{}, err
	}

	return cmd, nil
}
