// Package input reads lines of player input for the Salvo console from a
// terminal or from any other stream.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader implements command.Reader. It is backed either by GNU
// readline-style line editing on a terminal or by a plain buffered stream.
//
// LineReader should not be used directly; create one with NewDirect or
// NewInteractive.
type LineReader struct {
	next          func() (string, error)
	rl            *readline.Instance
	blanksAllowed bool
}

// NewDirect creates a LineReader that reads directly from r. It does not
// sanitize the input of control and escape sequences.
func NewDirect(r io.Reader) *LineReader {
	br := bufio.NewReader(r)
	return &LineReader{
		next: func() (string, error) {
			return br.ReadString('\n')
		},
	}
}

// NewInteractive creates a LineReader that reads from stdin using a go
// implementation of readline, which keeps input clear of editing escape
// sequences and gives command history. It should only be used when directly
// connected to a TTY. Close must be called on the returned LineReader to tear
// down the terminal state.
func NewInteractive(prompt string) (*LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &LineReader{
		next: rl.Readline,
		rl:   rl,
	}, nil
}

// Close releases readline resources, if any are held.
func (lr *LineReader) Close() error {
	if lr.rl == nil {
		return nil
	}
	return lr.rl.Close()
}

// ReadCommand reads the next line of input with surrounding whitespace
// removed. Unless blank lines are allowed, it blocks until a line with
// non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. A final line without a trailing newline is returned with a nil error
// and the call after it gives io.EOF.
func (lr *LineReader) ReadCommand() (string, error) {
	for {
		line, err := lr.next()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || lr.blanksAllowed {
			return line, nil
		}
	}
}

// AllowBlank sets whether blank lines are returned. By default they are
// skipped.
func (lr *LineReader) AllowBlank(allow bool) {
	lr.blanksAllowed = allow
}

// SetPrompt updates the prompt shown before input. It has no effect on a
// direct LineReader.
func (lr *LineReader) SetPrompt(p string) {
	if lr.rl != nil {
		lr.rl.SetPrompt(p)
	}
}
