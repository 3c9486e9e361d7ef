// Package cmderr contains the error types produced while interpreting command
// input from a player. Every error here carries a message meant to be shown to
// the player separately from the technical description returned by Error().
package cmderr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArguments is matched by errors.Is for every
	// InvalidArgumentsError.
	ErrInvalidArguments = errors.New("invalid command arguments")

	// ErrUnknownCommand is matched by errors.Is when the command name of an
	// input line is not registered.
	ErrUnknownCommand = errors.New("unknown command")
)

// Rule names a specific syntax rule that a command's arguments violated.
type Rule string

// RuleNone is the Rule of a successful validation.
const RuleNone Rule = ""

func (r Rule) String() string {
	if r == RuleNone {
		return "none"
	}
	return string(r)
}

// InvalidArgumentsError is returned when the arguments given to a command
// cannot be made into a valid command. It carries the offending raw input so
// that it can be reported back to whoever sent it.
type InvalidArgumentsError struct {
	// Command is the canonical name of the command being built.
	Command string

	// Input is the raw argument text that was rejected.
	Input string

	// Rule is the rule that the input broke.
	Rule Rule

	// Reason is a player-readable description of what is wrong.
	Reason string
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("%s: invalid arguments %q: %s (rule %s)", e.Command, e.Input, e.Reason, e.Rule)
}

// GameMessage gives the message to show the player.
func (e *InvalidArgumentsError) GameMessage() string {
	return e.Reason
}

// Is returns whether target is ErrInvalidArguments.
func (e *InvalidArgumentsError) Is(target error) bool {
	return target == ErrInvalidArguments
}

// InvalidArguments returns a new *InvalidArgumentsError.
func InvalidArguments(command, input string, rule Rule, reasonFormat string, a ...interface{}) *InvalidArgumentsError {
	return &InvalidArgumentsError{
		Command: command,
		Input:   input,
		Rule:    rule,
		Reason:  fmt.Sprintf(reasonFormat, a...),
	}
}

// interpreterError is an error caused by attempting to interpret input that
// could not be understood at all.
type interpreterError struct {
	msg   string
	human string
	wrap  error
}

func (e *interpreterError) Error() string {
	return e.msg
}

func (e *interpreterError) GameMessage() string {
	return e.human
}

func (e *interpreterError) Unwrap() error {
	return e.wrap
}

// Interpreter returns a new error that has both the message to show the player
// and the technical description of the error.
func Interpreter(game, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got InterpreterError(%q)", game)
	}
	return &interpreterError{
		msg:   technical,
		human: game,
	}
}

// Interpreterf returns a new error that has a message to show to the player
// and an automatically generated Error() description.
func Interpreterf(gameFormat string, a ...interface{}) error {
	return Interpreter(fmt.Sprintf(gameFormat, a...), "")
}

// WrapInterpreterf is like Interpreterf but the returned error also wraps e.
func WrapInterpreterf(e error, gameFormat string, a ...interface{}) error {
	gameMessage := fmt.Sprintf(gameFormat, a...)
	return &interpreterError{
		msg:   fmt.Sprintf("got InterpreterError(%q): %v", gameMessage, e),
		human: gameMessage,
		wrap:  e,
	}
}

// GameMessage gets the message to display to the player for the given error.
// If err (or anything it wraps) defines a game message, that message is
// returned. Otherwise, err.Error() is returned.
func GameMessage(err error) string {
	var gm interface{ GameMessage() string }
	if errors.As(err, &gm) {
		return gm.GameMessage()
	}
	return err.Error()
}

// RuleOf returns the Rule carried by err if it is or wraps an
// *InvalidArgumentsError. Otherwise RuleNone is returned.
func RuleOf(err error) Rule {
	var iae *InvalidArgumentsError
	if errors.As(err, &iae) {
		return iae.Rule
	}
	return RuleNone
}
