// Package command defines game command data types and handles parsing and
// validation of commands received from players.
//
// Every kind of command is a Variant. A Variant knows its name, how many
// arguments it takes, and which syntax rules those arguments must follow. A
// Command is the result of running raw input through a Variant; it is either
// raw (made from pre-split arguments with no checks) or validated.
package command

import (
	"fmt"
	"strings"

	"github.com/dekarrin/salvo/internal/cmderr"
)

// Logger is the diagnostic output used while validating commands. It is
// satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Command is a game instruction that has been received from a player.
//
// The zero value is the empty command, which is what blank input results in.
type Command struct {
	name      string
	args      []string
	validated bool
}

// Name returns the canonical name of the command, such as "fire". It is only
// empty for the zero-valued Command.
func (c Command) Name() string {
	return c.name
}

// Args returns a copy of the arguments of the command in the order they were
// given.
func (c Command) Args() []string {
	return append([]string{}, c.args...)
}

// Arg returns the i-th argument. If there is no such argument, the empty
// string is returned.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.args) {
		return ""
	}
	return c.args[i]
}

// Len returns the number of arguments in the command.
func (c Command) Len() int {
	return len(c.args)
}

// Validated returns whether the arguments of c were checked against the syntax
// rules of its Variant.
func (c Command) Validated() bool {
	return c.validated
}

// IsZero returns whether c is the empty command.
func (c Command) IsZero() bool {
	return c.name == "" && len(c.args) == 0
}

// String returns c in the form it would be typed, e.g. "fire C 4".
func (c Command) String() string {
	if len(c.args) < 1 {
		return c.name
	}
	return c.name + " " + strings.Join(c.args, " ")
}

// Arity is the number of arguments that a Variant accepts.
type Arity struct {
	Min int
	Max int
}

// Exact returns an Arity that accepts exactly n arguments.
func Exact(n int) Arity {
	return Arity{Min: n, Max: n}
}

// Between returns an Arity that accepts from min to max arguments, inclusive.
func Between(min, max int) Arity {
	return Arity{Min: min, Max: max}
}

// Accepts returns whether n arguments are within the Arity.
func (a Arity) Accepts(n int) bool {
	return n >= a.Min && n <= a.Max
}

// Verdict is the result of validating the arguments of a command. A Verdict
// with a Rule of cmderr.RuleNone is a success; any other names the rule that
// was broken.
type Verdict struct {
	Rule   cmderr.Rule
	Reason string
}

// OK returns whether the Verdict is a success.
func (v Verdict) OK() bool {
	return v.Rule == cmderr.RuleNone
}

// Accept returns a successful Verdict.
func Accept() Verdict {
	return Verdict{}
}

// Reject returns a Verdict that failed on the given rule. The reason is built
// from the format and its arguments and should be fit to show to a player.
func Reject(rule cmderr.Rule, reasonFormat string, a ...interface{}) Verdict {
	return Verdict{
		Rule:   rule,
		Reason: fmt.Sprintf(reasonFormat, a...),
	}
}

// Variant is a kind of command, such as "fire". Each Variant supplies the
// syntax rules for its own arguments.
type Variant interface {
	// Name is the canonical name of the command. It is always lower case.
	Name() string

	// Usage is the syntax of the command as shown to players, e.g.
	// "FIRE LETTER NUMBER".
	Usage() string

	// Description is a short explanation of what the command does.
	Description() string

	// Arity is the number of arguments that the command takes.
	Arity() Arity

	// Parse splits raw argument text into tokens. If the text does not split
	// into a number of tokens that the command accepts, an
	// *cmderr.InvalidArgumentsError is returned.
	Parse(raw string) ([]string, error)

	// Validate checks the given arguments against the syntax of the command.
	// It does not modify args and gives the same result every time it is
	// called with the same args.
	Validate(args []string) Verdict
}

// ValidateArguments returns whether args satisfy the syntax rules of v.
func ValidateArguments(v Variant, args []string) bool {
	return v.Validate(args).OK()
}

// Template returns the Command for v with no arguments. It is not validated.
func Template(v Variant) Command {
	return Command{name: v.Name()}
}

// FromArgs returns a Command for v with the given, already-split arguments.
// The arguments are not validated; that is left to the caller.
func FromArgs(v Variant, args []string) Command {
	return Command{
		name: v.Name(),
		args: append([]string{}, args...),
	}
}

// Build parses the raw argument text for v and then validates the resulting
// tokens. If either step fails, an *cmderr.InvalidArgumentsError naming the
// rule that failed is returned.
func Build(v Variant, raw string) (Command, error) {
	args, err := v.Parse(raw)
	if err != nil {
		return Command{}, err
	}

	verdict := v.Validate(args)
	if !verdict.OK() {
		return Command{}, cmderr.InvalidArguments(v.Name(), raw, verdict.Rule, "%s", verdict.Reason)
	}

	return Command{
		name:      v.Name(),
		args:      args,
		validated: true,
	}, nil
}

// Validate checks the arguments of an unvalidated Command against v and
// returns a validated copy of it. The name of c must be the name of v.
func Validate(v Variant, c Command) (Command, error) {
	raw := strings.Join(c.args, " ")
	if c.name != v.Name() {
		return Command{}, cmderr.InvalidArguments(v.Name(), raw, RuleName, "%q is not a %s command", c.name, v.Name())
	}

	verdict := v.Validate(c.args)
	if !verdict.OK() {
		return Command{}, cmderr.InvalidArguments(v.Name(), raw, verdict.Rule, "%s", verdict.Reason)
	}

	c.args = c.Args()
	c.validated = true
	return c, nil
}
