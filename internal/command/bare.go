package command

import "strings"

// Bare is a Variant for a command that takes no arguments at all.
type Bare struct {
	Verb string
	Desc string
}

var (
	// Quit ends the player's session.
	Quit = Bare{Verb: "quit", Desc: "leave the game"}

	// Ready tells the opponent that the fleet is placed and play can begin.
	Ready = Bare{Verb: "ready", Desc: "declare that all of your ships are placed"}
)

func (b Bare) Name() string        { return b.Verb }
func (b Bare) Usage() string       { return strings.ToUpper(b.Verb) }
func (b Bare) Description() string { return b.Desc }
func (b Bare) Arity() Arity        { return Exact(0) }

func (b Bare) Parse(raw string) ([]string, error) {
	return ParseArgs(b.Verb, raw, b.Usage(), b.Arity())
}

func (b Bare) Validate(args []string) Verdict {
	return checkArity(b, args)
}
