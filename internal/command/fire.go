package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Fire is the Variant for the "fire" command, which targets one cell of the
// opponent's grid:
//
//	FIRE LETTER NUMBER
//
// LETTER is a single letter from A to J in either case. NUMBER is any whole
// number; whether it is actually on the grid is up to the game.
type Fire struct{}

func (Fire) Name() string        { return "fire" }
func (Fire) Usage() string       { return "FIRE LETTER NUMBER" }
func (Fire) Description() string { return "fire a shot at a cell of the enemy grid, e.g. FIRE C 4" }
func (Fire) Arity() Arity        { return Exact(2) }

func (f Fire) Parse(raw string) ([]string, error) {
	return ParseArgs(f.Name(), raw, f.Usage(), f.Arity())
}

func (f Fire) Validate(args []string) Verdict {
	if v := checkArity(f, args); !v.OK() {
		return v
	}
	if v := checkGridLetter(args[0]); !v.OK() {
		return v
	}
	return checkInteger(args[1])
}

// NewFire returns a fire Command with no arguments. It is suitable as a
// template for lookup but is not itself executable.
func NewFire() Command {
	return Template(Fire{})
}

// NewFireArgs returns a fire Command with the given arguments. The arguments
// are not validated.
func NewFireArgs(args []string) Command {
	return FromArgs(Fire{}, args)
}

// ParseFire parses raw into exactly two arguments and validates them. If
// either step fails, an *cmderr.InvalidArgumentsError is returned.
func ParseFire(raw string) (Command, error) {
	return Build(Fire{}, raw)
}

// Coordinate is a cell on the game grid.
type Coordinate struct {
	// Letter is the column, always upper case.
	Letter rune

	// Number is the row. It is not range-checked.
	Number int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%c%d", c.Letter, c.Number)
}

// Target returns the Coordinate that a validated fire Command aims at.
func Target(c Command) (Coordinate, error) {
	if c.Name() != (Fire{}).Name() {
		return Coordinate{}, fmt.Errorf("not a fire command: %q", c.Name())
	}
	if !c.Validated() {
		return Coordinate{}, fmt.Errorf("fire command has not been validated")
	}
	return coordinateOf(c.Arg(0), c.Arg(1))
}

func coordinateOf(letter, number string) (Coordinate, error) {
	n, err := strconv.ParseInt(number, 10, 32)
	if err != nil {
		return Coordinate{}, fmt.Errorf("number: %w", err)
	}

	upper := strings.ToUpper(letter)
	if len(upper) != 1 {
		return Coordinate{}, fmt.Errorf("letter: not a single letter: %q", letter)
	}

	return Coordinate{Letter: rune(upper[0]), Number: int(n)}, nil
}
