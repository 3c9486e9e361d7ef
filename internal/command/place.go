package command

import (
	"fmt"
	"strings"

	"github.com/dekarrin/salvo/internal/util"
)

// Ship is one of the vessels of a fleet.
type Ship string

// The ships that can be placed.
const (
	Carrier    Ship = "carrier"
	Battleship Ship = "battleship"
	Cruiser    Ship = "cruiser"
	Submarine  Ship = "submarine"
	Destroyer  Ship = "destroyer"
)

// Ships is every Ship in a fleet, largest first.
var Ships = []Ship{Carrier, Battleship, Cruiser, Submarine, Destroyer}

// Size returns the number of cells the ship covers.
func (s Ship) Size() int {
	switch s {
	case Carrier:
		return 5
	case Battleship:
		return 4
	case Cruiser, Submarine:
		return 3
	case Destroyer:
		return 2
	default:
		return 0
	}
}

// ParseShip parses the name of a ship, ignoring case.
func ParseShip(s string) (Ship, error) {
	check := Ship(strings.ToLower(s))
	for _, sh := range Ships {
		if sh == check {
			return sh, nil
		}
	}
	names := make([]string, len(Ships))
	for i := range Ships {
		names[i] = string(Ships[i])
	}
	return "", fmt.Errorf("must be one of %s", util.MakeTextList(names, "or", "'"))
}

// Orientation is the direction a placed ship extends in from its bow.
type Orientation rune

const (
	Horizontal Orientation = 'H'
	Vertical   Orientation = 'V'
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%q)", rune(o))
	}
}

// ParseOrientation parses "H" or "V", ignoring case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToUpper(s) {
	case "H":
		return Horizontal, nil
	case "V":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("must be %s", util.MakeTextList([]string{"H", "V"}, "or", "'"))
	}
}

// Place is the Variant for the "place" command, which positions a ship of the
// player's fleet before play starts:
//
//	PLACE SHIP LETTER NUMBER H|V
type Place struct{}

func (Place) Name() string        { return "place" }
func (Place) Usage() string       { return "PLACE SHIP LETTER NUMBER H|V" }
func (Place) Description() string { return "put a ship on your grid, e.g. PLACE CRUISER B 2 V" }
func (Place) Arity() Arity        { return Exact(4) }

func (p Place) Parse(raw string) ([]string, error) {
	return ParseArgs(p.Name(), raw, p.Usage(), p.Arity())
}

func (p Place) Validate(args []string) Verdict {
	if v := checkArity(p, args); !v.OK() {
		return v
	}
	if _, err := ParseShip(args[0]); err != nil {
		return Reject(RuleShip, "%q is not a ship; it %s", args[0], err.Error())
	}
	if v := checkGridLetter(args[1]); !v.OK() {
		return v
	}
	if v := checkInteger(args[2]); !v.OK() {
		return v
	}
	if _, err := ParseOrientation(args[3]); err != nil {
		return Reject(RuleOrientation, "%q is not an orientation; it %s", args[3], err.Error())
	}
	return Accept()
}

// Placement is the typed form of a validated place Command.
type Placement struct {
	Ship        Ship
	Bow         Coordinate
	Orientation Orientation
}

// PlacementOf returns the Placement that a validated place Command describes.
func PlacementOf(c Command) (Placement, error) {
	if c.Name() != (Place{}).Name() {
		return Placement{}, fmt.Errorf("not a place command: %q", c.Name())
	}
	if !c.Validated() {
		return Placement{}, fmt.Errorf("place command has not been validated")
	}

	var pl Placement
	var err error

	pl.Ship, err = ParseShip(c.Arg(0))
	if err != nil {
		return Placement{}, fmt.Errorf("ship: %w", err)
	}
	pl.Bow, err = coordinateOf(c.Arg(1), c.Arg(2))
	if err != nil {
		return Placement{}, err
	}
	pl.Orientation, err = ParseOrientation(c.Arg(3))
	if err != nil {
		return Placement{}, fmt.Errorf("orientation: %w", err)
	}

	return pl, nil
}
