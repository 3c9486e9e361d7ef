package command

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dekarrin/salvo/internal/util"
	"golang.org/x/text/cases"
)

// Registry maps command names, and any aliases for them, to the Variant that
// handles them. Names are matched without regard to case.
//
// A Registry must not be modified once it is in use by more than one
// goroutine.
type Registry struct {
	variants map[string]Variant
	aliases  map[string]string
	order    []string

	// a Caser keeps state between calls, so lookups from concurrent
	// dispatches take turns with it.
	foldMu sync.Mutex
	caser  cases.Caser
}

// NewRegistry creates a Registry with no commands in it.
func NewRegistry() *Registry {
	return &Registry{
		variants: make(map[string]Variant),
		aliases:  make(map[string]string),
		caser:    cases.Fold(),
	}
}

// DefaultRegistry returns a Registry with every command of the game protocol
// and their usual shorthand forms registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()

	// these are all known to be unique so registration cannot fail
	reg.MustRegister(Fire{}, "shoot", "f")
	reg.MustRegister(Place{}, "put")
	reg.MustRegister(Ready)
	reg.MustRegister(Help{Known: reg.Has}, "?", "h", "/?")
	reg.MustRegister(Quit, "bye", "exit")

	return reg
}

func (r *Registry) fold(s string) string {
	r.foldMu.Lock()
	defer r.foldMu.Unlock()
	return r.caser.String(strings.TrimSpace(s))
}

// Register adds v to the registry under its name and all given aliases. It is
// an error if v or any of the aliases has a name that is already in use.
func (r *Registry) Register(v Variant, aliases ...string) error {
	name := r.fold(v.Name())
	if name == "" {
		return fmt.Errorf("command name cannot be blank")
	}
	if r.Has(name) {
		return fmt.Errorf("%q is already registered", name)
	}

	folded := make([]string, len(aliases))
	for i := range aliases {
		folded[i] = r.fold(aliases[i])
		if folded[i] == "" {
			return fmt.Errorf("%s: alias cannot be blank", name)
		}
		if folded[i] == name || r.Has(folded[i]) {
			return fmt.Errorf("%s: alias %q is already registered", name, aliases[i])
		}
		for j := 0; j < i; j++ {
			if folded[j] == folded[i] {
				return fmt.Errorf("%s: alias %q is given more than once", name, aliases[i])
			}
		}
	}

	r.variants[name] = v
	r.order = append(r.order, name)
	for _, a := range folded {
		r.aliases[a] = name
	}

	return nil
}

// MustRegister is like Register but panics if registration fails.
func (r *Registry) MustRegister(v Variant, aliases ...string) {
	if err := r.Register(v, aliases...); err != nil {
		panic(err.Error())
	}
}

// Canonical returns the canonical name for the given command name or alias.
func (r *Registry) Canonical(name string) (string, bool) {
	name = r.fold(name)
	if _, ok := r.variants[name]; ok {
		return name, true
	}
	canon, ok := r.aliases[name]
	return canon, ok
}

// Has returns whether name is the name of or an alias for a registered
// command.
func (r *Registry) Has(name string) bool {
	_, ok := r.Canonical(name)
	return ok
}

// Lookup returns the Variant registered under the given name or alias.
func (r *Registry) Lookup(name string) (Variant, bool) {
	canon, ok := r.Canonical(name)
	if !ok {
		return nil, false
	}
	return r.variants[canon], true
}

// Variants returns every registered Variant in the order it was registered.
func (r *Registry) Variants() []Variant {
	vs := make([]Variant, len(r.order))
	for i := range r.order {
		vs[i] = r.variants[r.order[i]]
	}
	return vs
}

// Aliases returns the aliases of the command with the given name, sorted.
func (r *Registry) Aliases(name string) []string {
	canon, ok := r.Canonical(name)
	if !ok {
		return nil
	}

	var as []string
	for _, a := range util.OrderedKeys(r.aliases) {
		if r.aliases[a] == canon {
			as = append(as, a)
		}
	}
	return as
}
