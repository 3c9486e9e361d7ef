package command

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Registry_Lookup(t *testing.T) {
	testCases := []struct {
		name      string
		lookup    string
		expect    string
		expectHit bool
	}{
		{name: "canonical", lookup: "fire", expect: "fire", expectHit: true},
		{name: "upper case", lookup: "FIRE", expect: "fire", expectHit: true},
		{name: "alias", lookup: "shoot", expect: "fire", expectHit: true},
		{name: "short alias mixed case", lookup: "F", expect: "fire", expectHit: true},
		{name: "punctuation alias", lookup: "?", expect: "help", expectHit: true},
		{name: "quit alias", lookup: "Bye", expect: "quit", expectHit: true},
		{name: "unknown", lookup: "dance"},
		{name: "empty", lookup: ""},
	}

	reg := DefaultRegistry()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			v, ok := reg.Lookup(tc.lookup)

			assert.Equal(tc.expectHit, ok)
			if tc.expectHit {
				assert.Equal(tc.expect, v.Name())
			} else {
				assert.Nil(v)
			}
		})
	}
}

func Test_Registry_Register(t *testing.T) {
	testCases := []struct {
		name      string
		v         Variant
		aliases   []string
		expectErr bool
	}{
		{name: "new command", v: Bare{Verb: "surrender"}, aliases: []string{"give up"}},
		{name: "duplicate name", v: Fire{}, expectErr: true},
		{name: "duplicate name other case", v: Bare{Verb: "FIRE"}, expectErr: true},
		{name: "name taken by alias", v: Bare{Verb: "shoot"}, expectErr: true},
		{name: "alias taken", v: Bare{Verb: "pass"}, aliases: []string{"f"}, expectErr: true},
		{name: "alias repeated", v: Bare{Verb: "pass"}, aliases: []string{"p", "P"}, expectErr: true},
		{name: "blank name", v: Bare{Verb: " "}, expectErr: true},
		{name: "blank alias", v: Bare{Verb: "pass"}, aliases: []string{""}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			reg := NewRegistry()
			reg.MustRegister(Fire{}, "shoot", "f")

			err := reg.Register(tc.v, tc.aliases...)

			if tc.expectErr {
				assert.Error(err)
				assert.Len(reg.Variants(), 1)
				return
			}
			assert.NoError(err)
			assert.True(reg.Has(tc.v.Name()))
			for _, a := range tc.aliases {
				assert.True(reg.Has(a))
			}
		})
	}
}

func Test_Registry_Variants(t *testing.T) {
	assert := assert.New(t)

	reg := DefaultRegistry()

	var names []string
	for _, v := range reg.Variants() {
		names = append(names, v.Name())
	}

	assert.Equal([]string{"fire", "place", "ready", "help", "quit"}, names)
	assert.Equal([]string{"f", "shoot"}, reg.Aliases("FIRE"))
	assert.Nil(reg.Aliases("dance"))
}

func Test_Registry_Lookup_concurrent(t *testing.T) {
	assert := assert.New(t)
	reg := DefaultRegistry()

	names := []string{"FIRE", "shoot", "Place", "h", "EXIT", "ready"}
	got := make([]string, 64)

	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			canon, _ := reg.Canonical(names[i%len(names)])
			got[i] = canon
		}(i)
	}
	wg.Wait()

	expect := []string{"fire", "fire", "place", "help", "quit", "ready"}
	for i := range got {
		assert.Equal(expect[i%len(expect)], got[i], "lookup %d of %q", i, names[i%len(names)])
	}
}
