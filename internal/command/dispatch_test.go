package command

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/dekarrin/salvo/internal/cmderr"
	"github.com/stretchr/testify/assert"
)

func Test_Dispatcher_Dispatch(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectName    string
		expectArgs    []string
		expectRule    cmderr.Rule
		expectUnknown bool
	}{
		{name: "fire", input: "fire C 4", expectName: "fire", expectArgs: []string{"C", "4"}},
		{name: "fire lower letter", input: "fire c 4", expectName: "fire", expectArgs: []string{"c", "4"}},
		{name: "fire upper verb", input: "FIRE c 4", expectName: "fire", expectArgs: []string{"c", "4"}},
		{name: "fire via alias", input: "shoot  J   10", expectName: "fire", expectArgs: []string{"J", "10"}},
		{name: "fire bad letter", input: "fire K 4", expectRule: RuleGridLetter},
		{name: "fire bad number", input: "fire C four", expectRule: RuleInteger},
		{name: "fire missing number", input: "fire C", expectRule: RuleArity},
		{name: "fire long letter", input: "fire AB 4", expectRule: RuleGridLetter},
		{name: "fire alone", input: "fire", expectRule: RuleArity},
		{name: "place", input: "place cruiser b 2 h", expectName: "place", expectArgs: []string{"cruiser", "b", "2", "h"}},
		{name: "help topic", input: "help fire", expectName: "help", expectArgs: []string{"fire"}},
		{name: "help by alias", input: "? shoot", expectName: "help", expectArgs: []string{"shoot"}},
		{name: "help unknown topic", input: "help dance", expectRule: RuleHelpTopic},
		{name: "quit", input: "quit", expectName: "quit", expectArgs: []string{}},
		{name: "quit with args", input: "quit now", expectRule: RuleArity},
		{name: "unknown", input: "dance wildly", expectUnknown: true},
		{name: "blank", input: "   "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			d := NewDispatcher(nil, nil)

			actual, err := d.Dispatch(tc.input)

			if tc.expectUnknown {
				assert.ErrorIs(err, cmderr.ErrUnknownCommand)
				assert.Contains(cmderr.GameMessage(err), "I don't know what you mean by")
				return
			}
			if tc.expectRule != cmderr.RuleNone {
				var iae *cmderr.InvalidArgumentsError
				if assert.True(errors.As(err, &iae)) {
					assert.Equal(tc.expectRule, iae.Rule)
				}
				assert.True(actual.IsZero())
				return
			}

			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expectName, actual.Name())
			if tc.expectName == "" {
				assert.True(actual.IsZero())
				return
			}
			assert.Equal(tc.expectArgs, actual.Args())
			assert.True(actual.Validated())
		})
	}
}

func Test_Dispatcher_logsValidation(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	d := NewDispatcher(nil, log.New(&buf, "", 0))

	_, err := d.Dispatch("fire K 4")

	assert.Error(err)
	assert.Contains(buf.String(), `DEBUG validating fire args: ["K" "4"]`)
	assert.Contains(buf.String(), "DEBUG rejected fire args")
}
