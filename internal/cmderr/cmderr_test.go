package cmderr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GameMessage(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "interpreter error",
			err:    Interpreterf("I don't know what you mean by %q", "JUMP"),
			expect: `I don't know what you mean by "JUMP"`,
		},
		{
			name:   "invalid arguments",
			err:    InvalidArguments("fire", "K 4", "grid-letter", "%q is not a letter from A to J", "K"),
			expect: `"K" is not a letter from A to J`,
		},
		{
			name:   "wrapped invalid arguments",
			err:    fmt.Errorf("dispatch: %w", InvalidArguments("fire", "C", "arity", "missing number")),
			expect: "missing number",
		},
		{
			name:   "plain error",
			err:    errors.New("disk on fire"),
			expect: "disk on fire",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, GameMessage(tc.err))
		})
	}
}

func Test_InvalidArgumentsError(t *testing.T) {
	assert := assert.New(t)

	err := error(InvalidArguments("fire", "AB 4", "grid-letter", "not a single letter"))

	assert.ErrorIs(err, ErrInvalidArguments)
	assert.NotErrorIs(err, ErrUnknownCommand)
	assert.Equal(Rule("grid-letter"), RuleOf(err))
	assert.Equal(`fire: invalid arguments "AB 4": not a single letter (rule grid-letter)`, err.Error())
	assert.Equal(RuleNone, RuleOf(errors.New("other")))
}

func Test_WrapInterpreterf(t *testing.T) {
	assert := assert.New(t)

	err := WrapInterpreterf(ErrUnknownCommand, "no such command %q", "jump")

	assert.ErrorIs(err, ErrUnknownCommand)
	assert.Equal(`no such command "jump"`, GameMessage(err))
	assert.Equal("none", RuleNone.String())
}
