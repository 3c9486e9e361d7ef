package serr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error(t *testing.T) {
	driverErr := errors.New("disk on fire")

	testCases := []struct {
		name      string
		err       Error
		expectMsg string
		expectIs  []error
		expectNot []error
	}{
		{
			name:      "message only",
			err:       New("bad"),
			expectMsg: "bad",
			expectNot: []error{ErrDB},
		},
		{
			name:      "message and cause",
			err:       New("could not save", ErrAlreadyExists),
			expectMsg: "could not save: " + ErrAlreadyExists.Error(),
			expectIs:  []error{ErrAlreadyExists},
			expectNot: []error{ErrNotFound},
		},
		{
			name:      "wrapped db error",
			err:       WrapDB("", driverErr),
			expectMsg: "disk on fire",
			expectIs:  []error{driverErr, ErrDB},
		},
		{
			name:      "wrapped db error with message",
			err:       WrapDB("get player", driverErr),
			expectMsg: "get player: disk on fire",
			expectIs:  []error{driverErr, ErrDB},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expectMsg, tc.err.Error())
			for _, target := range tc.expectIs {
				assert.ErrorIs(tc.err, target)
				assert.ErrorIs(fmt.Errorf("outer: %w", tc.err), target)
			}
			for _, target := range tc.expectNot {
				assert.NotErrorIs(tc.err, target)
			}
		})
	}
}
