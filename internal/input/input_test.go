package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LineReader_ReadCommand(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		allowBlank bool
		expect     []string
	}{
		{
			name:   "single line",
			input:  "fire C 4\n",
			expect: []string{"fire C 4"},
		},
		{
			name:   "no trailing newline",
			input:  "fire C 4",
			expect: []string{"fire C 4"},
		},
		{
			name:   "blank lines skipped",
			input:  "\n   \nquit\n",
			expect: []string{"quit"},
		},
		{
			name:       "blank lines allowed",
			input:      "\nquit\n",
			allowBlank: true,
			expect:     []string{"", "quit"},
		},
		{
			name:   "surrounding space trimmed",
			input:  "  help fire \t\nready\n",
			expect: []string{"help fire", "ready"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			lr := NewDirect(strings.NewReader(tc.input))
			lr.AllowBlank(tc.allowBlank)
			defer lr.Close()

			var actual []string
			for {
				line, err := lr.ReadCommand()
				if err == io.EOF {
					assert.Empty(line)
					break
				}
				if !assert.NoError(err) {
					return
				}
				actual = append(actual, line)
			}

			assert.Equal(tc.expect, actual)
		})
	}
}
