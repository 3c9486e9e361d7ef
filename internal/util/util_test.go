package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MakeTextList(t *testing.T) {
	testCases := []struct {
		name   string
		items  []string
		conj   string
		quote  string
		expect string
	}{
		{name: "empty", items: nil, conj: "and", expect: ""},
		{name: "one", items: []string{"fire"}, conj: "and", expect: "fire"},
		{name: "two", items: []string{"H", "V"}, conj: "or", quote: "'", expect: "'H' or 'V'"},
		{name: "three", items: []string{"a", "b", "c"}, conj: "or", expect: "a, b, or c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, MakeTextList(tc.items, tc.conj, tc.quote))
		})
	}
}

func Test_OrderedKeys(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int{"shoot": 1, "f": 2, "bye": 3}
	assert.Equal([]string{"bye", "f", "shoot"}, OrderedKeys(m))
	assert.Empty(OrderedKeys(map[string]bool{}))
}
