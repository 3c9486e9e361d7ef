// Package util holds small helpers shared by the console and the command
// package.
package util

import (
	"sort"
	"strings"
)

// MakeTextList joins items into an English list, e.g. "a, b, or c". conj is
// the word placed before the last item, usually "and" or "or". Each item is
// wrapped in quote if it is not empty.
func MakeTextList(items []string, conj, quote string) string {
	if len(items) < 1 {
		return ""
	}

	quoted := make([]string, len(items))
	for i := range items {
		quoted[i] = quote + items[i] + quote
	}

	if len(quoted) == 1 {
		return quoted[0]
	} else if len(quoted) == 2 {
		return quoted[0] + " " + conj + " " + quoted[1]
	}

	// if its more than two, use an oxford comma
	quoted[len(quoted)-1] = conj + " " + quoted[len(quoted)-1]
	return strings.Join(quoted, ", ")
}

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
