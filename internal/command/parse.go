package command

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/salvo/internal/cmderr"
)

// Rules that command arguments can break.
const (
	RuleName        cmderr.Rule = "name"
	RuleArity       cmderr.Rule = "arity"
	RuleGridLetter  cmderr.Rule = "grid-letter"
	RuleInteger     cmderr.Rule = "integer"
	RuleShip        cmderr.Rule = "ship"
	RuleOrientation cmderr.Rule = "orientation"
	RuleHelpTopic   cmderr.Rule = "help-topic"
)

var gridLetterPat = regexp.MustCompile(`^[a-jA-J]$`)

// ParseArgs splits raw into whitespace-delimited tokens for the command with
// the given name. If the number of tokens is not accepted by a, an
// *cmderr.InvalidArgumentsError is returned; tokens are never dropped or
// invented to make the count fit.
func ParseArgs(name, raw, usage string, a Arity) ([]string, error) {
	tokens := strings.Fields(raw)

	if !a.Accepts(len(tokens)) {
		return nil, cmderr.InvalidArguments(name, raw, RuleArity, "%s", arityReason(name, usage, a, len(tokens)))
	}

	return tokens, nil
}

// checkArity returns a failed Verdict if args does not have a count accepted
// by v.
func checkArity(v Variant, args []string) Verdict {
	a := v.Arity()
	if !a.Accepts(len(args)) {
		return Reject(RuleArity, "%s", arityReason(v.Name(), v.Usage(), a, len(args)))
	}
	return Accept()
}

func arityReason(name, usage string, a Arity, got int) string {
	upper := strings.ToUpper(name)

	var msg string
	if a.Max == 0 {
		msg = "You can't " + upper + " *something*; type " + upper + " by itself"
	} else if a.Min == a.Max {
		msg = upper + " needs exactly " + countNoun(a.Min, "argument") + " but got " + strconv.Itoa(got)
	} else {
		msg = upper + " needs " + strconv.Itoa(a.Min) + " to " + countNoun(a.Max, "argument") + " but got " + strconv.Itoa(got)
	}

	if usage != "" && a.Max > 0 {
		msg += " (usage: " + usage + ")"
	}
	return msg
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// checkGridLetter checks that s is a single letter naming a grid column, A
// through J in either case.
func checkGridLetter(s string) Verdict {
	if utf8.RuneCountInString(s) != 1 {
		return Reject(RuleGridLetter, "%q is not a single letter", s)
	}
	if !gridLetterPat.MatchString(s) {
		return Reject(RuleGridLetter, "%q is not a letter from A to J", s)
	}
	return Accept()
}

// checkInteger checks that s is a base-10 integer that fits in 32 bits, with an
// optional leading sign.
func checkInteger(s string) Verdict {
	if _, err := strconv.ParseInt(s, 10, 32); err != nil {
		return Reject(RuleInteger, "%q is not a whole number", s)
	}
	return Accept()
}
