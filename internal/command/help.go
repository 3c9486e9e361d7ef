package command

// Help is the Variant for the "help" command. It takes an optional topic,
// which must name a known command when Known is set.
type Help struct {
	// Known reports whether a topic is a command name. If nil, any topic is
	// accepted.
	Known func(topic string) bool
}

func (Help) Name() string        { return "help" }
func (Help) Usage() string       { return "HELP [COMMAND]" }
func (Help) Description() string { return "show this help, or the usage of a single command" }
func (Help) Arity() Arity        { return Between(0, 1) }

func (h Help) Parse(raw string) ([]string, error) {
	return ParseArgs(h.Name(), raw, h.Usage(), h.Arity())
}

func (h Help) Validate(args []string) Verdict {
	if v := checkArity(h, args); !v.OK() {
		return v
	}
	if len(args) == 1 && h.Known != nil && !h.Known(args[0]) {
		return Reject(RuleHelpTopic, "There is no command called %q", args[0])
	}
	return Accept()
}
