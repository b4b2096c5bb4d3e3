// Package console runs typed commands: a case-insensitive keyword followed by
// whitespace separated arguments. Handlers report through the logger; a bad
// command never fails the caller.
package console

import (
	"slices"
	"strings"

	"github.com/lixenwraith/gamesvc-samples/logging"
)

// DefaultHistory is how many executed lines the console remembers
const DefaultHistory = 100

// Handler runs a command with its arguments, keyword excluded
type Handler func(args []string)

// Console is the command registry
type Console struct {
	log       logging.Logger
	commands  map[string]Handler
	help      []string
	history   []string
	histLimit int

	onClear func()
}

// New creates a console with the HELP and CLEAR built-ins
func New(log logging.Logger) *Console {
	if log == nil {
		log = logging.Nop()
	}
	c := &Console{
		log:       log,
		commands:  make(map[string]Handler),
		histLimit: DefaultHistory,
	}
	c.help = []string{
		"Available commands:",
		" HELP - to print this message;",
		" CLEAR - to clear the console output;",
	}
	c.AddCommand("HELP", func([]string) {
		for _, line := range c.help {
			c.log.Log("%s", line)
		}
	})
	c.AddCommand("CLEAR", func([]string) {
		if c.onClear != nil {
			c.onClear()
		}
	})
	return c
}

// SetOnClear sets what CLEAR does; the console dialog wipes its output view
func (c *Console) SetOnClear(fn func()) {
	c.onClear = fn
}

// AddCommand registers h under name, replacing any earlier handler
func (c *Console) AddCommand(name string, h Handler) {
	c.commands[strings.ToUpper(name)] = h
}

// RemoveCommand drops name
func (c *Console) RemoveCommand(name string) {
	delete(c.commands, strings.ToUpper(name))
}

// HasCommand reports whether name is registered
func (c *Console) HasCommand(name string) bool {
	_, ok := c.commands[strings.ToUpper(name)]
	return ok
}

// Commands returns the registered keywords, sorted
func (c *Console) Commands() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AppendHelp adds lines printed by HELP
func (c *Console) AppendHelp(lines ...string) {
	c.help = append(c.help, lines...)
}

// HelpLines returns the HELP output
func (c *Console) HelpLines() []string {
	return c.help
}

// History returns executed lines, oldest first
func (c *Console) History() []string {
	return c.history
}

// Run executes one line and reports whether a command ran
// Unknown keywords are logged as errors
func (c *Console) Run(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	c.remember(line)

	parts := strings.Fields(line)
	name := strings.ToUpper(parts[0])
	h, ok := c.commands[name]
	if !ok {
		c.log.LogError("Unknown command: %s. Type HELP for the list of commands.", parts[0])
		return false
	}

	c.log.Log("> %s", line)
	h(parts[1:])
	return true
}

func (c *Console) remember(line string) {
	if n := len(c.history); n > 0 && c.history[n-1] == line {
		return
	}
	c.history = append(c.history, line)
	if over := len(c.history) - c.histLimit; over > 0 {
		c.history = c.history[over:]
	}
}
