package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/platinummonkey/advocates/pkg/observability"
)

// Output streams, replaced in tests
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet
}

// NewRootCommand creates the root command
func NewRootCommand() *Command {
	root := &Command{
		Name:        "advocates-cli",
		Description: "Advocate directory command-line tools",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("advocates-cli", flag.ExitOnError),
	}

	root.Subcommands["seed"] = NewSeedCommand()
	root.Subcommands["search"] = NewSearchCommand()
	root.Subcommands["view"] = NewViewCommand()

	return root
}

// Execute runs the command with args, which exclude the program name
func (c *Command) Execute(args []string) error {
	if len(args) == 0 {
		return c.usage()
	}

	switch strings.ToLower(args[0]) {
	case "-h", "--help", "help":
		return c.usage()
	}

	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}

	return fmt.Errorf("unknown command: %s", args[0])
}

// usage prints the command usage
func (c *Command) usage() error {
	fmt.Fprintf(stdout, "Usage: %s <command> [args]\n\n", c.Name)
	fmt.Fprintf(stdout, "Commands:\n")

	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(stdout, "  %-15s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}

// cliLogger logs warnings and errors to stderr
func cliLogger() *observability.Logger {
	return observability.NewLogger(observability.WarnLevel, stderr)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
