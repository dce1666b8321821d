package cli

import (
	"context"
	"encoding/json"
	"flag"
	"time"

	"github.com/platinummonkey/advocates/pkg/view"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *Command {
	cmd := &Command{
		Name:        "search",
		Description: "Query the advocate API once and print the results",
		Flags:       flag.NewFlagSet("search", flag.ContinueOnError),
	}
	cmd.Run = func(args []string) error { return runSearch(cmd, args) }

	cmd.Flags.SetOutput(stderr)
	cmd.Flags.String("api", envOr("ADVOCATES_API_URL", "http://localhost:3000"), "Advocate API base URL")
	cmd.Flags.String("q", "", "Search text or phone number")
	cmd.Flags.Bool("json", false, "Print the rows as JSON")
	cmd.Flags.Duration("timeout", 10*time.Second, "Request timeout")

	return cmd
}

func runSearch(cmd *Command, args []string) error {
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	api := cmd.Flags.Lookup("api").Value.String()
	q := cmd.Flags.Lookup("q").Value.String()
	asJSON := cmd.Flags.Lookup("json").Value.String() == "true"
	timeout := cmd.Flags.Lookup("timeout").Value.(flag.Getter).Get().(time.Duration)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	rows, err := view.NewClient(api, nil).Fetch(ctx, q)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	return view.RenderTable(stdout, view.State{Query: q, Rows: rows})
}
