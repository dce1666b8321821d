package cli

import (
	"bufio"
	"flag"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/platinummonkey/advocates/pkg/view"
)

const (
	resetCommand = ":reset"
	quitCommand  = ":quit"
)

// NewViewCommand creates the interactive view command
func NewViewCommand() *Command {
	cmd := &Command{
		Name:        "view",
		Description: "Interactive advocate search",
		Flags:       flag.NewFlagSet("view", flag.ContinueOnError),
	}
	cmd.Run = func(args []string) error { return runView(cmd, args) }

	cmd.Flags.SetOutput(stderr)
	cmd.Flags.String("api", envOr("ADVOCATES_API_URL", "http://localhost:3000"), "Advocate API base URL")
	cmd.Flags.Duration("debounce", view.DefaultDebounce, "Quiet period before a query is sent")

	return cmd
}

func runView(cmd *Command, args []string) error {
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	api := cmd.Flags.Lookup("api").Value.String()
	debounce := cmd.Flags.Lookup("debounce").Value.(flag.Getter).Get().(time.Duration)

	// the last rendered state; OnChange calls are serialized
	var mu sync.Mutex
	var last *view.State

	ctrl := view.NewController(view.NewClient(api, nil), view.ControllerOptions{
		Debounce: debounce,
		Logger:   cliLogger(),
		OnChange: func(s view.State) {
			mu.Lock()
			defer mu.Unlock()
			if last != nil && last.Applied == s.Applied && last.Query == s.Query {
				return
			}
			last = &s
			fmt.Fprintln(stdout, strings.Repeat("-", 80))
			view.RenderTable(stdout, s)
			fmt.Fprintf(stdout, "\nType to search, %s to clear, %s to exit\n", resetCommand, quitCommand)
		},
	})
	defer ctrl.Close()

	ctrl.Mount()

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case quitCommand:
			return nil
		case resetCommand:
			ctrl.Reset()
		default:
			ctrl.SetQuery(line)
		}
	}

	return scanner.Err()
}
