package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/platinummonkey/advocates/pkg/seed"
	"github.com/platinummonkey/advocates/pkg/storage"
	"github.com/platinummonkey/advocates/pkg/storage/postgres"
	"github.com/platinummonkey/advocates/pkg/view"
)

// NewSeedCommand creates the seed command
func NewSeedCommand() *Command {
	cmd := &Command{
		Name:        "seed",
		Description: "Apply the schema and insert fixture advocates",
		Flags:       flag.NewFlagSet("seed", flag.ContinueOnError),
	}
	cmd.Run = func(args []string) error { return runSeed(cmd, args) }

	cmd.Flags.SetOutput(stderr)
	cmd.Flags.String("db", envOr("ADVOCATES_POSTGRES_URL", storage.DefaultConfig().PostgresURL), "PostgreSQL connection URL")
	cmd.Flags.String("file", envOr("ADVOCATES_SEED_FILE", ""), "YAML fixture file (default: embedded fixtures)")
	cmd.Flags.Duration("timeout", 30*time.Second, "Overall timeout")
	cmd.Flags.Bool("dry-run", false, "Validate and print the fixtures without connecting")

	return cmd
}

func runSeed(cmd *Command, args []string) error {
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	dbURL := cmd.Flags.Lookup("db").Value.String()
	file := cmd.Flags.Lookup("file").Value.String()
	timeout := cmd.Flags.Lookup("timeout").Value.(flag.Getter).Get().(time.Duration)
	dryRun := cmd.Flags.Lookup("dry-run").Value.String() == "true"

	records, err := seed.FromFileOrDefault(file)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintf(stdout, "%d advocates valid\n\n", len(records))
		return view.RenderTable(stdout, view.State{Rows: records})
	}

	if dbURL == "" {
		return fmt.Errorf("db is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := storage.DefaultConfig()
	cfg.PostgresURL = dbURL
	conn, err := postgres.NewConnectionManager(postgres.ConnectionConfigFromStorage(cfg), cliLogger())
	if err != nil {
		return err
	}
	defer conn.Close()

	store, err := postgres.Open(ctx, conn)
	if err != nil {
		return err
	}

	ids, err := seed.Apply(ctx, store, records)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Seeded %d advocates\n", len(ids))
	return nil
}
