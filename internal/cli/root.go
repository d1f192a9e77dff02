package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/table-reservations/internal/app"
	"github.com/BruksfildServices01/table-reservations/internal/config"
)

// Opener builds the application singletons for a command run.
type Opener func(ctx context.Context, cfg *config.Config) (*app.App, error)

func NewRootCmd(open Opener) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "reservactl",
		Short:         "Maintenance commands for the table reservation backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("load %s: %w", envFile, err)
				}
				return nil
			}
			_ = godotenv.Load()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")

	root.AddCommand(newSeedCmd(open))
	root.AddCommand(newSweepCmd(open))

	return root
}

func Execute() {
	if err := NewRootCmd(app.New).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp loads config, sets up logging and hands a wired App to fn.
func withApp(cmd *cobra.Command, open Opener, fn func(ctx context.Context, a *app.App) error) error {
	cfg := config.Load()
	app.SetupLogger(cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
