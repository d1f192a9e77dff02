package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/table-reservations/internal/app"
	"github.com/BruksfildServices01/table-reservations/internal/seed"
	"github.com/BruksfildServices01/table-reservations/internal/timezone"
)

func newSeedCmd(open Opener) *cobra.Command {
	var randSeed int64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate sample tables, customers and reservations",
	}
	cmd.PersistentFlags().Int64Var(&randSeed, "seed", 0, "random seed (0 uses the clock)")

	seeder := func(a *app.App) *seed.Seeder {
		s := randSeed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		return seed.New(a.DB, a.Repo, a.Hours, a.Location, rand.New(rand.NewSource(s)))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tables",
		Short: "Create the default table layout (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				n, err := seeder(a).Tables(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "tables created=%d\n", n)
				return nil
			})
		},
	})

	var count int
	customers := &cobra.Command{
		Use:   "customers",
		Short: "Create random client accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				n, err := seeder(a).Customers(ctx, count)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "customers created=%d password=%s\n", n, seed.DefaultPassword)
				return nil
			})
		},
	}
	customers.Flags().IntVar(&count, "count", 50, "number of customers to generate")
	cmd.AddCommand(customers)

	var fromStr, toStr string
	reservations := &cobra.Command{
		Use:   "reservations",
		Short: "Fill a date range with reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				today := time.Now().In(a.Location)
				from, to, err := seedRange(fromStr, toStr, today, a.Location)
				if err != nil {
					return err
				}

				rep, err := seeder(a).Reservations(ctx, from, to, today)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"days=%d target=%d inserted=%d shortfall=%d swept=%d\n",
					rep.Days, rep.Target, rep.Inserted, rep.Shortfall, rep.Swept)
				return nil
			})
		},
	}
	reservations.Flags().StringVar(&fromStr, "from", "", "first day YYYY-MM-DD (default first day of this month)")
	reservations.Flags().StringVar(&toStr, "to", "", "last day YYYY-MM-DD (default last day of this month)")
	cmd.AddCommand(reservations)

	return cmd
}

// seedRange resolves --from/--to, defaulting to the month containing today.
func seedRange(fromStr, toStr string, today time.Time, loc *time.Location) (time.Time, time.Time, error) {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	from, to := first, first.AddDate(0, 1, -1)

	if fromStr != "" {
		d, err := timezone.ParseDate(fromStr, loc)
		if err != nil {
			return from, to, fmt.Errorf("invalid --from (want YYYY-MM-DD)")
		}
		from = d
	}
	if toStr != "" {
		d, err := timezone.ParseDate(toStr, loc)
		if err != nil {
			return from, to, fmt.Errorf("invalid --to (want YYYY-MM-DD)")
		}
		to = d
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("--to is before --from")
	}
	return from, to, nil
}
