package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/table-reservations/internal/app"
	"github.com/BruksfildServices01/table-reservations/internal/timezone"
)

func newSweepCmd(open Opener) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Complete live reservations dated before --as-of",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				date := asOf
				if date == "" {
					date = time.Now().In(a.Location).Format(timezone.DateLayout)
				}

				res, err := a.Sweep.Execute(ctx, date)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "as_of=%s completed=%d\n", res.AsOf, res.Completed)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "cutoff date YYYY-MM-DD (default today)")

	return cmd
}
