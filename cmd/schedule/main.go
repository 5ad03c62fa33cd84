// Command schedule prints which monster the game picks on upcoming days
// and which day key an instant falls on.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/dailydle/internal/catalog"
	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/selection"
)

type options struct {
	catalogPath string
	timezone    string
	lookback    int
	from        string
	days        int
	at          string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "schedule",
		Short:        "Print the daily target schedule",
		Long:         "Prints the monster selected for each day in a range, starting today unless --from is set.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog JSON file (default: embedded catalog)")
	root.PersistentFlags().StringVar(&opts.timezone, "timezone", daykey.DefaultTimezone, "reference timezone for day boundaries")
	root.PersistentFlags().IntVar(&opts.lookback, "lookback", selection.DefaultLookback, "anti-repeat lookback depth")
	root.Flags().StringVar(&opts.from, "from", "", "first day as Y-M-D (default: today)")
	root.Flags().IntVar(&opts.days, "days", 7, "number of days to print")

	key := &cobra.Command{
		Use:   "key",
		Short: "Print the day key for an instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKey(cmd, opts)
		},
	}
	key.Flags().StringVar(&opts.at, "at", "", "RFC 3339 instant (default: now)")
	root.AddCommand(key)

	return root
}

func runSchedule(cmd *cobra.Command, opts *options) error {
	if opts.days < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", opts.days)
	}
	if opts.lookback < 0 {
		return fmt.Errorf("--lookback must not be negative, got %d", opts.lookback)
	}

	cat, err := catalog.Load(opts.catalogPath)
	if err != nil {
		return err
	}
	days, err := daykey.LoadResolver(opts.timezone)
	if err != nil {
		return err
	}

	from := days.Today()
	if opts.from != "" {
		if from, err = daykey.Parse(opts.from); err != nil {
			return err
		}
	}

	picks, err := selection.Schedule(cat.All(), from, opts.days, opts.lookback)
	if err != nil {
		return err
	}

	start, err := from.Date()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tID\tMONSTER")
	for i, m := range picks {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", start.AddDays(i).Key(), m.ID, m.Name)
	}
	return tw.Flush()
}

func runKey(cmd *cobra.Command, opts *options) error {
	days, err := daykey.LoadResolver(opts.timezone)
	if err != nil {
		return err
	}

	at := days.Now()
	if opts.at != "" {
		if at, err = time.Parse(time.RFC3339, opts.at); err != nil {
			return fmt.Errorf("--at: %w", err)
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), days.Key(at))
	return err
}
