package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/cyp0633/caldora-recur/recurrence"
	"github.com/spf13/cobra"
)

func newExpandCommand(a *app) *cobra.Command {
	var (
		dtstart string
		after   string
		before  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "expand VALUE",
		Short: "List occurrences of a rule",
		Long: `List occurrences of a rule anchored at --dtstart, one RFC 3339 timestamp
per line. With --after and --before only occurrences inside that inclusive
window are listed. At most --limit occurrences are printed.

Examples:
  rrule expand 'FREQ=MONTHLY;BYDAY=2MO' --dtstart 20240108T100000Z --limit 5
  rrule expand 'FREQ=DAILY' --dtstart 2024-01-01 --after 2024-03-01 --before 2024-03-07`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := a.parseRule(args[0])
			if err != nil {
				return err
			}

			start := time.Now().UTC().Truncate(time.Second)
			if dtstart != "" {
				if start, err = parseTime(dtstart); err != nil {
					return fmt.Errorf("--dtstart: %w", err)
				}
			}
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}
			if (after == "") != (before == "") {
				return errors.New("--after and --before must be given together")
			}

			engine := recurrence.NewEngine(recurrence.WithLogger(a.logger))
			defer engine.Close()

			var occurrences []time.Time
			if after == "" {
				occurrences, err = engine.Take(rule, start, limit)
			} else {
				var from, to time.Time
				if from, err = parseTime(after); err != nil {
					return fmt.Errorf("--after: %w", err)
				}
				if to, err = parseTime(before); err != nil {
					return fmt.Errorf("--before: %w", err)
				}
				occurrences, err = engine.Expand(rule, start, from, to)
				if len(occurrences) > limit {
					a.logger.Warn("output truncated", "occurrences", len(occurrences), "limit", limit)
					occurrences = occurrences[:limit]
				}
			}
			if err != nil {
				return err
			}

			for _, t := range occurrences {
				fmt.Fprintln(cmd.OutOrStdout(), t.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dtstart, "dtstart", "", "First occurrence, RFC 3339 or iCalendar form (default now)")
	cmd.Flags().StringVar(&after, "after", "", "Start of the listing window")
	cmd.Flags().StringVar(&before, "before", "", "End of the listing window")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of occurrences to print")

	return cmd
}
