package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cyp0633/caldora-recur/recurrence"
	"github.com/emersion/go-ical"
	"github.com/spf13/cobra"
)

func newOccurrencesCommand(a *app) *cobra.Command {
	var (
		after  string
		before string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "occurrences FILE",
		Short: "List instances of the events and to-dos in an iCalendar file",
		Long: `Read an iCalendar file ("-" for stdin) and list every instance of its
VEVENT and VTODO components overlapping the window given by --after and
--before. RRULE, RDATE, EXDATE and RECURRENCE-ID are honoured; an RRULE
whose UNTIL does not match the precision of DTSTART is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseTime(after)
			if err != nil {
				return fmt.Errorf("--after: %w", err)
			}
			to, err := parseTime(before)
			if err != nil {
				return fmt.Errorf("--before: %w", err)
			}

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			cal, err := ical.NewDecoder(r).Decode()
			if err != nil {
				return fmt.Errorf("failed to decode calendar: %w", err)
			}

			engine := recurrence.NewEngine(recurrence.WithLogger(a.logger))
			defer engine.Close()

			opts := recurrence.DefaultExpansionOptions
			opts.MaxOccurrences = limit
			return writeOccurrences(cmd.OutOrStdout(), a, engine, cal, from, to, opts)
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "Start of the window")
	cmd.Flags().StringVar(&before, "before", "", "End of the window")
	cmd.Flags().IntVarP(&limit, "limit", "n", recurrence.DefaultExpansionOptions.MaxOccurrences, "Maximum instances per component (0 = unlimited)")
	_ = cmd.MarkFlagRequired("after")
	_ = cmd.MarkFlagRequired("before")

	return cmd
}

func writeOccurrences(w io.Writer, a *app, engine *recurrence.Engine, cal *ical.Calendar, from, to time.Time, opts recurrence.ExpansionOptions) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, comp := range cal.Children {
		if comp.Name != ical.CompEvent && comp.Name != ical.CompToDo {
			continue
		}
		uid, _ := comp.Props.Text(ical.PropUID)

		start, end, ok := recurrence.ExtractBasicTimeInfoFromComponent(comp)
		if !ok {
			a.logger.Debug("skipping component without times", "uid", uid)
			continue
		}
		info, err := recurrence.ExtractRecurrenceInfoFromComponent(comp)
		if err != nil {
			return fmt.Errorf("%s %q: %w", comp.Name, uid, err)
		}

		occurrences, err := engine.ExpandOccurrences(start, end, info, from, to, opts)
		if err != nil {
			return fmt.Errorf("%s %q: %w", comp.Name, uid, err)
		}
		for _, occ := range occurrences {
			marker := ""
			if occ.IsException {
				marker = "override"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", uid, occ.Start.Format(time.RFC3339), occ.End.Format(time.RFC3339), marker)
		}
	}
	return tw.Flush()
}
