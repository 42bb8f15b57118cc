package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cyp0633/caldora-recur/recur"
	"github.com/cyp0633/caldora-recur/recur/rfc5545"
	"github.com/cyp0633/caldora-recur/recurrence"
	"github.com/spf13/cobra"
)

func newExplainCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain VALUE",
		Short: "Show how each qualifier of a rule acts",
		Long: `Print the frequency, interval and termination of a rule, followed by its
qualifiers in evaluation order with the role each one plays: "expand" adds
occurrences within the period, "limit" filters them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := a.parseRule(args[0])
			if err != nil {
				return err
			}
			return writeExplanation(cmd.OutOrStdout(), rule)
		},
	}
}

func writeExplanation(w io.Writer, rule recur.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "rule:\t%s\n", rfc5545.Format(rule))
	fmt.Fprintf(tw, "frequency:\t%s\n", rule.Freq())
	fmt.Fprintf(tw, "interval:\t%d\n", rule.Interval())
	fmt.Fprintf(tw, "termination:\t%s\n", describeTermination(rule.Termination()))
	fmt.Fprintf(tw, "week start:\t%s\n", rule.EffectiveWeekStart())

	steps := recurrence.Plan(rule)
	if len(steps) > 0 {
		fmt.Fprintln(tw)
		for _, step := range steps {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", step.ByRule, step.Role, step.Values)
		}
	}
	return tw.Flush()
}

func describeTermination(t recur.Termination) string {
	if n, ok := t.Count(); ok {
		return fmt.Sprintf("after %d occurrences", n)
	}
	if at, ok := t.Until(); ok {
		return "until " + rfc5545.FormatInstant(at)
	}
	return "never"
}
