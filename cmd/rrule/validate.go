package main

import (
	"fmt"

	"github.com/cyp0633/caldora-recur/recur/rfc5545"
	"github.com/spf13/cobra"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate VALUE...",
		Short: "Check RRULE values",
		Long: `Check one or more RRULE values. Each valid value is printed in
canonical form; each invalid one is reported with the offset and part at fault.

Examples:
  rrule validate 'FREQ=MONTHLY;BYDAY=2MO;COUNT=5'
  rrule validate 'FREQ=WEEKLY;BYMONTHDAY=15'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, value := range args {
				rule, err := a.parseRule(value)
				if err != nil {
					invalid++
					fmt.Fprintf(out, "invalid  %s\n         %v\n", value, err)
					continue
				}
				fmt.Fprintf(out, "ok       %s\n", rfc5545.Format(rule))
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d values are invalid", invalid, len(args))
			}
			return nil
		},
	}
}
