package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/cyp0633/caldora-recur/recur/rfc5545"
	"github.com/cyp0633/caldora-recur/recur/xcal"
	"github.com/spf13/cobra"
)

func newXCalCommand(a *app) *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "xcal [VALUE]",
		Short: "Convert a rule to or from its xCal form",
		Long: `Print the xCal (RFC 6321) <recur> element of an RRULE value. With
--decode, read a <recur> document from stdin and print the RRULE value.`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if decode {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				rule, err := xcal.DecodeString(string(data))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), rfc5545.Format(rule))
				return nil
			}

			if len(args) != 1 {
				return errors.New("expected an RRULE value")
			}
			rule, err := a.parseRule(args[0])
			if err != nil {
				return err
			}
			doc, err := xcal.EncodeString(rule)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Read an xCal <recur> document from stdin")
	return cmd
}
