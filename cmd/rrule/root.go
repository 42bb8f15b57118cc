package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cyp0633/caldora-recur/recur"
	"github.com/cyp0633/caldora-recur/recur/rfc5545"
	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands.
type app struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "rrule",
		Short: "Inspect RFC 5545 recurrence rules",
		Long: `rrule validates RRULE values against the RFC 5545 grammar and the
qualifier legality table, shows how each qualifier acts under the rule's
frequency, and lists occurrences.

Values may be given with or without the "RRULE:" prefix.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newValidateCommand(a),
		newExplainCommand(a),
		newExpandCommand(a),
		newOccurrencesCommand(a),
		newXCalCommand(a),
	)
	return cmd
}

// parseRule parses a command line RRULE value.
func (a *app) parseRule(value string) (recur.Rule, error) {
	value = strings.TrimSpace(value)
	if len(value) >= len("RRULE:") && strings.EqualFold(value[:len("RRULE:")], "RRULE:") {
		value = value[len("RRULE:"):]
	}
	rule, err := rfc5545.Parse(value)
	if err != nil {
		a.logger.Debug("rejected rule", "value", value, "error", err)
		return recur.Rule{}, err
	}
	return rule, nil
}

// parseTime accepts RFC 3339 as well as iCalendar DATE and DATE-TIME forms.
// Values without a zone are read as UTC.
func parseTime(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"20060102T150405Z",
		"20060102T150405",
		"2006-01-02T15:04:05",
		"20060102",
		time.DateOnly,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
