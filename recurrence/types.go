package recurrence

import (
	"time"

	"github.com/cyp0633/caldora-recur/recur"
	"github.com/samber/mo"
)

// RecurrenceInfo contains all recurrence-related information for a component
type RecurrenceInfo struct {
	Rule         mo.Option[recur.Rule] // Validated RRULE, absent for single instances
	RDATE        []time.Time           // Additional recurrence dates
	EXDATE       []time.Time           // Exception dates (excluded occurrences)
	RecurrenceID *time.Time            // For exception instances - which occurrence this overrides
}

// IsRecurring reports whether the component produces more than its own instance.
func (info RecurrenceInfo) IsRecurring() bool {
	return info.Rule.IsPresent() || len(info.RDATE) > 0
}

// TimeOccurrence represents a single occurrence in time
type TimeOccurrence struct {
	Start        time.Time  // Start time of this occurrence
	End          time.Time  // End time of this occurrence
	IsException  bool       // True if this is an exception/override instance
	RecurrenceID *time.Time // If this is an exception, the original occurrence time
}

// ExpansionOptions controls how recurrence expansion behaves
type ExpansionOptions struct {
	MaxOccurrences    int           // Maximum number of occurrences to expand (0 = unlimited)
	MaxTimeSpan       time.Duration // Maximum time span to expand (0 = unlimited)
	IncludeExceptions bool          // Whether to report a RECURRENCE-ID instance as an exception
}

// DefaultExpansionOptions provides sensible defaults for expansion
var DefaultExpansionOptions = ExpansionOptions{
	MaxOccurrences:    1000,
	MaxTimeSpan:       365 * 24 * time.Hour * 2, // 2 years
	IncludeExceptions: true,
}
