// Package recurrence expands validated recurrence rules into occurrences and
// answers range queries over recurring calendar components.
package recurrence

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cyp0633/caldora-recur/recur"
	"github.com/cyp0633/caldora-recur/recur/rfc5545"
	"github.com/samber/mo"
)

// Cache operation names.
const (
	opExpand = "expand"
	opHas    = "has"
)

// Engine provides unified recurrence expansion and range checks
type Engine struct {
	cache  *RecurrenceCache
	config EngineConfig
	logger *slog.Logger
}

// NewEngine creates a recurrence engine without a cache
func NewEngine(opts ...Option) *Engine {
	return NewEngineWithConfig(DisabledCacheConfig, opts...)
}

// Close stops the cache cleanup goroutine, if any.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// Expand lists the occurrences of rule anchored at dtstart that fall within
// [rangeStart, rangeEnd]. Occurrences carry dtstart's location.
func (e *Engine) Expand(rule recur.Rule, dtstart, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	info := RecurrenceInfo{Rule: mo.Some(rule)}
	if e.cache != nil {
		if cached, ok := e.cache.Get(opExpand, dtstart, dtstart, info, rangeStart, rangeEnd); ok {
			return slices.Clone(cached.([]time.Time)), nil
		}
	}

	rr, err := newRRule(rule, dtstart)
	if err != nil {
		return nil, fmt.Errorf("failed to build expansion for %s: %w", rfc5545.Format(rule), err)
	}
	occurrences := rr.Between(rangeStart, rangeEnd, true)
	e.logger.Debug("expanded recurrence rule",
		"rule", rfc5545.Format(rule),
		"dtstart", dtstart,
		"occurrences", len(occurrences))

	if e.cache != nil {
		e.cache.Set(opExpand, dtstart, dtstart, info, rangeStart, rangeEnd, slices.Clone(occurrences))
	}
	return occurrences, nil
}

// Take returns at most n occurrences of rule, starting at dtstart.
func (e *Engine) Take(rule recur.Rule, dtstart time.Time, n int) ([]time.Time, error) {
	if n <= 0 {
		return nil, nil
	}
	rr, err := newRRule(rule, dtstart)
	if err != nil {
		return nil, fmt.Errorf("failed to build expansion for %s: %w", rfc5545.Format(rule), err)
	}

	out := make([]time.Time, 0, n)
	next := rr.Iterator()
	for len(out) < n {
		t, ok := next()
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out, nil
}

// HasOccurrenceInRange checks if a recurring component has any occurrence in the time range.
// Expansion of large ranges is capped by the engine configuration.
func (e *Engine) HasOccurrenceInRange(
	masterStart, masterEnd time.Time,
	info RecurrenceInfo,
	rangeStart, rangeEnd time.Time,
) (bool, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(opHas, masterStart, masterEnd, info, rangeStart, rangeEnd); ok {
			return cached.(bool), nil
		}
	}

	found, err := e.hasOccurrenceInRange(masterStart, masterEnd, info, rangeStart, rangeEnd)
	if err != nil {
		return false, err
	}

	if e.cache != nil {
		e.cache.Set(opHas, masterStart, masterEnd, info, rangeStart, rangeEnd, found)
	}
	return found, nil
}

func (e *Engine) hasOccurrenceInRange(
	masterStart, masterEnd time.Time,
	info RecurrenceInfo,
	rangeStart, rangeEnd time.Time,
) (bool, error) {
	duration := masterEnd.Sub(masterStart)

	// Fast path: the master instance
	if overlaps(masterStart, masterEnd, rangeStart, rangeEnd) && !isExcluded(masterStart, info.EXDATE) {
		return true, nil
	}

	if rule, ok := info.Rule.Get(); ok {
		found, err := e.hasRuleOccurrenceInRange(masterStart, duration, rule, info.EXDATE, rangeStart, rangeEnd)
		if err != nil {
			return false, fmt.Errorf("failed to check RRULE occurrences: %w", err)
		}
		if found {
			return true, nil
		}
	}

	for _, rdate := range info.RDATE {
		if overlaps(rdate, rdate.Add(duration), rangeStart, rangeEnd) && !isExcluded(rdate, info.EXDATE) {
			return true, nil
		}
	}

	return false, nil
}

// hasRuleOccurrenceInRange searches a limited window first and falls back to
// the full range with a bounded number of candidates.
func (e *Engine) hasRuleOccurrenceInRange(
	masterStart time.Time, duration time.Duration,
	rule recur.Rule, exdates []time.Time,
	rangeStart, rangeEnd time.Time,
) (bool, error) {
	// An occurrence starting before rangeStart still overlaps if it lasts into the range.
	searchStart := rangeStart.Add(-duration)

	limitedEnd := rangeEnd
	if e.config.LargeRangeThreshold > 0 && rangeEnd.Sub(rangeStart) > e.config.LargeRangeThreshold {
		limitedEnd = rangeStart.Add(e.config.LargeRangeLimit)
	}

	occurrences, err := e.Expand(rule, masterStart, searchStart, limitedEnd)
	if err != nil {
		return false, err
	}
	for _, occurrence := range occurrences {
		if !isExcluded(occurrence, exdates) {
			return true, nil
		}
	}

	if !limitedEnd.Before(rangeEnd) {
		return false, nil
	}

	e.logger.Debug("widening occurrence search",
		"rule", rfc5545.Format(rule),
		"range_start", rangeStart,
		"range_end", rangeEnd)
	occurrences, err = e.Expand(rule, masterStart, limitedEnd, rangeEnd)
	if err != nil {
		return false, err
	}
	limit := len(occurrences)
	if e.config.MaxExpansionOccurrences > 0 {
		limit = min(limit, e.config.MaxExpansionOccurrences)
	}
	for _, occurrence := range occurrences[:limit] {
		if !isExcluded(occurrence, exdates) {
			return true, nil
		}
	}
	return false, nil
}

// ExpandOccurrences lists every instance of a component overlapping the range:
// the master instance, RRULE and RDATE instances, minus EXDATE. Results are
// sorted by start and deduplicated.
func (e *Engine) ExpandOccurrences(
	masterStart, masterEnd time.Time,
	info RecurrenceInfo,
	rangeStart, rangeEnd time.Time,
	opts ExpansionOptions,
) ([]TimeOccurrence, error) {
	duration := masterEnd.Sub(masterStart)

	if info.RecurrenceID != nil {
		if !overlaps(masterStart, masterEnd, rangeStart, rangeEnd) {
			return nil, nil
		}
		occ := TimeOccurrence{Start: masterStart, End: masterEnd}
		if opts.IncludeExceptions {
			occ.IsException = true
			occ.RecurrenceID = info.RecurrenceID
		}
		return []TimeOccurrence{occ}, nil
	}

	if opts.MaxTimeSpan > 0 && rangeEnd.Sub(rangeStart) > opts.MaxTimeSpan {
		e.logger.Debug("clamping expansion range", "max_time_span", opts.MaxTimeSpan)
		rangeEnd = rangeStart.Add(opts.MaxTimeSpan)
	}

	starts := []time.Time{masterStart}
	if rule, ok := info.Rule.Get(); ok {
		occurrences, err := e.Expand(rule, masterStart, rangeStart.Add(-duration), rangeEnd)
		if err != nil {
			return nil, err
		}
		starts = append(starts, occurrences...)
	}
	starts = append(starts, info.RDATE...)

	slices.SortFunc(starts, func(a, b time.Time) int { return a.Compare(b) })
	starts = slices.CompactFunc(starts, func(a, b time.Time) bool { return a.Equal(b) })

	var out []TimeOccurrence
	for _, start := range starts {
		end := start.Add(duration)
		if !overlaps(start, end, rangeStart, rangeEnd) || isExcluded(start, info.EXDATE) {
			continue
		}
		if opts.MaxOccurrences > 0 && len(out) == opts.MaxOccurrences {
			e.logger.Warn("occurrence expansion truncated", "max_occurrences", opts.MaxOccurrences)
			break
		}
		out = append(out, TimeOccurrence{Start: start, End: end})
	}
	return out, nil
}

// overlaps uses the closed interval test: start <= rangeEnd AND end >= rangeStart.
func overlaps(start, end, rangeStart, rangeEnd time.Time) bool {
	return !start.After(rangeEnd) && !end.Before(rangeStart)
}

// isExcluded checks if a given time is in the EXDATE list
func isExcluded(t time.Time, exdates []time.Time) bool {
	for _, exdate := range exdates {
		if t.Equal(exdate) {
			return true
		}

		// Date-only exceptions are stored as midnight UTC and exclude the whole day
		if exdate.Location() == time.UTC && isAllDayDate(exdate) {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			if day.Equal(exdate) {
				return true
			}
		}
	}
	return false
}
