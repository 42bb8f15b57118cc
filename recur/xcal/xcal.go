// Package xcal converts recurrence rules to and from the XML "recur" value
// of xCal (RFC 6321 §3.6.10).
package xcal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/cyp0633/caldora-recur/recur"
	"github.com/cyp0633/caldora-recur/recur/rfc5545"
)

// Namespace is the xCal XML namespace.
const Namespace = "urn:ietf:params:xml:ns:icalendar-2.0"

const (
	xmlDateLayout         = "2006-01-02"
	xmlFloatingTimeLayout = "2006-01-02T15:04:05"
	xmlUTCTimeLayout      = "2006-01-02T15:04:05Z"
)

var (
	// ErrNotRecur reports an element that is not an xCal recur value.
	ErrNotRecur = errors.New("element is not an xCal recur value")
	// ErrMalformed reports a recur element with unexpected content.
	ErrMalformed = errors.New("malformed xCal recur value")
)

// Encode builds the <recur> element for a rule. Child elements follow the
// same order as the text form, one element per qualifier value.
func Encode(r recur.Rule) *etree.Element {
	el := etree.NewElement("recur")
	add := func(name, value string) {
		el.CreateElement(name).SetText(value)
	}
	addInts := func(name recur.ByRuleName, values []int) {
		for _, v := range values {
			add(strings.ToLower(name.String()), strconv.Itoa(v))
		}
	}

	add("freq", r.Freq().String())
	if n, ok := r.Termination().Count(); ok {
		add("count", strconv.Itoa(n))
	}
	if at, ok := r.Termination().Until(); ok {
		add("until", formatInstant(at))
	}
	if r.Interval() != recur.DefaultInterval {
		add("interval", strconv.Itoa(r.Interval()))
	}
	if s, ok := r.Second().Get(); ok {
		addInts(recur.BySecond, s.Slice())
	}
	if s, ok := r.Minute().Get(); ok {
		addInts(recur.ByMinute, s.Slice())
	}
	if s, ok := r.Hour().Get(); ok {
		addInts(recur.ByHour, s.Slice())
	}
	if s, ok := r.Day().Get(); ok {
		for wn := range s.Values() {
			add("byday", wn.String())
		}
	}
	if s, ok := r.MonthDay().Get(); ok {
		addInts(recur.ByMonthDay, s.Slice())
	}
	if s, ok := r.YearDay().Get(); ok {
		addInts(recur.ByYearDay, s.Slice())
	}
	if s, ok := r.WeekNo().Get(); ok {
		addInts(recur.ByWeekNo, s.Slice())
	}
	if s, ok := r.Month().Get(); ok {
		addInts(recur.ByMonth, s.Slice())
	}
	if s, ok := r.SetPos().Get(); ok {
		addInts(recur.BySetPos, s.Slice())
	}
	if wd, ok := r.WeekStart().Get(); ok {
		add("wkst", wd.String())
	}
	return el
}

// EncodeString renders a standalone <recur> document carrying the xCal namespace.
func EncodeString(r recur.Rule) (string, error) {
	el := Encode(r)
	el.CreateAttr("xmlns", Namespace)

	doc := etree.NewDocument()
	doc.SetRoot(el)
	doc.Indent(2)
	s, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to write xCal recur: %w", err)
	}
	return s, nil
}

// Decode reads a <recur> element. Each child holds exactly one value.
// Repeated elements of the same qualifier are merged into one list;
// validation is the same as for the text form.
func Decode(el *etree.Element) (recur.Rule, error) {
	if el == nil || el.Tag != "recur" {
		return recur.Rule{}, ErrNotRecur
	}

	var order []string
	values := make(map[string][]string)
	for _, child := range el.ChildElements() {
		name := strings.ToUpper(child.Tag)
		text := strings.TrimSpace(child.Text())
		if text == "" || strings.ContainsAny(text, ";=,") {
			return recur.Rule{}, fmt.Errorf("%w: <%s> must hold a single value, got %q", ErrMalformed, strings.ToLower(name), text)
		}
		if name == rfc5545.PartUntil {
			converted, err := untilToText(text)
			if err != nil {
				return recur.Rule{}, err
			}
			text = converted
		}
		if _, seen := values[name]; !seen {
			order = append(order, name)
		}
		values[name] = append(values[name], text)
	}

	parts := make([]string, 0, len(order))
	for _, name := range order {
		vs := values[name]
		if len(vs) > 1 && !strings.HasPrefix(name, "BY") {
			return recur.Rule{}, fmt.Errorf("%w: <%s> occurs %d times", ErrMalformed, strings.ToLower(name), len(vs))
		}
		parts = append(parts, name+"="+strings.Join(vs, ","))
	}

	r, err := rfc5545.Parse(strings.Join(parts, ";"))
	if err != nil {
		return recur.Rule{}, fmt.Errorf("xcal: %w", err)
	}
	return r, nil
}

// DecodeString parses a document whose root is a <recur> element.
func DecodeString(s string) (recur.Rule, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return recur.Rule{}, fmt.Errorf("failed to read xCal recur: %w", err)
	}
	return Decode(doc.Root())
}

func formatInstant(at recur.Instant) string {
	switch {
	case at.IsDate:
		return at.Time.Format(xmlDateLayout)
	case at.IsFloating:
		return at.Time.Format(xmlFloatingTimeLayout)
	default:
		return at.Time.UTC().Format(xmlUTCTimeLayout)
	}
}

// untilToText converts an xCal date or date-time to its RFC 5545 text form.
func untilToText(s string) (string, error) {
	var at recur.Instant
	switch len(s) {
	case len(xmlDateLayout):
		t, err := time.Parse(xmlDateLayout, s)
		if err != nil {
			return "", fmt.Errorf("%w: until %q: %v", ErrMalformed, s, err)
		}
		at = recur.Instant{Time: t, IsDate: true}
	case len(xmlFloatingTimeLayout):
		t, err := time.Parse(xmlFloatingTimeLayout, s)
		if err != nil {
			return "", fmt.Errorf("%w: until %q: %v", ErrMalformed, s, err)
		}
		at = recur.Instant{Time: t, IsFloating: true}
	case len(xmlUTCTimeLayout):
		t, err := time.Parse(xmlUTCTimeLayout, s)
		if err != nil {
			return "", fmt.Errorf("%w: until %q: %v", ErrMalformed, s, err)
		}
		at = recur.Instant{Time: t}
	default:
		return "", fmt.Errorf("%w: until %q", ErrMalformed, s)
	}
	return rfc5545.FormatInstant(at), nil
}
