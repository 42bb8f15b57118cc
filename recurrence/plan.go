package recurrence

import (
	"github.com/cyp0633/caldora-recur/recur"
)

// Step is one stage of occurrence generation: a qualifier, the role it plays
// in the rule and its values in RRULE notation.
type Step struct {
	ByRule recur.ByRuleName
	Role   recur.Role
	Values string
}

// Plan lists the qualifiers of a rule in RFC 5545 evaluation order. BYDAY
// cells that depend on other qualifiers are already resolved.
func Plan(r recur.Rule) []Step {
	var steps []Step
	for name, role := range r.Qualifiers() {
		steps = append(steps, Step{ByRule: name, Role: role, Values: qualifierValues(r, name)})
	}
	return steps
}

func qualifierValues(r recur.Rule, name recur.ByRuleName) string {
	switch name {
	case recur.BySecond:
		return r.Second().OrEmpty().String()
	case recur.ByMinute:
		return r.Minute().OrEmpty().String()
	case recur.ByHour:
		return r.Hour().OrEmpty().String()
	case recur.ByDay:
		return r.Day().OrEmpty().String()
	case recur.ByMonthDay:
		return r.MonthDay().OrEmpty().String()
	case recur.ByYearDay:
		return r.YearDay().OrEmpty().String()
	case recur.ByWeekNo:
		return r.WeekNo().OrEmpty().String()
	case recur.ByMonth:
		return r.Month().OrEmpty().String()
	case recur.BySetPos:
		return r.SetPos().OrEmpty().String()
	default:
		return ""
	}
}
