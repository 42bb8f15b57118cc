package recur

// Domain describes the finite integer range a qualifier set may hold.
//
// Unsigned domains cover lo..hi. Signed domains cover -hi..-lo and lo..hi
// (zero is never a member). The interface is sealed: only the domains
// declared in this package can instantiate a set.
type Domain interface {
	// Name identifies the domain in error messages.
	Name() string
	// Bounds returns the smallest and largest magnitude in the domain.
	Bounds() (lo, hi int)
	// Signed reports whether negative values mirror the positive range.
	Signed() bool

	domain()
}

type secondDomain struct{}

func (secondDomain) Name() string { return "BYSECOND" }
func (secondDomain) Bounds() (lo, hi int) { return 0, 60 }
func (secondDomain) Signed() bool { return false }
func (secondDomain) domain() {}

type minuteDomain struct{}

func (minuteDomain) Name() string { return "BYMINUTE" }
func (minuteDomain) Bounds() (lo, hi int) { return 0, 59 }
func (minuteDomain) Signed() bool { return false }
func (minuteDomain) domain() {}

type hourDomain struct{}

func (hourDomain) Name() string { return "BYHOUR" }
func (hourDomain) Bounds() (lo, hi int) { return 0, 23 }
func (hourDomain) Signed() bool { return false }
func (hourDomain) domain() {}

type monthDomain struct{}

func (monthDomain) Name() string { return "BYMONTH" }
func (monthDomain) Bounds() (lo, hi int) { return 1, 12 }
func (monthDomain) Signed() bool { return false }
func (monthDomain) domain() {}

type monthDayDomain struct{}

func (monthDayDomain) Name() string { return "BYMONTHDAY" }
func (monthDayDomain) Bounds() (lo, hi int) { return 1, 31 }
func (monthDayDomain) Signed() bool { return true }
func (monthDayDomain) domain() {}

type weekNoDomain struct{}

func (weekNoDomain) Name() string { return "BYWEEKNO" }
func (weekNoDomain) Bounds() (lo, hi int) { return 1, 53 }
func (weekNoDomain) Signed() bool { return true }
func (weekNoDomain) domain() {}

type yearDayDomain struct{}

func (yearDayDomain) Name() string { return "BYYEARDAY" }
func (yearDayDomain) Bounds() (lo, hi int) { return 1, 366 }
func (yearDayDomain) Signed() bool { return true }
func (yearDayDomain) domain() {}

type setPosDomain struct{}

func (setPosDomain) Name() string { return "BYSETPOS" }
func (setPosDomain) Bounds() (lo, hi int) { return 1, 366 }
func (setPosDomain) Signed() bool { return true }
func (setPosDomain) domain() {}

// domainSize returns the number of members of D.
func domainSize[D Domain]() int {
	var d D
	lo, hi := d.Bounds()
	n := hi - lo + 1
	if d.Signed() {
		n *= 2
	}
	return n
}

// indexOf maps v to its bit position in D. Bit order follows value order, so
// for a signed domain -hi lands on bit 0 and +hi on the last bit.
func indexOf[D Domain](v int) (int, bool) {
	var d D
	lo, hi := d.Bounds()
	if !d.Signed() {
		if v < lo || v > hi {
			return 0, false
		}
		return v - lo, true
	}
	switch {
	case v <= -lo && v >= -hi:
		return hi + v, true
	case v >= lo && v <= hi:
		return (hi - lo + 1) + (v - lo), true
	default:
		return 0, false
	}
}

// valueAt is the inverse of indexOf.
func valueAt[D Domain](i int) int {
	var d D
	lo, hi := d.Bounds()
	if !d.Signed() {
		return lo + i
	}
	width := hi - lo + 1
	if i < width {
		return i - hi
	}
	return lo + (i - width)
}
