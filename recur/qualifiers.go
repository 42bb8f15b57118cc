package recur

// Qualifier sets for the simple BYxxx rules.
type (
	// SecondSet holds BYSECOND values, 0..60.
	SecondSet = Set[secondDomain]
	// MinuteSet holds BYMINUTE values, 0..59.
	MinuteSet = Set[minuteDomain]
	// HourSet holds BYHOUR values, 0..23.
	HourSet = Set[hourDomain]
	// MonthSet holds BYMONTH values, 1..12.
	MonthSet = Set[monthDomain]
	// MonthDaySet holds BYMONTHDAY values, -31..-1 and 1..31.
	MonthDaySet = Set[monthDayDomain]
	// WeekNoSet holds BYWEEKNO values, -53..-1 and 1..53.
	WeekNoSet = WideSet[weekNoDomain]
	// YearDaySet holds BYYEARDAY values, -366..-1 and 1..366.
	YearDaySet = WideSet[yearDayDomain]
	// SetPosSet holds BYSETPOS values, -366..-1 and 1..366.
	SetPosSet = WideSet[setPosDomain]
)

// NewSecondSet builds a BYSECOND set from values in 0..60. Duplicates collapse.
func NewSecondSet(values ...int) (SecondSet, error) { return newSet[secondDomain](values) }

// NewMinuteSet builds a BYMINUTE set from values in 0..59. Duplicates collapse.
func NewMinuteSet(values ...int) (MinuteSet, error) { return newSet[minuteDomain](values) }

// NewHourSet builds a BYHOUR set from values in 0..23. Duplicates collapse.
func NewHourSet(values ...int) (HourSet, error) { return newSet[hourDomain](values) }

// NewMonthSet builds a BYMONTH set from values in 1..12. Duplicates collapse.
func NewMonthSet(values ...int) (MonthSet, error) { return newSet[monthDomain](values) }

// NewMonthDaySet builds a BYMONTHDAY set from values in ±1..31. Duplicates collapse.
func NewMonthDaySet(values ...int) (MonthDaySet, error) { return newSet[monthDayDomain](values) }

// NewWeekNoSet builds a BYWEEKNO set from values in ±1..53. Duplicates collapse.
func NewWeekNoSet(values ...int) (WeekNoSet, error) { return newWideSet[weekNoDomain](values) }

// NewYearDaySet builds a BYYEARDAY set from values in ±1..366. Duplicates collapse.
func NewYearDaySet(values ...int) (YearDaySet, error) { return newWideSet[yearDayDomain](values) }

// NewSetPosSet builds a BYSETPOS set from values in ±1..366. Duplicates collapse.
func NewSetPosSet(values ...int) (SetPosSet, error) { return newWideSet[setPosDomain](values) }
