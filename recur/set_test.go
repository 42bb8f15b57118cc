package recur

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func(...int) ([]int, error)
		input []int
		want  []int
	}{
		{
			name:  "seconds unordered with duplicates",
			build: sliceOf(NewSecondSet),
			input: []int{60, 0, 30, 30, 0},
			want:  []int{0, 30, 60},
		},
		{
			name:  "minutes",
			build: sliceOf(NewMinuteSet),
			input: []int{59, 15, 45},
			want:  []int{15, 45, 59},
		},
		{
			name:  "hours",
			build: sliceOf(NewHourSet),
			input: []int{23, 0, 9},
			want:  []int{0, 9, 23},
		},
		{
			name:  "months",
			build: sliceOf(NewMonthSet),
			input: []int{12, 1, 6, 12},
			want:  []int{1, 6, 12},
		},
		{
			name:  "signed month days",
			build: sliceOf(NewMonthDaySet),
			input: []int{5, -1, 31, -31, 1, 5},
			want:  []int{-31, -1, 1, 5, 31},
		},
		{
			name:  "week numbers",
			build: sliceOf(NewWeekNoSet),
			input: []int{53, -53, 20, -1, 1},
			want:  []int{-53, -1, 1, 20, 53},
		},
		{
			name:  "year days",
			build: sliceOf(NewYearDaySet),
			input: []int{366, -366, 100, -100, 1, -1, 200},
			want:  []int{-366, -100, -1, 1, 100, 200, 366},
		},
		{
			name:  "set positions",
			build: sliceOf(NewSetPosSet),
			input: []int{-1, 1, -1},
			want:  []int{-1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build(tt.input...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// sliceOf adapts a set constructor into one returning the set's members.
func sliceOf[S interface{ Slice() []int }](build func(...int) (S, error)) func(...int) ([]int, error) {
	return func(values ...int) ([]int, error) {
		s, err := build(values...)
		if err != nil {
			return nil, err
		}
		return s.Slice(), nil
	}
}

func TestSet_Empty(t *testing.T) {
	_, err := NewSecondSet()
	var empty *EmptySetError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "BYSECOND", empty.Domain)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = NewYearDaySet()
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "BYYEARDAY", empty.Domain)
}

func TestSet_OutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		build  func(...int) ([]int, error)
		value  int
		domain string
	}{
		{"second 61", sliceOf(NewSecondSet), 61, "BYSECOND"},
		{"second -1", sliceOf(NewSecondSet), -1, "BYSECOND"},
		{"minute 60", sliceOf(NewMinuteSet), 60, "BYMINUTE"},
		{"hour 24", sliceOf(NewHourSet), 24, "BYHOUR"},
		{"month 13", sliceOf(NewMonthSet), 13, "BYMONTH"},
		{"month 0", sliceOf(NewMonthSet), 0, "BYMONTH"},
		{"month day 0", sliceOf(NewMonthDaySet), 0, "BYMONTHDAY"},
		{"month day 32", sliceOf(NewMonthDaySet), 32, "BYMONTHDAY"},
		{"month day -32", sliceOf(NewMonthDaySet), -32, "BYMONTHDAY"},
		{"week 54", sliceOf(NewWeekNoSet), 54, "BYWEEKNO"},
		{"week 0", sliceOf(NewWeekNoSet), 0, "BYWEEKNO"},
		{"year day 367", sliceOf(NewYearDaySet), 367, "BYYEARDAY"},
		{"year day -367", sliceOf(NewYearDaySet), -367, "BYYEARDAY"},
		{"set pos 0", sliceOf(NewSetPosSet), 0, "BYSETPOS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(1, tt.value)
			var oor *OutOfRangeError
			require.ErrorAs(t, err, &oor)
			assert.Equal(t, tt.value, oor.Value)
			assert.Equal(t, tt.domain, oor.Domain)
		})
	}
}

func TestSet_GuardBit(t *testing.T) {
	s, err := NewMonthDaySet(-31, 31)
	require.NoError(t, err)
	assert.NotZero(t, s.bits&guardBit, "guard bit must be set")
	assert.False(t, s.IsZero())
	assert.NotEqual(t, MonthDaySet{}, s)
	assert.True(t, MonthDaySet{}.IsZero())

	w, err := NewYearDaySet(-366)
	require.NoError(t, err)
	assert.NotZero(t, w.words[wideWords-1]&guardBit)
	assert.False(t, w.IsZero())
	assert.True(t, YearDaySet{}.IsZero())
}

func TestSet_Equality(t *testing.T) {
	a, err := NewHourSet(9, 17, 9)
	require.NoError(t, err)
	b, err := NewHourSet(17, 9)
	require.NoError(t, err)
	c, err := NewHourSet(9)
	require.NoError(t, err)

	assert.True(t, a == b)
	assert.False(t, a == c)

	x, err := NewSetPosSet(1, -1)
	require.NoError(t, err)
	y, err := NewSetPosSet(-1, 1, 1)
	require.NoError(t, err)
	assert.True(t, x == y)
}

func TestSet_ContainsAndLen(t *testing.T) {
	s, err := NewMonthDaySet(1, -1, 15)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(-1))
	assert.True(t, s.Contains(15))
	assert.False(t, s.Contains(-15))
	assert.False(t, s.Contains(0))
	assert.False(t, s.Contains(100))

	w, err := NewWeekNoSet(1, 53, -53)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Len())
	assert.True(t, w.Contains(-53))
	assert.False(t, w.Contains(-1))
}

func TestSet_FullDomains(t *testing.T) {
	all := func(lo, hi int, signed bool) []int {
		var out []int
		if signed {
			for v := -hi; v <= -lo; v++ {
				out = append(out, v)
			}
		}
		for v := lo; v <= hi; v++ {
			out = append(out, v)
		}
		return out
	}

	seconds := all(0, 60, false)
	s, err := NewSecondSet(seconds...)
	require.NoError(t, err)
	assert.Equal(t, 61, s.Len())
	assert.Equal(t, seconds, s.Slice())

	monthDays := all(1, 31, true)
	md, err := NewMonthDaySet(monthDays...)
	require.NoError(t, err)
	assert.Equal(t, 62, md.Len())
	assert.Equal(t, monthDays, md.Slice())

	yearDays := all(1, 366, true)
	yd, err := NewYearDaySet(yearDays...)
	require.NoError(t, err)
	assert.Equal(t, 732, yd.Len())
	assert.Equal(t, yearDays, yd.Slice())
}

func TestSet_ValuesIsRestartable(t *testing.T) {
	s, err := NewMonthSet(3, 1, 2)
	require.NoError(t, err)

	seq := s.Values()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, []int{1, 2, 3}, first)
	assert.Equal(t, first, second)

	// Stopping early must not disturb later iterations.
	for v := range seq {
		if v == 1 {
			break
		}
	}
	assert.Equal(t, first, slices.Collect(seq))
	assert.Equal(t, "1,2,3", s.String())
}

func TestSet_DomainsFitTheirStorage(t *testing.T) {
	assert.LessOrEqual(t, domainSize[secondDomain](), 63)
	assert.LessOrEqual(t, domainSize[minuteDomain](), 63)
	assert.LessOrEqual(t, domainSize[hourDomain](), 63)
	assert.LessOrEqual(t, domainSize[monthDomain](), 63)
	assert.LessOrEqual(t, domainSize[monthDayDomain](), 63)
	assert.LessOrEqual(t, domainSize[weekNoDomain](), wideWords*64-1)
	assert.LessOrEqual(t, domainSize[yearDayDomain](), wideWords*64-1)
	assert.LessOrEqual(t, domainSize[setPosDomain](), wideWords*64-1)
}

func TestSet_IndexMappingIsBijective(t *testing.T) {
	check := func(t *testing.T, size int, index func(int) (int, bool), value func(int) int) {
		for i := 0; i < size; i++ {
			v := value(i)
			j, ok := index(v)
			if !ok || j != i {
				t.Fatalf("index %d -> value %d -> index %d (ok=%v)", i, v, j, ok)
			}
		}
	}
	check(t, domainSize[monthDayDomain](), indexOf[monthDayDomain], valueAt[monthDayDomain])
	check(t, domainSize[yearDayDomain](), indexOf[yearDayDomain], valueAt[yearDayDomain])
	check(t, domainSize[secondDomain](), indexOf[secondDomain], valueAt[secondDomain])
}

func TestSet_ErrorsAreNotRuleErrors(t *testing.T) {
	_, err := NewMonthSet(13)
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.False(t, errors.Is(err, ErrInvalidRule))
}
