package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekday_Conversions(t *testing.T) {
	tests := []struct {
		day  Weekday
		name string
		time time.Weekday
	}{
		{Monday, "MO", time.Monday},
		{Tuesday, "TU", time.Tuesday},
		{Wednesday, "WE", time.Wednesday},
		{Thursday, "TH", time.Thursday},
		{Friday, "FR", time.Friday},
		{Saturday, "SA", time.Saturday},
		{Sunday, "SU", time.Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.day.String())
			assert.Equal(t, tt.time, tt.day.Time())
			assert.Equal(t, tt.day, WeekdayFromTime(tt.time))

			parsed, err := ParseWeekday(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.day, parsed)
		})
	}

	_, err := ParseWeekday("XX")
	assert.Error(t, err)
	assert.False(t, Weekday(7).Valid())
}

func TestWeekdayNum_String(t *testing.T) {
	assert.Equal(t, "MO", WeekdayNum{Weekday: Monday}.String())
	assert.Equal(t, "2MO", WeekdayNum{Weekday: Monday, Ordinal: 2}.String())
	assert.Equal(t, "-1FR", WeekdayNum{Weekday: Friday, Ordinal: -1}.String())
}

func TestWeekdayNumSet_InsertionOrder(t *testing.T) {
	pairs := []WeekdayNum{
		{Weekday: Friday, Ordinal: -1},
		{Weekday: Monday},
		{Weekday: Monday, Ordinal: 1},
	}
	s, err := NewWeekdayNumSet(MaxOrdinal, pairs...)
	require.NoError(t, err)

	assert.Equal(t, pairs, s.Slice())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.HasOrdinals())
	assert.True(t, s.Contains(WeekdayNum{Weekday: Monday}))
	assert.False(t, s.Contains(WeekdayNum{Weekday: Friday}))
	assert.Equal(t, "-1FR,MO,1MO", s.String())

	// Mutating the returned slice must not leak into the set.
	got := s.Slice()
	got[0] = WeekdayNum{Weekday: Sunday}
	assert.Equal(t, pairs, s.Slice())
}

func TestWeekdayNumSet_Errors(t *testing.T) {
	t.Run("duplicate pair", func(t *testing.T) {
		_, err := NewWeekdayNumSet(MaxOrdinal,
			WeekdayNum{Weekday: Monday, Ordinal: 2},
			WeekdayNum{Weekday: Tuesday},
			WeekdayNum{Weekday: Monday, Ordinal: 2},
		)
		var dup *DuplicateEntryError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, WeekdayNum{Weekday: Monday, Ordinal: 2}, dup.Entry)
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("same weekday different ordinals is fine", func(t *testing.T) {
		s, err := NewWeekdayNumSet(5,
			WeekdayNum{Weekday: Monday, Ordinal: 1},
			WeekdayNum{Weekday: Monday, Ordinal: -1},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("ordinal beyond caller bound", func(t *testing.T) {
		_, err := NewWeekdayNumSet(5, WeekdayNum{Weekday: Monday, Ordinal: 6})
		var oor *OutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, 6, oor.Value)
	})

	t.Run("bound is capped at 53", func(t *testing.T) {
		_, err := NewWeekdayNumSet(100, WeekdayNum{Weekday: Monday, Ordinal: -54})
		var oor *OutOfRangeError
		require.ErrorAs(t, err, &oor)

		_, err = NewWeekdayNumSet(100, WeekdayNum{Weekday: Monday, Ordinal: -53})
		assert.NoError(t, err)
	})

	t.Run("invalid weekday", func(t *testing.T) {
		_, err := NewWeekdayNumSet(MaxOrdinal, WeekdayNum{Weekday: Weekday(9)})
		var oor *OutOfRangeError
		require.ErrorAs(t, err, &oor)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewWeekdayNumSet(MaxOrdinal)
		var empty *EmptySetError
		require.ErrorAs(t, err, &empty)
		assert.Equal(t, "BYDAY", empty.Domain)
	})
}
