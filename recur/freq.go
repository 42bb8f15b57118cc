package recur

import (
	"fmt"
	"strconv"
	"strings"
)

// Freq is the base periodicity of a rule, ordered from finest to coarsest.
type Freq uint8

const (
	Secondly Freq = iota
	Minutely
	Hourly
	Daily
	Weekly
	Monthly
	Yearly
)

// freqCount is the number of frequencies; it sizes the legality table.
const freqCount = int(Yearly) + 1

// DefaultInterval is the INTERVAL of a rule that does not specify one.
const DefaultInterval = 1

var freqNames = [freqCount]string{
	Secondly: "SECONDLY",
	Minutely: "MINUTELY",
	Hourly:   "HOURLY",
	Daily:    "DAILY",
	Weekly:   "WEEKLY",
	Monthly:  "MONTHLY",
	Yearly:   "YEARLY",
}

func (f Freq) String() string {
	if f.Valid() {
		return freqNames[f]
	}
	return "Freq(" + strconv.Itoa(int(f)) + ")"
}

// Valid reports whether f is one of the seven frequencies.
func (f Freq) Valid() bool {
	return int(f) < freqCount
}

// Frequencies returns every frequency, finest first.
func Frequencies() []Freq {
	return []Freq{Secondly, Minutely, Hourly, Daily, Weekly, Monthly, Yearly}
}

// ParseFreq parses a FREQ value, case-insensitively.
func ParseFreq(s string) (Freq, error) {
	for i, name := range freqNames {
		if strings.EqualFold(s, name) {
			return Freq(i), nil
		}
	}
	return 0, fmt.Errorf("unknown frequency %q", s)
}
