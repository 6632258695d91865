package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ShiftType string

const (
	ShiftStandard ShiftType = "Standard"
	ShiftShifting ShiftType = "Shifting"
)

// ShiftDefinition is either a StandardShift or a ShiftingShift.
type ShiftDefinition interface {
	Type() ShiftType
	NightDifferential() bool
	Label() string
	isShift()
}

// StandardShift is a split morning/afternoon schedule.
type StandardShift struct {
	Name                string
	MorningIn           ClockTime
	MorningOut          ClockTime
	AfternoonIn         ClockTime
	AfternoonOut        ClockTime
	IsNightDifferential bool
}

func (StandardShift) Type() ShiftType           { return ShiftStandard }
func (s StandardShift) NightDifferential() bool { return s.IsNightDifferential }
func (StandardShift) isShift()                  {}

func (s StandardShift) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%s-%s / %s-%s", s.MorningIn, s.MorningOut, s.AfternoonIn, s.AfternoonOut)
}

// ShiftingShift is a single continuous span which may cross midnight.
type ShiftingShift struct {
	Name                string
	Start               ClockTime
	End                 ClockTime
	IsNightDifferential bool
}

func (ShiftingShift) Type() ShiftType           { return ShiftShifting }
func (s ShiftingShift) NightDifferential() bool { return s.IsNightDifferential }
func (ShiftingShift) isShift()                  {}

func (s ShiftingShift) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Span returns the scheduled length of the shift. An end at or before the start
// wraps past midnight.
func (s ShiftingShift) Span() time.Duration {
	minutes := int(s.End) - int(s.Start)
	if s.End <= s.Start {
		minutes += MinutesPerDay
	}
	return time.Duration(minutes) * time.Minute
}

const MinutesPerDay = 24 * 60

// ClockTime is a wall-clock time of day in minutes since midnight.
type ClockTime int

// ParseClockTime parses "HH:MM" or "HH:MM:SS". Seconds are ignored.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedShiftTime, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedShiftTime, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedShiftTime, s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedShiftTime, s)
		}
	}

	return ClockTime(hours*60 + minutes), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
