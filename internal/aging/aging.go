// Package aging decides whether a unit test is still young enough to run.
//
// A unit test runs for maxDays after its last update. For the following
// skipDays it is reported as skipped with a countdown, and after that it is
// dropped silently.
package aging

import (
	"fmt"
	"math"
	"time"
)

type Outcome int

const (
	Young Outcome = iota
	Aged
	Old
)

func (o Outcome) String() string {
	switch o {
	case Young:
		return "young"
	case Aged:
		return "aged"
	case Old:
		return "old"
	default:
		return "unknown"
	}
}

// AgeDisposition is the result of Evaluate. Reason is only set for Aged.
type AgeDisposition struct {
	Outcome Outcome
	Reason  string
}

// Evaluate computes the age disposition of a unit test last updated on
// updated, as seen on now. maxDays == 0 disables aging.
func Evaluate(updated, now time.Time, maxDays, skipDays uint32) AgeDisposition {
	if maxDays == 0 {
		return AgeDisposition{Outcome: Young}
	}

	age := DaysBetween(updated, now)
	if age < int64(maxDays) {
		return AgeDisposition{Outcome: Young}
	}

	silentAge := saturatingAdd(maxDays, skipDays)
	skipLeft := int64(silentAge) - age
	if skipLeft > 0 {
		return AgeDisposition{
			Outcome: Aged,
			Reason:  fmt.Sprintf("Silenced in %d days", skipLeft),
		}
	}

	return AgeDisposition{Outcome: Old}
}

// DaysBetween returns the number of whole calendar days from from to to.
// The result is negative when to is before from. Only the calendar date of
// each value, in its own location, is considered.
func DaysBetween(from, to time.Time) int64 {
	return (Date(to).Unix() - Date(from).Unix()) / secondsPerDay
}

// Date truncates t to midnight UTC of its calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

func saturatingAdd(a, b uint32) uint32 {
	sum := uint64(a) + uint64(b)
	if sum > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(sum)
}
