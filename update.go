package blingslang

import (
	"fmt"
	"strings"

	"github.com/jeargle/blingslang/date"
)

// Recurrence is the rule governing how often an update fires.
type Recurrence int

const (
	Once Recurrence = iota
	Daily
	Weekly
	Biweekly
	Monthly
	Yearly
)

func (r Recurrence) String() string {
	switch r {
	case Once:
		return "once"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Biweekly:
		return "biweekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("recurrence(%d)", int(r))
	}
}

// ParseRecurrence parses a recurrence keyword.
func ParseRecurrence(s string) (Recurrence, error) {
	switch strings.ToLower(s) {
	case "once":
		return Once, nil
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "biweekly":
		return Biweekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Once, fmt.Errorf("unknown recurrence %q", s)
	}
}

// AccountUpdate is a scheduled, possibly recurring, signed change to its
// owning account's value. When Target is set the update is a transfer: the
// owner applies its signed amount and the target is credited the opposite
// amount the same day, so internal transfers never change a group's total.
type AccountUpdate struct {
	Amount     float64
	Recurrence Recurrence

	// Day is the recurrence parameter: ISO weekday (1=Monday..7=Sunday) for
	// weekly/biweekly, day-of-month for monthly, day-of-year for yearly.
	// Unused for once and daily.
	Day int

	// On is the firing date for a once update.
	On date.Date

	Target *Account

	// next is the next trigger date, owned by the running simulation.
	next date.Date
}

// schedule computes the first trigger date at or after start.
//
// Initial placement for weekly/monthly/yearly uses day-count approximations
// relative to the target day-of-period (a fixed 30-day month and 365-day
// year), while rescheduling after a firing uses exact calendar-unit
// increments. The asymmetry is deliberate.
func (u *AccountUpdate) schedule(start date.Date) error {
	switch u.Recurrence {
	case Once:
		u.next = u.On
	case Daily:
		u.next = start.Add(1)
	case Weekly, Biweekly:
		cw := start.ISOWeekday()
		if u.Day > cw {
			u.next = start.Add(u.Day - cw)
		} else {
			// Same or earlier weekday wraps to next week.
			u.next = start.Add(7 + u.Day - cw)
		}
	case Monthly:
		// Fixed 30-day month approximation, not calendar-month arithmetic.
		cd := start.Day()
		if cd <= u.Day {
			u.next = start.Add(u.Day - cd)
		} else {
			u.next = start.Add(30 + u.Day - cd)
		}
	case Yearly:
		// Day-of-year with a fixed 365-day approximation, mirroring monthly.
		yd := start.YearDay()
		if yd <= u.Day {
			u.next = start.Add(u.Day - yd)
		} else {
			u.next = start.Add(365 + u.Day - yd)
		}
	default:
		return fmt.Errorf("cannot schedule unsupported recurrence %s", u.Recurrence)
	}
	return nil
}

// reschedule advances the trigger date after a firing on 'on'.
func (u *AccountUpdate) reschedule(on date.Date) error {
	switch u.Recurrence {
	case Once:
		u.next = date.Date{} // fires exactly one time
	case Daily:
		u.next = on.Add(1)
	case Weekly:
		u.next = on.Add(7)
	case Biweekly:
		u.next = on.Add(14)
	case Monthly:
		u.next = on.AddMonths(1)
	case Yearly:
		u.next = on.AddYears(1)
	default:
		return fmt.Errorf("cannot reschedule unsupported recurrence %s", u.Recurrence)
	}
	return nil
}

// due reports whether the update fires on the given day.
func (u *AccountUpdate) due(on date.Date) bool { return !u.next.IsZero() && u.next == on }
