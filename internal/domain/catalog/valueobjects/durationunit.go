package valueobjects

import "time"

// DurationUnit is the unit of a billing cycle's period length.
type DurationUnit string

const (
	DurationDays    DurationUnit = "days"
	DurationWeeks   DurationUnit = "weeks"
	DurationMonths  DurationUnit = "months"
	DurationYears   DurationUnit = "years"
	DurationForever DurationUnit = "forever"
)

func (u DurationUnit) String() string {
	return string(u)
}

func (u DurationUnit) IsValid() bool {
	switch u {
	case DurationDays, DurationWeeks, DurationMonths, DurationYears, DurationForever:
		return true
	}
	return false
}

// AddTo advances start by value units using calendar arithmetic.
// Month and year additions clamp to the last day of the target month when the
// source day does not exist (Jan 31 + 1 month = Feb 28/29). Returns nil for
// the forever unit.
func (u DurationUnit) AddTo(start time.Time, value int) *time.Time {
	var end time.Time
	switch u {
	case DurationDays:
		end = start.AddDate(0, 0, value)
	case DurationWeeks:
		end = start.AddDate(0, 0, value*7)
	case DurationMonths:
		end = addMonthsClamped(start, value)
	case DurationYears:
		end = addMonthsClamped(start, value*12)
	case DurationForever:
		return nil
	default:
		return nil
	}
	return &end
}

// addMonthsClamped adds months without the normalization Go's AddDate applies
// (Jan 31 + 1 month must not spill into March).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	// Compute the target year/month first, then clamp the day.
	totalMonths := int(month) - 1 + months
	targetYear := year + totalMonths/12
	targetMonth := time.Month(totalMonths%12 + 1)
	if totalMonths < 0 {
		// Go's integer division truncates toward zero; normalize for negatives.
		targetYear = year + (totalMonths-11)/12
		targetMonth = time.Month((totalMonths%12+12)%12 + 1)
	}

	if max := daysInMonth(targetYear, targetMonth); day > max {
		day = max
	}
	return time.Date(targetYear, targetMonth, day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
