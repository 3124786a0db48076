package progress

import "time"

// Date is a calendar date formatted YYYY-MM-DD. The format sorts
// lexicographically, so dates compare as strings.
type Date string

const dateLayout = "2006-01-02"

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Streak counts consecutive calendar days with at least one recorded outcome.
type Streak struct {
	Count    int  `json:"count"`
	LastDate Date `json:"lastDate"`
}

// DecayStreak returns the streak as it should be shown on now's date: a
// streak whose last activity is before yesterday reads as zero. The stored
// value is not changed.
func DecayStreak(s Streak, now time.Time) Streak {
	if s.LastDate < DateOf(now.AddDate(0, 0, -1)) {
		s.Count = 0
	}
	return s
}

// AdvanceStreak returns the streak after an outcome recorded at now and
// whether it differs from prev. A missing or broken streak restarts at 1,
// activity yesterday extends it, and a second outcome on the same day (or a
// last date in the future) leaves it unchanged.
func AdvanceStreak(prev *Streak, now time.Time) (Streak, bool) {
	today := DateOf(now)
	yesterday := DateOf(now.AddDate(0, 0, -1))

	switch {
	case prev == nil || prev.LastDate < yesterday:
		return Streak{Count: 1, LastDate: today}, true
	case prev.LastDate == yesterday:
		return Streak{Count: prev.Count + 1, LastDate: today}, true
	default:
		return *prev, false
	}
}
