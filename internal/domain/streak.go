package domain

import "time"

// DaysBetween returns the difference in UTC calendar days between from
// and to. Calendar dates rather than elapsed time, so time-of-day and
// DST shifts cannot skew streak math.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.UTC().Date()
	ty, tm, td := to.UTC().Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// SameMonth reports whether both times fall in the same UTC calendar
// month. Used to decide monthly XP rollover.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.UTC().Date()
	by, bm, _ := b.UTC().Date()
	return ay == by && am == bm
}

// NextStreak is the authoritative continuity rule applied when XP is
// awarded. Premium accounts get one grace day: the streak survives a
// single missed day.
func NextStreak(current int, lastActive *time.Time, premium bool, now time.Time) int {
	if lastActive == nil {
		return 1
	}
	switch gap := DaysBetween(*lastActive, now); {
	case gap == 0:
		return current
	case gap == 1:
		return current + 1
	case gap == 2 && premium:
		return current + 1
	default:
		return 1
	}
}

// EffectiveStreak derives the display value from stored state without
// writing anything. The stored counter only decays on the next award;
// dashboards must show 0 as soon as the streak is broken. Kept separate
// from NextStreak so the read path can never mutate state.
func EffectiveStreak(current int, lastActive *time.Time, premium bool, now time.Time) int {
	if lastActive == nil || current == 0 {
		return 0
	}
	switch gap := DaysBetween(*lastActive, now); {
	case gap == 0, gap == 1:
		return current
	case gap == 2 && premium:
		return current
	default:
		return 0
	}
}
