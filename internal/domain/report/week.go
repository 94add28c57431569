package report

import (
	"time"

	"github.com/courierlog/backend/internal/domain/shared"
)

// WeekRange is an inclusive Monday-start week.
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// SnapToMonday returns the Monday of the week containing d.
func SnapToMonday(d time.Time) time.Time {
	d = shared.TruncateToDay(d)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

// WeekOf builds the Monday-to-Sunday range containing d.
func WeekOf(d time.Time) WeekRange {
	start := SnapToMonday(d)
	return WeekRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// DefaultWeek resolves the payroll week when no start date was given: the
// current Monday-start week, except on a Monday itself, when the report
// steps back to the last fully completed week.
func DefaultWeek(now time.Time) WeekRange {
	if now.Weekday() == time.Monday {
		return WeekOf(now.AddDate(0, 0, -7))
	}
	return WeekOf(now)
}

// ResolveWeek picks the payroll week from an optional YYYY-MM-DD start
// parameter, snapping an explicit date back to its Monday.
func ResolveWeek(param string, now time.Time) (WeekRange, error) {
	if param == "" {
		return DefaultWeek(now), nil
	}
	d, err := shared.ParseDate(param)
	if err != nil {
		return WeekRange{}, err
	}
	return WeekOf(d), nil
}

// Contains reports whether the date falls inside the range.
func (w WeekRange) Contains(d time.Time) bool {
	d = shared.TruncateToDay(d)
	return !d.Before(w.Start) && !d.After(w.End)
}
