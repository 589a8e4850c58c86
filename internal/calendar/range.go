package calendar

import "fmt"

// Range is an inclusive span of calendar days.
type Range struct {
	Start Date
	End   Date
}

// NewRange builds a range and validates it.
func NewRange(start, end Date) (Range, error) {
	r := Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate rejects ranges with a missing bound or an end before the start.
func (r Range) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: missing bound", ErrInvalidDateRange)
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange, r.Start, r.End)
	}
	return nil
}

// Len returns the number of days in the range, or 0 if it is invalid.
func (r Range) Len() int {
	if r.Validate() != nil {
		return 0
	}
	return r.End.DaysSince(r.Start) + 1
}

// Contains reports whether d lies within the range, bounds included.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days lists every day of the range in ascending order.
func (r Range) Days() []Date {
	n := r.Len()
	days := make([]Date, n)
	for i := 0; i < n; i++ {
		days[i] = r.Start.AddDays(i)
	}
	return days
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}
