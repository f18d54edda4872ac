package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("interval end must be after start")

// Interval is a half-open time range [start, end). Two intervals that touch
// at a boundary do not overlap, so back-to-back bookings are legal.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

func (iv Interval) Start() time.Time {
	return iv.start
}

func (iv Interval) End() time.Time {
	return iv.end
}

func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

func (iv Interval) Hours() float64 {
	return iv.Duration().Hours()
}

func (iv Interval) IsZero() bool {
	return iv.start.IsZero() && iv.end.IsZero()
}

// Overlaps reports whether two half-open intervals intersect: [a,b) and
// [c,d) overlap iff a < d && c < b. The test is symmetric.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

// Contains reports whether other lies entirely within iv.
func (iv Interval) Contains(other Interval) bool {
	return !iv.start.After(other.start) && !iv.end.Before(other.end)
}

// Intersection returns the overlapping sub-interval. The boolean is false
// when the intervals do not overlap.
func (iv Interval) Intersection(other Interval) (Interval, bool) {
	if !iv.Overlaps(other) {
		return Interval{}, false
	}
	start := iv.start
	if other.start.After(start) {
		start = other.start
	}
	end := iv.end
	if other.end.Before(end) {
		end = other.end
	}
	return Interval{start: start, end: end}, true
}

// ToTstzrange renders the interval in PostgreSQL range literal form.
func (iv Interval) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", iv.start.Format(time.RFC3339), iv.end.Format(time.RFC3339))
}
