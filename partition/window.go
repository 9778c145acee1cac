package partition

import (
	"fmt"
	"time"

	"github.com/frain-dev/partrotate/config"
)

const (
	identifierPrefix = "p"
	identifierLayout = "20060102"
)

// Boundary is the exclusive upper bound of one daily range partition:
// midnight of Date in the window's location.
type Boundary struct {
	Date time.Time
}

// Identifier returns the partition name for the boundary date, "p" followed
// by zero-padded YYYYMMDD. Zero padding keeps lexical and chronological
// order aligned.
func (b Boundary) Identifier() string {
	return identifierPrefix + b.Date.Format(identifierLayout)
}

// UnixMilli is the boundary instant used in VALUES LESS THAN clauses.
func (b Boundary) UnixMilli() int64 {
	return b.Date.UnixMilli()
}

// ParseIdentifier recovers the calendar date encoded in a partition name.
func ParseIdentifier(identifier string, loc *time.Location) (time.Time, error) {
	if len(identifier) != len(identifierPrefix)+len(identifierLayout) || identifier[:len(identifierPrefix)] != identifierPrefix {
		return time.Time{}, fmt.Errorf("malformed partition identifier '%s'", identifier)
	}

	return time.ParseInLocation(identifierLayout, identifier[len(identifierPrefix):], loc)
}

// Window computes partition boundaries for day offsets relative to a
// reference instant sampled once per run. All arithmetic is date-based;
// there is no partial-day rounding.
type Window struct {
	now          time.Time
	leadDays     int
	retainDays   int
	stepCount    int
	intervalDays int
}

func NewWindow(now time.Time, loc *time.Location, cfg config.WindowConfiguration) *Window {
	return &Window{
		now:          now.In(loc),
		leadDays:     cfg.LeadDays,
		retainDays:   cfg.RetainDays,
		stepCount:    cfg.StepCount,
		intervalDays: cfg.IntervalDays,
	}
}

func (w *Window) StepCount() int {
	return w.stepCount
}

// CreateBoundary is the boundary for the partition created ahead of now at
// offset i: now + leadDays + i*intervalDays.
func (w *Window) CreateBoundary(i int) Boundary {
	return w.boundaryAt(w.leadDays + i*w.intervalDays)
}

// RetireBoundary is the boundary for the partition retired behind now at
// offset i. A partition's upper bound is exclusive, so pD stores rows from
// day D-1; the partition whose rows are exactly retainDays old is
// p(now - retainDays + 1). Successive offsets walk forward one day to cover
// runs that were missed.
func (w *Window) RetireBoundary(i int) Boundary {
	return w.boundaryAt(-w.retainDays + 1 + i)
}

func (w *Window) boundaryAt(days int) Boundary {
	d := w.now.AddDate(0, 0, days)
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())

	return Boundary{Date: midnight}
}
