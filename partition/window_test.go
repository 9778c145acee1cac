package partition

import (
	"regexp"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/frain-dev/partrotate/config"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestWindow_CreateBoundaries(t *testing.T) {
	loc := mustLocation(t, "Europe/London")
	now := time.Date(2024, 10, 23, 14, 30, 12, 0, loc)

	w := NewWindow(now, loc, config.WindowConfiguration{LeadDays: 7, RetainDays: 45, StepCount: 8, IntervalDays: 1})

	want := []string{
		"p20241030", "p20241031", "p20241101", "p20241102",
		"p20241103", "p20241104", "p20241105", "p20241106",
	}
	for i, id := range want {
		require.Equal(t, id, w.CreateBoundary(i).Identifier())
	}

	// the boundary is midnight of the boundary date, never a sub-day instant
	first := w.CreateBoundary(0)
	require.Equal(t, time.Date(2024, 10, 30, 0, 0, 0, 0, loc).UnixMilli(), first.UnixMilli())
}

func TestWindow_RetireBoundaries(t *testing.T) {
	loc := mustLocation(t, "Europe/London")
	now := time.Date(2024, 10, 23, 9, 0, 0, 0, loc)

	w := NewWindow(now, loc, config.WindowConfiguration{LeadDays: 7, RetainDays: 45, StepCount: 8, IntervalDays: 1})

	want := []string{
		"p20240909", "p20240910", "p20240911", "p20240912",
		"p20240913", "p20240914", "p20240915", "p20240916",
	}
	for i, id := range want {
		require.Equal(t, id, w.RetireBoundary(i).Identifier())
	}
}

func TestWindow_SameDayIsDeterministic(t *testing.T) {
	loc := mustLocation(t, "Europe/London")
	cfg := config.WindowConfiguration{LeadDays: 7, RetainDays: 45, StepCount: 8, IntervalDays: 1}

	morning := NewWindow(time.Date(2024, 10, 23, 0, 0, 1, 0, loc), loc, cfg)
	evening := NewWindow(time.Date(2024, 10, 23, 23, 59, 59, 0, loc), loc, cfg)

	for i := 0; i < cfg.StepCount; i++ {
		require.Equal(t, morning.CreateBoundary(i), evening.CreateBoundary(i))
		require.Equal(t, morning.RetireBoundary(i), evening.RetireBoundary(i))
	}
}

func TestParseIdentifier(t *testing.T) {
	loc := mustLocation(t, "Europe/London")

	d, err := ParseIdentifier("p20241030", loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 10, 30, 0, 0, 0, 0, loc), d)

	for _, malformed := range []string{"", "p2024103", "p202410301", "20241030", "q20241030", "p2024103a"} {
		_, err := ParseIdentifier(malformed, loc)
		require.Error(t, err, "expected %q to be rejected", malformed)
	}
}

var identifierShape = regexp.MustCompile(`^p\d{8}$`)

func TestProperty_IdentifierRoundTrip(t *testing.T) {
	loc := mustLocation(t, "Europe/London")
	base := time.Date(2024, 10, 23, 12, 0, 0, 0, loc)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("identifier is p plus 8 digits and parses back to its date", prop.ForAll(
		func(offset int) bool {
			d := base.AddDate(0, 0, offset)
			b := Boundary{Date: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)}

			id := b.Identifier()
			if !identifierShape.MatchString(id) {
				return false
			}

			parsed, err := ParseIdentifier(id, loc)
			if err != nil {
				return false
			}
			return parsed.Year() == d.Year() && parsed.Month() == d.Month() && parsed.Day() == d.Day()
		},
		gen.IntRange(-50000, 50000),
	))

	properties.TestingRun(t)
}

func TestProperty_CreateBoundariesAdvance(t *testing.T) {
	loc := mustLocation(t, "Europe/London")
	now := time.Date(2024, 10, 23, 12, 0, 0, 0, loc)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("later offsets produce strictly later boundaries, all past now by at least lead days", prop.ForAll(
		func(i, j, lead, interval int) bool {
			if i >= j {
				i, j = j, i+1
			}

			w := NewWindow(now, loc, config.WindowConfiguration{LeadDays: lead, RetainDays: 10000, StepCount: j + 1, IntervalDays: interval})

			bi, bj := w.CreateBoundary(i), w.CreateBoundary(j)
			if !bi.Date.Before(bj.Date) {
				return false
			}
			// lexical order tracks chronological order
			if !(bi.Identifier() < bj.Identifier()) {
				return false
			}

			minDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, lead)
			return !bi.Date.Before(minDate) && bi.Date.After(now)
		},
		gen.IntRange(0, 500),
		gen.IntRange(0, 500),
		gen.IntRange(1, 60),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
