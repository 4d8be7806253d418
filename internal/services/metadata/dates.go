package metadata

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// CanonicalDateLayout is the zero-padded form dates are stored in
const CanonicalDateLayout = "2006-01-02"

// ErrInvalidDate is returned for non-empty values that are not a calendar date
var ErrInvalidDate = errors.New("invalid date")

// year, month and day with one shared separator; month and day may be one digit
var lenientDate = regexp.MustCompile(`^(\d{4})([-/.])(\d{1,2})([-/.])(\d{1,2})$`)

// NormalizeDate converts a provider date to YYYY-MM-DD.
// Empty input yields None; unparsable input yields ErrInvalidDate.
func NormalizeDate(raw string) (mo.Option[string], error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return mo.None[string](), nil
	}

	if m := lenientDate.FindStringSubmatch(value); m != nil && m[2] == m[4] {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[3])
		day, _ := strconv.Atoi(m[5])
		if d, ok := calendarDate(year, month, day); ok {
			return mo.Some(d.Format(CanonicalDateLayout)), nil
		}
		return mo.None[string](), fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	// Full timestamps keep their own calendar day
	if ts, err := time.Parse(time.RFC3339, value); err == nil && ts.Year() >= 1 {
		return mo.Some(ts.Format(CanonicalDateLayout)), nil
	}

	return mo.None[string](), fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// calendarDate rejects year zero and values time.Date would silently roll
// over, such as Feb 30
func calendarDate(year, month, day int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// DatePointer flattens a normalised date into the nullable column form
func DatePointer(d mo.Option[string]) *string {
	if v, ok := d.Get(); ok {
		return &v
	}
	return nil
}

// Year returns the year of a canonical date, or 0 when absent
func Year(d *string) int {
	if d == nil || len(*d) < 4 {
		return 0
	}
	y, err := strconv.Atoi((*d)[:4])
	if err != nil {
		return 0
	}
	return y
}
