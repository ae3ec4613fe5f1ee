package pkg

import (
	"fmt"
	"time"
)

const (
	// DisplayLayout is the MM/DD/YY format used everywhere in the UI
	DisplayLayout = "01/02/06"
	// SQLLayout is the format ship dates are stored in
	SQLLayout = "2006-01-02"

	HoldLabel  = "On Hold"
	ProofLabel = "Proofs"
)

// Sentinel ship dates. A job shipping on HoldDate is on indefinite hold;
// one shipping on ProofDate is waiting on proofs.
var (
	HoldDate  = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	ProofDate = time.Date(9999, time.December, 30, 0, 0, 0, 0, time.UTC)
)

// ParseError is returned when text is neither a sentinel label nor MM/DD/YY
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse date %q: expected MM/DD/YY, %q or %q", e.Text, HoldLabel, ProofLabel)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidRangeError is returned when a range starts after it ends
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: %s is after %s", e.Start.Format(SQLLayout), e.End.Format(SQLLayout))
}

// TruncateDate drops the time of day, returning midnight UTC of t's calendar date
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now in now's location
func Today(now time.Time) time.Time {
	return TruncateDate(now)
}

// ParseDate turns display text into a calendar date. "On Hold" and "Proofs"
// map to the sentinel dates; two-digit years always land in 2000-2099.
func ParseDate(text string) (time.Time, error) {
	switch text {
	case HoldLabel:
		return HoldDate, nil
	case ProofLabel:
		return ProofDate, nil
	}

	t, err := time.Parse(DisplayLayout, text)
	if err != nil {
		return time.Time{}, &ParseError{Text: text, Err: err}
	}
	// time.Parse puts 69-99 in the 1900s
	if t.Year() < 2000 {
		t = t.AddDate(100, 0, 0)
	}
	return t, nil
}

// FormatDate renders a date as MM/DD/YY. Sentinel dates come out as their
// literal date (12/31/99, 12/30/99); use DateLabel for display.
func FormatDate(d time.Time) string {
	return d.Format(DisplayLayout)
}

// DateLabel renders a date for display, using the sentinel labels for the
// hold and proof dates so that ParseDate(DateLabel(d)) == d for every date
// in 2000-2099 and both sentinels.
func DateLabel(d time.Time) string {
	switch {
	case IsHoldDate(d):
		return HoldLabel
	case IsProofDate(d):
		return ProofLabel
	}
	return FormatDate(d)
}

// SQLDate renders a date in the storage format
func SQLDate(d time.Time) string {
	return d.Format(SQLLayout)
}

// ParseSQLDate parses a stored ship date
func ParseSQLDate(s string) (time.Time, error) {
	t, err := time.Parse(SQLLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Text: s, Err: err}
	}
	return t, nil
}

// IsHoldDate reports whether d is the "On Hold" sentinel
func IsHoldDate(d time.Time) bool {
	return TruncateDate(d).Equal(HoldDate)
}

// IsProofDate reports whether d is the "Proofs" sentinel
func IsProofDate(d time.Time) bool {
	return TruncateDate(d).Equal(ProofDate)
}

// IsSentinelDate reports whether d is either sentinel
func IsSentinelDate(d time.Time) bool {
	return IsHoldDate(d) || IsProofDate(d)
}

// AddDays moves d by n calendar days. Callers must not pass sentinel dates
// to any of the Add/Subtract helpers.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// AddMonths moves d by n months, clamping to the last day of the target
// month (01/31/16 + 1 month = 02/29/16)
func AddMonths(d time.Time, n int) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, n, 0)
	day := d.Day()
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// AddYears moves d by n years; 02/29 becomes 02/28 in non-leap years
func AddYears(d time.Time, n int) time.Time {
	return AddMonths(d, 12*n)
}

func SubtractDays(d time.Time, n int) time.Time   { return AddDays(d, -n) }
func SubtractMonths(d time.Time, n int) time.Time { return AddMonths(d, -n) }
func SubtractYears(d time.Time, n int) time.Time  { return AddYears(d, -n) }

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// shiftText parses text, applies fn and formats the result
func shiftText(text string, fn func(time.Time) time.Time) (string, error) {
	d, err := ParseDate(text)
	if err != nil {
		return "", err
	}
	if IsSentinelDate(d) {
		return "", fmt.Errorf("cannot move %q to another day", text)
	}
	return FormatDate(fn(d)), nil
}

// NextDay returns the display text of the day after text
func NextDay(text string) (string, error) {
	return shiftText(text, func(d time.Time) time.Time { return AddDays(d, 1) })
}

func NextMonth(text string) (string, error) {
	return shiftText(text, func(d time.Time) time.Time { return AddMonths(d, 1) })
}

func NextYear(text string) (string, error) {
	return shiftText(text, func(d time.Time) time.Time { return AddYears(d, 1) })
}

func PreviousDay(text string) (string, error) {
	return shiftText(text, func(d time.Time) time.Time { return SubtractDays(d, 1) })
}

func PreviousMonth(text string) (string, error) {
	return shiftText(text, func(d time.Time) time.Time { return SubtractMonths(d, 1) })
}

func PreviousYear(text string) (string, error) {
	return shiftText(text, func(d time.Time) time.Time { return SubtractYears(d, 1) })
}

// DaysBetween counts whole calendar days from start to end (negative if end
// is earlier)
func DaysBetween(start, end time.Time) int {
	// Unix seconds rather than Sub: a Duration cannot span out to the sentinels
	return int((TruncateDate(end).Unix() - TruncateDate(start).Unix()) / 86400)
}

// DateRange lists every calendar day from start to end inclusive
func DateRange(start, end time.Time) ([]time.Time, error) {
	start, end = TruncateDate(start), TruncateDate(end)
	if start.After(end) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	days := DaysBetween(start, end)
	dates := make([]time.Time, 0, days+1)
	for i := 0; i <= days; i++ {
		dates = append(dates, AddDays(start, i))
	}
	return dates, nil
}

// WeekBounds returns the Sunday that starts d's week and the Saturday that ends it
func WeekBounds(d time.Time) (time.Time, time.Time) {
	// time.Weekday already counts Sunday as 0
	start := SubtractDays(TruncateDate(d), int(d.Weekday()))
	return start, AddDays(start, 6)
}

// FullWeek returns every day of d's week, Sunday through Saturday
func FullWeek(d time.Time) [7]time.Time {
	var week [7]time.Time
	start, _ := WeekBounds(d)
	for i := range week {
		week[i] = AddDays(start, i)
	}
	return week
}
