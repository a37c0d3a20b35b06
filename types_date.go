package kasku

import (
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// WireDateFormat is the D/M/Y form the remote endpoint expects in write payloads.
const WireDateFormat = "02/01/2006"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in its canonical ISO form.
func (d Date) String() string { return d.time().Format(DateFormat) }

// DMY formats the date the way the endpoint expects it in write payloads.
func (d Date) DMY() string { return d.time().Format(WireDateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// IsToday reports whether the date is today in local time.
func (d Date) IsToday() bool { return d == Today() }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Today returns the current date in local time.
func Today() Date { return NewDate(time.Now().Date()) }

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// dayNames and monthNames carry the id-ID display forms the ledger has always used.
var dayNames = [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// DayName returns the Indonesian name for the weekday.
func (d Date) DayName() string { return dayNames[d.Weekday()] }

// Display formats the date for humans: "Senin, 2 Jan 2006".
func (d Date) Display() string {
	return fmt.Sprintf("%s, %d %s %d", d.DayName(), d.d, monthNames[d.m-1], d.y)
}

// servedFormats lists the shapes the endpoint has been seen serving for row
// dates. Spreadsheet dates serialize as full ISO timestamps, manual entries
// as plain dates.
var servedFormats = []string{time.RFC3339, "2006-01-02T15:04:05.000Z", DateFormat, readDateFormat}

// ParseServed parses a date string as served by the endpoint.
func ParseServed(str string) (Date, error) {
	for _, f := range servedFormats {
		if on, err := time.Parse(f, str); err == nil {
			return NewDate(on.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized served date %q", str)
}

// DisplayServed formats a served date string for humans, falling back to the
// raw string when it cannot be parsed. Rows hand-edited in the spreadsheet
// sometimes hold free text.
func DisplayServed(str string) string {
	d, err := ParseServed(str)
	if err != nil {
		return str
	}
	return d.Display()
}
