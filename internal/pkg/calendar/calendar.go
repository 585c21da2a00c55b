// Package calendar turns the date shapes sent by attendance clients into
// canonical (year, month, day) keys.
//
// Dates are the calendar fields of the location handed to Parse. A timestamp
// that carries an offset is converted into that location first, so a browser's
// UTC "...Z" string lands on the local day it was taken. A timestamp without an
// offset is read as already local. Changing this would move existing records
// to different day keys.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date")

	// ErrForeignDayKey is returned when a stored day key names a day outside
	// the month of the bucket holding it.
	ErrForeignDayKey = errors.New("day key does not belong to month")
)

const (
	layoutYearMonth = "2006-01"
	layoutFullDate  = "2006-01-02"
)

// Layouts accepted for timestamps, tried in order. Offset timestamps are
// converted into the caller's location; zone-less ones are parsed in it.
var (
	offsetLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
	}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		layoutFullDate,
	}
)

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Key identifies one calendar day.
type Key struct {
	Year  int
	Month time.Month
	Day   int
}

// NewMonth builds a Month from an already split (year, month) pair.
func NewMonth(year, month int) (Month, error) {
	if year < 1000 || year > 9999 {
		return Month{}, fmt.Errorf("%w: year %d must have 4 digits", ErrInvalidDate, year)
	}
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(yearMonth string) (Month, error) {
	t, err := time.Parse(layoutYearMonth, strings.TrimSpace(yearMonth))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidDate, yearMonth)
	}
	return NewMonth(t.Year(), int(t.Month()))
}

// YearMonth renders the month as "YYYY-MM".
func (m Month) YearMonth() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) String() string {
	return m.YearMonth()
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Day returns the key of day d of the month.
func (m Month) Day(d int) (Key, error) {
	if d < 1 || d > m.Days() {
		return Key{}, fmt.Errorf("%w: day %d not in %s", ErrInvalidDate, d, m.YearMonth())
	}
	return Key{Year: m.Year, Month: m.Month, Day: d}, nil
}

// Parse normalizes a raw date or timestamp string into a day of loc's
// calendar. A nil loc means time.Local.
func Parse(raw string, loc *time.Location) (Key, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Key{}, fmt.Errorf("%w: empty input", ErrInvalidDate)
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t.In(loc))
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return FromTime(t)
		}
	}
	return Key{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// FromTime takes the wall-clock date of t in t's own location.
func FromTime(t time.Time) (Key, error) {
	m, err := NewMonth(t.Year(), int(t.Month()))
	if err != nil {
		return Key{}, err
	}
	return Key{Year: m.Year, Month: m.Month, Day: t.Day()}, nil
}

// FromParts combines a "YYYY-MM" month with a separate day number.
func FromParts(yearMonth string, day int) (Key, error) {
	m, err := ParseMonth(yearMonth)
	if err != nil {
		return Key{}, err
	}
	return m.Day(day)
}

// MonthOf returns the month containing k.
func (k Key) MonthOf() Month {
	return Month{Year: k.Year, Month: k.Month}
}

// YearMonth renders "YYYY-MM".
func (k Key) YearMonth() string {
	return k.MonthOf().YearMonth()
}

// FullDate renders "YYYY-MM-DD".
func (k Key) FullDate() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// DayKey is the key a day is stored under inside its monthly bucket.
func (k Key) DayKey() string {
	return k.FullDate()
}

// LegacyDayKey is the month-local "MM-DD" encoding written by older clients.
func (k Key) LegacyDayKey() string {
	return fmt.Sprintf("%02d-%02d", int(k.Month), k.Day)
}

func (k Key) String() string {
	return k.FullDate()
}

// IsLegacyDayKey reports whether dayKey uses the "MM-DD" encoding.
func IsLegacyDayKey(dayKey string) bool {
	return len(dayKey) == 5 && dayKey[2] == '-'
}

// DecodeDayKey resolves a stored day key against the month of its bucket.
// "MM-DD" keys carry no year and take m's year.
func DecodeDayKey(m Month, dayKey string) (Key, error) {
	var (
		k   Key
		err error
	)
	if IsLegacyDayKey(dayKey) {
		k, err = decodeLegacy(m, dayKey)
	} else {
		var t time.Time
		t, err = time.Parse(layoutFullDate, dayKey)
		if err != nil {
			return Key{}, fmt.Errorf("%w: day key %q", ErrInvalidDate, dayKey)
		}
		k = Key{Year: t.Year(), Month: t.Month(), Day: t.Day()}
	}
	if err != nil {
		return Key{}, err
	}
	if k.MonthOf() != m {
		return Key{}, fmt.Errorf("%w: %q in %s", ErrForeignDayKey, dayKey, m.YearMonth())
	}
	return k, nil
}

func decodeLegacy(m Month, dayKey string) (Key, error) {
	month, errMonth := strconv.Atoi(dayKey[:2])
	day, errDay := strconv.Atoi(dayKey[3:])
	if errMonth != nil || errDay != nil {
		return Key{}, fmt.Errorf("%w: day key %q", ErrInvalidDate, dayKey)
	}
	km, err := NewMonth(m.Year, month)
	if err != nil {
		return Key{}, err
	}
	return km.Day(day)
}
