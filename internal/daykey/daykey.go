// Package daykey turns instants into canonical calendar-day keys in a fixed
// reference timezone.
//
// A Key has the form "Y-M-D" without zero padding (for example "2025-3-30").
// Keys are compared and stepped as calendar dates, never as strings and never
// by subtracting 24 hours, because a local day is 23 or 25 hours long across a
// daylight-saving transition.
package daykey

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is the reference timezone the game's day boundaries follow.
const DefaultTimezone = "Europe/Paris"

// Key is the canonical string for one calendar day.
type Key string

func (k Key) String() string { return string(k) }

// Date is a civil calendar date with no time or location attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Key formats d as a canonical day key.
func (d Date) Key() Key {
	return Key(fmt.Sprintf("%d-%d-%d", d.Year, int(d.Month), d.Day))
}

// AddDays steps d by n calendar days. Month and year rollover follow
// time.Date normalization, computed at UTC noon so no offset can leak in.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// Prev returns the calendar day before d.
func (d Date) Prev() Date { return d.AddDays(-1) }

// Next returns the calendar day after d.
func (d Date) Next() Date { return d.AddDays(1) }

// Compare returns -1, 0 or +1 comparing year, then month, then day.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// OnOrBefore reports whether d is the same day as o or earlier.
func (d Date) OnOrBefore(o Date) bool { return d.Compare(o) <= 0 }

// DaysUntil returns the number of calendar days from d to o.
func (d Date) DaysUntil(o Date) int {
	from := time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
	to := time.Date(o.Year, o.Month, o.Day, 12, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Parse validates s as a calendar date in "Y-M-D" form and returns its
// canonical key. Zero-padded input ("2025-03-05") is accepted and normalized.
func Parse(s string) (Key, error) {
	d, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return d.Key(), nil
}

// Date returns the calendar date k names.
func (k Key) Date() (Date, error) {
	return parseDate(string(k))
}

func parseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("day key %q: want Y-M-D", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return Date{}, fmt.Errorf("day key %q: invalid component %q", s, p)
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	if d.Year > 9999 || DateOf(time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)) != d {
		return Date{}, fmt.Errorf("day key %q: not a calendar date", s)
	}
	return d, nil
}

// Previous returns the key of the calendar day before k.
func Previous(k Key) (Key, error) {
	d, err := k.Date()
	if err != nil {
		return "", err
	}
	return d.Prev().Key(), nil
}

// IsOnOrBefore compares two keys as calendar dates.
func IsOnOrBefore(a, b Key) (bool, error) {
	da, err := a.Date()
	if err != nil {
		return false, err
	}
	db, err := b.Date()
	if err != nil {
		return false, err
	}
	return da.OnOrBefore(db), nil
}

// Resolver computes day keys in one reference timezone.
type Resolver struct {
	loc *time.Location
	now func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the resolver's notion of "now".
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// NewResolver returns a resolver for loc. A nil loc means UTC.
func NewResolver(loc *time.Location, opts ...Option) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	r := &Resolver{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadResolver loads the named IANA timezone and returns a resolver for it.
func LoadResolver(name string, opts ...Option) (*Resolver, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return NewResolver(loc, opts...), nil
}

// Location returns the reference timezone.
func (r *Resolver) Location() *time.Location { return r.loc }

// Now returns the resolver's current instant.
func (r *Resolver) Now() time.Time { return r.now() }

// DateAt returns the calendar date containing t in the reference timezone.
func (r *Resolver) DateAt(t time.Time) Date {
	return DateOf(t.In(r.loc))
}

// Key returns the day key containing t in the reference timezone.
func (r *Resolver) Key(t time.Time) Key {
	return r.DateAt(t).Key()
}

// Today returns the day key for the current instant.
func (r *Resolver) Today() Key {
	return r.Key(r.now())
}

// Yesterday returns the day key before Today.
func (r *Resolver) Yesterday() Key {
	return r.DateAt(r.now()).Prev().Key()
}

// UntilNextDay returns how long until the next day boundary after t.
func (r *Resolver) UntilNextDay(t time.Time) time.Duration {
	next := r.DateAt(t).Next()
	midnight := time.Date(next.Year, next.Month, next.Day, 0, 0, 0, 0, r.loc)
	return midnight.Sub(t)
}
