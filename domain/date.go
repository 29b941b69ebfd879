package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/araddon/dateparse"
	"strings"
	"time"
)

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "2 January 2006"
)

var (
	ErrEmptyDate       = errors.New("date is empty")
	ErrUnparseableDate = errors.New("unrecognized date")
)

// Date is a calendar day held as local midnight.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.In(time.Local).Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// ParseDate accepts the ISO form, the display form and, failing both, any
// spelling dateparse can read unambiguously. "03/04/2025" is refused since
// it reads as either March or April.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrEmptyDate
	}

	for _, layout := range []string{DateLayout, DisplayDateLayout, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return calendarDate(t), nil
		}
	}

	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q: %v", ErrUnparseableDate, s, err)
	}
	return calendarDate(t), nil
}

// calendarDate keeps the day as written, whatever zone t was parsed in.
func calendarDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

func (d Date) AddDays(n int) Date {
	return NewDate(d.Time.AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// Display is the form list screens show, e.g. "26 March 2025".
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format(DisplayDateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
