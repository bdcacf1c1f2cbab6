package availability

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate validates and parses a "YYYY-MM-DD" date string.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, NewValidationError(field, "invalid date, expected YYYY-MM-DD: "+value)
	}
	return d, nil
}

// ValidateTime checks a zero-padded 24-hour "HH:MM" string. The zero padding
// is load-bearing: it makes lexicographic string comparison equal to
// chronological comparison everywhere times are ordered.
func ValidateTime(field, value string) error {
	if len(value) != 5 || value[2] != ':' {
		return NewValidationError(field, "invalid time, expected HH:MM: "+value)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return NewValidationError(field, "invalid time, expected HH:MM: "+value)
		}
	}
	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[3]-'0')*10 + int(value[4]-'0')
	if hour > 23 || minute > 59 {
		return NewValidationError(field, "time out of range: "+value)
	}
	return nil
}

// ValidateInterval checks a start/end pair and requires start < end.
func ValidateInterval(field, start, end string) error {
	if err := ValidateTime(field+".start", start); err != nil {
		return err
	}
	if err := ValidateTime(field+".end", end); err != nil {
		return err
	}
	if start >= end {
		return NewValidationError(field, "start must be before end: "+start+"-"+end)
	}
	return nil
}

// WeekdayName returns the lowercase weekday name used on the wire.
func WeekdayName(day time.Weekday) string {
	return strings.ToLower(day.String())
}
