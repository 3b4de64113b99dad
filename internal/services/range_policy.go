package services

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDay reads a YYYY-MM-DD value. field names the input in the returned
// validation error.
func ParseDay(raw string, field string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, invalidField(field, "must be a YYYY-MM-DD date")
	}
	return parsed, nil
}

// ParseDayRange parses optional inclusive from/to bounds. Empty values leave the
// bound open.
func ParseDayRange(rawFrom string, rawTo string) (*time.Time, *time.Time, error) {
	var from *time.Time
	if strings.TrimSpace(rawFrom) != "" {
		parsed, err := ParseDay(rawFrom, "from")
		if err != nil {
			return nil, nil, err
		}
		from = &parsed
	}

	var to *time.Time
	if strings.TrimSpace(rawTo) != "" {
		parsed, err := ParseDay(rawTo, "to")
		if err != nil {
			return nil, nil, err
		}
		to = &parsed
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, invalidField("to", "must not precede from")
	}
	return from, to, nil
}
