// Package validate holds the input checks for users, exercises and log queries.
// Every failure is an *Error that matches ErrInvalid with errors.Is.
package validate

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted date shape.
const DateLayout = "2006-01-02"

const (
	MsgUsername     = "Username is required and cannot be empty or whitespace only"
	MsgDescription  = "Description is required and should be a string"
	MsgDuration     = "Duration is required and should be an integer and it should be positive values."
	MsgDateFormat   = "Date format should be in YYYY-MM-DD format"
	MsgDateCalendar = "Date is not a valid calendar date"
	MsgLimit        = "Invalid limit!"
)

// ErrInvalid is the sentinel every validation error matches.
var ErrInvalid = errors.New("invalid input")

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Error describes why a single field was rejected.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string { return e.Msg }

// Is makes errors.Is(err, ErrInvalid) true for every validation error.
func (e *Error) Is(target error) bool { return target == ErrInvalid }

func invalid(field, msg string) error { return &Error{Field: field, Msg: msg} }

// Username returns the trimmed username or an error when nothing is left.
func Username(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", invalid("username", MsgUsername)
	}
	return trimmed, nil
}

// Description accepts only non-empty strings. Whitespace-only is allowed.
func Description(v any) (string, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", invalid("description", MsgDescription)
	}
	return s, nil
}

// Duration parses a JSON number or numeric string into a positive whole number.
func Duration(v any) (int64, error) {
	var f float64
	switch d := v.(type) {
	case int:
		f = float64(d)
	case int64:
		f = float64(d)
	case float64:
		f = d
	case json.Number:
		parsed, err := strconv.ParseFloat(d.String(), 64)
		if err != nil {
			return 0, invalid("duration", MsgDuration)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(d), 64)
		if err != nil {
			return 0, invalid("duration", MsgDuration)
		}
		f = parsed
	default:
		return 0, invalid("duration", MsgDuration)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f != math.Trunc(f) || f >= 1<<63 {
		return 0, invalid("duration", MsgDuration)
	}
	return int64(f), nil
}

// DateFormat checks the YYYY-MM-DD shape. An empty string passes.
func DateFormat(s string) error {
	if s != "" && !dateRe.MatchString(s) {
		return invalid("date", MsgDateFormat)
	}
	return nil
}

// DateCalendar checks that s names a real day and is already in canonical form,
// so 2021-02-30 is rejected even though it has the right shape.
func DateCalendar(s string) error {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return invalid("date", MsgDateCalendar)
	}
	return nil
}

// Date runs DateFormat then DateCalendar; a format failure short-circuits.
func Date(s string) error {
	if err := DateFormat(s); err != nil {
		return err
	}
	return DateCalendar(s)
}

// Limit parses an optional row cap. Empty or negative means no limit.
func Limit(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, invalid("limit", MsgLimit)
	}
	if n < 0 {
		return nil, nil
	}
	return &n, nil
}

// Today formats now as a UTC calendar date.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}
