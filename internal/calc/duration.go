package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// Duration is a whole number of seconds split into days, hours, minutes and
// seconds. Each part below Days is smaller than one of the next larger part.
type Duration struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// Decompose splits total seconds into a Duration. Negative totals are
// rejected.
func Decompose(total int64) (Duration, error) {
	if total < 0 {
		return Duration{}, NewNegativeDurationError(total)
	}

	var d Duration
	d.Days = total / secondsPerDay
	total %= secondsPerDay
	d.Hours = total / secondsPerHour
	total %= secondsPerHour
	d.Minutes = total / secondsPerMinute
	total %= secondsPerMinute
	d.Seconds = total
	return d, nil
}

// Total returns the number of seconds d represents. It wraps around when
// the parts are too large for an int64; see checkedTotal.
func (d Duration) Total() int64 {
	return d.Days*secondsPerDay + d.Hours*secondsPerHour + d.Minutes*secondsPerMinute + d.Seconds
}

// checkedTotal is Total that reports false instead of overflowing
func (d Duration) checkedTotal() (int64, bool) {
	var total int64
	for _, p := range [...]struct{ n, unit int64 }{
		{d.Days, secondsPerDay},
		{d.Hours, secondsPerHour},
		{d.Minutes, secondsPerMinute},
		{d.Seconds, 1},
	} {
		if p.n > math.MaxInt64/p.unit || p.n < math.MinInt64/p.unit {
			return 0, false
		}
		v := p.n * p.unit
		if (v > 0 && total > math.MaxInt64-v) || (v < 0 && total < math.MinInt64-v) {
			return 0, false
		}
		total += v
	}
	return total, true
}

// String renders d in modulo form. Leading zero parts are left out, every
// part after the first non-zero one is kept:
//
//	1d 0h 0m 0s
//	1h 0m 0s
//	1m 0s
//	0s
func (d Duration) String() string {
	switch {
	case d.Days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", d.Days, d.Hours, d.Minutes, d.Seconds)
	case d.Hours > 0:
		return fmt.Sprintf("%dh %dm %ds", d.Hours, d.Minutes, d.Seconds)
	case d.Minutes > 0:
		return fmt.Sprintf("%dm %ds", d.Minutes, d.Seconds)
	default:
		return fmt.Sprintf("%ds", d.Seconds)
	}
}

// CeilSeconds rounds seconds up to a whole count. NaN, infinities and values
// outside the int64 range are errors.
func CeilSeconds(seconds float64) (int64, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, NewNonFiniteError(seconds)
	}
	c := math.Ceil(seconds)
	if c >= math.MaxInt64 || c < math.MinInt64 {
		return 0, NewOutOfRangeError(seconds)
	}
	return int64(c), nil
}

// FormatDuration rounds seconds up and renders it. With modulo unset the
// result is the bare count ("1024s", "-3s"); with modulo set it is the
// Duration form ("17m 4s") and negative values are rejected.
func FormatDuration(seconds float64, modulo bool) (string, error) {
	total, err := CeilSeconds(seconds)
	if err != nil {
		return "", err
	}
	if !modulo {
		return strconv.FormatInt(total, 10) + "s", nil
	}

	d, err := Decompose(total)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// ParseModulo converts modulo form back into seconds. Tokens are separated
// by single spaces and always end with seconds: four tokens are days, hours,
// minutes and seconds, three drop the days, two drop the hours. Any other
// count reads seconds from the first token only. The last character of each
// token is treated as its unit letter and is not checked. Totals beyond the
// int64 range fail with an out-of-range error.
func ParseModulo(text string) (int64, error) {
	tokens := strings.Split(text, " ")

	var parts []*int64
	var d Duration
	switch len(tokens) {
	case 4:
		parts = []*int64{&d.Days, &d.Hours, &d.Minutes, &d.Seconds}
	case 3:
		parts = []*int64{&d.Hours, &d.Minutes, &d.Seconds}
	case 2:
		parts = []*int64{&d.Minutes, &d.Seconds}
	default:
		parts = []*int64{&d.Seconds}
	}

	for i, part := range parts {
		n, err := parseToken(tokens[i])
		if err != nil {
			return 0, NewParseError(text, tokens[i], err)
		}
		*part = n
	}

	total, ok := d.checkedTotal()
	if !ok {
		return 0, NewTotalOutOfRangeError(text)
	}
	return total, nil
}

// parseToken strips the unit letter from a token like "42m" and parses the
// number in front of it.
func parseToken(token string) (int64, error) {
	_, size := utf8.DecodeLastRuneInString(token)
	if size == 0 {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(token[:len(token)-size], 10, 64)
}
