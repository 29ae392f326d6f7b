package calc

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestFormatDurationModulo(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{0.2, "1s"},
		{59, "59s"},
		{59.01, "1m 0s"},
		{60, "1m 0s"},
		{61, "1m 1s"},
		{3599, "59m 59s"},
		{3600, "1h 0m 0s"},
		{3661, "1h 1m 1s"},
		{86399, "23h 59m 59s"},
		{86400, "1d 0h 0m 0s"},
		{90061, "1d 1h 1m 1s"},
		{183845, "2d 3h 4m 5s"},
		{-0.5, "0s"},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.seconds, 'f', -1, 64), func(t *testing.T) {
			got, err := FormatDuration(tt.seconds, true)
			if err != nil {
				t.Fatalf("FormatDuration(%v, true) unexpected error: %v", tt.seconds, err)
			}
			if got != tt.want {
				t.Errorf("FormatDuration(%v, true) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatDurationPlain(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{42, "42s"},
		{41.0001, "42s"},
		{86400, "86400s"},
		{1e12, "1000000000000s"},
		{-1.5, "-1s"},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.seconds, 'f', -1, 64), func(t *testing.T) {
			got, err := FormatDuration(tt.seconds, false)
			if err != nil {
				t.Fatalf("FormatDuration(%v, false) unexpected error: %v", tt.seconds, err)
			}
			if got != tt.want {
				t.Errorf("FormatDuration(%v, false) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatDurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		modulo  bool
		want    string
	}{
		{"positive infinity", math.Inf(1), true, ErrTypeNonFinite},
		{"negative infinity plain", math.Inf(-1), false, ErrTypeNonFinite},
		{"nan", math.NaN(), false, ErrTypeNonFinite},
		{"too large", 1e19, false, ErrTypeOutOfRange},
		{"too small", -1e19, false, ErrTypeOutOfRange},
		{"negative modulo", -1.5, true, ErrTypeNegativeDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDuration(tt.seconds, tt.modulo)
			if !IsType(err, tt.want) {
				t.Fatalf("FormatDuration(%v, %v) = %q, %v; want error type %s", tt.seconds, tt.modulo, got, err, tt.want)
			}
		})
	}
}

func TestDecompose(t *testing.T) {
	d, err := Decompose(183845)
	if err != nil {
		t.Fatalf("Decompose unexpected error: %v", err)
	}
	want := Duration{Days: 2, Hours: 3, Minutes: 4, Seconds: 5}
	if d != want {
		t.Errorf("Decompose(183845) = %+v, want %+v", d, want)
	}
	if d.Total() != 183845 {
		t.Errorf("Total() = %d, want 183845", d.Total())
	}

	if _, err := Decompose(-1); !IsType(err, ErrTypeNegativeDuration) {
		t.Errorf("Decompose(-1) error = %v, want %s", err, ErrTypeNegativeDuration)
	}
}

func TestParseModulo(t *testing.T) {
	tests := []struct {
		text string
		want int64
	}{
		{"0s", 0},
		{"59s", 59},
		{"1m 0s", 60},
		{"17m 4s", 1024},
		{"59m 59s", 3599},
		{"1h 0m 0s", 3600},
		{"1d 0h 0m 0s", 86400},
		{"2d 3h 4m 5s", 183845},
		// The unit letters are positional, never checked.
		{"2x 3y", 123},
		// Five tokens fall back to seconds from the first token.
		{"7s 1m 1m 1m 1m", 7},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseModulo(tt.text)
			if err != nil {
				t.Fatalf("ParseModulo(%q) unexpected error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParseModulo(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseModuloErrors(t *testing.T) {
	tests := []string{
		"",
		"s",
		"abcs",
		"1m  2s",
		"1h xm",
		"1.5s",
		"1d 2h 3m 4",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			got, err := ParseModulo(text)
			if !IsType(err, ErrTypeParse) {
				t.Fatalf("ParseModulo(%q) = %d, %v; want parse error", text, got, err)
			}
			var numErr *strconv.NumError
			if !errors.As(err, &numErr) && !errors.Is(err, strconv.ErrSyntax) {
				t.Errorf("ParseModulo(%q) error %v does not wrap the strconv cause", text, err)
			}
		})
	}
}

func TestParseModuloOutOfRange(t *testing.T) {
	const max = "106751991167300d 15h 30m 7s"
	got, err := ParseModulo(max)
	if err != nil {
		t.Fatalf("ParseModulo(%q) unexpected error: %v", max, err)
	}
	if got != math.MaxInt64 {
		t.Errorf("ParseModulo(%q) = %d, want %d", max, got, int64(math.MaxInt64))
	}

	tests := []string{
		"106751991167301d 0h 0m 0s",
		"106751991167300d 15h 30m 8s",
		"1m 9223372036854775807s",
		"-106751991167301d 0h 0m 0s",
		"2562047788015216h 0m 0s",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			got, err := ParseModulo(text)
			if !IsType(err, ErrTypeOutOfRange) {
				t.Errorf("ParseModulo(%q) = %d, %v; want out-of-range error", text, got, err)
			}
		})
	}
}

func TestParseModuloRoundTrip(t *testing.T) {
	values := []int64{0, 1, 59, 60, 61, 3599, 3600, 3601, 86399, 86400, 86401, 183845, 1 << 31, 1e12}
	for n := int64(0); n < 5000; n += 7 {
		values = append(values, n)
	}

	for _, n := range values {
		text, err := FormatDuration(float64(n), true)
		if err != nil {
			t.Fatalf("FormatDuration(%d, true) unexpected error: %v", n, err)
		}
		got, err := ParseModulo(text)
		if err != nil {
			t.Fatalf("ParseModulo(%q) unexpected error: %v", text, err)
		}
		if got != n {
			t.Errorf("ParseModulo(FormatDuration(%d)) = %d via %q", n, got, text)
		}
	}
}
