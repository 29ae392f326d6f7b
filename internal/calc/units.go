package calc

import (
	"strconv"
	"strings"
)

// SizeUnit is the unit a file size is given in
type SizeUnit int

const (
	Byte SizeUnit = iota
	KiloByte
	KibiByte
	MegaByte
	MebiByte
	GigaByte
	GibiByte
)

// SpeedUnit is the unit a transfer rate is given in
type SpeedUnit int

const (
	BytesPerSecond SpeedUnit = iota
	KilobytesPerSecond
	KibibytesPerSecond
	MegabytesPerSecond
	MebibytesPerSecond
	GigabytesPerSecond
	GibibytesPerSecond
)

// Decimal units are powers of 1000, binary units powers of 1024.
// Every value is exactly representable as a float64.
const (
	kilo = 1e3
	mega = 1e6
	giga = 1e9
	kibi = 1 << 10
	mebi = 1 << 20
	gibi = 1 << 30
)

// multipliers is indexed by both SizeUnit and SpeedUnit; the two enums share
// their ordering.
var multipliers = [...]float64{
	Byte:     1,
	KiloByte: kilo,
	KibiByte: kibi,
	MegaByte: mega,
	MebiByte: mebi,
	GigaByte: giga,
	GibiByte: gibi,
}

var sizeSymbols = [...]string{
	Byte:     "B",
	KiloByte: "kB",
	KibiByte: "KiB",
	MegaByte: "MB",
	MebiByte: "MiB",
	GigaByte: "GB",
	GibiByte: "GiB",
}

var sizeNames = [...]string{
	Byte:     "BYTE",
	KiloByte: "KILO_BYTE",
	KibiByte: "KIBI_BYTE",
	MegaByte: "MEGA_BYTE",
	MebiByte: "MEBI_BYTE",
	GigaByte: "GIGA_BYTE",
	GibiByte: "GIBI_BYTE",
}

var speedNames = [...]string{
	BytesPerSecond:     "BYTES_PER_SECOND",
	KilobytesPerSecond: "KILOBYTES_PER_SECOND",
	KibibytesPerSecond: "KIBIBYTES_PER_SECOND",
	MegabytesPerSecond: "MEGABYTES_PER_SECOND",
	MebibytesPerSecond: "MEBIBYTES_PER_SECOND",
	GigabytesPerSecond: "GIGABYTES_PER_SECOND",
	GibibytesPerSecond: "GIBIBYTES_PER_SECOND",
}

// longNames maps the spelled-out unit word (singular) to its index.
var longNames = map[string]int{
	"byte":     int(Byte),
	"kilobyte": int(KiloByte),
	"kibibyte": int(KibiByte),
	"megabyte": int(MegaByte),
	"mebibyte": int(MebiByte),
	"gigabyte": int(GigaByte),
	"gibibyte": int(GibiByte),
}

// Valid reports whether u is one of the declared size units.
func (u SizeUnit) Valid() bool {
	return u >= Byte && u <= GibiByte
}

// Multiplier returns the number of bytes in one u. It panics on an
// undeclared unit.
func (u SizeUnit) Multiplier() float64 {
	return multipliers[u]
}

// String returns the unit symbol, e.g. "MiB"
func (u SizeUnit) String() string {
	if !u.Valid() {
		return "SizeUnit(" + strconv.Itoa(int(u)) + ")"
	}
	return sizeSymbols[u]
}

// Valid reports whether u is one of the declared speed units.
func (u SpeedUnit) Valid() bool {
	return u >= BytesPerSecond && u <= GibibytesPerSecond
}

// Multiplier returns the number of bytes per second in one u. It panics on an
// undeclared unit.
func (u SpeedUnit) Multiplier() float64 {
	return multipliers[u]
}

// String returns the unit symbol, e.g. "MB/s"
func (u SpeedUnit) String() string {
	if !u.Valid() {
		return "SpeedUnit(" + strconv.Itoa(int(u)) + ")"
	}
	return sizeSymbols[u] + "/s"
}

// ParseSizeUnit parses a size unit. It accepts the symbol ("MiB"), the
// spelled-out name ("mebibyte", "mebibytes") and the enum name
// ("MEBI_BYTE"), all case-insensitive.
func ParseSizeUnit(s string) (SizeUnit, error) {
	key := strings.TrimSpace(s)
	if key == "" {
		return 0, NewUnknownUnitError(s)
	}
	for i, sym := range sizeSymbols {
		if strings.EqualFold(key, sym) || strings.EqualFold(key, sizeNames[i]) {
			return SizeUnit(i), nil
		}
	}
	lower := strings.ToLower(key)
	if i, ok := longNames[strings.TrimSuffix(lower, "s")]; ok {
		return SizeUnit(i), nil
	}
	return 0, NewUnknownUnitError(s)
}

// ParseSpeedUnit parses a speed unit. It accepts the symbol ("MB/s"), the
// symbol with "ps" ("MBps"), the spelled-out name ("megabytes/s",
// "megabytes per second") and the enum name ("MEGABYTES_PER_SECOND"), all
// case-insensitive.
func ParseSpeedUnit(s string) (SpeedUnit, error) {
	key := strings.TrimSpace(s)
	for i, name := range speedNames {
		if strings.EqualFold(key, name) {
			return SpeedUnit(i), nil
		}
	}

	lower := strings.ToLower(key)
	var base string
	switch {
	case strings.HasSuffix(lower, "/s"):
		base = strings.TrimSuffix(lower, "/s")
	case strings.HasSuffix(lower, " per second"):
		base = strings.TrimSuffix(lower, " per second")
	case strings.HasSuffix(lower, "ps"):
		base = strings.TrimSuffix(lower, "ps")
	default:
		return 0, NewUnknownUnitError(s)
	}

	size, err := ParseSizeUnit(base)
	if err != nil {
		return 0, NewUnknownUnitError(s)
	}
	return SpeedUnit(size), nil
}
