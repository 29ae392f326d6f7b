// Package calc estimates how long a download takes and formats the result.
//
// Sizes and speeds are converted to bytes and bytes per second with a fixed
// multiplier table: decimal units (kB, MB, GB) use powers of 1000, binary
// units (KiB, MiB, GiB) powers of 1024. Durations are rendered either as a
// plain second count ("1024s") or in modulo form ("17m 4s"), and modulo form
// parses back into seconds with ParseModulo.
package calc

// Request describes one estimate: how much there is to fetch and how fast.
// No range checks are made; a zero speed yields an infinite estimate and
// negative inputs yield negative ones.
type Request struct {
	SizeUnit      SizeUnit
	SpeedUnit     SpeedUnit
	FileSize      float64
	DownloadSpeed float64
}

// NewRequest creates a request for fileSize in sizeUnit at downloadSpeed in
// speedUnit.
func NewRequest(sizeUnit SizeUnit, speedUnit SpeedUnit, fileSize, downloadSpeed float64) Request {
	return Request{
		SizeUnit:      sizeUnit,
		SpeedUnit:     speedUnit,
		FileSize:      fileSize,
		DownloadSpeed: downloadSpeed,
	}
}

// Bytes returns the file size in bytes
func (r Request) Bytes() float64 {
	return r.FileSize * r.SizeUnit.Multiplier()
}

// BytesPerSecond returns the download speed in bytes per second
func (r Request) BytesPerSecond() float64 {
	return r.DownloadSpeed * r.SpeedUnit.Multiplier()
}

// RemainingSeconds returns the unrounded download time in seconds. A zero
// speed is not intercepted: the result is +Inf, -Inf or NaN.
func (r Request) RemainingSeconds() float64 {
	return r.Bytes() / r.BytesPerSecond()
}

// RemainingTime formats RemainingSeconds, see FormatDuration.
func (r Request) RemainingTime(modulo bool) (string, error) {
	return FormatDuration(r.RemainingSeconds(), modulo)
}
