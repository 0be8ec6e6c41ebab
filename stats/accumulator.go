// Package stats accumulates running statistics over float32 map values.
//
// The accumulator is a pure state machine with no I/O. Values are folded in
// with Update as sections are written, and Finalize converts the running sums
// into the mean and rms stored in the map header.
package stats

import (
	"math"

	"github.com/arloliu/ccp4map/format"
)

// PseudoZeroThreshold is the sentinel below which the very first value of a
// pass is adopted as the pseudo-zero offset. Legacy maps use huge negative
// values as missing-value markers; subtracting one of them keeps the running
// sums in a sane range.
const PseudoZeroThreshold = -1.0e10

// Accumulator holds running statistics.
//
// MeanSum and RMSSum are sums over (value - Offset). Mean and RMS hold the
// reported statistics: the finalized values, or values set explicitly.
type Accumulator struct {
	Offset  float32 // pseudo-zero offset
	Min     float32
	Max     float32
	MeanSum float64
	RMSSum  float64
	Total   int64 // number of values accumulated

	Mean float64
	RMS  float64

	bounded bool // Min and Max hold a value, from Set or a first Update
}

// Update folds values into the running sums.
//
// Returns:
//   - int64: total number of values accumulated so far
func (a *Accumulator) Update(values []float32) int64 {
	if len(values) == 0 {
		return a.Total
	}

	if a.Total == 0 && values[0] < PseudoZeroThreshold {
		a.Offset = values[0]
	}
	if !a.bounded {
		a.Min = values[0]
		a.Max = values[0]
		a.bounded = true
	}

	for _, raw := range values {
		v := float64(raw - a.Offset)
		a.MeanSum += v
		a.RMSSum += v * v
		if raw < a.Min {
			a.Min = raw
		}
		if raw > a.Max {
			a.Max = raw
		}
	}
	a.Total += int64(len(values))

	return a.Total
}

// Set overwrites the reported statistics. Min and Max are shared with the
// running state, so later updates widen them rather than replace them.
func (a *Accumulator) Set(minVal, maxVal float32, mean, rms float64) {
	a.bounded = true
	a.Min = minVal
	a.Max = maxVal
	a.Mean = mean
	a.RMS = rms
}

// Resume seeds the accumulator with the statistics of n values summarized
// earlier, so later updates extend them. The offset is reset to zero.
func (a *Accumulator) Resume(minVal, maxVal float32, mean, rms float64, n int64) {
	a.Set(minVal, maxVal, mean, rms)
	if n <= 0 {
		return
	}
	a.Offset = 0
	a.Total = n
	a.MeanSum = mean * float64(n)
	a.RMSSum = (rms*rms + mean*mean) * float64(n)
}

// Finalize derives Mean and RMS from the running sums according to mode.
//
// CloseStored leaves Mean and RMS untouched. CloseZeroOffset zeroes the
// offset before the division even though the sums were accumulated with it,
// so the reported mean is shifted by the pseudo-zero. That inconsistency is
// kept for compatibility with maps written by other CCP4 tools.
func (a *Accumulator) Finalize(mode format.CloseMode) {
	switch mode {
	case format.CloseStored:
		return
	case format.CloseZeroOffset:
		a.Offset = 0
	}

	a.Mean, a.RMS = a.derive()
}

// Snapshot returns the statistics that Finalize(mode) would report, without
// mutating the accumulator. Only CloseStored reports the stored values; any
// other mode derives them from the sums with the compute-mode arithmetic.
func (a *Accumulator) Snapshot(mode format.CloseMode) (minVal, maxVal float32, mean, rms float64) {
	if mode == format.CloseStored {
		return a.Min, a.Max, a.Mean, a.RMS
	}

	mean, rms = a.derive()

	return a.Min, a.Max, mean, rms
}

func (a *Accumulator) derive() (mean, rms float64) {
	if a.Total == 0 {
		return 0, 0
	}

	n := float64(a.Total)
	mean = a.MeanSum / n
	variance := a.RMSSum/n - mean*mean
	if variance > 0 {
		rms = math.Sqrt(variance)
	}

	return mean + float64(a.Offset), rms
}
