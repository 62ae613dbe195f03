// Package analysis provides frequency analysis of recorded rope motion,
// used to find the dominant oscillation of a particle track.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data, whose length must be
// a power of two (see Pad). Radix-2 Cooley-Tukey.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		out := make([]complex128, n)
		for i, v := range data {
			out[i] = complex(v, 0)
		}
		return out
	}
	if n%2 != 0 {
		panic("analysis: fft length must be a power of two")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		out[k] = feven[k] + w*fodd[k]
		out[k+n/2] = feven[k] - w*fodd[k]
	}
	return out
}

// PowerSpectrum returns the magnitude of the first half of the transform.
func PowerSpectrum(data []float64) []float64 {
	f := FFT(data)
	ps := make([]float64, len(f)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}
	return ps
}

// Pad zero-extends data to the next power-of-two length.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// DominantFrequency returns the strongest non-DC frequency in hz of a signal
// sampled every dt seconds, together with its power. It returns 0, 0 for
// signals too short to analyze.
func DominantFrequency(data []float64, dt float64) (hz, power float64) {
	if len(data) < 4 || dt <= 0 {
		return 0, 0
	}

	padded := Pad(data)
	ps := PowerSpectrum(padded)

	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > power {
			power = ps[i]
			maxIdx = i
		}
	}

	hz = float64(maxIdx) / (float64(len(padded)) * dt)
	return hz, power
}
