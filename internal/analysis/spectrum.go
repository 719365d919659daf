package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the lower half of the signal's
// spectrum. Any sample count works; non power-of-2 lengths go through
// the Bluestein transform.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantFrequency estimates the strongest non-DC frequency in a
// uniformly sampled signal, in cycles per second. The signal is mean
// detrended so a settled offset does not mask the ringing. Signals too
// short to carry a spectrum return 0.
func DominantFrequency(samples []float64, dt float64) float64 {
	n := len(samples)
	if n < 4 || dt <= 0 {
		return 0
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	detrended := make([]float64, n)
	for i, v := range samples {
		detrended[i] = v - mean
	}

	ps := PowerSpectrum(detrended)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}

	return float64(peak) / (float64(n) * dt)
}
