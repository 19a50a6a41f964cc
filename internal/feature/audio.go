package feature

import (
	coinmath "github.com/clipsense/virality/internal/math"
)

const (
	// audioWindowSeconds bounds how much audio is analysed.
	audioWindowSeconds = 5
	// fftSize is the analysis frame size in samples.
	fftSize = 2048
	// intensityGain rescales the sample RMS into [0,1].
	intensityGain = 2.0
)

// audioWindow bounds the samples to the first few seconds.
func audioWindow(samples []float64, rate int) []float64 {
	limit := audioWindowSeconds * rate
	if rate <= 0 || limit <= 0 || limit > len(samples) {
		return samples
	}
	return samples[:limit]
}

// spectralEntropy computes the Shannon entropy of the magnitude spectrum
// averaged over consecutive analysis frames within the bounded window,
// normalised by the maximum entropy for the bin count. Silence yields
// exactly 0.
func spectralEntropy(samples []float64, rate int) float64 {
	window := audioWindow(samples, rate)
	if len(window) == 0 {
		return 0
	}

	bins := make([]float64, fftSize/2+1)

	frames := 0
	for at := 0; at+fftSize <= len(window); at += fftSize {
		ss := coinmath.FFT(window[at : at+fftSize])
		for i, v := range ss.Values {
			bins[i] += v.Amplitude
		}
		frames++
	}
	if frames == 0 {
		// shorter than one frame: zero-pad to the frame size
		padded := make([]float64, fftSize)
		copy(padded, window)
		ss := coinmath.FFT(padded)
		for i, v := range ss.Values {
			bins[i] += v.Amplitude
		}
	}

	return coinmath.Clamp(coinmath.Entropy(bins), 0, 1)
}

// audioIntensity is the RMS of the raw samples over the bounded window,
// rescaled by a fixed gain and clamped to [0,1].
func audioIntensity(samples []float64, rate int) float64 {
	window := audioWindow(samples, rate)
	return coinmath.Clamp(coinmath.RMS(window)*intensityGain, 0, 1)
}
