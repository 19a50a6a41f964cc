package math

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes the one-sided magnitude spectrum of the given samples.
func FFT(xx []float64) *Spectrum {
	cc := fft.FFTReal(xx)

	ss := newSpectrum()
	for i, n := range cc {
		if i > len(cc)/2 {
			continue
		}
		ss.add(RNum{
			Amplitude: cmplx.Abs(n),
			Frequency: i,
		})
	}

	return ss
}

// Spectrum is a collection of spectra
type Spectrum struct {
	Values    []RNum
	Amplitude float64
}

func newSpectrum() *Spectrum {
	return &Spectrum{
		Values: make([]RNum, 0),
	}
}

func (s *Spectrum) add(r RNum) {
	s.Values = append(s.Values, r)
	s.Amplitude += r.Amplitude
}

// Mean returns the mean amplitude over all bins.
func (s *Spectrum) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Amplitude / float64(len(s.Values))
}

// RMS returns the root mean square amplitude over all bins.
func (s *Spectrum) RMS() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v.Amplitude * v.Amplitude
	}
	return math.Sqrt(sum / float64(len(s.Values)))
}

// Entropy returns the Shannon entropy in bits of the amplitude distribution,
// normalised to [0,1] by the maximum entropy for the bin count.
// A zero spectrum has entropy 0.
func (s *Spectrum) Entropy() float64 {
	pp := make([]float64, len(s.Values))
	for i, v := range s.Values {
		pp[i] = v.Amplitude
	}
	return Entropy(pp)
}

// RNum defines the attributes of one spectral bin.
type RNum struct {
	Amplitude float64
	Frequency int
}
