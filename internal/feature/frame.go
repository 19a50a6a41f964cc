package feature

import (
	"image"

	coinmath "github.com/clipsense/virality/internal/math"
)

const (
	// edgeDivisor normalises the mean luminance delta into [0,1].
	edgeDivisor = 128.0
	// colorBits is the number of bits kept per channel when bucketing colors.
	colorBits = 5
	// colorCeiling is the assumed maximum number of distinct buckets.
	colorCeiling = 512.0
)

// edgeIntensity is a cheap proxy for edge density: the mean absolute
// luminance difference between each pixel and its predecessor in scan
// order, normalised by a fixed divisor. It is an approximation and not
// a true Sobel gradient.
func edgeIntensity(frame image.Image) float64 {
	bounds := frame.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w*h < 2 {
		return 0
	}

	sum := 0.0
	prev := 0.0
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := frame.At(x, y).RGBA()
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			if n > 0 {
				d := luma - prev
				if d < 0 {
					d = -d
				}
				sum += d
			}
			prev = luma
			n++
		}
	}

	return coinmath.Clamp(sum/float64(n-1)/edgeDivisor, 0, 1)
}

// colorDiversity approximates color diversity: each pixel is bucketed by
// discarding the low bits of its RGB channels and the count of distinct
// buckets is normalised by an assumed ceiling. It is not a histogram
// distance.
func colorDiversity(frame image.Image) float64 {
	bounds := frame.Bounds()

	shift := 8 - colorBits
	buckets := make(map[uint32]struct{})
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := frame.At(x, y).RGBA()
			key := (r>>8)>>shift<<(2*colorBits) | (g>>8)>>shift<<colorBits | (b>>8)>>shift
			buckets[key] = struct{}{}
		}
	}

	return coinmath.Clamp(float64(len(buckets))/colorCeiling, 0, 1)
}
