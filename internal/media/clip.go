package media

import (
	"errors"
	"image"
	"time"
)

// DecodeErr signals unreadable or corrupt media.
var DecodeErr = errors.New("could not decode media")

// FrameOffset is the fixed fractional offset into the clip duration at
// which the representative frame is taken. The choice is a policy
// constant so that extraction stays deterministic for the same bytes.
const FrameOffset = 0.3

// AudioSampleRate is the mono sample rate audio is reduced to.
const AudioSampleRate = 16000

// Clip is decoded media: one representative frame and the mono audio track.
// Either part may be absent for degenerate inputs (a still image, an
// audio-only file).
type Clip struct {
	Frame      image.Image
	Samples    []float64
	SampleRate int
	Duration   time.Duration
}

// HasFrame reports whether a frame was decoded.
func (c *Clip) HasFrame() bool {
	return c.Frame != nil
}

// HasAudio reports whether audio samples were decoded.
func (c *Clip) HasAudio() bool {
	return len(c.Samples) > 0
}
