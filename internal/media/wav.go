package media

import (
	"encoding/binary"
	"fmt"
	"time"
)

// decodeWav parses a RIFF/WAVE PCM stream into mono samples in [-1,1].
// Multi-channel audio is mono-reduced by averaging the channels.
func decodeWav(b []byte) (*Clip, error) {

	var (
		format        uint16
		channels      int
		sampleRate    int
		bitsPerSample int
		data          []byte
	)

	// walk the RIFF chunks
	off := 12
	for off+8 <= len(b) {
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		off += 8
		if off+size > len(b) {
			return nil, fmt.Errorf("truncated chunk '%s': %w", id, DecodeErr)
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("short fmt chunk: %w", DecodeErr)
			}
			format = binary.LittleEndian.Uint16(b[off : off+2])
			channels = int(binary.LittleEndian.Uint16(b[off+2 : off+4]))
			sampleRate = int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(b[off+14 : off+16]))
		case "data":
			data = b[off : off+size]
		}
		// chunks are word aligned
		off += size + size%2
	}

	if format != 1 {
		return nil, fmt.Errorf("unsupported wav format %d: %w", format, DecodeErr)
	}
	if channels < 1 || sampleRate <= 0 {
		return nil, fmt.Errorf("invalid wav header: %w", DecodeErr)
	}
	if bitsPerSample != 8 && bitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported wav depth %d: %w", bitsPerSample, DecodeErr)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no data chunk: %w", DecodeErr)
	}

	bytesPerSample := bitsPerSample / 8
	frameSize := bytesPerSample * channels
	frames := len(data) / frameSize

	samples := make([]float64, frames)
	for f := 0; f < frames; f++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			at := f*frameSize + c*bytesPerSample
			switch bitsPerSample {
			case 8:
				sum += (float64(data[at]) - 128) / 128
			case 16:
				v := int16(binary.LittleEndian.Uint16(data[at : at+2]))
				sum += float64(v) / 32768
			}
		}
		samples[f] = sum / float64(channels)
	}

	return &Clip{
		Samples:    samples,
		SampleRate: sampleRate,
		Duration:   time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second)),
	}, nil
}
