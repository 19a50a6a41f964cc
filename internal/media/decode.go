package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog/log"
)

// Decode sniffs the container of the given bytes and decodes them into a clip.
// Supported containers: RIFF/WAVE PCM audio and JPEG/PNG/GIF stills,
// the latter treated as a one-frame video. Anything else is a decode error.
func Decode(b []byte) (*Clip, error) {
	if len(b) < 12 {
		return nil, fmt.Errorf("media too short (%d bytes): %w", len(b), DecodeErr)
	}

	if bytes.HasPrefix(b, []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WAVE")) {
		clip, err := decodeWav(b)
		if err != nil {
			return nil, err
		}
		log.Debug().Int("samples", len(clip.Samples)).Int("rate", clip.SampleRate).Msg("decoded wav clip")
		return clip, nil
	}

	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("unsupported container: %w", DecodeErr)
	}

	log.Debug().Str("format", format).Msg("decoded still frame clip")

	return &Clip{Frame: img}, nil
}
