package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Ffmpeg decodes real video containers by piping through the ffmpeg and
// ffprobe binaries: one frame at the fixed offset and the mono audio track.
type Ffmpeg struct {
	logger      zerolog.Logger
	ffmpegPath  string
	ffprobePath string
}

// NewFfmpeg creates a new ffmpeg backed decoder, failing when the
// binaries are not on the PATH.
func NewFfmpeg(logger zerolog.Logger) (*Ffmpeg, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	ffprobePath, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found in PATH: %w", err)
	}

	return &Ffmpeg{
		logger:      logger.With().Str("component", "ffmpeg").Logger(),
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}, nil
}

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// DecodeFile decodes the video file at the given path into a clip.
func (f *Ffmpeg) DecodeFile(ctx context.Context, path string) (*Clip, error) {

	duration, err := f.probeDuration(ctx, path)
	if err != nil {
		return nil, err
	}

	offset := time.Duration(float64(duration) * FrameOffset)

	f.logger.Debug().
		Str("path", path).
		Dur("duration", duration).
		Dur("offset", offset).
		Msg("decoding clip")

	clip := &Clip{Duration: duration, SampleRate: AudioSampleRate}

	frame, err := f.extractFrame(ctx, path, offset)
	if err != nil {
		return nil, err
	}
	clip.Frame = frame

	samples, err := f.extractAudio(ctx, path)
	if err != nil {
		f.logger.Warn().Err(err).Str("path", path).Msg("no audio track decoded")
	} else {
		clip.Samples = samples
	}

	return clip, nil
}

func (f *Ffmpeg) probeDuration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, f.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for '%s': %w", path, DecodeErr)
	}

	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, fmt.Errorf("could not parse ffprobe output: %w", DecodeErr)
	}

	dur, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("no duration for '%s': %w", path, DecodeErr)
	}

	return time.Duration(dur * float64(time.Second)), nil
}

func (f *Ffmpeg) extractFrame(ctx context.Context, path string, offset time.Duration) (image.Image, error) {
	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-ss", fmt.Sprintf("%.3f", offset.Seconds()),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"pipe:1",
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("could not extract frame from '%s': %w", path, DecodeErr)
	}

	frame, err := jpeg.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("could not decode extracted frame: %w", DecodeErr)
	}
	return frame, nil
}

func (f *Ffmpeg) extractAudio(ctx context.Context, path string) ([]float64, error) {
	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", AudioSampleRate),
		"-ac", "1",
		"-f", "s16le",
		"pipe:1",
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("could not extract audio from '%s': %w", path, DecodeErr)
	}

	raw := out.Bytes()
	samples := make([]float64, len(raw)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
		samples[i] = float64(v) / 32768
	}
	return samples, nil
}
