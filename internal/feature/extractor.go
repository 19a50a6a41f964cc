package feature

import (
	"errors"
	"fmt"

	coinmath "github.com/clipsense/virality/internal/math"
	"github.com/clipsense/virality/internal/media"
	"github.com/clipsense/virality/internal/metrics"
	"github.com/clipsense/virality/internal/model"
	"github.com/rs/zerolog/log"
)

// InvalidFeatureErr signals that the extracted vector is unusable.
var InvalidFeatureErr = errors.New("invalid feature vector")

// Extract derives the fixed-order feature vector from a decoded clip and
// the title/description text. It is deterministic for the same clip bytes
// and sampling policy.
//
// Any non-finite field is clamped to 0 with a data quality warning, so
// that NaN never reaches the network. When every field is unusable the
// extraction fails instead.
func Extract(clip *media.Clip, title, description string) (model.Vector, error) {

	values := make([]float64, model.Dim)
	values[0] = float64(len([]rune(title)))
	values[1] = float64(len([]rune(description)))

	if clip != nil && clip.HasFrame() {
		values[2] = edgeIntensity(clip.Frame)
		values[3] = colorDiversity(clip.Frame)
	}

	if clip != nil && clip.HasAudio() {
		values[4] = spectralEntropy(clip.Samples, clip.SampleRate)
		values[5] = audioIntensity(clip.Samples, clip.SampleRate)
	}

	unusable := 0
	for i, v := range values {
		if !coinmath.IsFinite(v) {
			log.Warn().Str("column", model.Columns[i]).Msg("non-finite feature clamped to 0")
			values[i] = 0
			unusable++
		}
	}
	if unusable == len(values) {
		metrics.Observer.Extraction("invalid")
		return model.Vector{}, fmt.Errorf("all %d features non-finite: %w", unusable, InvalidFeatureErr)
	}

	metrics.Observer.Extraction("ok")

	return model.NewVector(values...), nil
}
