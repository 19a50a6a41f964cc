package predict

import (
	"errors"
	"fmt"
	"sync"

	"github.com/clipsense/virality/internal/feature"
	coinmath "github.com/clipsense/virality/internal/math"
	"github.com/clipsense/virality/internal/media"
	"github.com/clipsense/virality/internal/metrics"
	"github.com/clipsense/virality/internal/model"
	"github.com/clipsense/virality/internal/nn"
	"github.com/rs/zerolog/log"
)

// NotLoadedErr signals a predict call on a handle with no model loaded.
var NotLoadedErr = errors.New("model not loaded")

// Result is the outcome of one prediction.
type Result struct {
	Vector model.Vector `json:"vector"`
	// Score is the raw network output in [0,1].
	Score float64 `json:"score"`
	// Viral is the derived binary label at the 0.5 threshold (classification).
	Viral bool `json:"viral"`
	// Views is the denormalised prediction in original units (regression).
	Views float64 `json:"views,omitempty"`
	Mode  nn.Mode `json:"mode"`
}

// Handle is an explicit, caller-owned model resource with a
// load/replace/dispose lifecycle. There is no process-wide singleton.
type Handle struct {
	mu       sync.RWMutex
	artifact *model.Artifact
	net      *nn.Network
}

// NewHandle creates an empty model handle.
func NewHandle() *Handle {
	return &Handle{}
}

// Load installs the artifact into the handle after validating that it
// carries weights, scaler stats and, for regression, the label transform.
func (h *Handle) Load(artifact *model.Artifact) error {
	if artifact == nil {
		return fmt.Errorf("nil artifact: %w", model.IncompleteArtifactErr)
	}
	if err := artifact.Validate(); err != nil {
		return err
	}

	net, err := nn.FromWeights(artifact.Weights)
	if err != nil {
		return fmt.Errorf("could not restore network: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.artifact = artifact
	h.net = net

	log.Info().Str("name", artifact.Name).Str("run", artifact.Run).Msg("model loaded")
	return nil
}

// Replace swaps in a new artifact, superseding the previous one.
func (h *Handle) Replace(artifact *model.Artifact) error {
	return h.Load(artifact)
}

// Dispose releases the model; subsequent predictions fail until a new Load.
func (h *Handle) Dispose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.artifact = nil
	h.net = nil
}

// Loaded reports whether a model is installed.
func (h *Handle) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.net != nil
}

// Predict decodes the media bytes and runs extraction, normalisation and
// network evaluation for one sample. It refuses to do any extraction work
// when no model is loaded.
func (h *Handle) Predict(mediaBytes []byte, title, description string) (Result, error) {
	if !h.Loaded() {
		metrics.Observer.Prediction("not_loaded")
		return Result{}, NotLoadedErr
	}

	clip, err := media.Decode(mediaBytes)
	if err != nil {
		metrics.Observer.Prediction("decode_error")
		return Result{}, err
	}

	return h.PredictClip(clip, title, description)
}

// PredictClip runs the prediction on an already decoded clip.
func (h *Handle) PredictClip(clip *media.Clip, title, description string) (Result, error) {
	h.mu.RLock()
	artifact, net := h.artifact, h.net
	h.mu.RUnlock()

	if net == nil {
		metrics.Observer.Prediction("not_loaded")
		return Result{}, NotLoadedErr
	}

	vector, err := feature.Extract(clip, title, description)
	if err != nil {
		metrics.Observer.Prediction("invalid_feature")
		return Result{}, err
	}

	normalised, err := artifact.Scaler.Apply(vector.Values)
	if err != nil {
		return Result{}, fmt.Errorf("could not normalise features: %w", err)
	}

	out := net.Eval(normalised)
	if !coinmath.IsFinite(out) {
		metrics.Observer.Prediction("invalid_output")
		return Result{}, fmt.Errorf("non-finite network output: %w", feature.InvalidFeatureErr)
	}

	result := Result{
		Vector: vector,
		Mode:   artifact.Weights.Mode,
	}

	switch artifact.Weights.Mode {
	case nn.Regression:
		result.Score = coinmath.Clamp(out, 0, 1)
		result.Views = artifact.Label.Inverse(result.Score)
	default:
		result.Score = coinmath.Clamp(out, 0, 1)
		result.Viral = result.Score >= 0.5
	}

	metrics.Observer.Prediction("ok")

	log.Debug().
		Str("vector", vector.String()).
		Float64("score", result.Score).
		Msg("prediction")

	return result, nil
}
