package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/clipsense/virality/internal/nn"
	"github.com/clipsense/virality/internal/scale"
)

// IncompleteArtifactErr signals a model artifact missing a mandatory part.
var IncompleteArtifactErr = errors.New("incomplete model artifact")

// Artifact is the persisted model: topology and weights together with the
// fitted scaler stats and, for regression, the label transform.
// The scaler stats are mandatory: loading weights without matching stats
// is a configuration error, never silently defaulted.
type Artifact struct {
	Name      string                `json:"name"`
	Run       string                `json:"run"`
	CreatedAt time.Time             `json:"created_at"`
	Weights   nn.Weights            `json:"weights"`
	Scaler    scale.Stats           `json:"scaler"`
	Label     *scale.LabelTransform `json:"label,omitempty"`
}

// Validate checks that the artifact carries everything inference needs.
func (a *Artifact) Validate() error {
	if len(a.Weights.Topology) == 0 {
		return fmt.Errorf("no weights: %w", IncompleteArtifactErr)
	}
	if a.Scaler.Dim() == 0 {
		return fmt.Errorf("no scaler stats: %w", IncompleteArtifactErr)
	}
	if a.Scaler.Dim() != a.Weights.Topology[0] {
		return fmt.Errorf("scaler dimension %d does not match input layer %d: %w",
			a.Scaler.Dim(), a.Weights.Topology[0], IncompleteArtifactErr)
	}
	if a.Weights.Mode == nn.Regression && a.Label == nil {
		return fmt.Errorf("no label transform for regression: %w", IncompleteArtifactErr)
	}
	return nil
}
