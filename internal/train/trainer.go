package train

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/clipsense/virality/internal/dataset"
	coinmath "github.com/clipsense/virality/internal/math"
	"github.com/clipsense/virality/internal/metrics"
	"github.com/clipsense/virality/internal/model"
	"github.com/clipsense/virality/internal/nn"
	"github.com/clipsense/virality/internal/scale"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// DivergedErr signals a non-finite loss during training.
	DivergedErr = errors.New("training diverged")
	// InProgressErr signals a concurrent Fit call on the same trainer.
	InProgressErr = errors.New("training already in progress")
)

// Config defines the training run parameters.
type Config struct {
	Name      string  `json:"name"`
	Mode      nn.Mode `json:"mode"`
	Epochs    int     `json:"epochs"`
	BatchSize int     `json:"batch_size"`
	Rate      float64 `json:"rate"`
	Dropout   float64 `json:"dropout"`
	Split     float64 `json:"split"`
	Seed      int64   `json:"seed"`
}

// Defaults fills in sane values for anything left unset.
func (c Config) Defaults() Config {
	if c.Name == "" {
		c.Name = "virality"
	}
	if c.Mode == "" {
		c.Mode = nn.Classification
	}
	if c.Epochs <= 0 {
		c.Epochs = 100
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 8
	}
	if c.Rate <= 0 {
		c.Rate = 0.05
	}
	if c.Dropout < 0 || c.Dropout >= 1 {
		c.Dropout = nn.DropoutRate
	}
	if c.Split <= 0 || c.Split > 1 {
		c.Split = 0.8
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// Trainer owns the network parameters for the duration of a run.
// Only one Fit call may be active at a time per trainer: a concurrent
// call is rejected, not queued.
type Trainer struct {
	cfg     Config
	running int32
	onEpoch func(Epoch)
}

// New creates a trainer for the given config.
func New(cfg Config) *Trainer {
	return &Trainer{cfg: cfg.Defaults()}
}

// OnEpoch registers an observer called synchronously after every epoch.
// It decouples progress reporting from the training loop; rendering
// belongs to the caller.
func (t *Trainer) OnEpoch(fn func(Epoch)) {
	t.onEpoch = fn
}

// Fit runs the epoch loop over the dataset and returns the trained
// artifact and the metric history.
//
// Cancellation through the context is observed between epochs: the run
// finishes the in-flight epoch, keeps the history accumulated so far and
// ends with the Stopped status. A non-finite loss aborts with DivergedErr.
func (t *Trainer) Fit(ctx context.Context, ds *dataset.Dataset) (*model.Artifact, *History, error) {
	if !atomic.CompareAndSwapInt32(&t.running, 0, 1) {
		return nil, nil, InProgressErr
	}
	defer atomic.StoreInt32(&t.running, 0)

	cfg := t.cfg
	run := uuid.New().String()
	history := &History{Run: run, Status: Done}

	// the normalisation stats are fitted once, on the training table,
	// and reused byte for byte at inference
	stats, err := scale.Fit(ds.X())
	if err != nil {
		return nil, nil, fmt.Errorf("could not fit scaler: %w", err)
	}

	var label *scale.LabelTransform
	targets := ds.Y()
	if cfg.Mode == nn.Regression {
		lt, err := scale.FitLabel(ds.Y())
		if err != nil {
			return nil, nil, fmt.Errorf("could not fit label transform: %w", err)
		}
		label = &lt
		targets = make([]float64, ds.Len())
		for i, y := range ds.Y() {
			targets[i] = lt.Forward(y)
		}
	}

	normalised := make([][]float64, ds.Len())
	for i, row := range ds.X() {
		normalised[i], err = stats.Apply(row)
		if err != nil {
			return nil, nil, fmt.Errorf("could not normalise row %d: %w", i, err)
		}
	}

	trainX, trainY, valX, valY := split(normalised, targets, cfg.Split, cfg.Seed)

	net := nn.New(stats.Dim(), cfg.Mode, cfg.Seed)
	rnd := rand.New(rand.NewSource(cfg.Seed))

	log.Info().
		Str("run", run).
		Str("mode", string(cfg.Mode)).
		Int("train", len(trainX)).
		Int("validation", len(valX)).
		Int("epochs", cfg.Epochs).
		Msg("starting training")

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			history.Status = Stopped
			log.Info().Str("run", run).Int("epoch", epoch).Msg("training stopped")
			metrics.Observer.Training(string(Stopped))
			return t.artifact(run, net, stats, label), history, nil
		default:
		}

		perm := rnd.Perm(len(trainX))

		loss := 0.0
		batches := 0
		for at := 0; at < len(perm); at += cfg.BatchSize {
			end := at + cfg.BatchSize
			if end > len(perm) {
				end = len(perm)
			}
			xx := make([][]float64, 0, end-at)
			yy := make([]float64, 0, end-at)
			for _, p := range perm[at:end] {
				xx = append(xx, trainX[p])
				yy = append(yy, trainY[p])
			}
			loss += net.TrainBatch(xx, yy, cfg.Rate, cfg.Dropout)
			batches++
		}
		loss /= float64(batches)

		if !coinmath.IsFinite(loss) {
			history.Status = Diverged
			metrics.Observer.Training(string(Diverged))
			return nil, history, fmt.Errorf("non-finite loss at epoch %d: %w", epoch, DivergedErr)
		}

		entry := Epoch{
			Epoch:      epoch,
			Loss:       loss,
			Validation: t.validate(net, valX, valY),
		}
		history.append(entry)
		metrics.Observer.Epoch()

		if t.onEpoch != nil {
			t.onEpoch(entry)
		}
	}

	log.Info().Str("run", run).Int("epochs", len(history.Epochs)).Msg("training done")
	metrics.Observer.Training(string(Done))

	return t.artifact(run, net, stats, label), history, nil
}

func (t *Trainer) artifact(run string, net *nn.Network, stats scale.Stats, label *scale.LabelTransform) *model.Artifact {
	return &model.Artifact{
		Name:      t.cfg.Name,
		Run:       run,
		CreatedAt: time.Now(),
		Weights:   net.Weights(),
		Scaler:    stats,
		Label:     label,
	}
}

// validate runs the held out set through a pure forward pass; dropout is
// structurally absent here.
func (t *Trainer) validate(net *nn.Network, valX [][]float64, valY []float64) Validation {
	predicted := make([]float64, len(valX))
	for i, x := range valX {
		predicted[i] = net.Eval(x)
	}

	if t.cfg.Mode == nn.Regression {
		return regressionMetrics(predicted, valY)
	}
	return classificationMetrics(predicted, valY, nn.Classification.Loss(predicted, valY))
}

func split(xx [][]float64, yy []float64, ratio float64, seed int64) (trainX [][]float64, trainY []float64, valX [][]float64, valY []float64) {
	perm := rand.New(rand.NewSource(seed)).Perm(len(xx))

	cut := int(float64(len(xx)) * ratio)
	if cut < 1 {
		cut = 1
	}

	for i, p := range perm {
		if i < cut {
			trainX = append(trainX, xx[p])
			trainY = append(trainY, yy[p])
		} else {
			valX = append(valX, xx[p])
			valY = append(valY, yy[p])
		}
	}
	return trainX, trainY, valX, valY
}
