package train

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Validation holds the validation metrics of one epoch, computed
// independently from the optimiser's own loss.
type Validation struct {
	Loss float64 `json:"loss"`
	// regression metrics
	MSE float64 `json:"mse,omitempty"`
	MAE float64 `json:"mae,omitempty"`
	R2  float64 `json:"r2,omitempty"`
	// classification metrics
	Accuracy float64 `json:"accuracy,omitempty"`
	AUC      float64 `json:"auc,omitempty"`
}

// regressionMetrics computes MSE, MAE and R2 of the predictions.
func regressionMetrics(predicted, actual []float64) Validation {
	if len(predicted) == 0 {
		return Validation{}
	}

	mse := 0.0
	mae := 0.0
	ssRes := 0.0
	for i, p := range predicted {
		d := p - actual[i]
		mse += d * d
		mae += math.Abs(d)
		ssRes += d * d
	}
	n := float64(len(predicted))
	mse /= n
	mae /= n

	ssTot := stat.Variance(actual, nil) * (n - 1)

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return Validation{
		Loss: mse,
		MSE:  mse,
		MAE:  mae,
		R2:   r2,
	}
}

// classificationMetrics computes accuracy at the 0.5 decision threshold
// and a threshold based AUC approximation from the single confusion
// matrix at that threshold. This is a coarse approximation of true AUC,
// not a full ROC sweep.
func classificationMetrics(predicted, actual []float64, loss float64) Validation {
	if len(predicted) == 0 {
		return Validation{}
	}

	var tp, tn, fp, fn float64
	for i, p := range predicted {
		positive := p >= 0.5
		truth := actual[i] >= 0.5
		switch {
		case positive && truth:
			tp++
		case positive && !truth:
			fp++
		case !positive && truth:
			fn++
		default:
			tn++
		}
	}

	accuracy := (tp + tn) / float64(len(predicted))

	tpr := 0.0
	if tp+fn > 0 {
		tpr = tp / (tp + fn)
	}
	tnr := 0.0
	if tn+fp > 0 {
		tnr = tn / (tn + fp)
	}

	return Validation{
		Loss:     loss,
		Accuracy: accuracy,
		AUC:      (tpr + tnr) / 2,
	}
}
