package train

// Status is the terminal state of a training run.
type Status string

const (
	// Done means the run completed all configured epochs.
	Done Status = "done"
	// Stopped means the run observed a stop request between epochs.
	// It is not an error: the accumulated history is preserved.
	Stopped Status = "stopped"
	// Diverged means the run aborted on a non-finite loss.
	Diverged Status = "diverged"
)

// Epoch is one per-epoch metric snapshot.
type Epoch struct {
	Epoch      int        `json:"epoch"`
	Loss       float64    `json:"loss"`
	Validation Validation `json:"validation"`
}

// History is the append-only record of a training run.
// It is read-only after the run completes and is meant for charting and
// export, never consumed by inference.
type History struct {
	Run    string  `json:"run"`
	Status Status  `json:"status"`
	Epochs []Epoch `json:"epochs"`
}

func (h *History) append(e Epoch) {
	h.Epochs = append(h.Epochs, e)
}

// Last returns the most recent epoch snapshot.
func (h *History) Last() (Epoch, bool) {
	if len(h.Epochs) == 0 {
		return Epoch{}, false
	}
	return h.Epochs[len(h.Epochs)-1], true
}
