// SPDX-License-Identifier: MIT
package mlp

// Stop reasons reported in History.Stopped.
const (
	StopConverged = "converged"
	StopMaxIters  = "max-iters"
)

// EpochStat is the outcome of one epoch.
type EpochStat struct {
	Epoch        int     // 1-based
	Loss         float64 // sample-weighted mean of the batch losses
	LearningRate float64 // rate used during this epoch
}

// History records a Fit run epoch by epoch.
type History struct {
	Epochs    []EpochStat
	Converged bool
	Stopped   string
}

// Len returns the number of completed epochs.
func (h *History) Len() int {
	if h == nil {
		return 0
	}

	return len(h.Epochs)
}

// Last returns the final epoch and true, or a zero value and false if h is empty.
func (h *History) Last() (EpochStat, bool) {
	if h.Len() == 0 {
		return EpochStat{}, false
	}

	return h.Epochs[len(h.Epochs)-1], true
}

// Losses returns the per-epoch losses in order.
func (h *History) Losses() []float64 {
	out := make([]float64, h.Len())
	for i := range out {
		out[i] = h.Epochs[i].Loss
	}

	return out
}

// LearningRates returns the per-epoch learning rates in order.
func (h *History) LearningRates() []float64 {
	out := make([]float64, h.Len())
	for i := range out {
		out[i] = h.Epochs[i].LearningRate
	}

	return out
}

func (h *History) clone() *History {
	if h == nil {
		return nil
	}
	c := *h
	c.Epochs = append([]EpochStat(nil), h.Epochs...)

	return &c
}
