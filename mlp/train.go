// SPDX-License-Identifier: MIT
// Package mlp - training engine.
//
// MAIN DESCRIPTION:
//   - One trainer owns the weight matrices of a single Fit call. Epochs are
//     strictly sequential; inside a batch the rows are split into contiguous
//     chunks whose gradients are computed concurrently and summed in chunk
//     order, so a fixed worker count always yields the same bits.
//
// Layer algebra (b = batch rows, bias in row 0 of every W):
//   - forward:  A₀ = X, Aₗ₊₁ = f([1 | Aₗ]·Wₗ)
//   - loss:     Σ(A_L − T)² / (2b) + λ/(2b)·Σ W²  (bias rows excluded)
//   - output δ: (A_L − T) ⊙ f'(A_L)
//   - hidden δ: (δ·Wₗ[1:]ᵀ) ⊙ f'(Aₗ)
//   - gradient: Gₗ = [1 | Aₗ]ᵀ·δ / b + (λ/b)·Wₗ  (penalty bias row zeroed)
//   - update:   Wₗ -= lr·Gₗ
//
// Failure policy:
//   - Non-finite loss or weights after an epoch → ErrNumericalDivergence.
//   - ctx is polled at every epoch boundary, never mid-epoch.
package mlp

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/katalvlaran/lvml/matrix"
	"gonum.org/v1/gonum/floats"
)

// trainer carries the state of one Fit call.
type trainer struct {
	cfg  Config
	act  activationFuncs
	x, y *matrix.Dense
	w    []*matrix.Dense
	src  Source
	log  *slog.Logger
}

// chunkResult is the un-normalized gradient of a row chunk.
type chunkResult struct {
	grads []*matrix.Dense
	sse   float64
	err   error
}

// augment returns [1 | A].
func augment(A *matrix.Dense) (*matrix.Dense, error) {
	ones, err := matrix.NewOnes(A.Rows(), 1)
	if err != nil {
		return nil, err
	}

	return matrix.HStack(ones, A)
}

// forward propagates in through w and returns every layer activation
// (acts[0] = in) together with the augmented layer inputs.
func forward(w []*matrix.Dense, in *matrix.Dense, eval func(float64) float64) (acts, augs []*matrix.Dense, err error) {
	acts = make([]*matrix.Dense, len(w)+1)
	augs = make([]*matrix.Dense, len(w))
	acts[0] = in
	var z *matrix.Dense
	for l, wl := range w {
		if augs[l], err = augment(acts[l]); err != nil {
			return nil, nil, err
		}
		if z, err = matrix.Mul(augs[l], wl); err != nil {
			return nil, nil, err
		}
		if acts[l+1], err = matrix.Map(z, eval); err != nil {
			return nil, nil, err
		}
	}

	return acts, augs, nil
}

// sumSquaresNoBias returns Σ W² over every row except the bias row.
func sumSquaresNoBias(w *matrix.Dense) float64 {
	vals := w.Values()[w.Cols():]

	return floats.Dot(vals, vals)
}

// allFinite reports whether every weight is finite.
func allFinite(ws []*matrix.Dense) bool {
	for _, w := range ws {
		for _, v := range w.Values() {
			if badFloat(v) {
				return false
			}
		}
	}

	return true
}

// chunkGradient runs forward and backward passes over one chunk and returns
// Σ over rows of the weight gradients plus the chunk's sum of squared errors.
func (t *trainer) chunkGradient(xb, yb *matrix.Dense) chunkResult {
	acts, augs, err := forward(t.w, xb, t.act.eval)
	if err != nil {
		return chunkResult{err: err}
	}
	L := len(t.w)
	diff, err := matrix.Sub(acts[L], yb)
	if err != nil {
		return chunkResult{err: err}
	}
	dv := diff.Values()
	res := chunkResult{grads: make([]*matrix.Dense, L), sse: floats.Dot(dv, dv)}

	fp, err := matrix.Map(acts[L], t.act.deriv)
	if err != nil {
		return chunkResult{err: err}
	}
	delta, err := matrix.Hadamard(diff, fp)
	if err != nil {
		return chunkResult{err: err}
	}

	var augT, wNoBias, wT, back *matrix.Dense
	for l := L - 1; l >= 0; l-- {
		if augT, err = matrix.Transpose(augs[l]); err != nil {
			return chunkResult{err: err}
		}
		if res.grads[l], err = matrix.Mul(augT, delta); err != nil {
			return chunkResult{err: err}
		}
		if l == 0 {
			break
		}
		if wNoBias, err = matrix.SliceRows(t.w[l], 1, t.w[l].Rows()); err != nil {
			return chunkResult{err: err}
		}
		if wT, err = matrix.Transpose(wNoBias); err != nil {
			return chunkResult{err: err}
		}
		if back, err = matrix.Mul(delta, wT); err != nil {
			return chunkResult{err: err}
		}
		if fp, err = matrix.Map(acts[l], t.act.deriv); err != nil {
			return chunkResult{err: err}
		}
		if delta, err = matrix.Hadamard(back, fp); err != nil {
			return chunkResult{err: err}
		}
	}

	return res
}

// batchGradient splits the batch into chunks, evaluates them (concurrently
// when Workers > 1) and sums the results in chunk order.
func (t *trainer) batchGradient(xb, yb *matrix.Dense) ([]*matrix.Dense, float64, error) {
	b := xb.Rows()
	chunks := t.cfg.Workers
	if chunks > b {
		chunks = b
	}
	results := make([]chunkResult, chunks)
	if chunks <= 1 {
		results = []chunkResult{t.chunkGradient(xb, yb)}
	} else {
		var wg sync.WaitGroup
		for c := 0; c < chunks; c++ {
			wg.Add(1)
			go func(c, lo, hi int) {
				defer wg.Done()
				xc, err := matrix.SliceRows(xb, lo, hi)
				if err != nil {
					results[c] = chunkResult{err: err}
					return
				}
				yc, err := matrix.SliceRows(yb, lo, hi)
				if err != nil {
					results[c] = chunkResult{err: err}
					return
				}
				results[c] = t.chunkGradient(xc, yc)
			}(c, c*b/chunks, (c+1)*b/chunks)
		}
		wg.Wait()
	}

	for _, r := range results {
		if r.err != nil {
			return nil, 0, r.err
		}
	}
	grads, sse := results[0].grads, results[0].sse
	var err error
	for _, r := range results[1:] {
		for l := range grads {
			if grads[l], err = matrix.Add(grads[l], r.grads[l]); err != nil {
				return nil, 0, err
			}
		}
		sse += r.sse
	}

	return grads, sse, nil
}

// regularizedGradient returns the batch-averaged gradient of every layer with
// the L2 term added (bias rows excluded) and the batch loss at the current
// weights.
func (t *trainer) regularizedGradient(xb, yb *matrix.Dense) ([]*matrix.Dense, float64, error) {
	grads, sse, err := t.batchGradient(xb, yb)
	if err != nil {
		return nil, 0, err
	}

	bf := float64(xb.Rows())
	lambda := t.cfg.Regularization
	var penalty float64
	var g, p *matrix.Dense
	for l, wl := range t.w {
		if g, err = matrix.Scale(grads[l], 1/bf); err != nil {
			return nil, 0, err
		}
		if lambda > 0 {
			penalty += sumSquaresNoBias(wl)
			if p, err = matrix.Scale(wl, lambda/bf); err != nil {
				return nil, 0, err
			}
			for j := 0; j < p.Cols(); j++ {
				if err = p.Set(0, j, 0); err != nil {
					return nil, 0, err
				}
			}
			if g, err = matrix.Add(g, p); err != nil {
				return nil, 0, err
			}
		}
		grads[l] = g
	}

	return grads, sse/(2*bf) + lambda/(2*bf)*penalty, nil
}

// batchStep updates the weights from the rows in idx and returns the batch
// loss measured before the update.
func (t *trainer) batchStep(idx []int, lr float64) (float64, error) {
	xb, err := matrix.SelectRows(t.x, idx)
	if err != nil {
		return 0, err
	}
	yb, err := matrix.SelectRows(t.y, idx)
	if err != nil {
		return 0, err
	}
	grads, loss, err := t.regularizedGradient(xb, yb)
	if err != nil {
		return 0, err
	}
	for l, wl := range t.w {
		if t.w[l], err = matrix.AddScaled(wl, -lr, grads[l]); err != nil {
			return 0, err
		}
	}

	return loss, nil
}

// epoch walks order in batches and returns the sample-weighted mean loss.
func (t *trainer) epoch(order []int, batch int, lr float64) (float64, error) {
	n := len(order)
	var total float64
	for lo := 0; lo < n; lo += batch {
		hi := lo + batch
		if hi > n {
			hi = n
		}
		loss, err := t.batchStep(order[lo:hi], lr)
		if err != nil {
			return 0, err
		}
		total += loss * float64(hi-lo)
	}

	return total / float64(n), nil
}

// trend labels the loss movement for Verbose records.
func trend(prev, cur float64) string {
	switch {
	case math.IsInf(prev, 1):
		return "start"
	case cur < prev:
		return "down"
	case cur > prev:
		return "up"
	default:
		return "flat"
	}
}

// run executes up to MaxIters epochs.
func (t *trainer) run(ctx context.Context) (*History, error) {
	n := t.x.Rows()
	batch := t.cfg.BatchSize
	if batch == 0 || batch > n {
		batch = n
	}
	order := identity(n)
	sched := newLRSchedule(t.cfg)
	hist := &History{Stopped: StopMaxIters}
	prev := math.Inf(1)

	for e := 1; e <= t.cfg.MaxIters; e++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("before epoch %d: %w", e, err)
		}
		if t.cfg.Shuffle && batch < n {
			shuffleInts(order, t.src)
		}
		lr := sched.rate
		loss, err := t.epoch(order, batch, lr)
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", e, err)
		}
		if badFloat(loss) || !allFinite(t.w) {
			return nil, fmt.Errorf("epoch %d: loss %g: %w", e, loss, ErrNumericalDivergence)
		}

		stat := EpochStat{Epoch: e, Loss: loss, LearningRate: lr}
		hist.Epochs = append(hist.Epochs, stat)
		if t.cfg.Verbose {
			t.log.LogAttrs(ctx, slog.LevelInfo, "epoch",
				slog.Int("epoch", e),
				slog.Float64("loss", loss),
				slog.Float64("lr", lr),
				slog.String("trend", trend(prev, loss)))
		}
		if t.cfg.OnEpoch != nil {
			if err = t.cfg.OnEpoch(stat); err != nil {
				return nil, fmt.Errorf("epoch %d callback: %w", e, err)
			}
		}
		if loss < t.cfg.ErrorThreshold {
			hist.Converged, hist.Stopped = true, StopConverged
			break
		}
		if e > 1 {
			sched.step(prev, loss)
		}
		prev = loss
	}

	if t.cfg.Verbose {
		last, _ := hist.Last()
		t.log.LogAttrs(ctx, slog.LevelInfo, "fit finished",
			slog.Int("epochs", hist.Len()),
			slog.Float64("loss", last.Loss),
			slog.Bool("converged", hist.Converged),
			slog.String("stopped", hist.Stopped))
	}

	return hist, nil
}
