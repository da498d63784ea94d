// SPDX-License-Identifier: MIT
// Package mlp - adaptive learning rate.
//
// Purpose:
//   - "Bold driver" schedule applied between epochs when AdaptiveLR is on.
//
// Contract:
//   - loss went up:   rate *= LRShrink (default 0.5).
//   - loss went down: rate *= LRGrow   (default 1.05).
//   - equal losses leave the rate unchanged; the first epoch never steps.
//   - the result is clamped to [LRMin, LearningRate·LRMaxFactor], so it can
//     neither reach zero nor run away.
package mlp

// lrSchedule implements the adaptive learning rate: shrink when the epoch
// loss went up, grow slowly when it went down, clamped to [min, max].
type lrSchedule struct {
	rate   float64
	shrink float64
	grow   float64
	min    float64
	max    float64
	on     bool
}

func newLRSchedule(cfg Config) *lrSchedule {
	return &lrSchedule{
		rate:   cfg.LearningRate,
		shrink: cfg.LRShrink,
		grow:   cfg.LRGrow,
		min:    cfg.LRMin,
		max:    cfg.LearningRate * cfg.LRMaxFactor,
		on:     cfg.AdaptiveLR,
	}
}

// step adjusts the rate after an epoch; equal losses leave it unchanged.
func (s *lrSchedule) step(prev, cur float64) {
	if !s.on {
		return
	}
	switch {
	case cur > prev:
		s.rate *= s.shrink
	case cur < prev:
		s.rate *= s.grow
	}
	if s.rate > s.max {
		s.rate = s.max
	}
	if s.rate < s.min {
		s.rate = s.min
	}
}
