// Package reward draws a prize from an establishment's weighted reward table.
package reward

import (
	"math/rand/v2"

	"go-feedback-triage/internal/model"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// GlobalSource is safe for concurrent use by independent flows.
var GlobalSource Source = globalSource{}

// Select performs a roulette-wheel draw over the active options with a positive
// weight, in the order given. Weights are normalized by their actual sum, so a
// table that does not add up to 100 is accepted. The boolean is false for the
// no-reward outcome: no active option or a total weight of zero.
func Select(options []model.RewardOption, src Source) (model.RewardOption, bool) {
	candidates := make([]model.RewardOption, 0, len(options))
	total := 0.0
	for _, o := range options {
		if !o.Active || o.Weight <= 0 {
			continue
		}
		candidates = append(candidates, o)
		total += o.Weight
	}

	if len(candidates) == 0 || total <= 0 {
		return model.RewardOption{}, false
	}

	r := src.Float64() * total
	cumulative := 0.0
	for _, o := range candidates {
		cumulative += o.Weight
		if cumulative > r {
			return o, true
		}
	}

	// float rounding can leave r just above the last cumulative value
	return candidates[len(candidates)-1], true
}
