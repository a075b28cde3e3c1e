package scoring

import (
	"errors"
	"fmt"
	"math"
)

// Weights blends the three similarity signals into the composite score. The
// three components must sum to 1.0 so that self-similarity stays maximal.
type Weights struct {
	Jaccard  float64 `json:"jaccard"`
	Cosine   float64 `json:"cosine"`
	Coverage float64 `json:"coverage"`
}

func DefaultWeights() Weights {
	return Weights{Jaccard: 0.4, Cosine: 0.4, Coverage: 0.2}
}

// Validate accepts weights whose sum drifts from 1.0 by at most 1e-6; callers
// building weights from request payloads normalize small drift via Normalized.
func (w Weights) Validate() error {
	if w.Jaccard < 0 || w.Cosine < 0 || w.Coverage < 0 {
		return errors.New("weights must be non-negative")
	}
	sum := w.Jaccard + w.Cosine + w.Coverage
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}
	return nil
}

// Normalized rescales the weights to an exact unit sum. The zero value is
// replaced by the defaults rather than producing NaN.
func (w Weights) Normalized() Weights {
	sum := w.Jaccard + w.Cosine + w.Coverage
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Jaccard:  w.Jaccard / sum,
		Cosine:   w.Cosine / sum,
		Coverage: w.Coverage / sum,
	}
}
