// Package generate implements autoregressive text generation: sampling
// strategies over model logits and the token-by-token generation loop.
package generate

import (
	"math"
	"math/rand"
	"sort"
)

// SamplingConfig configures the sampling strategy.
type SamplingConfig struct {
	// Temperature controls randomness. 0 = greedy, 1 = the raw
	// distribution, >1 = flatter.
	Temperature float64

	// TopK limits sampling to the K highest-probability tokens. 0 = disabled.
	TopK int

	// Seed for reproducibility. -1 = random.
	Seed int64
}

// DefaultSamplingConfig returns sensible defaults.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Temperature: 1.0,
		TopK:        0,
		Seed:        -1,
	}
}

// Sampler samples token ids from logits.
type Sampler struct {
	config SamplingConfig
	rng    *rand.Rand
}

// NewSampler creates a sampler with the given configuration.
func NewSampler(config SamplingConfig) *Sampler {
	var rng *rand.Rand
	if config.Seed >= 0 {
		rng = rand.New(rand.NewSource(config.Seed)) //nolint:gosec // deterministic seed requested
	} else {
		rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // non-cryptographic sampling
	}
	return &Sampler{config: config, rng: rng}
}

// Sample returns the next token id given one row of logits.
//
// Pipeline: temperature scaling, top-k filtering, then a draw from the
// softmax distribution. Temperature 0 short-circuits to argmax.
func (s *Sampler) Sample(logits []float64) int {
	scaled := append([]float64{}, logits...)

	if s.config.Temperature == 0 {
		return argmax(scaled)
	}
	if s.config.Temperature != 1.0 {
		for i := range scaled {
			scaled[i] /= s.config.Temperature
		}
	}
	if s.config.TopK > 0 && s.config.TopK < len(scaled) {
		s.topKFilter(scaled)
	}
	return s.drawSoftmax(scaled)
}

// topKFilter sets every logit outside the top K to -Inf in place.
func (s *Sampler) topKFilter(logits []float64) {
	sorted := append([]float64{}, logits...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	threshold := sorted[s.config.TopK-1]

	kept := 0
	for i, v := range logits {
		if v >= threshold && kept < s.config.TopK {
			kept++
			continue
		}
		logits[i] = math.Inf(-1)
	}
}

// drawSoftmax samples an index from the softmax of logits.
func (s *Sampler) drawSoftmax(logits []float64) int {
	maxV := math.Inf(-1)
	for _, v := range logits {
		if v > maxV {
			maxV = v
		}
	}
	probs := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		e := math.Exp(v - maxV)
		probs[i] = e
		sum += e
	}

	r := s.rng.Float64() * sum
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return i
		}
	}
	return len(logits) - 1
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
