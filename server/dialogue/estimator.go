package dialogue

import (
	"math"
	"strings"
)

// TokenEstimator approximates the number of LLM tokens a text occupies.
// Implementations must be deterministic and must never fail.
type TokenEstimator interface {
	Estimate(text string) int
}

// WordEstimator approximates tokens as word count times a fixed ratio.
// English text averages roughly 1.3 tokens per word, which is close enough
// for triggering summarization thresholds.
type WordEstimator struct {
	TokensPerWord float64 // defaults to 1.3 if zero
}

func (e *WordEstimator) ratio() float64 {
	if e.TokensPerWord <= 0 {
		return 1.3
	}
	return e.TokensPerWord
}

func (e *WordEstimator) Estimate(text string) int {
	words := len(strings.Fields(text))
	return int(math.Round(float64(words) * e.ratio()))
}

// CharEstimator approximates tokens as character count divided by a fixed
// ratio (~4 characters per token for English text). Cheaper than splitting
// into words; useful for very large inputs.
type CharEstimator struct {
	CharsPerToken int // defaults to 4 if zero
}

func (e *CharEstimator) Estimate(text string) int {
	ratio := e.CharsPerToken
	if ratio <= 0 {
		ratio = 4
	}
	return len(text) / ratio
}
