// Package tokens estimates how many LLM tokens a piece of text costs.
// All counting happens locally with embedded tiktoken vocabularies.
package tokens

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// DefaultEncoding is used when the caller does not pick one.
const DefaultEncoding = "o200k_base"

type Counter struct {
	encoding tokenizer.Codec
	model    string
}

// New returns a Counter for the named tiktoken encoding, e.g.
// "o200k_base" or "cl100k_base".
func New(model string) (*Counter, error) {
	if model == "" {
		model = DefaultEncoding
	}
	enc, err := tokenizer.Get(tokenizer.Encoding(model))
	if err != nil {
		return nil, fmt.Errorf("tokenizer.Get: %w", err)
	}
	return &Counter{
		encoding: enc,
		model:    model,
	}, nil
}

func (c *Counter) Count(text string) (int, error) {
	return c.encoding.Count(text)
}

// Fits reports whether text stays within budget tokens, and the count.
// A budget of zero or less means unlimited.
func (c *Counter) Fits(text string, budget int) (bool, int, error) {
	n, err := c.Count(text)
	if err != nil {
		return false, 0, err
	}
	return budget <= 0 || n <= budget, n, nil
}

func (c *Counter) Model() string {
	return c.model
}
