package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// encodingCL100kBase is the encoding name for GPT-4 era models.
	encodingCL100kBase = "cl100k_base"
	// encodingP50kBase is the encoding name for GPT-3 era models.
	encodingP50kBase = "p50k_base"
	// encodingR50kBase is the encoding name for older GPT-3 models.
	encodingR50kBase = "r50k_base"
)

// TikToken wraps the pkoukk/tiktoken-go BPE encodings behind the Tokenizer
// interface, for training on subword vocabularies instead of characters.
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTikToken creates a TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base", "p50k_base", "r50k_base".
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: failed to load tiktoken encoding %q: %w", encodingName, err)
	}
	return &TikToken{encoding: encoding, name: encodingName}, nil
}

// Encode converts text to token ids.
func (t *TikToken) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

// Decode converts token ids back to text.
func (t *TikToken) Decode(ids []int) string {
	return t.encoding.Decode(ids)
}

// VocabSize returns the vocabulary size of the encoding.
//
// tiktoken-go does not expose vocabulary sizes directly, so the known
// sizes of the supported encodings are returned.
func (t *TikToken) VocabSize() int {
	switch t.name {
	case encodingCL100kBase:
		return 100256
	case encodingP50kBase, encodingR50kBase:
		return 50257
	default:
		return 100000
	}
}
