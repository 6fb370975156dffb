// Copyright 2025 Flint ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tokenizer provides the public API for text tokenization.
package tokenizer

import (
	"github.com/flint-ml/flint/internal/tokenizer"
)

// Tokenizer converts between text and token ids.
type Tokenizer = tokenizer.Tokenizer

// CharTokenizer maps individual characters to ids.
type CharTokenizer = tokenizer.CharTokenizer

// NewCharTokenizer builds a character vocabulary from corpus, with ids
// assigned to the unique runes in sorted order.
func NewCharTokenizer(corpus string) *CharTokenizer {
	return tokenizer.NewCharTokenizer(corpus)
}

// NewCharTokenizerFromVocab rebuilds a tokenizer from a saved vocabulary
// string.
func NewCharTokenizerFromVocab(vocab string) *CharTokenizer {
	return tokenizer.NewCharTokenizerFromVocab(vocab)
}

// TikToken is a BPE tokenizer backed by the tiktoken encodings.
type TikToken = tokenizer.TikToken

// NewTikToken creates a TikToken tokenizer. Supported encodings:
// "cl100k_base", "p50k_base", "r50k_base".
func NewTikToken(encodingName string) (*TikToken, error) {
	return tokenizer.NewTikToken(encodingName)
}
