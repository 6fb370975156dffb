// Package tokenizer converts text to integer token ids and back.
//
// The model core never sees text: tokenizers sit outside the computation
// graph and produce the integer-index sequences the embedding layer
// consumes. Two implementations are provided: a character-level tokenizer
// with a vocabulary built from the training corpus, and a wrapper over the
// tiktoken BPE encodings.
package tokenizer

// Tokenizer is the core interface for text tokenization.
type Tokenizer interface {
	// Encode converts text to token ids. Unknown input is silently dropped.
	Encode(text string) []int

	// Decode converts token ids back to text. Unknown ids are silently
	// dropped.
	Decode(ids []int) string

	// VocabSize returns the total vocabulary size.
	VocabSize() int
}
