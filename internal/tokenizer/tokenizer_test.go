package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharTokenizer_RoundTrip(t *testing.T) {
	tok := NewCharTokenizer("hello world")

	text := "hello"
	decoded := tok.Decode(tok.Encode(text))
	assert.Equal(t, text, decoded)
}

func TestCharTokenizer_SortedVocab(t *testing.T) {
	tok := NewCharTokenizer("cba")

	// Ids follow sorted rune order regardless of corpus order.
	assert.Equal(t, []int{2, 1, 0}, tok.Encode("cba"))
	assert.Equal(t, 3, tok.VocabSize())
	assert.Equal(t, "abc", tok.Vocab())
}

func TestCharTokenizer_Deterministic(t *testing.T) {
	a := NewCharTokenizer("the quick brown fox")
	b := NewCharTokenizer("the quick brown fox")

	assert.Equal(t, a.Encode("quick"), b.Encode("quick"))
}

func TestCharTokenizer_DropsUnknown(t *testing.T) {
	tok := NewCharTokenizer("abc")

	// 'x' and 'y' are outside the vocabulary and silently dropped.
	assert.Equal(t, tok.Encode("ab"), tok.Encode("axyb"))

	// Out-of-range ids are dropped on decode.
	assert.Equal(t, "a", tok.Decode([]int{0, 99, -1}))
}

func TestCharTokenizer_Unicode(t *testing.T) {
	tok := NewCharTokenizer("héllo wörld 日本")

	text := "höl 日"
	assert.Equal(t, text, tok.Decode(tok.Encode(text)))
}

func TestCharTokenizer_FromVocab(t *testing.T) {
	original := NewCharTokenizer("some training text")
	restored := NewCharTokenizerFromVocab(original.Vocab())

	require.Equal(t, original.VocabSize(), restored.VocabSize())
	assert.Equal(t, original.Encode("some text"), restored.Encode("some text"))
}

func TestTikToken_UnknownEncoding(t *testing.T) {
	_, err := NewTikToken("no_such_encoding")
	assert.Error(t, err)
}

func TestTikToken_RoundTrip(t *testing.T) {
	tok, err := NewTikToken("cl100k_base")
	if err != nil {
		// The encoding tables are fetched on first use.
		t.Skipf("cl100k_base unavailable: %v", err)
	}

	text := "Hello, world!"
	decoded := tok.Decode(tok.Encode(text))
	assert.Equal(t, text, decoded)
	assert.Equal(t, 100256, tok.VocabSize())
}
