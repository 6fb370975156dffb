package tokenizer

import "sort"

// CharTokenizer is a bijective mapping between the characters of a fixed
// corpus and small integers. The vocabulary is built once, from the unique
// runes of the training text in sorted order, so a given corpus always
// yields the same mapping.
type CharTokenizer struct {
	runeToID map[rune]int
	idToRune []rune
}

// NewCharTokenizer builds the vocabulary from corpus.
func NewCharTokenizer(corpus string) *CharTokenizer {
	seen := make(map[rune]struct{})
	for _, r := range corpus {
		seen[r] = struct{}{}
	}
	runes := make([]rune, 0, len(seen))
	for r := range seen {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	t := &CharTokenizer{
		runeToID: make(map[rune]int, len(runes)),
		idToRune: runes,
	}
	for i, r := range runes {
		t.runeToID[r] = i
	}
	return t
}

// NewCharTokenizerFromVocab rebuilds a tokenizer from a previously saved
// vocabulary string (the runes in id order).
func NewCharTokenizerFromVocab(vocab string) *CharTokenizer {
	runes := []rune(vocab)
	t := &CharTokenizer{
		runeToID: make(map[rune]int, len(runes)),
		idToRune: runes,
	}
	for i, r := range runes {
		t.runeToID[r] = i
	}
	return t
}

// Encode maps each character to its id. Characters outside the vocabulary
// are silently dropped.
func (t *CharTokenizer) Encode(text string) []int {
	ids := make([]int, 0, len(text))
	for _, r := range text {
		if id, ok := t.runeToID[r]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Decode maps ids back to characters. Ids outside [0, VocabSize) are
// silently dropped.
func (t *CharTokenizer) Decode(ids []int) string {
	runes := make([]rune, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && id < len(t.idToRune) {
			runes = append(runes, t.idToRune[id])
		}
	}
	return string(runes)
}

// VocabSize returns the number of distinct characters in the vocabulary.
func (t *CharTokenizer) VocabSize() int {
	return len(t.idToRune)
}

// Vocab returns the vocabulary as a string of runes in id order, suitable
// for persisting alongside model weights.
func (t *CharTokenizer) Vocab() string {
	return string(t.idToRune)
}
