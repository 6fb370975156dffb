package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/flint-ml/flint/internal/tensor"
)

// Save writes model parameters and the tokenizer vocabulary to path as a
// .flint checkpoint. Parameters are written in the order given, which must
// match the model's Parameters() traversal.
func Save(path string, meta ModelMeta, vocab string, params []*tensor.Tensor) error {
	header := Header{
		FormatVersion: FormatVersion,
		Model:         meta,
		Vocab:         vocab,
		Tensors:       make([]TensorMeta, len(params)),
	}
	for i, p := range params {
		header.Tensors[i] = TensorMeta{
			Shape:       p.Shape().Clone(),
			NumElements: p.NumElements(),
		}
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("serialization: failed to encode header: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("serialization: failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.WriteString(Magic); err != nil {
		return fmt.Errorf("serialization: failed to write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return fmt.Errorf("serialization: failed to write version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(headerJSON))); err != nil {
		return fmt.Errorf("serialization: failed to write header length: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("serialization: failed to write header: %w", err)
	}

	for i, p := range params {
		if err := binary.Write(w, binary.LittleEndian, p.Data()); err != nil {
			return fmt.Errorf("serialization: failed to write tensor %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("serialization: failed to flush %s: %w", path, err)
	}
	return nil
}
