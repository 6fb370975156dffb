package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flint-ml/flint/internal/tensor"
)

// Load reads a .flint checkpoint from path.
func Load(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("serialization: failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("serialization: failed to read magic: %w", err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("serialization: %s is not a flint checkpoint (magic %q)", path, magic)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("serialization: failed to read version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("serialization: unsupported format version %d (want %d)", version, FormatVersion)
	}

	var headerLen uint32
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return nil, fmt.Errorf("serialization: failed to read header length: %w", err)
	}
	headerJSON := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("serialization: failed to read header: %w", err)
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("serialization: failed to decode header: %w", err)
	}

	ckpt := &Checkpoint{
		Meta:    header.Model,
		Vocab:   header.Vocab,
		Shapes:  make([]tensor.Shape, len(header.Tensors)),
		Tensors: make([][]float64, len(header.Tensors)),
	}
	for i, tm := range header.Tensors {
		shape := tensor.Shape(tm.Shape)
		if err := shape.Validate(); err != nil {
			return nil, fmt.Errorf("serialization: tensor %d has invalid shape %v: %w", i, tm.Shape, err)
		}
		if shape.NumElements() != tm.NumElements {
			return nil, fmt.Errorf("serialization: tensor %d metadata inconsistent: shape %v has %d elements, header says %d",
				i, tm.Shape, shape.NumElements(), tm.NumElements)
		}
		data := make([]float64, tm.NumElements)
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return nil, fmt.Errorf("serialization: failed to read tensor %d payload: %w", i, err)
		}
		ckpt.Shapes[i] = shape
		ckpt.Tensors[i] = data
	}
	return ckpt, nil
}

// Apply copies the checkpoint payloads into params. The parameter list must
// match the checkpoint tensor for tensor, in count and shape.
func (c *Checkpoint) Apply(params []*tensor.Tensor) error {
	if len(params) != len(c.Tensors) {
		return fmt.Errorf("serialization: checkpoint has %d tensors, model has %d parameters",
			len(c.Tensors), len(params))
	}
	for i, p := range params {
		if !p.Shape().Equal(c.Shapes[i]) {
			return fmt.Errorf("serialization: tensor %d shape mismatch: checkpoint %v, model %v",
				i, c.Shapes[i], p.Shape())
		}
	}
	for i, p := range params {
		copy(p.Data(), c.Tensors[i])
	}
	return nil
}
