package ops

import (
	"math"
	"testing"

	"github.com/flint-ml/flint/internal/tensor"
)

// TestMatMul_Forward checks a known 2x3 by 3x2 product.
func TestMatMul_Forward(t *testing.T) {
	a := mustTensor(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := mustTensor(t, []float64{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out := MatMul(a, b)
	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("output shape: got %v, want [2 2]", out.Shape())
	}
	want := []float64{58, 64, 139, 154}
	for i, v := range out.Data() {
		if v != want[i] {
			t.Errorf("element %d: got %v, want %v", i, v, want[i])
		}
	}
}

// TestMatMul_Gradient checks the analytic gradients against finite
// differences.
func TestMatMul_Gradient(t *testing.T) {
	a := mustTensor(t, []float64{0.5, -1, 2, 0.3, 1.5, -0.7}, tensor.Shape{2, 3})
	b := mustTensor(t, []float64{1, 0.2, -0.4, 2, 0.9, -1.1}, tensor.Shape{3, 2})

	checkGradient(t, func() *tensor.Tensor { return Sum(MatMul(a, b)) }, a, b)
}

// TestMatMul_InnerDimMismatchPanics checks the dimension guard.
func TestMatMul_InnerDimMismatchPanics(t *testing.T) {
	a := mustTensor(t, make([]float64, 6), tensor.Shape{2, 3})
	b := mustTensor(t, make([]float64, 8), tensor.Shape{4, 2})

	defer func() {
		if recover() == nil {
			t.Error("MatMul([2 3], [4 2]) did not panic")
		}
	}()
	MatMul(a, b)
}

// TestTranspose checks the data copy and the non-differentiable contract.
func TestTranspose(t *testing.T) {
	x := mustTensor(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := Transpose(x)
	if !out.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("transpose shape: got %v, want [3 2]", out.Shape())
	}
	want := []float64{1, 4, 2, 5, 3, 6}
	for i, v := range out.Data() {
		if v != want[i] {
			t.Errorf("element %d: got %v, want %v", i, v, want[i])
		}
	}
	if out.RequiresGrad() || out.Context() != nil {
		t.Error("transpose result participates in the graph")
	}

	// Fresh buffer, not a view.
	out.Data()[0] = 99
	if x.Data()[0] != 1 {
		t.Error("transpose aliases source data")
	}
}

// TestSoftmax_Rows checks normalization and stability per row.
func TestSoftmax_Rows(t *testing.T) {
	x := mustTensor(t, []float64{1, 2, 3, 1000, 1001, 1002}, tensor.Shape{2, 3})

	out := Softmax(x)
	for r := 0; r < 2; r++ {
		sum := 0.0
		for c := 0; c < 3; c++ {
			v := out.At(r, c)
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Errorf("row %d col %d: invalid probability %v", r, c, v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("row %d sums to %v", r, sum)
		}
	}

	// Identical shifts give identical distributions.
	for c := 0; c < 3; c++ {
		if math.Abs(out.At(0, c)-out.At(1, c)) > 1e-9 {
			t.Errorf("col %d: shift invariance violated: %v vs %v", c, out.At(0, c), out.At(1, c))
		}
	}
}

// TestSoftmax_MaskedRow checks -Inf logits become exact zeros.
func TestSoftmax_MaskedRow(t *testing.T) {
	ninf := math.Inf(-1)
	x := mustTensor(t, []float64{1, ninf, ninf}, tensor.Shape{1, 3})

	out := Softmax(x)
	if out.At(0, 0) != 1 {
		t.Errorf("unmasked position: got %v, want 1", out.At(0, 0))
	}
	if out.At(0, 1) != 0 || out.At(0, 2) != 0 {
		t.Errorf("masked positions: got %v, %v, want 0", out.At(0, 1), out.At(0, 2))
	}
}

// TestSoftmax_BackwardIsNoOp documents the intentional pass-through: the
// standalone softmax contributes no gradient, training goes through the
// fused cross-entropy rule instead.
func TestSoftmax_BackwardIsNoOp(t *testing.T) {
	x := mustTensor(t, []float64{1, 2, 3}, tensor.Shape{1, 3})

	x.ZeroGrad()
	if err := Sum(Softmax(x)).Backward(); err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	for i, g := range x.Grad() {
		if g != 0 {
			t.Errorf("grad[%d]: got %v, want 0", i, g)
		}
	}
}
