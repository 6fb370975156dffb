package ops

import (
	"math"
	"testing"

	"github.com/flint-ml/flint/internal/tensor"
)

// checkGradient compares the analytic gradient of a scalar-valued function
// against central finite differences over every element of every input.
func checkGradient(t *testing.T, f func() *tensor.Tensor, inputs ...*tensor.Tensor) {
	t.Helper()
	const (
		h   = 1e-6
		tol = 1e-4
	)

	for _, in := range inputs {
		in.ZeroGrad()
	}
	out := f()
	if err := out.Backward(); err != nil {
		t.Fatalf("Backward failed: %v", err)
	}

	for idx, in := range inputs {
		data := in.Data()
		grad := in.Grad()
		for i := range data {
			orig := data[i]

			data[i] = orig + h
			plus := f().Data()[0]
			data[i] = orig - h
			minus := f().Data()[0]
			data[i] = orig

			numeric := (plus - minus) / (2 * h)
			if math.Abs(grad[i]-numeric) > tol*math.Max(1, math.Abs(numeric)) {
				t.Errorf("input %d element %d: analytic %v, numeric %v", idx, i, grad[i], numeric)
			}
		}
	}
}

func mustTensor(t *testing.T, data []float64, shape tensor.Shape) *tensor.Tensor {
	t.Helper()
	x, err := tensor.New(data, shape, true)
	if err != nil {
		t.Fatalf("tensor.New failed: %v", err)
	}
	return x
}

// TestAdd_Elementwise checks forward values and gradients for equal shapes.
func TestAdd_Elementwise(t *testing.T) {
	a := mustTensor(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := mustTensor(t, []float64{10, 20, 30, 40}, tensor.Shape{2, 2})

	out := Add(a, b)
	want := []float64{11, 22, 33, 44}
	for i, v := range out.Data() {
		if v != want[i] {
			t.Errorf("element %d: got %v, want %v", i, v, want[i])
		}
	}

	checkGradient(t, func() *tensor.Tensor { return Sum(Add(a, b)) }, a, b)
}

// TestAdd_RowBroadcast checks the [m,n] + [1,n] bias case.
func TestAdd_RowBroadcast(t *testing.T) {
	a := mustTensor(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := mustTensor(t, []float64{10, 20, 30}, tensor.Shape{1, 3})

	out := Add(a, bias)
	if !out.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("broadcast output shape: got %v", out.Shape())
	}
	want := []float64{11, 22, 33, 14, 25, 36}
	for i, v := range out.Data() {
		if v != want[i] {
			t.Errorf("element %d: got %v, want %v", i, v, want[i])
		}
	}

	// The bias gradient is the column sum of the upstream: with Sum as the
	// root every upstream element is 1, so each bias element collects one
	// contribution per row.
	a.ZeroGrad()
	bias.ZeroGrad()
	if err := Sum(Add(a, bias)).Backward(); err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	for i, g := range bias.Grad() {
		if g != 2 {
			t.Errorf("bias grad[%d]: got %v, want 2", i, g)
		}
	}

	checkGradient(t, func() *tensor.Tensor { return Sum(Add(a, bias)) }, a, bias)
}

// TestAdd_ShapeMismatchPanics checks that incompatible shapes panic.
func TestAdd_ShapeMismatchPanics(t *testing.T) {
	a := mustTensor(t, make([]float64, 12), tensor.Shape{3, 4})
	b := mustTensor(t, make([]float64, 10), tensor.Shape{2, 5})

	defer func() {
		if recover() == nil {
			t.Error("Add([3 4], [2 5]) did not panic")
		}
	}()
	Add(a, b)
}

// TestMul covers elementwise and scalar-broadcast multiplication.
func TestMul(t *testing.T) {
	a := mustTensor(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := mustTensor(t, []float64{5, 6, 7, 8}, tensor.Shape{2, 2})

	out := Mul(a, b)
	want := []float64{5, 12, 21, 32}
	for i, v := range out.Data() {
		if v != want[i] {
			t.Errorf("element %d: got %v, want %v", i, v, want[i])
		}
	}
	checkGradient(t, func() *tensor.Tensor { return Sum(Mul(a, b)) }, a, b)

	// Scalar broadcast, in both operand orders.
	s := mustTensor(t, []float64{0.5}, tensor.Shape{1})
	left := Mul(s, a)
	right := Mul(a, s)
	for i := range left.Data() {
		if left.Data()[i] != right.Data()[i] {
			t.Errorf("scalar broadcast not symmetric at %d: %v vs %v", i, left.Data()[i], right.Data()[i])
		}
		if left.Data()[i] != a.Data()[i]*0.5 {
			t.Errorf("scalar broadcast element %d: got %v", i, left.Data()[i])
		}
	}
	checkGradient(t, func() *tensor.Tensor { return Sum(Mul(a, s)) }, a, s)
}

// TestMul_ShapeMismatchPanics checks that non-scalar mismatches panic.
func TestMul_ShapeMismatchPanics(t *testing.T) {
	a := mustTensor(t, make([]float64, 4), tensor.Shape{2, 2})
	b := mustTensor(t, make([]float64, 6), tensor.Shape{2, 3})

	defer func() {
		if recover() == nil {
			t.Error("Mul([2 2], [2 3]) did not panic")
		}
	}()
	Mul(a, b)
}

// TestPow checks x^n forward and gradient.
func TestPow(t *testing.T) {
	x := mustTensor(t, []float64{1, 2, 3}, tensor.Shape{3})

	out := Pow(x, 2)
	want := []float64{1, 4, 9}
	for i, v := range out.Data() {
		if v != want[i] {
			t.Errorf("element %d: got %v, want %v", i, v, want[i])
		}
	}

	checkGradient(t, func() *tensor.Tensor { return Sum(Pow(x, 3)) }, x)
}

// TestReLU checks clamping and the dead-region gradient.
func TestReLU(t *testing.T) {
	x := mustTensor(t, []float64{-2, -0.5, 0.5, 2}, tensor.Shape{4})

	out := ReLU(x)
	want := []float64{0, 0, 0.5, 2}
	for i, v := range out.Data() {
		if v != want[i] {
			t.Errorf("element %d: got %v, want %v", i, v, want[i])
		}
	}

	x.ZeroGrad()
	if err := Sum(ReLU(x)).Backward(); err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	wantGrad := []float64{0, 0, 1, 1}
	for i, g := range x.Grad() {
		if g != wantGrad[i] {
			t.Errorf("grad[%d]: got %v, want %v", i, g, wantGrad[i])
		}
	}
}

// TestSigmoid checks the logistic forward and its s*(1-s) gradient.
func TestSigmoid(t *testing.T) {
	x := mustTensor(t, []float64{-1, 0, 1}, tensor.Shape{3})

	out := Sigmoid(x)
	if math.Abs(out.Data()[1]-0.5) > 1e-12 {
		t.Errorf("sigmoid(0): got %v, want 0.5", out.Data()[1])
	}

	checkGradient(t, func() *tensor.Tensor { return Sum(Sigmoid(x)) }, x)
}

// TestSum checks the reduction and its broadcast gradient.
func TestSum(t *testing.T) {
	x := mustTensor(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	out := Sum(x)
	if !out.Shape().Equal(tensor.Shape{1}) || out.Data()[0] != 10 {
		t.Fatalf("Sum: got shape %v value %v", out.Shape(), out.Data())
	}

	x.ZeroGrad()
	if err := out.Backward(); err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	for i, g := range x.Grad() {
		if g != 1 {
			t.Errorf("grad[%d]: got %v, want 1", i, g)
		}
	}
}

// TestNoGradInputs checks that results of grad-free inputs skip the graph.
func TestNoGradInputs(t *testing.T) {
	a, _ := tensor.New([]float64{1, 2}, tensor.Shape{2}, false)
	b, _ := tensor.New([]float64{3, 4}, tensor.Shape{2}, false)

	out := Add(a, b)
	if out.RequiresGrad() {
		t.Error("result of grad-free inputs requires grad")
	}
	if out.Context() != nil {
		t.Error("result of grad-free inputs carries a context")
	}
}
