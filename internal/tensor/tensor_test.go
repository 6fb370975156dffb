package tensor

import (
	"errors"
	"testing"
)

// TestNew_CopiesBuffer verifies the tensor owns its storage.
func TestNew_CopiesBuffer(t *testing.T) {
	buf := []float64{1, 2, 3, 4}
	x, err := New(buf, Shape{2, 2}, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	buf[0] = 99
	if x.Data()[0] != 1 {
		t.Errorf("tensor aliases caller buffer: got %v", x.Data()[0])
	}
}

// TestNew_LengthMismatch verifies ErrShape on inconsistent buffer/shape.
func TestNew_LengthMismatch(t *testing.T) {
	_, err := New([]float64{1, 2, 3}, Shape{2, 2}, false)
	if !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}

// TestNew_InvalidShape verifies non-positive dimensions are rejected.
func TestNew_InvalidShape(t *testing.T) {
	for _, shape := range []Shape{{0}, {2, -1}, {}} {
		if _, err := New(nil, shape, false); !errors.Is(err, ErrShape) {
			t.Errorf("shape %v: expected ErrShape, got %v", shape, err)
		}
	}
}

// TestGrad_PresentOnlyWhenRequired verifies the grad buffer contract.
func TestGrad_PresentOnlyWhenRequired(t *testing.T) {
	noGrad, _ := New([]float64{1}, Shape{1}, false)
	if noGrad.Grad() != nil {
		t.Error("non-differentiable tensor has a gradient buffer")
	}

	withGrad, _ := New([]float64{1, 2}, Shape{2}, true)
	grad := withGrad.Grad()
	if len(grad) != 2 {
		t.Fatalf("gradient buffer length: got %d, want 2", len(grad))
	}
	for i, g := range grad {
		if g != 0 {
			t.Errorf("gradient not zero-initialized at %d: %v", i, g)
		}
	}
}

// TestZeroGrad verifies gradient reset and the no-grad no-op.
func TestZeroGrad(t *testing.T) {
	x, _ := New([]float64{1, 2}, Shape{2}, true)
	x.Grad()[0] = 5
	x.Grad()[1] = -3

	x.ZeroGrad()
	for i, g := range x.Grad() {
		if g != 0 {
			t.Errorf("grad[%d] = %v after ZeroGrad", i, g)
		}
	}

	noGrad, _ := New([]float64{1}, Shape{1}, false)
	noGrad.ZeroGrad() // must not panic
}

// TestReshape_AliasesDataAndGrad verifies reshape is a view, not a copy.
func TestReshape_AliasesDataAndGrad(t *testing.T) {
	x, _ := New([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}, true)
	v, err := x.Reshape(3, 2)
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	if !v.Shape().Equal(Shape{3, 2}) {
		t.Errorf("view shape: got %v", v.Shape())
	}

	// Data is shared both ways.
	v.Data()[0] = 42
	if x.Data()[0] != 42 {
		t.Error("view data write not visible in source")
	}

	// Gradient buffer is shared too.
	v.Grad()[5] = 7
	if x.Grad()[5] != 7 {
		t.Error("view grad write not visible in source")
	}

	// A view is not a graph node.
	if v.Context() != nil {
		t.Error("reshape view carries a context")
	}
}

// TestReshape_ElementCountMismatch verifies ErrShape for incompatible dims.
func TestReshape_ElementCountMismatch(t *testing.T) {
	x, _ := New([]float64{1, 2, 3, 4}, Shape{2, 2}, false)
	if _, err := x.Reshape(3, 2); !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}

// TestFromNested verifies shape inference from nested slices.
func TestFromNested(t *testing.T) {
	x, err := FromNested([][]float64{{1, 2, 3}, {4, 5, 6}}, false)
	if err != nil {
		t.Fatalf("FromNested failed: %v", err)
	}
	if !x.Shape().Equal(Shape{2, 3}) {
		t.Errorf("inferred shape: got %v, want [2 3]", x.Shape())
	}
	if x.At(1, 2) != 6 {
		t.Errorf("element [1,2]: got %v, want 6", x.At(1, 2))
	}
}

// TestFromNested_Ragged verifies ragged nesting is rejected.
func TestFromNested_Ragged(t *testing.T) {
	_, err := FromNested([][]float64{{1, 2}, {3}}, false)
	if !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape for ragged input, got %v", err)
	}
}

// TestCreationHelpers covers Zeros, Ones, Full, Scalar.
func TestCreationHelpers(t *testing.T) {
	z, _ := Zeros(Shape{2, 2}, false)
	for _, v := range z.Data() {
		if v != 0 {
			t.Errorf("Zeros produced %v", v)
		}
	}

	o, _ := Ones(Shape{3}, false)
	for _, v := range o.Data() {
		if v != 1 {
			t.Errorf("Ones produced %v", v)
		}
	}

	f, _ := Full(Shape{2}, 3.5, false)
	for _, v := range f.Data() {
		if v != 3.5 {
			t.Errorf("Full produced %v", v)
		}
	}

	s := Scalar(2.5)
	if s.NumElements() != 1 || s.Data()[0] != 2.5 || s.RequiresGrad() {
		t.Errorf("Scalar: %v requiresGrad=%v", s.Data(), s.RequiresGrad())
	}
}
