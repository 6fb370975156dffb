package tensor

import (
	"fmt"
	"reflect"
)

// FromNested creates a tensor from nested Go slices, inferring the shape by
// descending nesting levels. The innermost level must hold float64 values.
//
// Examples:
//
//	FromNested([]float64{1, 2, 3}, false)                  // shape [3]
//	FromNested([][]float64{{1, 2}, {3, 4}}, true)          // shape [2, 2]
//
// Returns ErrShape if sibling sub-slices have inconsistent lengths.
func FromNested(nested any, requiresGrad bool) (*Tensor, error) {
	shape, err := inferShape(reflect.ValueOf(nested))
	if err != nil {
		return nil, err
	}
	data := make([]float64, 0, shape.NumElements())
	data, err = flatten(reflect.ValueOf(nested), data)
	if err != nil {
		return nil, err
	}
	return New(data, shape, requiresGrad)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, requiresGrad bool) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	t := &Tensor{
		data:         make([]float64, shape.NumElements()),
		shape:        shape.Clone(),
		requiresGrad: requiresGrad,
	}
	if requiresGrad {
		t.grad = make([]float64, len(t.data))
	}
	return t, nil
}

// Ones creates a one-filled tensor.
func Ones(shape Shape, requiresGrad bool) (*Tensor, error) {
	return Full(shape, 1, requiresGrad)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64, requiresGrad bool) (*Tensor, error) {
	t, err := Zeros(shape, requiresGrad)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = value
	}
	return t, nil
}

// Scalar creates a 1-element tensor holding value, without gradient
// tracking. Operations use it for broadcast constants.
func Scalar(value float64) *Tensor {
	return &Tensor{data: []float64{value}, shape: Shape{1}}
}

// inferShape walks the first element of each nesting level. Consistency of
// sibling lengths is verified during flattening.
func inferShape(v reflect.Value) (Shape, error) {
	var shape Shape
	for v.Kind() == reflect.Slice {
		if v.Len() == 0 {
			return nil, fmt.Errorf("%w: empty slice at nesting depth %d", ErrShape, len(shape))
		}
		shape = append(shape, v.Len())
		v = v.Index(0)
	}
	if v.Kind() != reflect.Float64 {
		return nil, fmt.Errorf("%w: innermost elements must be float64, got %s", ErrShape, v.Kind())
	}
	return shape, nil
}

// flatten appends all leaf values in row-major order, verifying that sibling
// sub-slices agree in length.
func flatten(v reflect.Value, out []float64) ([]float64, error) {
	if v.Kind() == reflect.Float64 {
		return append(out, v.Float()), nil
	}
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: unexpected element of kind %s", ErrShape, v.Kind())
	}
	var want = -1
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Slice {
			if want == -1 {
				want = elem.Len()
			} else if elem.Len() != want {
				return nil, fmt.Errorf("%w: ragged nested array: sibling lengths %d and %d",
					ErrShape, want, elem.Len())
			}
		}
		var err error
		out, err = flatten(elem, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
