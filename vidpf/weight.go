//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"fmt"
	"io"

	"github.com/markkurossi/vidpf/ct"
	"github.com/markkurossi/vidpf/field"
)

// Algebra defines the operations the VIDPF needs from its weight
// values: an additive group with constant-time selection, sampling
// from a pseudorandom stream, and a fixed-size encoding.
type Algebra[V any] interface {
	// Zero returns the additive identity.
	Zero() V

	// Generate samples a pseudorandom value from the stream r.
	Generate(r io.Reader) (V, error)

	// Add returns a+b.
	Add(a, b V) V

	// Sub returns a-b.
	Sub(a, b V) V

	// Neg returns -a.
	Neg(a V) V

	// Select returns a if c is false and b if c is true.
	Select(a, b V, c ct.Choice) V

	// ConditionalNegate returns -a if c is true and a otherwise.
	ConditionalNegate(a V, c ct.Choice) V

	// Equal tests if a and b are equal.
	Equal(a, b V) bool

	// EncodedSize returns the size of the value encoding in bytes.
	EncodedSize() int

	// Append appends the encoding of a to dst.
	Append(dst []byte, a V) []byte

	// Decode decodes a value from data.
	Decode(data []byte) (V, error)
}

// Weights implements Algebra for fixed-length vectors of field
// elements. Combining vectors of different lengths panics with
// ErrInvalidWeightLength.
type Weights[E any] struct {
	field  field.Field[E]
	length int
}

// NewWeights creates a weight algebra for vectors of length elements
// of the field f.
func NewWeights[E any](f field.Field[E], length int) *Weights[E] {
	if length < 0 {
		panic(ErrInvalidWeightLength)
	}
	return &Weights[E]{
		field:  f,
		length: length,
	}
}

// Field returns the field of the vector elements.
func (w *Weights[E]) Field() field.Field[E] {
	return w.field
}

// Length returns the vector length.
func (w *Weights[E]) Length() int {
	return w.length
}

// FromUint64 creates a weight vector from the integer values.
func (w *Weights[E]) FromUint64(values ...uint64) ([]E, error) {
	if len(values) != w.length {
		return nil, fmt.Errorf("%w: got %d, expected %d",
			ErrInvalidWeightLength, len(values), w.length)
	}
	result := make([]E, w.length)
	for i, v := range values {
		result[i] = w.field.FromUint64(v)
	}
	return result, nil
}

// Zero implements Algebra.Zero.
func (w *Weights[E]) Zero() []E {
	result := make([]E, w.length)
	for i := range result {
		result[i] = w.field.Zero()
	}
	return result
}

// Generate implements Algebra.Generate.
func (w *Weights[E]) Generate(r io.Reader) ([]E, error) {
	result := make([]E, w.length)
	for i := range result {
		e, err := w.field.Random(r)
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

// Add implements Algebra.Add.
func (w *Weights[E]) Add(a, b []E) []E {
	w.check(a, b)
	result := make([]E, w.length)
	for i := range result {
		result[i] = w.field.Add(a[i], b[i])
	}
	return result
}

// Sub implements Algebra.Sub.
func (w *Weights[E]) Sub(a, b []E) []E {
	w.check(a, b)
	result := make([]E, w.length)
	for i := range result {
		result[i] = w.field.Sub(a[i], b[i])
	}
	return result
}

// Neg implements Algebra.Neg.
func (w *Weights[E]) Neg(a []E) []E {
	w.check(a)
	result := make([]E, w.length)
	for i := range result {
		result[i] = w.field.Neg(a[i])
	}
	return result
}

// Select implements Algebra.Select.
func (w *Weights[E]) Select(a, b []E, c ct.Choice) []E {
	w.check(a, b)
	result := make([]E, w.length)
	for i := range result {
		result[i] = w.field.Select(a[i], b[i], c)
	}
	return result
}

// ConditionalNegate implements Algebra.ConditionalNegate.
func (w *Weights[E]) ConditionalNegate(a []E, c ct.Choice) []E {
	return w.Select(a, w.Neg(a), c)
}

// Equal implements Algebra.Equal. All elements are compared; only
// the vector lengths are public.
func (w *Weights[E]) Equal(a, b []E) bool {
	eq := len(a) == len(b)
	for i := range min(len(a), len(b)) {
		eq = w.field.Equal(a[i], b[i]) && eq
	}
	return eq
}

// EncodedSize implements Algebra.EncodedSize.
func (w *Weights[E]) EncodedSize() int {
	return w.length * w.field.EncodedSize()
}

// Append implements Algebra.Append.
func (w *Weights[E]) Append(dst []byte, a []E) []byte {
	w.check(a)
	for _, e := range a {
		dst = w.field.Append(dst, e)
	}
	return dst
}

// Decode implements Algebra.Decode.
func (w *Weights[E]) Decode(data []byte) ([]E, error) {
	if len(data) != w.EncodedSize() {
		return nil, fmt.Errorf("%w: weight length %d, expected %d",
			ErrDecode, len(data), w.EncodedSize())
	}
	size := w.field.EncodedSize()
	result := make([]E, w.length)
	for i := range result {
		e, err := w.field.Decode(data[i*size : (i+1)*size])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		result[i] = e
	}
	return result, nil
}

// Format returns a human readable representation of the vector.
func (w *Weights[E]) Format(a []E) string {
	result := "["
	for i, e := range a {
		if i > 0 {
			result += " "
		}
		result += w.field.Format(e)
	}
	return result + "]"
}

func (w *Weights[E]) check(vectors ...[]E) {
	for _, v := range vectors {
		if len(v) != w.length {
			panic(ErrInvalidWeightLength)
		}
	}
}
