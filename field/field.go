//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package field implements finite field elements for point function
// weights. The fields provide additive operations with branch-free
// selection; multiplication is not needed by the point function and
// is not provided.
package field

import (
	"errors"
	"io"

	"github.com/markkurossi/vidpf/ct"
)

var (
	// ErrModulus is returned when decoding a value that is not
	// reduced modulo the field's prime.
	ErrModulus = errors.New("field: value not reduced modulo p")

	// ErrEncoding is returned when decoding data of invalid length.
	ErrEncoding = errors.New("field: invalid encoding length")
)

// Field defines the operations of a finite field with elements of
// type E. Elements are immutable values: operations return new
// elements and never modify their arguments.
type Field[E any] interface {
	// Name returns the field name.
	Name() string

	// Zero returns the additive identity.
	Zero() E

	// FromUint64 returns the field element for v.
	FromUint64(v uint64) E

	// Random samples a uniformly random field element from the
	// stream r.
	Random(r io.Reader) (E, error)

	// Add returns a+b.
	Add(a, b E) E

	// Sub returns a-b.
	Sub(a, b E) E

	// Neg returns -a.
	Neg(a E) E

	// Select returns a if c is false and b if c is true.
	Select(a, b E, c ct.Choice) E

	// Equal tests if a and b are equal.
	Equal(a, b E) bool

	// EncodedSize returns the size of the element encoding in bytes.
	EncodedSize() int

	// Append appends the encoding of a to dst.
	Append(dst []byte, a E) []byte

	// Decode decodes an element from data which must be exactly
	// EncodedSize bytes long.
	Decode(data []byte) (E, error)

	// Format returns a human readable representation of the
	// element.
	Format(a E) string
}
