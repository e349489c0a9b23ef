//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package ct implements constant-time boolean values. A Choice is
// consumed only through branch-free selection and logic operations so
// that decisions derived from secret data do not show up in the
// program's control flow or memory access pattern.
package ct

import (
	"crypto/subtle"
)

// Choice is a constant-time boolean. The zero value is false.
type Choice struct {
	v uint8
}

var (
	// False is the false choice.
	False = Choice{}
	// True is the true choice.
	True = Choice{v: 1}
)

// FromBit creates a choice from the least significant bit of b.
func FromBit(b uint8) Choice {
	return Choice{v: b & 1}
}

// FromInt creates a choice from the int value x which must be 0 or
// 1. This matches the convention of the crypto/subtle functions.
func FromInt(x int) Choice {
	return Choice{v: uint8(x) & 1}
}

// Bit returns the choice as 0 or 1. It must only be used for values
// that are public, such as encoding correction words.
func (c Choice) Bit() uint8 {
	return c.v
}

// Not returns the negation of the choice.
func (c Choice) Not() Choice {
	return Choice{v: c.v ^ 1}
}

// Xor returns c XOR o.
func (c Choice) Xor(o Choice) Choice {
	return Choice{v: c.v ^ o.v}
}

// And returns c AND o.
func (c Choice) And(o Choice) Choice {
	return Choice{v: c.v & o.v}
}

// Or returns c OR o.
func (c Choice) Or(o Choice) Choice {
	return Choice{v: c.v | o.v}
}

// Equal returns a choice that is true if c and o are equal.
func (c Choice) Equal(o Choice) Choice {
	return Choice{v: (c.v ^ o.v) ^ 1}
}

// Mask8 returns 0xff if c is true and 0x00 otherwise.
func (c Choice) Mask8() uint8 {
	return -c.v
}

// Mask64 returns all ones if c is true and zero otherwise.
func (c Choice) Mask64() uint64 {
	return -uint64(c.v)
}

// Select returns a if c is false and b if c is true.
func Select(a, b Choice, c Choice) Choice {
	return Choice{v: a.v ^ (c.Mask8() & (a.v ^ b.v))}
}

// SelectUint64 returns a if c is false and b if c is true.
func SelectUint64(a, b uint64, c Choice) uint64 {
	return a ^ (c.Mask64() & (a ^ b))
}

// SelectBytes sets dst to a if c is false and to b if c is true. All
// slices must have the same length.
func SelectBytes(dst, a, b []byte, c Choice) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic("ct: SelectBytes: length mismatch")
	}
	m := c.Mask8()
	for i := range dst {
		dst[i] = a[i] ^ (m & (a[i] ^ b[i]))
	}
}

// XorBytes sets dst[i] = dst[i] ^ src[i] for all i if c is true and
// leaves dst unmodified otherwise.
func XorBytes(dst, src []byte, c Choice) {
	if len(dst) != len(src) {
		panic("ct: XorBytes: length mismatch")
	}
	m := c.Mask8()
	for i := range dst {
		dst[i] ^= m & src[i]
	}
}

// EqualBytes tests in constant time if a and b are equal. The
// lengths of the slices are not secret.
func EqualBytes(a, b []byte) Choice {
	return FromInt(subtle.ConstantTimeCompare(a, b))
}

// EqualUint64 tests in constant time if a and b are equal.
func EqualUint64(a, b uint64) Choice {
	x := a ^ b
	return Choice{v: uint8(1 ^ ((x | -x) >> 63))}
}
