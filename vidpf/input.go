//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"github.com/markkurossi/vidpf/ct"
)

// proofChunk is the number of input bytes absorbed per node proof
// chunk (128 bits).
const proofChunk = 16

// Input implements a point function input: a fixed-length sequence
// of bits. Bit 0 selects the child of the root. The bits are stored
// packed, most significant bit first.
type Input struct {
	bits []byte
	n    int
}

// InputFromBytes creates an input from data. Each byte contributes 8
// bits, most significant bit first.
func InputFromBytes(data []byte) Input {
	bits := make([]byte, len(data))
	copy(bits, data)
	return Input{
		bits: bits,
		n:    len(data) * 8,
	}
}

// InputFromBits creates an input from bit values. Only the least
// significant bit of each value is used.
func InputFromBits(values []uint8) Input {
	bits := make([]byte, (len(values)+7)/8)
	for i, v := range values {
		bits[i/8] |= (v & 1) << (7 - i%8)
	}
	return Input{
		bits: bits,
		n:    len(values),
	}
}

// InputFromUint creates an input from the n least significant bits of
// v, most significant bit first. The n must be in the range [0, 64].
func InputFromUint(v uint64, n int) Input {
	if n < 0 || n > 64 {
		panic("vidpf: InputFromUint: invalid bit count")
	}
	values := make([]uint8, n)
	for i := 0; i < n; i++ {
		values[i] = uint8(v >> (n - 1 - i))
	}
	return InputFromBits(values)
}

// Len returns the number of bits in the input.
func (in Input) Len() int {
	return in.n
}

// Bit returns the input bit at index i as a constant-time choice.
func (in Input) Bit(i int) (ct.Choice, error) {
	if i < 0 || i >= in.n {
		return ct.False, ErrIndexLevel
	}
	return ct.FromBit(in.bits[i/8] >> (7 - i%8)), nil
}

// Prefix returns the first n bits of the input.
func (in Input) Prefix(n int) (Input, error) {
	if n < 0 || n > in.n {
		return Input{}, ErrIndexLevel
	}
	return Input{
		bits: in.packed(n, 1),
		n:    n,
	}, nil
}

// Bytes returns the packed input bits. Unused bits of the last byte
// are zero.
func (in Input) Bytes() []byte {
	return in.packed(in.n, 1)
}

// proofPrefix returns the input bits 0...level packed and padded to a
// multiple of 128 bits, as absorbed by the node proofs.
func (in Input) proofPrefix(level int) []byte {
	return in.packed(level+1, proofChunk)
}

// packed returns the first n bits packed into a byte slice whose
// length is a multiple of align. The bits after the prefix are zero.
func (in Input) packed(n, align int) []byte {
	l := (n + 7) / 8
	size := (l + align - 1) / align * align
	buf := make([]byte, size)
	copy(buf, in.bits[:l])
	if n%8 != 0 {
		buf[l-1] &= 0xff << (8 - n%8)
	}
	return buf
}
