//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package field

import (
	"encoding/binary"
	"io"
	"math/bits"
	"strconv"

	"github.com/markkurossi/vidpf/ct"
)

var (
	_ Field[uint64] = Field64{}
)

// P64 is the modulus of Field64: 2^64 - 2^32 + 1.
const P64 uint64 = 0xffffffff00000001

// Field64 implements the prime field GF(2^64 - 2^32 + 1). Elements
// are uint64 values in the range [0, P64).
type Field64 struct{}

// Name implements Field.Name.
func (f Field64) Name() string {
	return "Field64"
}

// Zero implements Field.Zero.
func (f Field64) Zero() uint64 {
	return 0
}

// FromUint64 implements Field.FromUint64.
func (f Field64) FromUint64(v uint64) uint64 {
	d, borrow := bits.Sub64(v, P64, 0)
	return ct.SelectUint64(d, v, ct.FromBit(uint8(borrow)))
}

// Random implements Field.Random with rejection sampling.
func (f Field64) Random(r io.Reader) (uint64, error) {
	var buf [8]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint64(buf[:])
		if v < P64 {
			return v, nil
		}
	}
}

// Add implements Field.Add.
func (f Field64) Add(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	d, borrow := bits.Sub64(s, P64, 0)

	// Use d if the sum overflowed or if s >= p.
	return ct.SelectUint64(s, d, ct.FromBit(uint8(carry|(borrow^1))))
}

// Sub implements Field.Sub.
func (f Field64) Sub(a, b uint64) uint64 {
	d, borrow := bits.Sub64(a, b, 0)
	return d + (P64 & -borrow)
}

// Neg implements Field.Neg.
func (f Field64) Neg(a uint64) uint64 {
	return f.Sub(0, a)
}

// Select implements Field.Select.
func (f Field64) Select(a, b uint64, c ct.Choice) uint64 {
	return ct.SelectUint64(a, b, c)
}

// Equal implements Field.Equal.
func (f Field64) Equal(a, b uint64) bool {
	return ct.EqualUint64(a, b) == ct.True
}

// EncodedSize implements Field.EncodedSize.
func (f Field64) EncodedSize() int {
	return 8
}

// Append implements Field.Append.
func (f Field64) Append(dst []byte, a uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, a)
}

// Decode implements Field.Decode.
func (f Field64) Decode(data []byte) (uint64, error) {
	if len(data) != f.EncodedSize() {
		return 0, ErrEncoding
	}
	v := binary.LittleEndian.Uint64(data)
	if v >= P64 {
		return 0, ErrModulus
	}
	return v, nil
}

// Format implements Field.Format.
func (f Field64) Format(a uint64) string {
	return strconv.FormatUint(a, 10)
}
