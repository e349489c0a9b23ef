//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package field

import (
	"encoding/binary"
	"io"
	"math/big"
	"math/bits"

	"github.com/markkurossi/vidpf/ct"
)

var (
	_ Field[Uint128] = Field128{}
)

// P128 is the modulus of Field128: 2^128 - 28*2^64 + 1.
var P128 = Uint128{
	Hi: 0xffffffffffffffe4,
	Lo: 0x0000000000000001,
}

// Uint128 implements a 128-bit unsigned integer.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Big returns the value as big.Int.
func (u Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

func add128(a, b Uint128) (Uint128, uint64) {
	lo, c := bits.Add64(a.Lo, b.Lo, 0)
	hi, c := bits.Add64(a.Hi, b.Hi, c)
	return Uint128{Hi: hi, Lo: lo}, c
}

func sub128(a, b Uint128) (Uint128, uint64) {
	lo, bw := bits.Sub64(a.Lo, b.Lo, 0)
	hi, bw := bits.Sub64(a.Hi, b.Hi, bw)
	return Uint128{Hi: hi, Lo: lo}, bw
}

func select128(a, b Uint128, c ct.Choice) Uint128 {
	return Uint128{
		Hi: ct.SelectUint64(a.Hi, b.Hi, c),
		Lo: ct.SelectUint64(a.Lo, b.Lo, c),
	}
}

// Field128 implements the prime field GF(2^128 - 28*2^64 + 1).
type Field128 struct{}

// Name implements Field.Name.
func (f Field128) Name() string {
	return "Field128"
}

// Zero implements Field.Zero.
func (f Field128) Zero() Uint128 {
	return Uint128{}
}

// FromUint64 implements Field.FromUint64.
func (f Field128) FromUint64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Random implements Field.Random with rejection sampling.
func (f Field128) Random(r io.Reader) (Uint128, error) {
	var buf [16]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Uint128{}, err
		}
		v, err := f.Decode(buf[:])
		if err == nil {
			return v, nil
		}
	}
}

// Add implements Field.Add.
func (f Field128) Add(a, b Uint128) Uint128 {
	s, carry := add128(a, b)
	d, borrow := sub128(s, P128)
	return select128(s, d, ct.FromBit(uint8(carry|(borrow^1))))
}

// Sub implements Field.Sub.
func (f Field128) Sub(a, b Uint128) Uint128 {
	d, borrow := sub128(a, b)
	m := -borrow
	r, _ := add128(d, Uint128{Hi: P128.Hi & m, Lo: P128.Lo & m})
	return r
}

// Neg implements Field.Neg.
func (f Field128) Neg(a Uint128) Uint128 {
	return f.Sub(Uint128{}, a)
}

// Select implements Field.Select.
func (f Field128) Select(a, b Uint128, c ct.Choice) Uint128 {
	return select128(a, b, c)
}

// Equal implements Field.Equal.
func (f Field128) Equal(a, b Uint128) bool {
	return ct.EqualUint64(a.Hi, b.Hi).And(ct.EqualUint64(a.Lo, b.Lo)) ==
		ct.True
}

// EncodedSize implements Field.EncodedSize.
func (f Field128) EncodedSize() int {
	return 16
}

// Append implements Field.Append. The element is encoded in
// little-endian byte order.
func (f Field128) Append(dst []byte, a Uint128) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, a.Lo)
	return binary.LittleEndian.AppendUint64(dst, a.Hi)
}

// Decode implements Field.Decode.
func (f Field128) Decode(data []byte) (Uint128, error) {
	if len(data) != f.EncodedSize() {
		return Uint128{}, ErrEncoding
	}
	v := Uint128{
		Lo: binary.LittleEndian.Uint64(data[0:8]),
		Hi: binary.LittleEndian.Uint64(data[8:16]),
	}
	if _, borrow := sub128(v, P128); borrow == 0 {
		return Uint128{}, ErrModulus
	}
	return v, nil
}

// Format implements Field.Format.
func (f Field128) Format(a Uint128) string {
	return a.Big().String()
}
