//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ct

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var logicTests = []struct {
	a, b         uint8
	xor, and, or uint8
	equal, nota  uint8
}{
	{0, 0, 0, 0, 0, 1, 1},
	{0, 1, 1, 0, 1, 0, 1},
	{1, 0, 1, 0, 1, 0, 0},
	{1, 1, 0, 1, 1, 1, 0},
}

func TestLogic(t *testing.T) {
	for idx, test := range logicTests {
		a := FromBit(test.a)
		b := FromBit(test.b)

		require.Equal(t, test.xor, a.Xor(b).Bit(), "xor-%d", idx)
		require.Equal(t, test.and, a.And(b).Bit(), "and-%d", idx)
		require.Equal(t, test.or, a.Or(b).Bit(), "or-%d", idx)
		require.Equal(t, test.equal, a.Equal(b).Bit(), "equal-%d", idx)
		require.Equal(t, test.nota, a.Not().Bit(), "not-%d", idx)
	}
}

func TestFromBit(t *testing.T) {
	require.Equal(t, uint8(0), FromBit(0xfe).Bit())
	require.Equal(t, uint8(1), FromBit(0xff).Bit())
	require.Equal(t, uint8(1), FromInt(1).Bit())
	require.Equal(t, uint8(0), FromInt(0).Bit())
}

func TestMasks(t *testing.T) {
	require.Equal(t, uint8(0), False.Mask8())
	require.Equal(t, uint8(0xff), True.Mask8())
	require.Equal(t, uint64(0), False.Mask64())
	require.Equal(t, uint64(0xffffffffffffffff), True.Mask64())
}

func TestSelect(t *testing.T) {
	require.Equal(t, uint64(17), SelectUint64(17, 42, False))
	require.Equal(t, uint64(42), SelectUint64(17, 42, True))

	require.Equal(t, True, Select(True, False, False))
	require.Equal(t, False, Select(True, False, True))

	a := []byte{1, 2, 3}
	b := []byte{4, 5, 6}
	dst := make([]byte, 3)

	SelectBytes(dst, a, b, False)
	require.Equal(t, a, dst)
	SelectBytes(dst, a, b, True)
	require.Equal(t, b, dst)

	require.Panics(t, func() {
		SelectBytes(dst, a, b[:2], True)
	})
}

func TestXorBytes(t *testing.T) {
	dst := []byte{0x0f, 0xf0}
	XorBytes(dst, []byte{0xff, 0xff}, False)
	require.Equal(t, []byte{0x0f, 0xf0}, dst)

	XorBytes(dst, []byte{0xff, 0xff}, True)
	require.Equal(t, []byte{0xf0, 0x0f}, dst)
}

func TestEqualBytes(t *testing.T) {
	require.Equal(t, True, EqualBytes([]byte("vidpf"), []byte("vidpf")))
	require.Equal(t, False, EqualBytes([]byte("vidpf"), []byte("vidpg")))
	require.Equal(t, False, EqualBytes([]byte("vidpf"), []byte("vid")))
}

func TestEqualUint64(t *testing.T) {
	tests := []struct {
		a, b     uint64
		expected Choice
	}{
		{0, 0, True},
		{1, 1, True},
		{math.MaxUint64, math.MaxUint64, True},
		{0, 1, False},
		{1 << 63, 0, False},
		{0, math.MaxUint64, False},
		{0x8000000000000001, 1, False},
	}
	for _, test := range tests {
		require.Equal(t, test.expected, EqualUint64(test.a, test.b),
			"%x == %x", test.a, test.b)
	}
}
