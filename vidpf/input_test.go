//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func inputBits(t *testing.T, in Input) []uint8 {
	var result []uint8
	for i := 0; i < in.Len(); i++ {
		b, err := in.Bit(i)
		require.NoError(t, err)
		result = append(result, b.Bit())
	}
	return result
}

func TestInput(t *testing.T) {
	in := InputFromBytes([]byte{0xa5})
	require.Equal(t, 8, in.Len())
	require.Equal(t, []uint8{1, 0, 1, 0, 0, 1, 0, 1}, inputBits(t, in))

	in = InputFromUint(0b1101, 4)
	require.Equal(t, []uint8{1, 1, 0, 1}, inputBits(t, in))
	require.Equal(t, []byte{0xd0}, in.Bytes())

	in = InputFromBits([]uint8{0, 1, 3, 2})
	require.Equal(t, []uint8{0, 1, 1, 0}, inputBits(t, in))

	_, err := in.Bit(4)
	require.ErrorIs(t, err, ErrIndexLevel)
	_, err = in.Bit(-1)
	require.ErrorIs(t, err, ErrIndexLevel)

	require.Equal(t, 0, Input{}.Len())
	require.Empty(t, Input{}.Bytes())
}

func TestInputPrefix(t *testing.T) {
	in := InputFromBytes([]byte{0xff, 0x81})

	p, err := in.Prefix(3)
	require.NoError(t, err)
	require.Equal(t, 3, p.Len())
	require.Equal(t, []byte{0xe0}, p.Bytes())

	p, err = in.Prefix(9)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0x80}, p.Bytes())

	p, err = in.Prefix(0)
	require.NoError(t, err)
	require.Equal(t, 0, p.Len())

	_, err = in.Prefix(17)
	require.ErrorIs(t, err, ErrIndexLevel)
}

func TestProofPrefix(t *testing.T) {
	in := InputFromBytes([]byte{0xff, 0xff, 0xff})

	p := in.proofPrefix(0)
	require.Len(t, p, 16)
	require.Equal(t, byte(0x80), p[0])
	for _, b := range p[1:] {
		require.Equal(t, byte(0), b)
	}

	p = in.proofPrefix(9)
	require.Len(t, p, 16)
	require.Equal(t, []byte{0xff, 0xc0, 0x00}, p[:3])

	long := InputFromBytes(make([]byte, 20))
	require.Len(t, long.proofPrefix(127), 16)
	require.Len(t, long.proofPrefix(128), 32)
}

func TestInputFromUintPanics(t *testing.T) {
	require.Panics(t, func() {
		InputFromUint(0, 65)
	})
}
