//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markkurossi/vidpf/field"
)

func TestPublicShareEncoding(t *testing.T) {
	v, alg := newField128(t, 3)
	weight, err := alg.FromUint64(21, 22, 23)
	require.NoError(t, err)

	alpha := InputFromUint(0x1f5, 9)
	public, keys, err := v.Gen(alpha, weight, testNonce)
	require.NoError(t, err)

	data := v.EncodePublicShare(public)
	require.Len(t, data, v.PublicShareSize(9))
	require.Equal(t, 3+9*(16+3*16+32), len(data))

	decoded, err := v.DecodePublicShare(9, data)
	require.NoError(t, err)
	require.Equal(t, public, decoded)

	// Evaluation against the decoded share.
	sum, p0, p1 := evalBoth(t, v, decoded, keys, alpha)
	require.True(t, alg.Equal(sum, weight))
	require.Equal(t, p0, p1)

	_, err = v.DecodePublicShare(8, data)
	require.ErrorIs(t, err, ErrDecode)
	_, err = v.DecodePublicShare(9, data[1:])
	require.ErrorIs(t, err, ErrDecode)

	// 9 levels use 18 control bits: the top 6 bits of the third byte
	// are padding.
	bad := append([]byte(nil), data...)
	bad[2] |= 0x80
	_, err = v.DecodePublicShare(9, bad)
	require.ErrorIs(t, err, ErrDecode)

	// Weight outside the field.
	bad = append([]byte(nil), data...)
	for i := 3 + 9*16; i < 3+9*16+16; i++ {
		bad[i] = 0xff
	}
	_, err = v.DecodePublicShare(9, bad)
	require.ErrorIs(t, err, ErrDecode)
}

func TestPublicShareEncodingEmpty(t *testing.T) {
	v, _ := newField128(t, 1)

	data := v.EncodePublicShare(&PublicShare[[]field.Uint128]{})
	require.Empty(t, data)

	decoded, err := v.DecodePublicShare(0, nil)
	require.NoError(t, err)
	require.Equal(t, 0, decoded.Levels())
}

func TestKeyEncoding(t *testing.T) {
	key := NewKey(S1, [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14,
		15, 16})

	data, err := key.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, KeySize)
	require.Equal(t, byte(1), data[0])
	require.Equal(t, byte(16), data[16])

	decoded, err := UnmarshalKey(data)
	require.NoError(t, err)
	require.Equal(t, key, decoded)

	require.Equal(t, "Key{ID:S1}", key.String())
	require.NotContains(t, key.String(), "0102")

	_, err = UnmarshalKey(data[1:])
	require.ErrorIs(t, err, ErrDecode)

	data[0] = 2
	_, err = UnmarshalKey(data)
	require.ErrorIs(t, err, ErrDecode)
	require.ErrorIs(t, err, ErrInvalidServerID)

	key.Zeroize()
	data, err = key.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, make([]byte, 16), data[1:])
}
