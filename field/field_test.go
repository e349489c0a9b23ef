//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package field

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	group "github.com/bytemare/crypto"
	"github.com/stretchr/testify/require"

	"github.com/markkurossi/vidpf/ct"
	"github.com/markkurossi/vidpf/xof"
)

func stream(label string) *bytes.Reader {
	buf := make([]byte, 8192)
	r := xof.ChaCha20{}.Stream([]byte(label), xof.DST("field", "test"), nil)
	if err := xof.Fill(r, buf); err != nil {
		panic(err)
	}
	return bytes.NewReader(buf)
}

func testField[E any](t *testing.T, f Field[E]) {
	r := stream(f.Name())

	zero := f.Zero()
	one := f.FromUint64(1)

	for i := 0; i < 32; i++ {
		a, err := f.Random(r)
		require.NoError(t, err)
		b, err := f.Random(r)
		require.NoError(t, err)

		require.True(t, f.Equal(f.Add(a, zero), a), "a+0")
		require.True(t, f.Equal(f.Add(a, b), f.Add(b, a)), "a+b")
		require.True(t, f.Equal(f.Sub(f.Add(a, b), b), a), "a+b-b")
		require.True(t, f.Equal(f.Add(a, f.Neg(a)), zero), "a-a")
		require.True(t, f.Equal(f.Neg(f.Neg(a)), a), "--a")
		require.True(t, f.Equal(f.Sub(zero, a), f.Neg(a)), "0-a")

		require.True(t, f.Equal(f.Select(a, b, ct.False), a), "select 0")
		require.True(t, f.Equal(f.Select(a, b, ct.True), b), "select 1")

		enc := f.Append(nil, a)
		require.Len(t, enc, f.EncodedSize())
		dec, err := f.Decode(enc)
		require.NoError(t, err)
		require.True(t, f.Equal(dec, a), "decode")
	}

	require.True(t, f.Equal(f.Neg(zero), zero), "-0")
	require.True(t, f.Equal(f.Add(f.Neg(one), one), zero), "-1+1")
	require.False(t, f.Equal(one, zero))

	sum := zero
	for i := 0; i < 5; i++ {
		sum = f.Add(sum, f.FromUint64(3))
	}
	require.True(t, f.Equal(sum, f.FromUint64(15)), "3*5")

	_, err := f.Decode(make([]byte, f.EncodedSize()+1))
	require.ErrorIs(t, err, ErrEncoding)
}

func TestField64(t *testing.T) {
	testField[uint64](t, Field64{})
}

func TestField128(t *testing.T) {
	testField[Uint128](t, Field128{})
}

func TestRistretto255Scalars(t *testing.T) {
	testField[*group.Scalar](t, Ristretto255Scalars())
}

func TestP256Scalars(t *testing.T) {
	testField[*group.Scalar](t, P256Scalars())
}

func TestScalarsFromUint64(t *testing.T) {
	for _, f := range []Scalars{Ristretto255Scalars(), P256Scalars()} {
		half := f.FromUint64(1 << 63)
		require.True(t, f.Equal(f.Add(half, half),
			f.Add(f.FromUint64(math.MaxUint64), f.FromUint64(1))), f.Name())
		require.True(t, f.Equal(f.FromUint64(0), f.Zero()), f.Name())
		require.False(t, f.Equal(f.FromUint64(math.MaxUint64), f.Zero()),
			f.Name())
	}
}

func TestField64Modulus(t *testing.T) {
	f := Field64{}
	pm1 := P64 - 1

	require.Equal(t, uint64(0), f.Add(pm1, 1))
	require.Equal(t, uint64(1), f.Add(pm1, 2))
	require.Equal(t, P64-2, f.Add(pm1, pm1))
	require.Equal(t, pm1, f.Sub(0, 1))
	require.Equal(t, uint64(0), f.FromUint64(P64))
	require.Equal(t, uint64(5), f.FromUint64(P64+5))
	require.Equal(t, pm1, f.Neg(1))

	enc := f.Append(nil, 0)
	enc = f.Append(enc[:0], P64)
	_, err := f.Decode(enc)
	require.ErrorIs(t, err, ErrModulus)
}

func TestField128Modulus(t *testing.T) {
	f := Field128{}

	p := P128.Big()
	expected, ok := new(big.Int).SetString(
		"340282366920938462946865773367900766209", 10)
	require.True(t, ok)
	require.Equal(t, 0, p.Cmp(expected))

	pm1, _ := sub128(P128, Uint128{Lo: 1})
	require.Equal(t, Uint128{}, f.Add(pm1, f.FromUint64(1)))
	require.Equal(t, pm1, f.Sub(f.Zero(), f.FromUint64(1)))

	// (p-1) + (p-1) = p-2 exercises the 128-bit carry.
	pm2, _ := sub128(P128, Uint128{Lo: 2})
	require.Equal(t, pm2, f.Add(pm1, pm1))

	require.Equal(t, "340282366920938462946865773367900766208",
		f.Format(pm1))

	enc := f.Append(nil, P128)
	_, err := f.Decode(enc)
	require.ErrorIs(t, err, ErrModulus)
}

func TestRandomDeterministic(t *testing.T) {
	f := Field128{}
	a, err := f.Random(stream("seed"))
	require.NoError(t, err)
	b, err := f.Random(stream("seed"))
	require.NoError(t, err)
	require.Equal(t, a, b)

	_, err = f.Random(bytes.NewReader(nil))
	require.Error(t, err)
}
