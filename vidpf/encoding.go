//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"fmt"

	"github.com/markkurossi/vidpf/block"
	"github.com/markkurossi/vidpf/ct"
)

// PublicShareSize returns the encoded size of a public share of n
// levels.
func (v *Vidpf[V]) PublicShareSize(n int) int {
	return (2*n+7)/8 + n*(block.Size+v.alg.EncodedSize()+ProofSize)
}

// EncodePublicShare encodes the public share. The encoding contains
// the packed control bits (two bits per level, least significant bit
// first), followed by the correction word seeds, the correction word
// weights, and the proof corrections.
func (v *Vidpf[V]) EncodePublicShare(public *PublicShare[V]) []byte {
	n := public.Levels()
	buf := make([]byte, (2*n+7)/8, v.PublicShareSize(n))

	for i := 0; i < n; i++ {
		cw := &public.CW[i]
		buf[(2*i)/8] |= cw.LeftControlBit.Bit() << ((2 * i) % 8)
		buf[(2*i+1)/8] |= cw.RightControlBit.Bit() << ((2*i + 1) % 8)
	}
	var d block.Data
	for i := 0; i < n; i++ {
		buf = append(buf, public.CW[i].Seed.Bytes(&d)...)
	}
	for i := 0; i < n; i++ {
		buf = v.alg.Append(buf, public.CW[i].Weight)
	}
	for i := 0; i < n; i++ {
		buf = append(buf, public.CS[i][:]...)
	}
	return buf
}

// DecodePublicShare decodes a public share of n levels.
func (v *Vidpf[V]) DecodePublicShare(n int, data []byte) (
	*PublicShare[V], error) {

	if n < 0 || len(data) != v.PublicShareSize(n) {
		return nil, fmt.Errorf("%w: public share length %d for %d levels",
			ErrDecode, len(data), n)
	}
	bitsLen := (2*n + 7) / 8
	bits := data[:bitsLen]
	if n%4 != 0 && bits[bitsLen-1]>>((2*n)%8) != 0 {
		return nil, fmt.Errorf("%w: non-zero control bit padding", ErrDecode)
	}
	data = data[bitsLen:]

	public := &PublicShare[V]{
		CW: make([]CorrectionWord[V], n),
		CS: make([]Proof, n),
	}
	for i := 0; i < n; i++ {
		cw := &public.CW[i]
		cw.LeftControlBit = ct.FromBit(bits[(2*i)/8] >> ((2 * i) % 8))
		cw.RightControlBit = ct.FromBit(bits[(2*i+1)/8] >> ((2*i + 1) % 8))

		cw.Seed = block.FromBytes(data[:block.Size])
		data = data[block.Size:]
	}
	size := v.alg.EncodedSize()
	for i := 0; i < n; i++ {
		w, err := v.alg.Decode(data[:size])
		if err != nil {
			return nil, fmt.Errorf("%w: level %d weight: %w", ErrDecode, i,
				err)
		}
		public.CW[i].Weight = w
		data = data[size:]
	}
	for i := 0; i < n; i++ {
		copy(public.CS[i][:], data[:ProofSize])
		data = data[ProofSize:]
	}
	return public, nil
}
