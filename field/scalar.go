//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package field

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	group "github.com/bytemare/crypto"

	"github.com/markkurossi/vidpf/ct"
)

var (
	_ Field[*group.Scalar] = Scalars{}
)

const scalarDST = "VIDPF-Scalars-Random"

// scalarSeedSize is the number of stream bytes hashed into one random
// scalar. Twice the scalar size keeps the reduction bias negligible.
const scalarSeedSize = 64

// Scalars implements the scalar field of a prime-order group as a
// Field. The scalars can be used as point function weights when the
// weights are later consumed by group-based protocols.
type Scalars struct {
	g    group.Group
	name string
}

// NewScalars creates a scalar field for the group g.
func NewScalars(g group.Group, name string) Scalars {
	return Scalars{
		g:    g,
		name: name,
	}
}

// Ristretto255Scalars returns the scalar field of the ristretto255
// group.
func Ristretto255Scalars() Scalars {
	return NewScalars(group.Ristretto255Sha512, "Ristretto255")
}

// P256Scalars returns the scalar field of the NIST P-256 group.
func P256Scalars() Scalars {
	return NewScalars(group.P256Sha256, "P256")
}

// Name implements Field.Name.
func (f Scalars) Name() string {
	return f.name
}

// Zero implements Field.Zero.
func (f Scalars) Zero() *group.Scalar {
	return f.g.NewScalar()
}

// FromUint64 implements Field.FromUint64.
func (f Scalars) FromUint64(v uint64) *group.Scalar {
	s := f.g.NewScalar()
	if err := s.SetInt(new(big.Int).SetUint64(v)); err != nil {
		panic(fmt.Sprintf("field: %s: scalar %d: %v", f.name, v, err))
	}
	return s
}

// Random implements Field.Random. It hashes stream bytes to a scalar
// so the result is a deterministic function of the stream.
func (f Scalars) Random(r io.Reader) (*group.Scalar, error) {
	var buf [scalarSeedSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	return f.g.HashToScalar(buf[:], []byte(scalarDST)), nil
}

// Add implements Field.Add.
func (f Scalars) Add(a, b *group.Scalar) *group.Scalar {
	return a.Copy().Add(b)
}

// Sub implements Field.Sub.
func (f Scalars) Sub(a, b *group.Scalar) *group.Scalar {
	return a.Copy().Subtract(b)
}

// Neg implements Field.Neg.
func (f Scalars) Neg(a *group.Scalar) *group.Scalar {
	return f.g.NewScalar().Subtract(a)
}

// Select implements Field.Select. The selection is done over the
// canonical encodings of the scalars.
func (f Scalars) Select(a, b *group.Scalar, c ct.Choice) *group.Scalar {
	ea := a.Encode()
	eb := b.Encode()
	ct.SelectBytes(ea, ea, eb, c)

	s := f.g.NewScalar()
	if err := s.Decode(ea); err != nil {
		panic(fmt.Sprintf("field: decode of canonical scalar failed: %v",
			err))
	}
	return s
}

// Equal implements Field.Equal.
func (f Scalars) Equal(a, b *group.Scalar) bool {
	return ct.EqualBytes(a.Encode(), b.Encode()) == ct.True
}

// EncodedSize implements Field.EncodedSize.
func (f Scalars) EncodedSize() int {
	return len(f.g.NewScalar().Encode())
}

// Append implements Field.Append.
func (f Scalars) Append(dst []byte, a *group.Scalar) []byte {
	return append(dst, a.Encode()...)
}

// Decode implements Field.Decode.
func (f Scalars) Decode(data []byte) (*group.Scalar, error) {
	if len(data) != f.EncodedSize() {
		return nil, ErrEncoding
	}
	s := f.g.NewScalar()
	if err := s.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModulus, err)
	}
	return s, nil
}

// Format implements Field.Format. Scalars are formatted as the hex
// encoding of their canonical encoding.
func (f Scalars) Format(a *group.Scalar) string {
	return hex.EncodeToString(a.Encode())
}
