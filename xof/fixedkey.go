//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package xof

import (
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/markkurossi/vidpf/block"
)

var (
	_ Xof       = FixedKeyAES128{}
	_ Keyer     = FixedKeyAES128{}
	_ Expander  = &FixedKeyAES128Key{}
	_ io.Reader = &FixedKeyStream{}
)

const fixedKeyDST = "FixedKeyAES128"

// FixedKeyAES128 implements the Xof interface with fixed-key AES-128.
// The AES key is derived from the domain separation tag and the
// binder with cSHAKE128; the seed is expanded with the fixed-key hash
// over seed ⊕ counter blocks. The construction is tuned for many
// expansions under the same key.
type FixedKeyAES128 struct{}

// SeedSize implements Xof.SeedSize.
func (x FixedKeyAES128) SeedSize() int {
	return block.Size
}

// Stream implements Xof.Stream.
func (x FixedKeyAES128) Stream(seed, dst, binder []byte) io.Reader {
	return NewFixedKeyAES128Key(dst, binder).Stream(seed)
}

// Key implements Keyer.Key.
func (x FixedKeyAES128) Key(dst, binder []byte) Expander {
	return NewFixedKeyAES128Key(dst, binder)
}

// FixedKeyAES128Key holds the fixed key derived from the domain
// separation tag and binder. It can be used for any number of seeds.
type FixedKeyAES128Key struct {
	hash *block.FixedKeyHash
}

// NewFixedKeyAES128Key derives a fixed key for the dst and binder.
func NewFixedKeyAES128Key(dst, binder []byte) *FixedKeyAES128Key {
	h := sha3.NewCShake128(nil, []byte(fixedKeyDST))
	h.Write(lengthPrefixEncode(dst))
	h.Write(binder)

	var d block.Data
	h.Read(d[:])

	var key block.Block
	key.SetData(&d)

	return &FixedKeyAES128Key{
		hash: block.NewFixedKeyHash(key),
	}
}

// Stream creates the output stream for the seed.
func (k *FixedKeyAES128Key) Stream(seed []byte) *FixedKeyStream {
	if len(seed) != block.Size {
		panic(fmt.Sprintf("xof: FixedKeyAES128: invalid seed size %d",
			len(seed)))
	}
	return &FixedKeyStream{
		hash: k.hash,
		seed: block.FromBytes(seed),
		pos:  fixedKeyBatch * block.Size,
	}
}

// Expand implements Expander.Expand.
func (k *FixedKeyAES128Key) Expand(seed []byte) io.Reader {
	return k.Stream(seed)
}

// fixedKeyBatch is the number of counter blocks hashed per refill.
const fixedKeyBatch = 2

// FixedKeyStream implements the fixed-key AES-128 output stream.
type FixedKeyStream struct {
	hash *block.FixedKeyHash
	seed block.Block
	ctr  uint64
	blks [fixedKeyBatch]block.Block
	buf  [fixedKeyBatch * block.Size]byte
	pos  int
}

// Read implements io.Reader.
func (s *FixedKeyStream) Read(p []byte) (int, error) {
	var n int
	for n < len(p) {
		if s.pos >= len(s.buf) {
			s.refill()
		}
		c := copy(p[n:], s.buf[s.pos:])
		n += c
		s.pos += c
	}
	return n, nil
}

func (s *FixedKeyStream) refill() {
	for i := range s.blks {
		s.blks[i] = block.Counter(s.ctr)
		s.blks[i].Xor(s.seed)
		s.ctr++
	}
	s.hash.HashBlocks(s.blks[:])

	var d block.Data
	for i := range s.blks {
		s.blks[i].GetData(&d)
		copy(s.buf[i*block.Size:], d[:])
	}
	d.Zeroize()
	s.pos = 0
}
