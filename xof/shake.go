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
)

var (
	_ Xof = CShake128{}
)

// CShake128Seed is the seed size of CShake128.
const CShake128Seed = 16

// CShake128 implements the Xof interface with cSHAKE128. The domain
// separation tag is used as the cSHAKE customization string and the
// length-prefixed seed followed by the binder is absorbed as the
// message. It is intended for short hash-style commitments.
type CShake128 struct{}

// SeedSize implements Xof.SeedSize.
func (x CShake128) SeedSize() int {
	return CShake128Seed
}

// Stream implements Xof.Stream.
func (x CShake128) Stream(seed, dst, binder []byte) io.Reader {
	if len(seed) != CShake128Seed {
		panic(fmt.Sprintf("xof: cSHAKE128: invalid seed size %d", len(seed)))
	}
	h := sha3.NewCShake128(nil, dst)
	h.Write(lengthPrefixEncode(seed))
	h.Write(binder)
	return h
}
