//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//
// Efficient Garbling from a Fixed-Key Blockcipher
//  - https://eprint.iacr.org/2013/426.pdf
// Better Concrete Security for Half-Gates Garbling (in the
// Multi-Instance Setting)
//  - https://eprint.iacr.org/2019/1168.pdf
//

package block

import (
	"crypto/aes"
	"crypto/cipher"
)

// FixedKeyHash implements the fixed-key AES circular correlation
// robust hash H(x) = π(σ(x)) ⊕ σ(x) where π is AES-128 under a fixed
// key. The key is public; all secrecy comes from the hashed blocks.
type FixedKeyHash struct {
	cipher cipher.Block
}

// NewFixedKeyHash creates a new fixed-key hash with the key.
func NewFixedKeyHash(key Block) *FixedKeyHash {
	var d Data
	c, err := aes.NewCipher(key.Bytes(&d))
	if err != nil {
		panic(err)
	}
	return &FixedKeyHash{
		cipher: c,
	}
}

// Hash returns the hash of the block x.
func (h *FixedKeyHash) Hash(x Block) Block {
	s := x.Sigma()

	var d Data
	s.GetData(&d)
	h.cipher.Encrypt(d[:], d[:])

	var r Block
	r.SetData(&d)
	r.Xor(s)
	d.Zeroize()

	return r
}

// HashBlocks hashes the blocks in place.
func (h *FixedKeyHash) HashBlocks(blks []Block) {
	tmp := make([]Data, len(blks))
	sigmas := make([]Block, len(blks))
	for i := 0; i < len(blks); i++ {
		sigmas[i] = blks[i].Sigma()
		sigmas[i].GetData(&tmp[i])
	}
	for i := range tmp {
		h.cipher.Encrypt(tmp[i][:], tmp[i][:])
	}
	for i := range blks {
		var t Block
		t.SetData(&tmp[i])
		t.Xor(sigmas[i])
		blks[i] = t
		tmp[i].Zeroize()
	}
}
