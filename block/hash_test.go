//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package block

import (
	"encoding/hex"
	"testing"
)

var hashTests = []struct {
	key   Block
	input Block
	hash  string
}{
	{
		// AES-128 of the zero block under the zero key.
		hash: "66e94bd4ef8a2c3b884cfa59ca342b2e",
	},
}

func TestFixedKeyHash(t *testing.T) {
	for idx, test := range hashTests {
		h := NewFixedKeyHash(test.key)
		result := h.Hash(test.input)

		expected, err := hex.DecodeString(test.hash)
		if err != nil {
			t.Fatal(err)
		}
		if result != FromBytes(expected) {
			t.Errorf("test-%d: %v != %x", idx, result, expected)
		}
	}
}

func TestFixedKeyHashBlocks(t *testing.T) {
	h := NewFixedKeyHash(Block{D0: 0x0123456789abcdef, D1: 42})

	blks := make([]Block, 8)
	for i := range blks {
		blks[i] = Counter(uint64(i))
	}
	expected := make([]Block, len(blks))
	for i := range blks {
		expected[i] = h.Hash(blks[i])
	}
	h.HashBlocks(blks)

	for i := range blks {
		if blks[i] != expected[i] {
			t.Errorf("block %d: %v != %v", i, blks[i], expected[i])
		}
	}
	for i := 1; i < len(blks); i++ {
		if blks[i] == blks[i-1] {
			t.Errorf("blocks %d and %d collide", i-1, i)
		}
	}
}

func TestFixedKeyHashKeys(t *testing.T) {
	x := Block{D0: 7, D1: 11}
	h0 := NewFixedKeyHash(Block{})
	h1 := NewFixedKeyHash(Block{D1: 1})

	if h0.Hash(x) == h1.Hash(x) {
		t.Errorf("different keys produced the same hash")
	}
	if h0.Hash(x) != h0.Hash(x) {
		t.Errorf("hash is not deterministic")
	}
}

func BenchmarkFixedKeyHash(b *testing.B) {
	h := NewFixedKeyHash(Block{})
	var blks [16]Block

	for b.Loop() {
		h.HashBlocks(blks[:])
	}
}
