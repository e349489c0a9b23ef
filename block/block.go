//
// block.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package block implements 128-bit blocks. Blocks carry the PRG
// seeds of the point function tree and are the unit of the fixed-key
// AES hash.
package block

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/markkurossi/vidpf/ct"
)

// Size defines the block size in bytes.
const Size = 16

// controlBit is the least significant bit of the first byte of the
// block's byte representation.
const controlBit = uint64(1) << 56

// Block implements a 128 bit block. D0 holds the first eight bytes
// of the block in big-endian order and D1 the last eight bytes.
type Block struct {
	D0 uint64
	D1 uint64
}

// Data contains block data as byte array.
type Data [Size]byte

func (b Block) String() string {
	return fmt.Sprintf("%016x%016x", b.D0, b.D1)
}

// New creates a new random block.
func New(rand io.Reader) (Block, error) {
	var buf Data
	var b Block

	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return b, err
	}
	b.SetData(&buf)
	buf.Zeroize()

	return b, nil
}

// FromBytes creates a block from the first Size bytes of data.
func FromBytes(data []byte) Block {
	var b Block
	b.SetBytes(data)
	return b
}

// Counter creates a block from the counter value. The counter is
// stored in little-endian order in the first eight bytes.
func Counter(ctr uint64) Block {
	var d Data
	binary.LittleEndian.PutUint64(d[0:8], ctr)

	var b Block
	b.SetData(&d)
	return b
}

// ControlBit returns the block's control bit.
func (b Block) ControlBit() ct.Choice {
	return ct.FromBit(uint8(b.D0 >> 56))
}

// ClearControlBit clears the block's control bit.
func (b *Block) ClearControlBit() {
	b.D0 &^= controlBit
}

// Xor xors the block with the argument block.
func (b *Block) Xor(o Block) {
	b.D0 ^= o.D0
	b.D1 ^= o.D1
}

// ConditionalXor xors the argument block into b if c is true.
func (b *Block) ConditionalXor(o Block, c ct.Choice) {
	m := c.Mask64()
	b.D0 ^= m & o.D0
	b.D1 ^= m & o.D1
}

// Select returns a if c is false and b if c is true.
func Select(a, b Block, c ct.Choice) Block {
	return Block{
		D0: ct.SelectUint64(a.D0, b.D0, c),
		D1: ct.SelectUint64(a.D1, b.D1, c),
	}
}

// Equal tests in constant time if the blocks are equal.
func (b Block) Equal(o Block) ct.Choice {
	d := (b.D0 ^ o.D0) | (b.D1 ^ o.D1)
	// d|-d has its top bit set iff d != 0.
	return ct.FromBit(uint8(((d | -d) >> 63) ^ 1))
}

// Sigma computes the linear orthomorphism σ(x0||x1) = (x0⊕x1)||x0
// used by the fixed-key hash.
func (b Block) Sigma() Block {
	return Block{
		D0: b.D0 ^ b.D1,
		D1: b.D0,
	}
}

// Zeroize clears the block.
func (b *Block) Zeroize() {
	b.D0 = 0
	b.D1 = 0
}

// GetData gets the block as block data.
func (b Block) GetData(buf *Data) {
	binary.BigEndian.PutUint64(buf[0:8], b.D0)
	binary.BigEndian.PutUint64(buf[8:16], b.D1)
}

// SetData sets the block from block data.
func (b *Block) SetData(data *Data) {
	b.D0 = binary.BigEndian.Uint64((*data)[0:8])
	b.D1 = binary.BigEndian.Uint64((*data)[8:16])
}

// Bytes returns the block data as bytes.
func (b Block) Bytes(buf *Data) []byte {
	b.GetData(buf)
	return buf[:]
}

// SetBytes sets the block data from bytes.
func (b *Block) SetBytes(data []byte) {
	b.D0 = binary.BigEndian.Uint64(data[0:8])
	b.D1 = binary.BigEndian.Uint64(data[8:16])
}

// Zeroize clears the block data.
func (d *Data) Zeroize() {
	for i := range d {
		d[i] = 0
	}
}
