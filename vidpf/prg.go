//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"bytes"

	"github.com/markkurossi/vidpf/block"
	"github.com/markkurossi/vidpf/ct"
	"github.com/markkurossi/vidpf/xof"
)

// expansion holds the two children of a tree node.
type expansion struct {
	left     block.Block
	right    block.Block
	leftBit  ct.Choice
	rightBit ct.Choice
}

func (e *expansion) zeroize() {
	e.left.Zeroize()
	e.right.Zeroize()
	e.leftBit = ct.False
	e.rightBit = ct.False
}

// expanders hold the seed expanders of one nonce.
type expanders struct {
	nonce   []byte
	prg     xof.Expander
	convert xof.Expander
}

// expandersFor returns the seed expanders for the nonce. The
// expanders of the latest nonce are cached so keyed Xofs derive their
// keys once per nonce.
func (v *Vidpf[V]) expandersFor(nonce []byte) *expanders {
	e := v.expanders.Load()
	if e != nil && bytes.Equal(e.nonce, nonce) {
		return e
	}
	e = &expanders{
		nonce:   bytes.Clone(nonce),
		prg:     xof.NewExpander(v.expand, v.dstPrg, nonce),
		convert: xof.NewExpander(v.expand, v.dstConvert, nonce),
	}
	v.expanders.Store(e)
	return e
}

// prg expands the seed into the seeds and control bits of the node's
// children. The control bits are the least significant bits of the
// first byte of each child seed and they are cleared from the seeds.
func (v *Vidpf[V]) prg(seed block.Block, nonce []byte) (expansion, error) {
	var e expansion
	var d block.Data
	var buf [2 * block.Size]byte

	r := v.expandersFor(nonce).prg.Expand(seed.Bytes(&d))
	err := xof.Fill(r, buf[:])
	d.Zeroize()
	if err != nil {
		return e, err
	}

	e.left = block.FromBytes(buf[:block.Size])
	e.right = block.FromBytes(buf[block.Size:])
	for i := range buf {
		buf[i] = 0
	}

	e.leftBit = e.left.ControlBit()
	e.left.ClearControlBit()
	e.rightBit = e.right.ControlBit()
	e.right.ClearControlBit()

	return e, nil
}

// convert maps the seed into the next level seed and a pseudorandom
// weight.
func (v *Vidpf[V]) convert(seed block.Block, nonce []byte) (
	block.Block, V, error) {

	var next block.Block
	var d block.Data
	var buf block.Data

	r := v.expandersFor(nonce).convert.Expand(seed.Bytes(&d))
	d.Zeroize()

	err := xof.Fill(r, buf[:])
	if err != nil {
		var zero V
		return next, zero, err
	}
	next.SetData(&buf)
	buf.Zeroize()

	weight, err := v.alg.Generate(r)
	if err != nil {
		next.Zeroize()
		return next, weight, err
	}
	return next, weight, nil
}
