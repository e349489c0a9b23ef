//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package xof implements keyed, domain-separated extendable-output
// functions. An Xof expands a seed into an unbounded byte stream. The
// stream is a deterministic function of the seed, the domain
// separation tag, and the binder string. Callers provide domain
// separation by using a distinct tag for every purpose.
package xof

import (
	"encoding/binary"
	"io"
)

// Xof defines an extendable-output function.
type Xof interface {
	// SeedSize returns the seed size in bytes.
	SeedSize() int

	// Stream returns the output stream for the seed, domain
	// separation tag dst, and binder. The returned stream never
	// ends.
	Stream(seed, dst, binder []byte) io.Reader
}

// Expander creates output streams for seeds under a fixed domain
// separation tag and binder.
type Expander interface {
	Expand(seed []byte) io.Reader
}

// Keyer is implemented by Xofs that can derive their per-tag state
// once and reuse it for many seeds.
type Keyer interface {
	Key(dst, binder []byte) Expander
}

// NewExpander creates an Expander for the xof, dst, and binder. If x
// implements Keyer, the derived key is shared by all streams of the
// expander.
func NewExpander(x Xof, dst, binder []byte) Expander {
	if k, ok := x.(Keyer); ok {
		return k.Key(dst, binder)
	}
	return &expander{
		xof:    x,
		dst:    concatenate(dst),
		binder: concatenate(binder),
	}
}

type expander struct {
	xof    Xof
	dst    []byte
	binder []byte
}

func (e *expander) Expand(seed []byte) io.Reader {
	return e.xof.Stream(seed, e.dst, e.binder)
}

// DST creates a domain separation tag from the protocol version and
// usage strings.
func DST(version, usage string) []byte {
	return concatenate([]byte(version), []byte("-"), []byte(usage))
}

// Fill fills buf from the stream r.
func Fill(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}

// I2osp2 encodes the integer to a 2-byte big-endian byte string.
func I2osp2(value int) []byte {
	out := make([]byte, 2)
	binary.BigEndian.PutUint16(out, uint16(value))

	return out
}

func lengthPrefixEncode(input []byte) []byte {
	return append(I2osp2(len(input)), input...)
}

func concatenate(input ...[]byte) []byte {
	length := 0
	for _, in := range input {
		length += len(in)
	}

	buf := make([]byte, 0, length)

	for _, in := range input {
		buf = append(buf, in...)
	}

	return buf
}
