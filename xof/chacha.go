//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package xof

import (
	"io"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"
)

var (
	_ Xof = ChaCha20{}
)

const chachaDST = "ChaCha20"

// ChaCha20 implements the Xof interface with the ChaCha20 stream
// cipher. The cipher key is derived from the seed, domain separation
// tag, and binder with cSHAKE128 and the stream is the cipher's
// keystream under the zero nonce. Seeds of any length are accepted.
type ChaCha20 struct{}

// SeedSize implements Xof.SeedSize.
func (x ChaCha20) SeedSize() int {
	return chacha20.KeySize
}

// Stream implements Xof.Stream.
func (x ChaCha20) Stream(seed, dst, binder []byte) io.Reader {
	h := sha3.NewCShake128(nil, []byte(chachaDST))
	h.Write(lengthPrefixEncode(dst))
	h.Write(lengthPrefixEncode(seed))
	h.Write(binder)

	var key [chacha20.KeySize]byte
	h.Read(key[:])

	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic(err)
	}
	for i := range key {
		key[i] = 0
	}
	return &keystream{
		cipher: c,
	}
}

type keystream struct {
	cipher *chacha20.Cipher
}

func (s *keystream) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}
