//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"fmt"
	"io"

	"github.com/markkurossi/vidpf/block"
	"github.com/markkurossi/vidpf/ct"
)

// ServerID identifies one of the two evaluating servers.
type ServerID uint8

// Server IDs.
const (
	S0 ServerID = iota
	S1
)

func (id ServerID) String() string {
	switch id {
	case S0:
		return "S0"
	case S1:
		return "S1"
	default:
		return fmt.Sprintf("{ServerID %d}", uint8(id))
	}
}

// Valid tests if the ID is S0 or S1.
func (id ServerID) Valid() bool {
	return id == S0 || id == S1
}

func (id ServerID) choice() ct.Choice {
	return ct.FromBit(uint8(id))
}

// KeySize defines the size of the encoded key in bytes.
const KeySize = 1 + block.Size

// Key implements a server's private VIDPF key. The key seed is
// secret and it is never included in the key's string
// representation.
type Key struct {
	ID   ServerID
	seed block.Block
}

// NewKey creates a key from the server ID and seed.
func NewKey(id ServerID, seed [block.Size]byte) Key {
	var key Key
	key.ID = id
	key.seed.SetBytes(seed[:])
	return key
}

// GenerateKey creates a new random key for the server ID.
func GenerateKey(id ServerID, rand io.Reader) (Key, error) {
	seed, err := block.New(rand)
	if err != nil {
		return Key{}, err
	}
	return Key{
		ID:   id,
		seed: seed,
	}, nil
}

// Zeroize clears the key seed.
func (k *Key) Zeroize() {
	k.seed.Zeroize()
}

func (k Key) String() string {
	return fmt.Sprintf("Key{ID:%v}", k.ID)
}

// MarshalBinary encodes the key as the server ID byte followed by the
// seed.
func (k Key) MarshalBinary() ([]byte, error) {
	var d block.Data
	k.seed.GetData(&d)

	buf := make([]byte, 0, KeySize)
	buf = append(buf, byte(k.ID))
	buf = append(buf, d[:]...)
	d.Zeroize()

	return buf, nil
}

// UnmarshalKey decodes a key from its binary encoding.
func UnmarshalKey(data []byte) (Key, error) {
	if len(data) != KeySize {
		return Key{}, fmt.Errorf("%w: key length %d, expected %d",
			ErrDecode, len(data), KeySize)
	}
	id := ServerID(data[0])
	if !id.Valid() {
		return Key{}, fmt.Errorf("%w: %w: %v", ErrDecode,
			ErrInvalidServerID, id)
	}
	var key Key
	key.ID = id
	key.seed.SetBytes(data[1:])
	return key, nil
}
