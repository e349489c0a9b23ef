//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/markkurossi/vidpf/block"
	"github.com/markkurossi/vidpf/ct"
	"github.com/markkurossi/vidpf/xof"
)

// ProofSize defines the size of the evaluation proofs in bytes.
const ProofSize = 32

// Proof implements the evaluation proof. Two honest servers
// evaluating the same input against the same public share compute
// identical proofs.
type Proof [ProofSize]byte

func (p Proof) String() string {
	return hex.EncodeToString(p[:])
}

// Xor returns p XOR o.
func (p Proof) Xor(o Proof) Proof {
	for i := range p {
		p[i] ^= o[i]
	}
	return p
}

func (p Proof) conditionalXor(o Proof, c ct.Choice) Proof {
	ct.XorBytes(p[:], o[:], c)
	return p
}

// ProofsEqual tests in constant time if the proofs a and b are equal.
func ProofsEqual(a, b Proof) bool {
	return ct.EqualBytes(a[:], b[:]).Bit() == 1
}

// nodeProof computes the node proof for the input prefix 0...level
// under the seed.
func (v *Vidpf[V]) nodeProof(input Input, level int, seed block.Block) (
	Proof, error) {

	var proof Proof

	if level < 0 || level >= input.Len() {
		return proof, ErrIndexLevel
	}
	if level > math.MaxUint16 {
		return proof, fmt.Errorf("%w: %d", ErrLevelTooBig, level)
	}
	binder := input.proofPrefix(level)
	binder = binary.LittleEndian.AppendUint16(binder, uint16(level))

	var d block.Data
	r := v.prove.Stream(seed.Bytes(&d), v.dstNodeProof, binder)
	err := xof.Fill(r, proof[:])
	d.Zeroize()

	return proof, err
}

// nodeProofAdjustment maps the intermediate proof value into the next
// proof adjustment.
func (v *Vidpf[V]) nodeProofAdjustment(proof Proof) (Proof, error) {
	var zero block.Data
	var adj Proof

	r := v.prove.Stream(zero[:], v.dstNodeProofAdjustment, proof[:])
	err := xof.Fill(r, adj[:])

	return adj, err
}
