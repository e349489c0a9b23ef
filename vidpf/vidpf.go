//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package vidpf implements a two-party Verifiable Incremental
// Distributed Point Function (VIDPF).
//
// A client holding a secret point α of n bits and a secret weight β
// generates a public share and two private keys with Gen. Each
// server evaluates its key on any input prefix. The two weight
// shares sum to β on the path of α and to zero elsewhere. Both
// servers also output an evaluation proof: honest servers evaluating
// the same input against the same public share compute identical
// proofs.
//
// The point function is represented as a binary tree of height n.
// Each evaluation step expands the current node's seed into its two
// children, applies the level's correction word when the node's
// control bit is set, and converts the chosen child into the next
// seed and a pseudorandom weight. All branches on secret data are
// replaced with constant-time selection.
package vidpf

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/markkurossi/vidpf/block"
	"github.com/markkurossi/vidpf/ct"
	"github.com/markkurossi/vidpf/env"
	"github.com/markkurossi/vidpf/xof"
)

// Version defines the default protocol version used in the domain
// separation tags.
const Version = "VIDPF-v1"

// Default parameter values.
const (
	DefaultNonceSize = 16
)

// Params define the VIDPF instance parameters. Both the client and
// the servers must use the same parameters.
type Params struct {
	// Version is the protocol version string prefixed to all domain
	// separation tags.
	Version string

	// Expand is the Xof for the tree expansion and seed conversion.
	Expand xof.Xof

	// Prove is the Xof for the node proofs and proof adjustments.
	Prove xof.Xof

	// NonceSize is the required nonce size in bytes.
	NonceSize int
}

// NewParams returns the default parameters.
func NewParams() *Params {
	return &Params{
		Version:   Version,
		Expand:    xof.FixedKeyAES128{},
		Prove:     xof.CShake128{},
		NonceSize: DefaultNonceSize,
	}
}

// Vidpf implements a VIDPF instance over the weight algebra V. The
// instance is safe for concurrent use.
type Vidpf[V any] struct {
	config    *env.Config
	log       *slog.Logger
	alg       Algebra[V]
	expand    xof.Xof
	prove     xof.Xof
	nonceSize int

	dstPrg                 []byte
	dstConvert             []byte
	dstNodeProof           []byte
	dstNodeProofAdjustment []byte

	// Expanders of the most recently used nonce.
	expanders atomic.Pointer[expanders]
}

// New creates a new VIDPF instance. If params is nil, the default
// parameters are used. Unset fields of params take their default
// values.
func New[V any](config *env.Config, alg Algebra[V], params *Params) *Vidpf[V] {
	p := NewParams()
	if params != nil {
		if len(params.Version) > 0 {
			p.Version = params.Version
		}
		if params.Expand != nil {
			p.Expand = params.Expand
		}
		if params.Prove != nil {
			p.Prove = params.Prove
		}
		if params.NonceSize > 0 {
			p.NonceSize = params.NonceSize
		}
	}

	return &Vidpf[V]{
		config:    config,
		log:       config.GetLogger(),
		alg:       alg,
		expand:    p.Expand,
		prove:     p.Prove,
		nonceSize: p.NonceSize,

		dstPrg:                 xof.DST(p.Version, "Prg"),
		dstConvert:             xof.DST(p.Version, "Convert"),
		dstNodeProof:           xof.DST(p.Version, "NodeProof"),
		dstNodeProofAdjustment: xof.DST(p.Version, "NodeProofAdjustment"),
	}
}

// Algebra returns the weight algebra of the instance.
func (v *Vidpf[V]) Algebra() Algebra[V] {
	return v.alg
}

// NonceSize returns the required nonce size in bytes.
func (v *Vidpf[V]) NonceSize() int {
	return v.nonceSize
}

func (v *Vidpf[V]) checkNonce(nonce []byte) error {
	if len(nonce) != v.nonceSize {
		return fmt.Errorf("%w: got %d, expected %d",
			ErrInvalidNonce, len(nonce), v.nonceSize)
	}
	return nil
}

// CorrectionWord holds the public corrections for one tree level.
type CorrectionWord[V any] struct {
	Seed            block.Block
	LeftControlBit  ct.Choice
	RightControlBit ct.Choice
	Weight          V
}

// PublicShare holds the public information both servers need for
// evaluation: one correction word and one proof correction per
// level.
type PublicShare[V any] struct {
	CW []CorrectionWord[V]
	CS []Proof
}

// Levels returns the number of tree levels the public share covers.
func (p *PublicShare[V]) Levels() int {
	if p == nil {
		return 0
	}
	return min(len(p.CW), len(p.CS))
}

// Gen generates a public share and two keys for the point function
// that maps input to weight. The key seeds are sampled from the
// configured random source.
func (v *Vidpf[V]) Gen(input Input, weight V, nonce []byte) (
	*PublicShare[V], [2]Key, error) {

	var keys [2]Key
	var err error

	for i, id := range []ServerID{S0, S1} {
		keys[i], err = GenerateKey(id, v.config.GetRandom())
		if err != nil {
			return nil, [2]Key{},
				fmt.Errorf("vidpf: key generation: %w", err)
		}
	}
	public, err := v.GenWithKeys(keys, input, weight, nonce)
	if err != nil {
		keys[0].Zeroize()
		keys[1].Zeroize()
		return nil, [2]Key{}, err
	}
	return public, keys, nil
}

// GenWithKeys generates the public share for the point function that
// maps input to weight, using the caller provided keys. The keys must
// have distinct server IDs.
func (v *Vidpf[V]) GenWithKeys(keys [2]Key, input Input, weight V,
	nonce []byte) (*PublicShare[V], error) {

	if keys[0].ID == keys[1].ID {
		return nil, ErrSameKeyID
	}
	if !keys[0].ID.Valid() || !keys[1].ID.Valid() {
		return nil, ErrInvalidServerID
	}
	if keys[0].ID == S1 {
		keys[0], keys[1] = keys[1], keys[0]
	}
	if err := v.checkNonce(nonce); err != nil {
		return nil, err
	}
	n := input.Len()
	if n-1 > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d levels", ErrLevelTooBig, n)
	}

	v.log.Debug("vidpf: gen", "levels", n)

	s := [2]block.Block{keys[0].seed, keys[1].seed}
	t := [2]ct.Choice{keys[0].ID.choice(), keys[1].ID.choice()}
	defer func() {
		s[0].Zeroize()
		s[1].Zeroize()
	}()

	public := &PublicShare[V]{
		CW: make([]CorrectionWord[V], n),
		CS: make([]Proof, n),
	}

	for level := 0; level < n; level++ {
		alpha, err := input.Bit(level)
		if err != nil {
			return nil, err
		}
		var e [2]expansion
		for b := range e {
			e[b], err = v.prg(s[b], nonce)
			if err != nil {
				return nil, err
			}
		}

		// Seed correction cancels the off-path children.
		seedCW := block.Select(e[0].right, e[0].left, alpha)
		seedCW.Xor(block.Select(e[1].right, e[1].left, alpha))

		leftCW := e[0].leftBit.Xor(e[1].leftBit).Xor(alpha).Not()
		rightCW := e[0].rightBit.Xor(e[1].rightBit).Xor(alpha)
		onCW := ct.Select(leftCW, rightCW, alpha)

		var w [2]V
		for b := range s {
			on := block.Select(e[b].left, e[b].right, alpha)
			on.ConditionalXor(seedCW, t[b])
			onBit := ct.Select(e[b].leftBit, e[b].rightBit, alpha)
			t[b] = onBit.Xor(t[b].And(onCW))

			s[b], w[b], err = v.convert(on, nonce)
			on.Zeroize()
			e[b].zeroize()
			if err != nil {
				return nil, err
			}
		}

		weightCW := v.alg.Add(v.alg.Sub(weight, w[0]), w[1])
		weightCW = v.alg.ConditionalNegate(weightCW, t[1])

		public.CW[level] = CorrectionWord[V]{
			Seed:            seedCW,
			LeftControlBit:  leftCW,
			RightControlBit: rightCW,
			Weight:          weightCW,
		}

		p0, err := v.nodeProof(input, level, s[0])
		if err != nil {
			return nil, err
		}
		p1, err := v.nodeProof(input, level, s[1])
		if err != nil {
			return nil, err
		}
		public.CS[level] = p0.Xor(p1)
	}

	return public, nil
}
