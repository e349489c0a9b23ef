//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/markkurossi/vidpf/block"
	"github.com/markkurossi/vidpf/ct"
)

// EvalState holds a server's evaluation state at one tree node.
type EvalState struct {
	seed       block.Block
	controlBit ct.Choice
	proof      Proof
}

// NewEvalState creates the root evaluation state for the key.
func NewEvalState(key Key) *EvalState {
	return &EvalState{
		seed:       key.seed,
		controlBit: key.ID.choice(),
	}
}

// Proof returns the accumulated evaluation proof.
func (s *EvalState) Proof() Proof {
	return s.proof
}

// Zeroize clears the state seed and control bit.
func (s *EvalState) Zeroize() {
	s.seed.Zeroize()
	s.controlBit = ct.False
}

// Share holds a server's evaluation output: the weight share and the
// evaluation proof.
type Share[V any] struct {
	Weight V
	Proof  Proof
}

// EvalNext evaluates one tree level. It descends from the node of
// state to the child selected by the input bit at level and returns
// the child's state and the server's weight share at the child.
func (v *Vidpf[V]) EvalNext(id ServerID, public *PublicShare[V], input Input,
	level int, state *EvalState, nonce []byte) (*EvalState, V, error) {

	var zero V

	if !id.Valid() {
		return nil, zero, ErrInvalidServerID
	}
	if level < 0 || level >= public.Levels() {
		return nil, zero, fmt.Errorf("%w: level %d, public share %d",
			ErrIndexLevel, level, public.Levels())
	}
	bit, err := input.Bit(level)
	if err != nil {
		return nil, zero, fmt.Errorf("%w: level %d, input %d",
			ErrIndexLevel, level, input.Len())
	}
	if err := v.checkNonce(nonce); err != nil {
		return nil, zero, err
	}
	cw := &public.CW[level]

	e, err := v.prg(state.seed, nonce)
	if err != nil {
		return nil, zero, err
	}
	defer e.zeroize()

	e.left.ConditionalXor(cw.Seed, state.controlBit)
	e.right.ConditionalXor(cw.Seed, state.controlBit)
	leftBit := e.leftBit.Xor(state.controlBit.And(cw.LeftControlBit))
	rightBit := e.rightBit.Xor(state.controlBit.And(cw.RightControlBit))

	seed := block.Select(e.left, e.right, bit)
	controlBit := ct.Select(leftBit, rightBit, bit)

	next, w, err := v.convert(seed, nonce)
	seed.Zeroize()
	if err != nil {
		return nil, zero, err
	}

	y := v.alg.Add(w, v.alg.Select(v.alg.Zero(), cw.Weight, controlBit))
	y = v.alg.ConditionalNegate(y, id.choice())

	// Proof chain.
	pt, err := v.nodeProof(input, level, next)
	if err != nil {
		next.Zeroize()
		return nil, zero, err
	}
	h := pt.conditionalXor(public.CS[level], controlBit).
		Xor(state.proof)
	adj, err := v.nodeProofAdjustment(h)
	if err != nil {
		next.Zeroize()
		return nil, zero, err
	}

	return &EvalState{
		seed:       next,
		controlBit: controlBit,
		proof:      adj.Xor(state.proof),
	}, y, nil
}

// Eval evaluates the key on input. The input may be a prefix of the
// point function's domain: an input of length l < n evaluates the
// tree node at depth l. An empty input evaluates the root and returns
// the zero weight and the zero proof.
func (v *Vidpf[V]) Eval(key Key, public *PublicShare[V], input Input,
	nonce []byte) (*Share[V], error) {

	if !key.ID.Valid() {
		return nil, ErrInvalidServerID
	}
	if err := v.checkNonce(nonce); err != nil {
		return nil, err
	}
	if input.Len() > public.Levels() {
		return nil, fmt.Errorf("%w: input %d, public share %d",
			ErrIndexLevel, input.Len(), public.Levels())
	}

	v.log.Debug("vidpf: eval", "server", key.ID, "levels", input.Len())

	state := NewEvalState(key)
	weight := v.alg.Zero()

	for level := 0; level < input.Len(); level++ {
		next, y, err := v.EvalNext(key.ID, public, input, level, state,
			nonce)
		state.Zeroize()
		if err != nil {
			return nil, err
		}
		state = next
		weight = y
	}
	state.Zeroize()

	return &Share[V]{
		Weight: weight,
		Proof:  state.proof,
	}, nil
}

// EvalPath evaluates the key on all prefixes of input. The result
// element i holds the share for the prefix of length i+1.
func (v *Vidpf[V]) EvalPath(key Key, public *PublicShare[V], input Input,
	nonce []byte) ([]Share[V], error) {

	if !key.ID.Valid() {
		return nil, ErrInvalidServerID
	}
	if err := v.checkNonce(nonce); err != nil {
		return nil, err
	}
	if input.Len() > public.Levels() {
		return nil, fmt.Errorf("%w: input %d, public share %d",
			ErrIndexLevel, input.Len(), public.Levels())
	}

	result := make([]Share[V], input.Len())
	state := NewEvalState(key)

	for level := 0; level < input.Len(); level++ {
		next, y, err := v.EvalNext(key.ID, public, input, level, state,
			nonce)
		state.Zeroize()
		if err != nil {
			return nil, err
		}
		state = next
		result[level] = Share[V]{
			Weight: y,
			Proof:  state.proof,
		}
	}
	state.Zeroize()

	return result, nil
}

// EvalBatch evaluates the key on all inputs using workers concurrent
// goroutines. If workers is not positive, the number of CPUs is
// used. The result element i holds the share for inputs[i].
func (v *Vidpf[V]) EvalBatch(key Key, public *PublicShare[V], inputs []Input,
	nonce []byte, workers int) ([]*Share[V], error) {

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(min(workers, len(inputs)), 1)

	v.log.Debug("vidpf: eval batch", "server", key.ID,
		"inputs", len(inputs), "workers", workers)

	results := make([]*Share[V], len(inputs))
	errs := make([]error, len(inputs))
	ch := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range ch {
				results[idx], errs[idx] = v.Eval(key, public, inputs[idx],
					nonce)
			}
		}()
	}
	for idx := range inputs {
		ch <- idx
	}
	close(ch)
	wg.Wait()

	for idx, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("vidpf: input %d: %w", idx, err)
		}
	}
	return results, nil
}
