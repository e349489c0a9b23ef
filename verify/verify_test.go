//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markkurossi/vidpf/env"
	"github.com/markkurossi/vidpf/field"
	"github.com/markkurossi/vidpf/p2p"
	"github.com/markkurossi/vidpf/vidpf"
)

var nonce = []byte("verify-nonce-016")

type result struct {
	matches []bool
	err     error
}

func session(id vidpf.ServerID) Session {
	return Session{
		ID:      id,
		Nonce:   nonce,
		Context: "f64",
	}
}

func exchange(s Session, conn *p2p.Conn, proofs []vidpf.Proof,
	ch chan<- result) {

	matches, err := ExchangeAll(conn, s, proofs)
	ch <- result{
		matches: matches,
		err:     err,
	}
}

func TestExchange(t *testing.T) {
	alg := vidpf.NewWeights[uint64](field.Field64{}, 2)
	config := &env.Config{
		Rand: env.NewDeterministicRand([]byte(t.Name())),
	}
	v := vidpf.New[[]uint64](config, alg, nil)

	weight, err := alg.FromUint64(1, 2)
	require.NoError(t, err)
	alpha := vidpf.InputFromUint(0x0d, 4)
	public, keys, err := v.Gen(alpha, weight, nonce)
	require.NoError(t, err)

	var proofs [2][]vidpf.Proof
	for x := uint64(0); x < 16; x++ {
		for i, key := range keys {
			share, err := v.Eval(key, public, vidpf.InputFromUint(x, 4),
				nonce)
			require.NoError(t, err)
			proofs[i] = append(proofs[i], share.Proof)
		}
	}

	// Honest servers.
	c0, c1 := p2p.Pipe()
	ch := make(chan result)
	go exchange(session(vidpf.S1), c1, proofs[1], ch)

	matches, err := ExchangeAll(c0, session(vidpf.S0), proofs[0])
	require.NoError(t, err)
	peer := <-ch
	require.NoError(t, peer.err)
	require.Equal(t, matches, peer.matches)
	for _, m := range matches {
		require.True(t, m)
	}

	// Tampered key.
	data, err := keys[1].MarshalBinary()
	require.NoError(t, err)
	data[5] ^= 0x01
	bad, err := vidpf.UnmarshalKey(data)
	require.NoError(t, err)
	share0, err := v.Eval(keys[0], public, alpha, nonce)
	require.NoError(t, err)
	share1, err := v.Eval(bad, public, alpha, nonce)
	require.NoError(t, err)

	c0, c1 = p2p.Pipe()
	errc := make(chan error)
	go func() {
		errc <- Exchange(c1, session(vidpf.S1), share1.Proof)
	}()
	require.ErrorIs(t, Exchange(c0, session(vidpf.S0),
		share0.Proof), ErrProofMismatch)
	require.ErrorIs(t, <-errc, ErrProofMismatch)
}

func TestPartialMismatch(t *testing.T) {
	ours := []vidpf.Proof{{1}, {2}, {3}}
	theirs := []vidpf.Proof{{1}, {9}, {3}}

	c0, c1 := p2p.Pipe()
	ch := make(chan result)
	go exchange(session(vidpf.S1), c1, theirs, ch)

	matches, err := ExchangeAll(c0, session(vidpf.S0), ours)
	require.ErrorIs(t, err, ErrProofMismatch)
	require.Equal(t, []bool{true, false, true}, matches)

	peer := <-ch
	require.ErrorIs(t, peer.err, ErrProofMismatch)
	require.Equal(t, matches, peer.matches)
}

func TestPeerErrors(t *testing.T) {
	// Both servers claim the same ID.
	c0, c1 := p2p.Pipe()
	ch := make(chan result)
	go exchange(session(vidpf.S0), c1, []vidpf.Proof{{}}, ch)

	_, err := ExchangeAll(c0, session(vidpf.S0), []vidpf.Proof{{}})
	require.ErrorIs(t, err, ErrPeer)
	require.ErrorIs(t, (<-ch).err, ErrPeer)

	// Proof count mismatch.
	c0, c1 = p2p.Pipe()
	go exchange(session(vidpf.S1), c1, []vidpf.Proof{{}, {}}, ch)

	_, err = ExchangeAll(c0, session(vidpf.S0), []vidpf.Proof{{}})
	require.ErrorIs(t, err, ErrPeer)
	require.ErrorIs(t, (<-ch).err, ErrPeer)

	_, err = ExchangeAll(c0, session(vidpf.ServerID(3)), nil)
	require.ErrorIs(t, err, vidpf.ErrInvalidServerID)
}

func TestSessionMismatch(t *testing.T) {
	tests := []struct {
		name string
		peer Session
	}{
		{
			name: "nonce",
			peer: Session{
				ID:      vidpf.S1,
				Nonce:   []byte("other-nonce-0016"),
				Context: "f64",
			},
		},
		{
			name: "empty nonce",
			peer: Session{
				ID:      vidpf.S1,
				Context: "f64",
			},
		},
		{
			name: "context",
			peer: Session{
				ID:      vidpf.S1,
				Nonce:   nonce,
				Context: "f128",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c0, c1 := p2p.Pipe()
			ch := make(chan result)
			go exchange(test.peer, c1, []vidpf.Proof{{1}}, ch)

			_, err := ExchangeAll(c0, session(vidpf.S0), []vidpf.Proof{{1}})
			require.ErrorIs(t, err, ErrPeer)
			require.ErrorIs(t, (<-ch).err, ErrPeer)
		})
	}
}

func TestVersionMismatch(t *testing.T) {
	c0, c1 := p2p.Pipe()
	errc := make(chan error)
	go func() {
		if err := c1.SendUint16(Version + 1); err != nil {
			errc <- err
			return
		}
		errc <- c1.Flush()
	}()
	_, err := ExchangeAll(c0, session(vidpf.S0), []vidpf.Proof{{}})
	require.ErrorIs(t, err, ErrPeer)
	require.NoError(t, <-errc)
}
