//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package verify implements the evaluation proof check between the
// two VIDPF servers. Each server sends its proofs to its peer and
// compares the received proofs with its own. A mismatch means that
// the client's key material is malformed or that a server deviated
// from the protocol.
package verify

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/markkurossi/vidpf/p2p"
	"github.com/markkurossi/vidpf/vidpf"
)

// Version is the proof exchange protocol version.
const Version = 1

var (
	// ErrProofMismatch is returned when the peer's proof differs from
	// ours.
	ErrProofMismatch = errors.New("verify: evaluation proofs differ")

	// ErrPeer is returned when the peer's protocol message is
	// invalid.
	ErrPeer = errors.New("verify: invalid peer message")
)

// Session binds the proof exchange to a report. Both servers must
// use the same nonce and context, and different server IDs.
type Session struct {
	ID      vidpf.ServerID
	Nonce   []byte
	Context string
}

func (s Session) send(conn *p2p.Conn, count int) error {
	if err := conn.SendUint16(Version); err != nil {
		return err
	}
	if err := conn.SendByte(byte(s.ID)); err != nil {
		return err
	}
	if err := conn.SendData(s.Nonce); err != nil {
		return err
	}
	if err := conn.SendString(s.Context); err != nil {
		return err
	}
	return conn.SendUint32(count)
}

func (s Session) receive(conn *p2p.Conn, count int) error {
	version, err := conn.ReceiveUint16()
	if err != nil {
		return err
	}
	if version != Version {
		return fmt.Errorf("%w: version %d, ours %d", ErrPeer, version,
			Version)
	}
	b, err := conn.ReceiveByte()
	if err != nil {
		return err
	}
	peer := vidpf.ServerID(b)
	if !peer.Valid() || peer == s.ID {
		return fmt.Errorf("%w: peer ID %v, ours %v", ErrPeer, peer, s.ID)
	}
	nonce, err := conn.ReceiveData()
	if err != nil {
		return err
	}
	if !bytes.Equal(nonce, s.Nonce) {
		return fmt.Errorf("%w: nonce %x, ours %x", ErrPeer, nonce, s.Nonce)
	}
	context, err := conn.ReceiveString()
	if err != nil {
		return err
	}
	if context != s.Context {
		return fmt.Errorf("%w: context %q, ours %q", ErrPeer, context,
			s.Context)
	}
	n, err := conn.ReceiveUint32()
	if err != nil {
		return err
	}
	if n != count {
		return fmt.Errorf("%w: peer has %d proofs, we have %d",
			ErrPeer, n, count)
	}
	return nil
}

// Exchange sends our proof to the peer and checks that the peer's
// proof is identical.
func Exchange(conn *p2p.Conn, session Session, proof vidpf.Proof) error {
	result, err := ExchangeAll(conn, session, []vidpf.Proof{proof})
	if err != nil {
		return err
	}
	if !result[0] {
		return ErrProofMismatch
	}
	return nil
}

// ExchangeAll sends our proofs to the peer and compares them with the
// peer's proofs. The result element i tells if the proofs at index i
// matched. The error is ErrProofMismatch if any of the proofs
// differ.
func ExchangeAll(conn *p2p.Conn, session Session, proofs []vidpf.Proof) (
	[]bool, error) {

	if !session.ID.Valid() {
		return nil, vidpf.ErrInvalidServerID
	}

	if err := session.send(conn, len(proofs)); err != nil {
		return nil, err
	}
	for _, proof := range proofs {
		if err := conn.SendRaw(proof[:]); err != nil {
			return nil, err
		}
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}

	if err := session.receive(conn, len(proofs)); err != nil {
		return nil, err
	}

	result := make([]bool, len(proofs))
	mismatch := 0
	for i := range proofs {
		var peerProof vidpf.Proof
		if err := conn.ReceiveRaw(peerProof[:]); err != nil {
			return nil, err
		}
		result[i] = vidpf.ProofsEqual(proofs[i], peerProof)
		if !result[i] {
			mismatch++
		}
	}
	if mismatch > 0 {
		return result, fmt.Errorf("%w: %d of %d", ErrProofMismatch,
			mismatch, len(proofs))
	}
	return result, nil
}
