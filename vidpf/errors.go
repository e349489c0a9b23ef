//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vidpf

import (
	"errors"
)

var (
	// ErrSameKeyID is returned by key generation when both keys have
	// the same server ID.
	ErrSameKeyID = errors.New("vidpf: keys have the same server ID")

	// ErrLevelTooBig is returned when a level index does not fit in
	// the 16-bit level counter of the node proofs.
	ErrLevelTooBig = errors.New("vidpf: level does not fit in proof counter")

	// ErrIndexLevel is returned when the evaluation level is outside
	// the public share or the input.
	ErrIndexLevel = errors.New("vidpf: level out of range")

	// ErrInvalidWeightLength is the panic value when two weight
	// vectors of different lengths are combined. The weight length is
	// a parameter shared by all parties so the mismatch is a
	// programming error.
	ErrInvalidWeightLength = errors.New("vidpf: invalid weight length")

	// ErrInvalidNonce is returned when the nonce does not have the
	// configured size.
	ErrInvalidNonce = errors.New("vidpf: invalid nonce size")

	// ErrInvalidServerID is returned for server IDs other than S0 and
	// S1.
	ErrInvalidServerID = errors.New("vidpf: invalid server ID")

	// ErrDecode is returned when decoding keys or public shares
	// fails.
	ErrDecode = errors.New("vidpf: decode error")
)
