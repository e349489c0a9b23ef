//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	group "github.com/bytemare/crypto"
	"github.com/markkurossi/text/superscript"

	"github.com/markkurossi/vidpf/env"
	"github.com/markkurossi/vidpf/field"
	"github.com/markkurossi/vidpf/vidpf"
)

// runner runs VIDPF operations over one weight field. The weights
// cross the runner interface as opaque shares.
type runner interface {
	gen(input vidpf.Input, values []uint64, nonce []byte) (
		public []byte, keys [2]vidpf.Key, err error)
	eval(key vidpf.Key, public []byte, levels int, inputs []vidpf.Input,
		nonce []byte, workers int) ([]share, error)
	sum(a, b share) string
	format(s share) string
}

type share struct {
	weight any
	proof  vidpf.Proof
}

type tool[E any] struct {
	alg *vidpf.Weights[E]
	v   *vidpf.Vidpf[[]E]
}

func newTool[E any](config *env.Config, f field.Field[E], length int) (
	*tool[E], error) {

	if length <= 0 {
		return nil, fmt.Errorf("invalid weight length: %v", length)
	}
	alg := vidpf.NewWeights(f, length)
	return &tool[E]{
		alg: alg,
		v:   vidpf.New[[]E](config, alg, nil),
	}, nil
}

func newRunner(config *env.Config, name string, length int) (runner, error) {
	switch name {
	case "f64":
		return newTool[uint64](config, field.Field64{}, length)
	case "f128":
		return newTool[field.Uint128](config, field.Field128{}, length)
	case "ristretto255":
		return newTool[*group.Scalar](config, field.Ristretto255Scalars(),
			length)
	case "p256":
		return newTool[*group.Scalar](config, field.P256Scalars(), length)
	default:
		return nil, fmt.Errorf("unknown field: %v", name)
	}
}

func (t *tool[E]) gen(input vidpf.Input, values []uint64, nonce []byte) (
	[]byte, [2]vidpf.Key, error) {

	weight, err := t.alg.FromUint64(values...)
	if err != nil {
		return nil, [2]vidpf.Key{}, err
	}
	public, keys, err := t.v.Gen(input, weight, nonce)
	if err != nil {
		return nil, [2]vidpf.Key{}, err
	}
	return t.v.EncodePublicShare(public), keys, nil
}

func (t *tool[E]) eval(key vidpf.Key, data []byte, levels int,
	inputs []vidpf.Input, nonce []byte, workers int) ([]share, error) {

	public, err := t.v.DecodePublicShare(levels, data)
	if err != nil {
		return nil, err
	}
	shares, err := t.v.EvalBatch(key, public, inputs, nonce, workers)
	if err != nil {
		return nil, err
	}
	result := make([]share, len(shares))
	for i, s := range shares {
		result[i] = share{
			weight: s.Weight,
			proof:  s.Proof,
		}
	}
	return result, nil
}

func (t *tool[E]) sum(a, b share) string {
	return t.alg.Format(t.alg.Add(a.weight.([]E), b.weight.([]E)))
}

func (t *tool[E]) format(s share) string {
	return t.alg.Format(s.weight.([]E))
}

// serverName returns the display name of the server.
func serverName(id vidpf.ServerID) string {
	return "S" + superscript.Itoa(int(id))
}

// parseInput parses an input from a bit string such as 0110 or from a
// hex string with the 0x prefix.
func parseInput(s string) (vidpf.Input, error) {
	if strings.HasPrefix(s, "0x") {
		data, err := hex.DecodeString(s[2:])
		if err != nil {
			return vidpf.Input{}, fmt.Errorf("invalid input %v: %w", s, err)
		}
		return vidpf.InputFromBytes(data), nil
	}
	bits := make([]uint8, len(s))
	for i, r := range []byte(s) {
		switch r {
		case '0':
		case '1':
			bits[i] = 1
		default:
			return vidpf.Input{}, fmt.Errorf("invalid input bit '%c' in %v",
				r, s)
		}
	}
	return vidpf.InputFromBits(bits), nil
}

func parseInputs(args []string) ([]vidpf.Input, error) {
	var result []vidpf.Input
	for _, arg := range args {
		input, err := parseInput(arg)
		if err != nil {
			return nil, err
		}
		result = append(result, input)
	}
	return result, nil
}

// parseWeight parses a comma-separated list of weight values.
func parseWeight(s string) ([]uint64, error) {
	var result []uint64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %v: %w", s, err)
		}
		result = append(result, v)
	}
	return result, nil
}

// formatInput formats the input as a bit string.
func formatInput(input vidpf.Input) string {
	var sb strings.Builder
	for i := 0; i < input.Len(); i++ {
		bit, err := input.Bit(i)
		if err != nil {
			break
		}
		sb.WriteByte('0' + bit.Bit())
	}
	return sb.String()
}
