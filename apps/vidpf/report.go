//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/markkurossi/vidpf/verify"
	"github.com/markkurossi/vidpf/vidpf"
)

var reportMagic = [4]byte{'V', 'D', 'P', 'F'}

var errReport = errors.New("invalid report file")

// Report holds a client's public report: the report ID, which is also
// the VIDPF nonce, and the encoded public share.
type Report struct {
	ID     uuid.UUID
	Field  string
	Length int
	Levels int
	Public []byte
}

// MarshalBinary encodes the report.
func (r *Report) MarshalBinary() ([]byte, error) {
	if len(r.Field) > 255 {
		return nil, fmt.Errorf("field name too long: %v", r.Field)
	}
	buf := make([]byte, 0, 4+16+1+len(r.Field)+12+len(r.Public))
	buf = append(buf, reportMagic[:]...)
	buf = append(buf, r.ID[:]...)
	buf = append(buf, byte(len(r.Field)))
	buf = append(buf, r.Field...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(r.Length))
	buf = binary.BigEndian.AppendUint32(buf, uint32(r.Levels))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(r.Public)))
	buf = append(buf, r.Public...)
	return buf, nil
}

// UnmarshalBinary decodes the report.
func (r *Report) UnmarshalBinary(data []byte) error {
	if len(data) < 4+16+1 || [4]byte(data[:4]) != reportMagic {
		return errReport
	}
	copy(r.ID[:], data[4:20])
	data = data[20:]

	l := int(data[0])
	data = data[1:]
	if len(data) < l+12 {
		return errReport
	}
	r.Field = string(data[:l])
	data = data[l:]

	r.Length = int(binary.BigEndian.Uint32(data[0:4]))
	r.Levels = int(binary.BigEndian.Uint32(data[4:8]))
	l = int(binary.BigEndian.Uint32(data[8:12]))
	data = data[12:]
	if len(data) != l {
		return errReport
	}
	r.Public = make([]byte, l)
	copy(r.Public, data)

	return nil
}

// Nonce returns the VIDPF nonce of the report.
func (r *Report) Nonce() []byte {
	return r.ID[:]
}

// Session returns the proof exchange session of the server id for
// the report.
func (r *Report) Session(id vidpf.ServerID) verify.Session {
	return verify.Session{
		ID:      id,
		Nonce:   r.Nonce(),
		Context: fmt.Sprintf("%s/%d/%d", r.Field, r.Length, r.Levels),
	}
}

func readReport(file string) (*Report, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	r := new(Report)
	if err := r.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return r, nil
}

func writeReport(file string, r *Report) error {
	data, err := r.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}
