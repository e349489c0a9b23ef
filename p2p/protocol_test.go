//
// protocol_test.go
//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type raw []byte

var tests = []interface{}{
	byte(42),
	uint16(43),
	uint32(44),
	"Hello, world!",
	raw("0123456789abcdef0123456789abcdef"),
	make([]byte, 1024),
	bytes.Repeat([]byte{0x5a}, 2*1024*1024),
	raw(bytes.Repeat([]byte{0xa5}, 3*readBufSize+7)),
	make([]byte, 0),
}

func writer(c *Conn) {
	for _, test := range tests {
		var err error
		switch d := test.(type) {
		case byte:
			err = c.SendByte(d)
		case uint16:
			err = c.SendUint16(int(d))
		case uint32:
			err = c.SendUint32(int(d))
		case string:
			err = c.SendString(d)
		case raw:
			err = c.SendRaw(d)
		case []byte:
			err = c.SendData(d)
		default:
			err = fmt.Errorf("invalid data: %v(%T)", test, test)
		}
		if err != nil {
			fmt.Printf("writer: %v\n", err)
		}
	}
	if err := c.Flush(); err != nil {
		fmt.Printf("Flush: %v\n", err)
	}
}

func TestProtocol(t *testing.T) {
	cw, c := Pipe()

	go writer(cw)

	for _, test := range tests {
		switch d := test.(type) {
		case byte:
			v, err := c.ReceiveByte()
			require.NoError(t, err)
			require.Equal(t, d, v)

		case uint16:
			v, err := c.ReceiveUint16()
			require.NoError(t, err)
			require.Equal(t, int(d), v)

		case uint32:
			v, err := c.ReceiveUint32()
			require.NoError(t, err)
			require.Equal(t, int(d), v)

		case string:
			v, err := c.ReceiveString()
			require.NoError(t, err)
			require.Equal(t, d, v)

		case raw:
			v := make([]byte, len(d))
			require.NoError(t, c.ReceiveRaw(v))
			require.True(t, bytes.Equal(d, v), "raw [%d]byte", len(d))

		case []byte:
			v, err := c.ReceiveData()
			require.NoError(t, err)
			require.True(t, bytes.Equal(d, v), "data [%d]byte", len(d))

		default:
			t.Fatalf("invalid value: %v(%T)", test, test)
		}
	}
	require.NoError(t, c.Close())
	require.Greater(t, c.Stats.Recvd.Load(), uint64(3*readBufSize))
}

func TestTooLarge(t *testing.T) {
	c0, c1 := Pipe()

	require.ErrorIs(t, c0.SendData(make([]byte, MaxDataSize+1)), ErrTooLarge)

	go func() {
		c0.SendUint32(MaxDataSize + 1)
		c0.Flush()
	}()
	_, err := c1.ReceiveData()
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestIOStats(t *testing.T) {
	a := NewIOStats()
	a.Sent.Store(10)
	a.Recvd.Store(5)
	a.Flushed.Store(1)

	b := NewIOStats()
	b.Sent.Store(1)
	b.Recvd.Store(2)
	b.Flushed.Store(3)

	sum := a.Add(b)
	require.Equal(t, uint64(11), sum.Sent.Load())
	require.Equal(t, uint64(7), sum.Recvd.Load())
	require.Equal(t, uint64(4), sum.Flushed.Load())
	require.Equal(t, uint64(18), sum.Sum())
	require.Equal(t, uint64(15), a.Sum())
}
