//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package env

import (
	"bytes"
	"crypto/rand"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var config *Config
	require.Equal(t, rand.Reader, config.GetRandom())
	require.NotNil(t, config.GetLogger())

	config = &Config{}
	require.Equal(t, rand.Reader, config.GetRandom())
	require.NotNil(t, config.GetLogger())
}

func TestOverrides(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := bytes.NewReader(nil)

	config := &Config{
		Rand:   r,
		Logger: logger,
	}
	require.Equal(t, r, config.GetRandom())
	require.Equal(t, logger, config.GetLogger())

	config.GetLogger().Info("hello")
	require.Contains(t, buf.String(), "hello")
}

func TestDeterministicRand(t *testing.T) {
	a := make([]byte, 64)
	b := make([]byte, 64)
	c := make([]byte, 64)

	_, err := io.ReadFull(NewDeterministicRand([]byte("seed")), a)
	require.NoError(t, err)
	_, err = io.ReadFull(NewDeterministicRand([]byte("seed")), b)
	require.NoError(t, err)
	_, err = io.ReadFull(NewDeterministicRand([]byte("other")), c)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}
