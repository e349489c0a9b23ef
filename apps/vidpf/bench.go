//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/markkurossi/vidpf/env"
	"github.com/markkurossi/vidpf/vidpf"
)

var (
	benchBits   int
	benchInputs int
	benchSeed   string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark report generation, evaluation, and verification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchBits <= 0 || benchInputs <= 0 {
			return fmt.Errorf("invalid bits %d or inputs %d",
				benchBits, benchInputs)
		}
		timing := NewTiming()
		config := newConfig()
		if len(benchSeed) > 0 {
			config.Rand = env.NewDeterministicRand([]byte(benchSeed))
		}
		rand := config.GetRandom()

		length := viper.GetInt("length")
		r, err := newRunner(config, viper.GetString("field"), length)
		if err != nil {
			return err
		}

		alpha, err := randomInput(rand, benchBits)
		if err != nil {
			return err
		}
		values := make([]uint64, length)
		for i := range values {
			values[i] = uint64(i + 1)
		}
		report := &Report{
			ID:     uuid.New(),
			Field:  viper.GetString("field"),
			Length: length,
			Levels: benchBits,
		}
		public, keys, err := r.gen(alpha, values, report.Nonce())
		if err != nil {
			return err
		}
		defer keys[0].Zeroize()
		defer keys[1].Zeroize()
		report.Public = public
		timing.Sample("Gen", FileSize(len(public)).String())

		inputs := []vidpf.Input{alpha}
		for len(inputs) < benchInputs {
			input, err := randomInput(rand, benchBits)
			if err != nil {
				return err
			}
			inputs = append(inputs, input)
		}
		timing.Sample("Inputs")

		result, err := runServers(r, keys, report, inputs,
			viper.GetInt("workers"))
		if err != nil {
			return err
		}
		timing.Sample("Eval+Verify")
		if result.err != nil {
			return result.err
		}

		fmt.Printf("%s: %s\n", formatInput(alpha),
			r.sum(result.shares[0][0], result.shares[1][0]))
		fmt.Printf("%d inputs of %d bits, %s and %s agree\n",
			len(inputs), benchBits, serverName(vidpf.S0),
			serverName(vidpf.S1))
		timing.Print(os.Stdout, result.stats)

		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchBits, "bits", 32, "input bits")
	benchCmd.Flags().IntVar(&benchInputs, "inputs", 1000,
		"number of evaluated inputs")
	benchCmd.Flags().StringVar(&benchSeed, "seed", "",
		"seed for deterministic runs")
}

func randomInput(rand io.Reader, bits int) (vidpf.Input, error) {
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return vidpf.Input{}, err
	}
	return vidpf.InputFromBytes(buf).Prefix(bits)
}
