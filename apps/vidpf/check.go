//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/markkurossi/vidpf/p2p"
	"github.com/markkurossi/vidpf/verify"
	"github.com/markkurossi/vidpf/vidpf"
)

var (
	checkReport string
	checkKeys   []string
)

var checkCmd = &cobra.Command{
	Use:   "check INPUT...",
	Short: "Evaluate a report with both server keys",
	Long: `Evaluate a report with both server keys in one process. The
servers exchange their evaluation proofs over an in-memory pipe. The
command prints the reconstructed weights and the proof status of each
INPUT prefix.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(checkKeys) != 2 {
			return fmt.Errorf("expected two keys, got %d", len(checkKeys))
		}
		timing := NewTiming()

		inputs, err := parseInputs(args)
		if err != nil {
			return err
		}
		report, err := readReport(checkReport)
		if err != nil {
			return err
		}
		var keys [2]vidpf.Key
		for i, file := range checkKeys {
			keys[i], err = readKey(file)
			if err != nil {
				return err
			}
			defer keys[i].Zeroize()
		}
		r, err := newRunner(newConfig(), report.Field, report.Length)
		if err != nil {
			return err
		}
		timing.Sample("Load")

		result, err := runServers(r, keys, report, inputs,
			viper.GetInt("workers"))
		if err != nil {
			return err
		}
		timing.Sample("Eval+Verify")

		result.print(os.Stdout, r, inputs)
		if viper.GetBool("timing") {
			timing.Print(os.Stdout, result.stats)
		}
		return result.err
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkReport, "report", "report.bin",
		"report file")
	checkCmd.Flags().StringSliceVar(&checkKeys, "keys",
		[]string{"key0.bin", "key1.bin"}, "server key files")
}

// serversResult holds the output of both servers.
type serversResult struct {
	shares  [2][]share
	matches []bool
	stats   p2p.IOStats
	err     error
}

type exchangeResult struct {
	matches []bool
	err     error
}

// runServers evaluates the report with both keys and runs the proof
// exchange between the servers over a pipe.
func runServers(r runner, keys [2]vidpf.Key, report *Report,
	inputs []vidpf.Input, workers int) (*serversResult, error) {

	if keys[0].ID == keys[1].ID {
		return nil, vidpf.ErrSameKeyID
	}
	result := new(serversResult)
	for i, key := range keys {
		var err error
		result.shares[i], err = r.eval(key, report.Public, report.Levels,
			inputs, report.Nonce(), workers)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", serverName(key.ID), err)
		}
	}

	c0, c1 := p2p.Pipe()
	ch := make(chan exchangeResult, 1)
	go func() {
		matches, err := verify.ExchangeAll(c1, report.Session(keys[1].ID),
			proofs(result.shares[1]))
		ch <- exchangeResult{
			matches: matches,
			err:     err,
		}
	}()
	matches, err := verify.ExchangeAll(c0, report.Session(keys[0].ID),
		proofs(result.shares[0]))
	peer := <-ch

	result.stats = c0.Stats.Add(c1.Stats)
	c0.Close()
	c1.Close()

	for _, e := range []error{err, peer.err} {
		if e != nil && !errors.Is(e, verify.ErrProofMismatch) {
			return nil, e
		}
	}
	result.matches = matches
	result.err = err

	return result, nil
}

func (result *serversResult) print(out io.Writer, r runner,
	inputs []vidpf.Input) {

	for i, input := range inputs {
		status := "ok"
		if i >= len(result.matches) || !result.matches[i] {
			status = "MISMATCH"
		}
		fmt.Fprintf(out, "%s: %s proof %s\n", formatInput(input),
			r.sum(result.shares[0][i], result.shares[1][i]), status)
	}
}
