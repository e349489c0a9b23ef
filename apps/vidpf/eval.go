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
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/markkurossi/vidpf/p2p"
	"github.com/markkurossi/vidpf/verify"
	"github.com/markkurossi/vidpf/vidpf"
)

var (
	evalReport string
	evalKey    string
	evalAddr   string
)

var evalCmd = &cobra.Command{
	Use:   "eval INPUT...",
	Short: "Evaluate a report and verify the proofs with the peer",
	Long: `Evaluate the server key on the INPUT prefixes and exchange the
evaluation proofs with the peer server. Server S0 listens for the peer
at the address and server S1 connects to it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timing := NewTiming()
		config := newConfig()

		inputs, err := parseInputs(args)
		if err != nil {
			return err
		}
		report, err := readReport(evalReport)
		if err != nil {
			return err
		}
		key, err := readKey(evalKey)
		if err != nil {
			return err
		}
		defer key.Zeroize()

		r, err := newRunner(config, report.Field, report.Length)
		if err != nil {
			return err
		}
		timing.Sample("Load", FileSize(len(report.Public)).String())

		shares, err := r.eval(key, report.Public, report.Levels, inputs,
			report.Nonce(), viper.GetInt("workers"))
		if err != nil {
			return err
		}
		timing.Sample("Eval")

		nc, err := connect(config.GetLogger(), key.ID, evalAddr)
		if err != nil {
			return err
		}
		conn := p2p.NewConn(nc)
		defer conn.Close()
		timing.Sample("Connect")

		matches, err := verify.ExchangeAll(conn, report.Session(key.ID),
			proofs(shares))
		if err != nil && !errors.Is(err, verify.ErrProofMismatch) {
			return err
		}
		timing.Sample("Verify", FileSize(conn.Stats.Sum()).String())

		printShares(os.Stdout, r, key.ID, inputs, shares, matches)
		if viper.GetBool("timing") {
			timing.Print(os.Stdout, conn.Stats)
		}
		return err
	},
}

func init() {
	evalCmd.Flags().StringVar(&evalReport, "report", "report.bin",
		"report file")
	evalCmd.Flags().StringVar(&evalKey, "key", "key0.bin", "server key file")
	evalCmd.Flags().StringVar(&evalAddr, "addr", "localhost:8080",
		"proof exchange address")
}

// connect creates the proof exchange connection. Server S0 accepts
// one connection from S1 and S1 connects to S0, retrying until S0 is
// listening.
func connect(log *slog.Logger, id vidpf.ServerID, addr string) (
	net.Conn, error) {

	if id == vidpf.S0 {
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return nil, err
		}
		defer listener.Close()

		log.Info("waiting for peer", "server", id, "addr", addr)
		nc, err := listener.Accept()
		if err != nil {
			return nil, err
		}
		log.Info("peer connected", "remote", nc.RemoteAddr())
		return nc, nil
	}
	for attempt := 0; ; attempt++ {
		nc, err := net.Dial("tcp", addr)
		if err == nil {
			log.Info("connected to peer", "server", id, "addr", addr)
			return nc, nil
		}
		if attempt >= 10 {
			return nil, err
		}
		delay := time.Second
		log.Info("connect failed, retrying", "addr", addr, "delay", delay,
			"err", err)
		<-time.After(delay)
	}
}

func proofs(shares []share) []vidpf.Proof {
	result := make([]vidpf.Proof, len(shares))
	for i, s := range shares {
		result[i] = s.proof
	}
	return result
}

func printShares(out io.Writer, r runner, id vidpf.ServerID,
	inputs []vidpf.Input, shares []share, matches []bool) {

	for i, s := range shares {
		status := "ok"
		if i >= len(matches) || !matches[i] {
			status = "MISMATCH"
		}
		fmt.Fprintf(out, "%s %s: %s proof %s\n", serverName(id),
			formatInput(inputs[i]), r.format(s), status)
	}
}
