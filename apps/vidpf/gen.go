//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/markkurossi/vidpf/vidpf"
)

var (
	genWeight string
	genOut    string
)

var genCmd = &cobra.Command{
	Use:   "gen INPUT",
	Short: "Generate a client report",
	Long: `Generate a client report for the point function that maps INPUT to
the weight. The report ID is a random UUID that is also used as the
VIDPF nonce. The command writes the public report and the two server
keys to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := parseInput(args[0])
		if err != nil {
			return err
		}
		values, err := parseWeight(genWeight)
		if err != nil {
			return err
		}
		fieldName := viper.GetString("field")
		length := viper.GetInt("length")
		if !cmd.Flags().Changed("length") && !viper.IsSet("length") {
			length = len(values)
		}
		r, err := newRunner(newConfig(), fieldName, length)
		if err != nil {
			return err
		}

		report := &Report{
			ID:     uuid.New(),
			Field:  fieldName,
			Length: length,
			Levels: input.Len(),
		}
		public, keys, err := r.gen(input, values, report.Nonce())
		if err != nil {
			return err
		}
		defer keys[0].Zeroize()
		defer keys[1].Zeroize()
		report.Public = public

		if err := os.MkdirAll(genOut, 0755); err != nil {
			return err
		}
		reportFile := filepath.Join(genOut, "report.bin")
		if err := writeReport(reportFile, report); err != nil {
			return err
		}
		for _, key := range keys {
			file := filepath.Join(genOut, keyFile(key.ID))
			if err := writeKey(file, key); err != nil {
				return err
			}
			fmt.Printf("%s key: %s\n", serverName(key.ID), file)
		}
		fmt.Printf("Report %s: %s (%s)\n", report.ID, reportFile,
			FileSize(len(report.Public)))
		return nil
	},
}

func init() {
	genCmd.Flags().StringVarP(&genWeight, "weight", "w", "1",
		"comma-separated weight values")
	genCmd.Flags().StringVarP(&genOut, "out", "o", ".", "output directory")
}

func keyFile(id vidpf.ServerID) string {
	return fmt.Sprintf("key%d.bin", id)
}

func writeKey(file string, key vidpf.Key) error {
	data, err := key.MarshalBinary()
	if err != nil {
		return err
	}
	defer clear(data)
	return os.WriteFile(file, data, 0600)
}

func readKey(file string) (vidpf.Key, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return vidpf.Key{}, err
	}
	defer clear(data)
	key, err := vidpf.UnmarshalKey(data)
	if err != nil {
		return vidpf.Key{}, fmt.Errorf("%s: %w", file, err)
	}
	return key, nil
}
