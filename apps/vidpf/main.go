//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// The vidpf command generates VIDPF reports and evaluates them on two
// servers that verify each other's evaluation proofs.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/markkurossi/vidpf/env"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "vidpf",
	Short: "Verifiable incremental distributed point functions",
	Long: `The vidpf tool generates VIDPF reports and evaluates them.

A client report consists of a public share and two server keys. The
servers evaluate their keys on input prefixes and exchange evaluation
proofs to verify that the report is well-formed.

Supported weight fields:
  - f64:          64-bit prime field
  - f128:         128-bit prime field
  - ristretto255: ristretto255 group scalars
  - p256:         P-256 group scalars`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.vidpf.yaml)")
	flags.String("field", "f128", "weight field (f64, f128, ristretto255, p256)")
	flags.Int("length", 1, "weight vector length")
	flags.Int("workers", 0, "evaluation workers (0 uses all CPUs)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("timing", false, "print timing report")

	for _, name := range []string{
		"field", "length", "workers", "verbose", "timing",
	} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(benchCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vidpf")
	}
	viper.SetEnvPrefix("VIDPF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			fmt.Fprintf(os.Stderr, "vidpf: config: %v\n", err)
			os.Exit(1)
		}
	}
}

// newConfig creates the environment configuration from the command
// line flags and config file.
func newConfig() *env.Config {
	config := new(env.Config)
	if viper.GetBool("verbose") {
		config.Logger = slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
	}
	return config
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vidpf: %v\n", err)
		os.Exit(1)
	}
}
