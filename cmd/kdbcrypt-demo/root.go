package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kdbcrypt-demo",
	Short: "Demonstrates the KeePass v1 crypto core against a header+payload pair on disk",
	Long: `kdbcrypt-demo exercises pkg/kdbcrypt: it reads a header sidecar and a
raw payload file, derives the key from a passphrase and/or key file, and
either decrypts or encrypts the payload.

This binary is a demonstration harness, not a .kdb file parser: the
sidecar is a small JSON description of the six header fields pkg/kdbcrypt
consumes (spec.md §3), not the real KeePass v1 binary header.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file binding the flags below")
	rootCmd.PersistentFlags().String("header", "", "path to the JSON header sidecar")
	rootCmd.PersistentFlags().String("payload", "", "path to the payload file (ciphertext for decrypt, plaintext for encrypt)")
	rootCmd.PersistentFlags().String("keyfile", "", "optional path to a key file")
	rootCmd.PersistentFlags().Bool("no-password-prompt", false, "skip the passphrase prompt (key-file-only mode)")
	rootCmd.PersistentFlags().Uint32("min-rounds", 0, "reject headers with fewer than this many key-transform rounds")

	_ = viper.BindPFlag("header", rootCmd.PersistentFlags().Lookup("header"))
	_ = viper.BindPFlag("payload", rootCmd.PersistentFlags().Lookup("payload"))
	_ = viper.BindPFlag("keyfile", rootCmd.PersistentFlags().Lookup("keyfile"))
	_ = viper.BindPFlag("no-password-prompt", rootCmd.PersistentFlags().Lookup("no-password-prompt"))
	_ = viper.BindPFlag("min-rounds", rootCmd.PersistentFlags().Lookup("min-rounds"))

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "kdbcrypt-demo: reading config %s: %v\n", configPath, err)
			os.Exit(1)
		}
	}
}
