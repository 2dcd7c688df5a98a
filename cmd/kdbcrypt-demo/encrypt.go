package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darrenldl/go-keepass/pkg/kdbcrypt"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a plaintext payload file using the header sidecar and prompted credentials",
	RunE:  runEncrypt,
}

func init() {
	rootCmd.AddCommand(encryptCmd)
}

func runEncrypt(cmd *cobra.Command, _ []string) error {
	headerPath := viper.GetString("header")
	payloadPath := viper.GetString("payload")
	if headerPath == "" || payloadPath == "" {
		return errors.New("--header and --payload are required")
	}

	header, err := loadHeader(headerPath)
	if err != nil {
		return err
	}

	plaintextBytes, err := os.ReadFile(payloadPath)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	header.ContentHash = kdbcrypt.ContentHash(plaintextBytes)
	if err := saveHeader(headerPath, header); err != nil {
		return fmt.Errorf("rewrite header sidecar with recomputed content hash: %w", err)
	}

	plaintext, err := kdbcrypt.NewSecretBufferFromBytes(plaintextBytes)
	if err != nil {
		return err
	}

	password, keyfile, err := gatherCredentials(cmd)
	if err != nil {
		plaintext.Release()
		return err
	}

	crypter, err := kdbcrypt.NewCrypter(password, keyfile, kdbcrypt.WithMinRounds(uint32(viper.GetInt("min-rounds"))))
	if err != nil {
		plaintext.Release()
		return err
	}

	ciphertext, err := crypter.Encrypt(context.Background(), header, plaintext)
	if err != nil {
		return err
	}

	if err := os.WriteFile(payloadPath, ciphertext, 0o600); err != nil {
		return fmt.Errorf("write ciphertext: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "encrypted %d bytes of plaintext to %d bytes of ciphertext\n", len(plaintextBytes), len(ciphertext))
	return nil
}
