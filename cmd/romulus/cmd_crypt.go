package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/romulus-crypto/romulus/romulus"
)

var cmdEncrypt = &cobra.Command{
	Use:   "encrypt TEXT",
	Short: "Encrypt text to hex-encoded symbol codes",
	Args:  cobra.ExactArgs(1),
	Run:   runEncrypt,
}

var cmdDecrypt = &cobra.Command{
	Use:   "decrypt HEXSYMBOLS",
	Short: "Decrypt hex-encoded symbol codes back to text",
	Args:  cobra.ExactArgs(1),
	Run:   runDecrypt,
}

var flagCrypt struct {
	Key string
}

func init() {
	for _, cmd := range []*cobra.Command{cmdEncrypt, cmdDecrypt} {
		cmd.Flags().StringVarP(&flagCrypt.Key, "key", "k", "", "Hex-encoded cryptovariable (at least 11 bytes)")
		cmdMain.AddCommand(cmd)
	}
}

func newCipherFromFlags() *romulus.Cipher {
	if flagCrypt.Key == "" {
		logger.Warn().Msg("no key supplied, using the non-operational test vector")
		return romulus.NewTestVector()
	}
	cv, err := hex.DecodeString(strings.TrimSpace(flagCrypt.Key))
	check(err)
	c, err := romulus.New(cv)
	check(err)
	return c
}

func runEncrypt(_ *cobra.Command, args []string) {
	c := newCipherFromFlags()
	fmt.Println(hex.EncodeToString(c.EncryptText(args[0])))
}

func runDecrypt(_ *cobra.Command, args []string) {
	c := newCipherFromFlags()
	symbols, err := hex.DecodeString(strings.TrimSpace(args[0]))
	check(err)
	fmt.Println(c.DecryptText(symbols))
}
