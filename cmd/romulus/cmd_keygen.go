package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romulus-crypto/romulus/romulus/cryptovar"
)

var cmdKeygen = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a cryptovariable (random, or derived from a passphrase)",
	Run:   runKeygen,
}

var flagKeygen struct {
	Passphrase string
	Salt       string
}

func init() {
	cmdKeygen.Flags().StringVar(&flagKeygen.Passphrase, "passphrase", "", "Derive the cryptovariable from a passphrase instead of random entropy")
	cmdKeygen.Flags().StringVar(&flagKeygen.Salt, "salt", "", "Salt for passphrase derivation (e.g. a circuit designator)")
	cmdMain.AddCommand(cmdKeygen)
}

func runKeygen(_ *cobra.Command, _ []string) {
	var cv []byte
	var err error
	if flagKeygen.Passphrase != "" {
		cv, err = cryptovar.FromPassphrase(flagKeygen.Passphrase, flagKeygen.Salt)
	} else {
		cv, err = cryptovar.Generate()
	}
	check(err)
	fmt.Println(hex.EncodeToString(cv))
}
