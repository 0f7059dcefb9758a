package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/romulus-crypto/romulus/romulus"
	"github.com/romulus-crypto/romulus/romulus/baudot"
	"github.com/romulus-crypto/romulus/romulus/cryptovar"
	"github.com/romulus-crypto/romulus/romulus/keystream"
)

var cmdDemo = &cobra.Command{
	Use:   "demo",
	Short: "Demonstrate encryption, decryption and keystream behavior with the test vector",
	Run:   runDemo,
}

func init() {
	cmdMain.AddCommand(cmdDemo)
}

func runDemo(_ *cobra.Command, _ []string) {
	fmt.Println("ROMULUS synchronous stream cipher demonstration")
	fmt.Println("Test-vector key material; not for operational use.")
	fmt.Println()

	tx := romulus.NewTestVector()
	rx := romulus.NewTestVector()

	const plaintext = "HELLO WORLD"
	codes := baudot.Encode(plaintext)
	fmt.Printf("Plaintext:  %s\n", plaintext)
	fmt.Printf("ITA2 codes: %v\n", codes)

	ciphertext := tx.EncryptText(plaintext)
	fmt.Printf("Ciphertext: %v\n", ciphertext)

	decrypted := rx.DecryptText(ciphertext)
	fmt.Printf("Decrypted:  %s\n", decrypted)
	if decrypted != plaintext {
		fatalf("decryption mismatch")
	}
	fmt.Println()

	// Keystream characteristics from a fresh engine.
	st := cryptovar.TestStates()
	engine := keystream.NewEngine(st.A, st.B, st.C)
	var sb strings.Builder
	ones := 0
	for i := 0; i < 100; i++ {
		bit := engine.NextBit()
		sb.WriteByte('0' + bit)
		ones += int(bit)
	}
	fmt.Printf("First 100 keystream bits: %d ones, %d zeros\n", ones, 100-ones)
	fmt.Printf("Bits: %s...\n", sb.String()[:50])

	snap := engine.Snapshot()
	fmt.Printf("Register A: %#08x\n", snap.StateA)
	fmt.Printf("Register B: %#08x\n", snap.StateB)
	fmt.Printf("Register C: %#08x\n", snap.StateC)
	fmt.Printf("Keystream position: %d bits\n", snap.Position)
}
