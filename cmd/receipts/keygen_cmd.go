package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/sonate-ai/trust-receipts-go/pkg/crypto"
)

func runKeygenCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("keygen", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var jsonOutput bool
	cmd.BoolVar(&jsonOutput, "json", false, "Output the keypair as JSON")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: key generation failed: %v\n", err)
		return 2
	}

	if jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(kp); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		return 0
	}

	_, _ = fmt.Fprintf(stdout, "private key: %s\n", kp.PrivateKey)
	_, _ = fmt.Fprintf(stdout, "public key:  %s\n", kp.PublicKey)
	return 0
}

func derivePublicKey(privHex string) (string, error) {
	return crypto.PublicKeyFromPrivate(privHex)
}
