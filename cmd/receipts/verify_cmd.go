package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sonate-ai/trust-receipts-go/pkg/receipt"
)

func runVerifyCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("verify", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		inPath     string
		pubKey     string
		configPath string
		jsonOutput bool
	)

	cmd.StringVar(&inPath, "in", "", "Path to receipt JSON (REQUIRED)")
	cmd.StringVar(&pubKey, "key", "", "Hex-encoded Ed25519 public key")
	cmd.StringVar(&configPath, "config", "", "Path to YAML config")
	cmd.BoolVar(&jsonOutput, "json", false, "Output the result as JSON")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if inPath == "" {
		_, _ = fmt.Fprintln(stderr, "Error: -in is required")
		return 2
	}

	key, err := resolvePublicKey(pubKey, configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	raw, err := os.ReadFile(inPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	signed, err := receipt.ParseSigned(raw)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	valid := receipt.FromJSON(signed).Verify(key)

	if jsonOutput {
		_ = json.NewEncoder(stdout).Encode(map[string]any{
			"valid":       valid,
			"receiptHash": signed.ReceiptHash,
			"sessionId":   signed.SessionID,
		})
	} else if valid {
		_, _ = fmt.Fprintf(stdout, "OK %s\n", signed.ReceiptHash)
	} else {
		_, _ = fmt.Fprintf(stdout, "FAIL %s: invalid signature\n", signed.ReceiptHash)
	}

	if !valid {
		return 1
	}
	return 0
}
