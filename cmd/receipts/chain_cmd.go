package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sonate-ai/trust-receipts-go/pkg/receipt"
)

func runChainCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("chain", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		inPath     string
		pubKey     string
		configPath string
		jsonOutput bool
	)

	cmd.StringVar(&inPath, "in", "", "Path to a JSON array of receipts, oldest first (REQUIRED)")
	cmd.StringVar(&pubKey, "key", "", "Hex-encoded Ed25519 public key")
	cmd.StringVar(&configPath, "config", "", "Path to YAML config")
	cmd.BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

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

	var rawReceipts []json.RawMessage
	if err := json.Unmarshal(raw, &rawReceipts); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: expected a JSON array of receipts: %v\n", err)
		return 2
	}

	receipts := make([]receipt.Signed, 0, len(rawReceipts))
	for i, r := range rawReceipts {
		signed, err := receipt.ParseSigned(r)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: receipt %d: %v\n", i, err)
			return 2
		}
		receipts = append(receipts, signed)
	}

	report := receipt.VerifyChain(receipts, key)

	if jsonOutput {
		_ = json.NewEncoder(stdout).Encode(report)
	} else if report.Valid {
		_, _ = fmt.Fprintf(stdout, "OK chain of %d receipts\n", len(receipts))
	} else {
		_, _ = fmt.Fprintf(stdout, "FAIL chain of %d receipts:\n", len(receipts))
		for _, e := range report.Errors {
			_, _ = fmt.Fprintf(stdout, "  - %s\n", e)
		}
	}

	if !report.Valid {
		return 1
	}
	return 0
}
