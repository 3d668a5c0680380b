// Command receipts issues and verifies trust receipts from the command line.
//
// Usage:
//
//	receipts keygen [-json]
//	receipts create -session <id> [-prompt <v>] [-response <v>] [flags]
//	receipts verify -in <receipt.json> [-key <pubhex>] [flags]
//	receipts chain -in <receipts.json> [-key <pubhex>] [flags]
//
// Exit codes:
//
//	0 = success / verification passed
//	1 = verification failed
//	2 = usage or runtime error
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sonate-ai/trust-receipts-go/pkg/config"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the entrypoint, split out for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	switch args[1] {
	case "keygen":
		return runKeygenCmd(args[2:], stdout, stderr)
	case "create":
		return runCreateCmd(args[2:], stdout, stderr)
	case "verify":
		return runVerifyCmd(args[2:], stdout, stderr)
	case "chain":
		return runChainCmd(args[2:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: receipts <keygen|create|verify|chain> [flags]")
	_, _ = fmt.Fprintln(w, "  keygen  generate an Ed25519 keypair")
	_, _ = fmt.Fprintln(w, "  create  build and sign a receipt")
	_, _ = fmt.Fprintln(w, "  verify  verify a single receipt")
	_, _ = fmt.Fprintln(w, "  chain   verify an ordered receipt chain")
}

// parseValue interprets s as JSON when possible, else as a plain string.
// `-prompt '{"q":"2+2?"}'` yields an object, `-prompt 'hello'` a string.
func parseValue(s string) any {
	if s == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}

// resolvePublicKey prefers the explicit flag, then config (with derivation
// from the private key when only that is configured).
func resolvePublicKey(flagKey, configPath string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	if cfg.PublicKey != "" {
		return cfg.PublicKey, nil
	}
	if cfg.PrivateKey != "" {
		return derivePublicKey(cfg.PrivateKey)
	}
	return "", fmt.Errorf("no public key: pass -key or configure one")
}
