package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sonate-ai/trust-receipts-go/pkg/config"
	"github.com/sonate-ai/trust-receipts-go/pkg/receipt"
	"github.com/sonate-ai/trust-receipts-go/pkg/sdk"
)

func runCreateCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("create", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		configPath     string
		sessionID      string
		prompt         string
		response       string
		agentID        string
		scoresJSON     string
		prevPath       string
		includeContent bool
		outPath        string
	)

	cmd.StringVar(&configPath, "config", "", "Path to YAML config (key material)")
	cmd.StringVar(&sessionID, "session", "", "Session id (REQUIRED)")
	cmd.StringVar(&prompt, "prompt", "", "Prompt payload (JSON or plain string)")
	cmd.StringVar(&response, "response", "", "Response payload (JSON or plain string)")
	cmd.StringVar(&agentID, "agent", "", "Agent id")
	cmd.StringVar(&scoresJSON, "scores", "", `Scores as a JSON object, e.g. {"accuracy":1.0}`)
	cmd.StringVar(&prevPath, "prev", "", "Path to the previous receipt JSON to chain from")
	cmd.BoolVar(&includeContent, "include-content", false, "Embed plaintext prompt/response (disables privacy mode)")
	cmd.StringVar(&outPath, "out", "", "Write the receipt to a file instead of stdout")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if sessionID == "" {
		_, _ = fmt.Fprintln(stderr, "Error: -session is required")
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if cfg.PrivateKey == "" {
		_, _ = fmt.Fprintln(stderr, "Error: no signing key: configure private_key or set TRUST_RECEIPTS_PRIVATE_KEY")
		return 2
	}

	client, err := sdk.New(sdk.Options{
		PrivateKey:     cfg.PrivateKey,
		PublicKey:      cfg.PublicKey,
		DefaultAgentID: cfg.DefaultAgentID,
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	var scores sdk.Scores
	if scoresJSON != "" {
		if err := json.Unmarshal([]byte(scoresJSON), &scores); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: invalid -scores: %v\n", err)
			return 2
		}
	}

	var previous *receipt.Signed
	if prevPath != "" {
		raw, err := os.ReadFile(prevPath)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		prev, err := receipt.ParseSigned(raw)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: previous receipt: %v\n", err)
			return 2
		}
		previous = &prev
	}

	signed, err := client.CreateReceipt(context.Background(), sdk.ReceiptOptions{
		SessionID:       sessionID,
		Prompt:          parseValue(prompt),
		Response:        parseValue(response),
		AgentID:         agentID,
		Scores:          scores,
		PreviousReceipt: previous,
		IncludeContent:  includeContent || cfg.IncludeContent,
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	out, err := json.MarshalIndent(signed, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, append(out, '\n'), 0o600); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		return 0
	}
	_, _ = fmt.Fprintln(stdout, string(out))
	return 0
}
