// Package sdk wraps AI model calls with signed trust receipts.
//
// A Client owns one Ed25519 keypair for its lifetime. Key material is fully
// initialized before New returns — there is no background derivation for
// later calls to race — and is read-only afterwards, so a single Client is
// safe for concurrent Wrap and Verify calls across independent sessions
// without locking.
package sdk

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sonate-ai/trust-receipts-go/pkg/crypto"
	"github.com/sonate-ai/trust-receipts-go/pkg/receipt"
	"github.com/sonate-ai/trust-receipts-go/pkg/sdk/extract"
)

var tracer = otel.Tracer("github.com/sonate-ai/trust-receipts-go/pkg/sdk")

// Scores aliases receipt.Scores for callers that only import this package.
type Scores = receipt.Scores

// Options configure a Client.
type Options struct {
	// PrivateKey is a hex-encoded 32-byte Ed25519 seed. A fresh keypair is
	// generated when empty.
	PrivateKey string
	// PublicKey is derived from PrivateKey when empty.
	PublicKey string
	// DefaultAgentID is used when WrapOptions.AgentID is empty.
	DefaultAgentID string
	// CalculateScores supplies scores when the caller passes none.
	CalculateScores func(input, response any) Scores
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client issues and verifies trust receipts under one keypair.
type Client struct {
	signer         *crypto.Signer
	publicKey      string
	defaultAgentID string
	calcScores     func(input, response any) Scores
	logger         *slog.Logger
}

// New builds a Client from opts. The private seed is decoded once here; all
// subsequent signing goes through the resulting handle.
func New(opts Options) (*Client, error) {
	c := &Client{
		defaultAgentID: opts.DefaultAgentID,
		calcScores:     opts.CalculateScores,
		logger:         opts.Logger,
	}
	if c.logger == nil {
		c.logger = slog.Default().With("component", "trustreceipts")
	}

	switch {
	case opts.PrivateKey != "":
		signer, err := crypto.NewSignerFromSeed(opts.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("load private key: %w", err)
		}
		c.signer = signer
	default:
		signer, err := crypto.NewSigner()
		if err != nil {
			return nil, err
		}
		c.signer = signer
	}

	if opts.PublicKey != "" {
		c.publicKey = opts.PublicKey
	} else {
		c.publicKey = c.signer.PublicKey()
	}
	return c, nil
}

// GenerateKeyPair creates a fresh Ed25519 keypair (hex).
func GenerateKeyPair() (crypto.KeyPair, error) {
	return crypto.GenerateKeyPair()
}

// PublicKey returns the client's hex-encoded public key.
func (c *Client) PublicKey() string {
	return c.publicKey
}

// Call is an asynchronous model invocation to be wrapped.
type Call func(ctx context.Context) (any, error)

// WrapOptions configure a single wrapped call.
type WrapOptions struct {
	SessionID       string
	Input           any
	AgentID         string
	Scores          Scores
	PreviousReceipt *receipt.Signed
	Metadata        map[string]any
	// ExtractResponse overrides the built-in provider-shape extractors.
	ExtractResponse extract.Func
	IncludeContent  bool
}

// WrapResult pairs the untouched provider response with its receipt.
type WrapResult struct {
	Response any
	Receipt  receipt.Signed
}

// Wrap executes call exactly once and, on success, returns the original
// response together with a signed receipt whose prevReceiptHash links to
// opts.PreviousReceipt when given. A call failure propagates unchanged and
// produces no receipt. Wrap applies no retries, timeouts, or cancellation of
// its own; callers needing deadlines bound the call themselves.
func (c *Client) Wrap(ctx context.Context, call Call, opts WrapOptions) (*WrapResult, error) {
	ctx, span := tracer.Start(ctx, "sdk.wrap", trace.WithAttributes(
		attribute.String("receipt.session_id", opts.SessionID),
		attribute.Bool("receipt.chained", opts.PreviousReceipt != nil),
		attribute.Bool("receipt.include_content", opts.IncludeContent),
	))
	defer span.End()

	response, err := call(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	content := extract.Content(response, opts.ExtractResponse)

	scores := opts.Scores
	if len(scores) == 0 && c.calcScores != nil {
		scores = c.calcScores(opts.Input, content)
	}

	signed, err := c.issue(receipt.Data{
		SessionID:       opts.SessionID,
		Prompt:          opts.Input,
		Response:        content,
		Scores:          scores,
		AgentID:         c.agentID(opts.AgentID),
		PrevReceiptHash: prevHash(opts.PreviousReceipt),
		Metadata:        opts.Metadata,
		IncludeContent:  opts.IncludeContent,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	c.logger.DebugContext(ctx, "receipt issued",
		"session_id", opts.SessionID,
		"receipt_hash", signed.ReceiptHash,
		"chained", opts.PreviousReceipt != nil)

	return &WrapResult{Response: response, Receipt: signed}, nil
}

// ReceiptOptions configure CreateReceipt.
type ReceiptOptions struct {
	SessionID       string
	Prompt          any
	Response        any
	AgentID         string
	Scores          Scores
	PreviousReceipt *receipt.Signed
	Metadata        map[string]any
	IncludeContent  bool
}

// CreateReceipt builds and signs a receipt without executing a call, for
// streaming scenarios where response content was accumulated externally.
func (c *Client) CreateReceipt(ctx context.Context, opts ReceiptOptions) (receipt.Signed, error) {
	_, span := tracer.Start(ctx, "sdk.create_receipt", trace.WithAttributes(
		attribute.String("receipt.session_id", opts.SessionID),
	))
	defer span.End()

	signed, err := c.issue(receipt.Data{
		SessionID:       opts.SessionID,
		Prompt:          opts.Prompt,
		Response:        opts.Response,
		Scores:          opts.Scores,
		AgentID:         c.agentID(opts.AgentID),
		PrevReceiptHash: prevHash(opts.PreviousReceipt),
		Metadata:        opts.Metadata,
		IncludeContent:  opts.IncludeContent,
	})
	if err != nil {
		span.RecordError(err)
		return receipt.Signed{}, err
	}
	return signed, nil
}

// VerifyReceipt checks a receipt's signature, against the client's own
// public key unless an explicit key is supplied. Verification failures are
// data, not errors.
func (c *Client) VerifyReceipt(s receipt.Signed, publicKey ...string) bool {
	return receipt.FromJSON(s).Verify(c.verifyKey(publicKey))
}

// VerifyChain verifies an ordered receipt sequence (oldest first): every
// signature plus every prevReceiptHash link, accumulating all defects in the
// returned report.
func (c *Client) VerifyChain(ctx context.Context, receipts []receipt.Signed, publicKey ...string) receipt.ChainReport {
	ctx, span := tracer.Start(ctx, "sdk.verify_chain", trace.WithAttributes(
		attribute.Int("receipt.count", len(receipts)),
	))
	defer span.End()

	report := receipt.VerifyChain(receipts, c.verifyKey(publicKey))
	span.SetAttributes(attribute.Bool("receipt.chain_valid", report.Valid))
	if !report.Valid {
		c.logger.WarnContext(ctx, "chain verification failed",
			"receipts", len(receipts), "errors", len(report.Errors))
	}
	return report
}

func (c *Client) issue(d receipt.Data) (receipt.Signed, error) {
	r, err := receipt.New(d)
	if err != nil {
		return receipt.Signed{}, err
	}
	r.SignWith(c.signer)
	return r.ToJSON(), nil
}

func (c *Client) agentID(override string) string {
	if override != "" {
		return override
	}
	return c.defaultAgentID
}

func (c *Client) verifyKey(explicit []string) string {
	if len(explicit) > 0 && explicit[0] != "" {
		return explicit[0]
	}
	return c.publicKey
}

func prevHash(previous *receipt.Signed) string {
	if previous == nil {
		return ""
	}
	return previous.ReceiptHash
}
