// Package receipt implements the signed, hash-chained record of a single AI
// prompt/response exchange.
//
// A Receipt is constructed once, optionally signed once (Unsigned -> Signed,
// one way), and is immutable thereafter. Its receiptHash is a hash of hashes:
// SHA-256 over the canonical form of the receipt payload, whose promptHash
// and responseHash fields are themselves SHA-256 digests of the canonicalized
// prompt and response. The signature covers the UTF-8 bytes of the
// receiptHash hex string; that choice of signed payload is a fixed wire
// contract shared by every implementation.
package receipt

import (
	"fmt"
	"maps"
	"math"
	"time"

	"github.com/sonate-ai/trust-receipts-go/pkg/canonicalize"
	"github.com/sonate-ai/trust-receipts-go/pkg/crypto"
)

// Version is the receipt format version embedded in every receipt.
const Version = "1.0"

// timestampLayout is ISO-8601 UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Scores maps caller-defined metric names to values in [0,1]. The key set is
// open and the semantics are the caller's; this package only enforces range.
type Scores map[string]float64

// Data carries the caller inputs for constructing a Receipt.
type Data struct {
	SessionID       string
	Prompt          any
	Response        any
	Scores          Scores
	AgentID         string
	PrevReceiptHash string
	Metadata        map[string]any
	IncludeContent  bool
}

// Receipt is the immutable audit record. Mutating exported fields after
// construction voids verification; tampered receipts verify false.
type Receipt struct {
	Version         string
	Timestamp       string
	SessionID       string
	AgentID         string
	PromptHash      string
	ResponseHash    string
	Scores          Scores
	PrevReceiptHash string
	Metadata        map[string]any
	ReceiptHash     string

	signature       string
	promptContent   any
	responseContent any
	includeContent  bool
}

// New builds a Receipt from caller data. Construction is synchronous and
// deterministic: both content hashes and the receipt hash are computed here,
// once, with no I/O. A session id is required; the wire schema rejects
// receipts without one, so issuing one locally would produce JSON this
// module itself refuses to parse. Scores outside [0,1] or non-finite are
// rejected.
func New(d Data) (*Receipt, error) {
	if d.SessionID == "" {
		return nil, fmt.Errorf("sessionId is required")
	}
	if err := validateScores(d.Scores); err != nil {
		return nil, err
	}

	promptHash, err := canonicalize.HashContent(d.Prompt)
	if err != nil {
		return nil, fmt.Errorf("hash prompt: %w", err)
	}
	responseHash, err := canonicalize.HashContent(d.Response)
	if err != nil {
		return nil, fmt.Errorf("hash response: %w", err)
	}

	scores := Scores{}
	maps.Copy(scores, d.Scores)
	metadata := map[string]any{}
	maps.Copy(metadata, d.Metadata)

	r := &Receipt{
		Version:         Version,
		Timestamp:       time.Now().UTC().Format(timestampLayout),
		SessionID:       d.SessionID,
		AgentID:         d.AgentID,
		PromptHash:      promptHash,
		ResponseHash:    responseHash,
		Scores:          scores,
		PrevReceiptHash: d.PrevReceiptHash,
		Metadata:        metadata,
	}
	if d.IncludeContent {
		r.promptContent = d.Prompt
		r.responseContent = d.Response
		r.includeContent = true
	}

	hash, err := r.computeHash()
	if err != nil {
		return nil, fmt.Errorf("compute receipt hash: %w", err)
	}
	r.ReceiptHash = hash
	return r, nil
}

func validateScores(s Scores) error {
	for name, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("score %q is not a finite number", name)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("score %q = %v outside [0,1]", name, v)
		}
	}
	return nil
}

// payload is the exact set of fields covered by the receipt hash. Content
// fields are deliberately excluded so that privacy mode does not change the
// hash.
func (r *Receipt) payload() map[string]any {
	var agentID any
	if r.AgentID != "" {
		agentID = r.AgentID
	}
	var prev any
	if r.PrevReceiptHash != "" {
		prev = r.PrevReceiptHash
	}
	scores := r.Scores
	if scores == nil {
		scores = Scores{}
	}
	metadata := r.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return map[string]any{
		"version":         r.Version,
		"timestamp":       r.Timestamp,
		"sessionId":       r.SessionID,
		"agentId":         agentID,
		"promptHash":      r.PromptHash,
		"responseHash":    r.ResponseHash,
		"scores":          scores,
		"prevReceiptHash": prev,
		"metadata":        metadata,
	}
}

func (r *Receipt) computeHash() (string, error) {
	return canonicalize.HashContent(r.payload())
}

// Sign signs the receipt hash with the hex-encoded private seed. The signed
// message is the UTF-8 bytes of the receipt hash hex string, not the raw
// digest bytes. Signing never alters the receipt hash, and because Ed25519
// is deterministic, re-signing yields the same signature bytes.
func (r *Receipt) Sign(privHex string) error {
	sig, err := crypto.Sign([]byte(r.ReceiptHash), privHex)
	if err != nil {
		return fmt.Errorf("sign receipt: %w", err)
	}
	r.signature = sig
	return nil
}

// SignWith signs the receipt hash with an already-loaded signing handle,
// avoiding a seed decode per receipt. Same signed payload and determinism
// guarantees as Sign.
func (r *Receipt) SignWith(s *crypto.Signer) {
	r.signature = s.Sign([]byte(r.ReceiptHash))
}

// Signature returns the hex-encoded signature, empty while unsigned.
func (r *Receipt) Signature() string {
	return r.signature
}

// IsSigned reports whether the receipt carries a signature.
func (r *Receipt) IsSigned() bool {
	return r.signature != ""
}

// Verify reports whether the receipt is intact and validly signed under the
// hex-encoded public key. It recomputes the payload hash from the current
// field values and requires it to match the stored receipt hash before
// checking the signature, so mutating any hashed field (scores, metadata,
// timestamp, prevReceiptHash, ...) after signing verifies false. Unsigned
// receipts verify false. Verify never returns an error; a tampered receipt
// is an expected input, not exceptional state.
func (r *Receipt) Verify(pubHex string) bool {
	if r.signature == "" {
		return false
	}
	hash, err := r.computeHash()
	if err != nil || hash != r.ReceiptHash {
		return false
	}
	return crypto.Verify(r.signature, []byte(r.ReceiptHash), pubHex)
}

// VerifyChain reports whether this receipt links to previous, i.e. its
// prevReceiptHash equals the predecessor's receiptHash exactly. This is a
// pure structural check; signatures are verified separately.
func (r *Receipt) VerifyChain(previous *Receipt) bool {
	if previous == nil {
		return false
	}
	return r.PrevReceiptHash == previous.ReceiptHash
}
