package receipt

import "maps"

// Signed is the wire form of a receipt. Field names and shapes are a fixed
// transport contract; see the embedded schema in schema.go.
type Signed struct {
	Version         string         `json:"version"`
	Timestamp       string         `json:"timestamp"`
	SessionID       string         `json:"sessionId"`
	AgentID         *string        `json:"agentId"`
	PromptHash      string         `json:"promptHash"`
	ResponseHash    string         `json:"responseHash"`
	Scores          Scores         `json:"scores"`
	PrevReceiptHash *string        `json:"prevReceiptHash"`
	ReceiptHash     string         `json:"receiptHash"`
	Signature       string         `json:"signature"`
	Metadata        map[string]any `json:"metadata"`
	PromptContent   any            `json:"promptContent,omitempty"`
	ResponseContent any            `json:"responseContent,omitempty"`
}

// ToJSON exports the receipt in wire form. Plaintext content appears only
// when the receipt was built with IncludeContent; the hashes are always
// present either way.
func (r *Receipt) ToJSON() Signed {
	scores := Scores{}
	maps.Copy(scores, r.Scores)
	metadata := map[string]any{}
	maps.Copy(metadata, r.Metadata)

	s := Signed{
		Version:         r.Version,
		Timestamp:       r.Timestamp,
		SessionID:       r.SessionID,
		AgentID:         optString(r.AgentID),
		PromptHash:      r.PromptHash,
		ResponseHash:    r.ResponseHash,
		Scores:          scores,
		PrevReceiptHash: optString(r.PrevReceiptHash),
		ReceiptHash:     r.ReceiptHash,
		Signature:       r.signature,
		Metadata:        metadata,
	}
	if r.includeContent {
		s.PromptContent = r.promptContent
		s.ResponseContent = r.responseContent
	}
	return s
}

// FromJSON restores a receipt from wire form. No hashes are recomputed and
// no signature is re-derived: a restored receipt verifies exactly as the
// original did.
func FromJSON(s Signed) *Receipt {
	scores := Scores{}
	maps.Copy(scores, s.Scores)
	metadata := map[string]any{}
	maps.Copy(metadata, s.Metadata)

	r := &Receipt{
		Version:         s.Version,
		Timestamp:       s.Timestamp,
		SessionID:       s.SessionID,
		AgentID:         derefString(s.AgentID),
		PromptHash:      s.PromptHash,
		ResponseHash:    s.ResponseHash,
		Scores:          scores,
		PrevReceiptHash: derefString(s.PrevReceiptHash),
		Metadata:        metadata,
		ReceiptHash:     s.ReceiptHash,
		signature:       s.Signature,
	}
	if s.PromptContent != nil || s.ResponseContent != nil {
		r.promptContent = s.PromptContent
		r.responseContent = s.ResponseContent
		r.includeContent = true
	}
	return r
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
