package receipt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://sonate.schemas.local/trust-receipt-1.0.schema.json"

// signedSchema is the Draft 2020-12 schema for the receipt wire form.
// Hex lengths are enforced here so foreign input is rejected before any
// cryptographic work happens. An empty signature (unsigned receipt) is
// structurally valid; it simply never verifies.
const signedSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": [
    "version", "timestamp", "sessionId", "agentId", "promptHash",
    "responseHash", "scores", "prevReceiptHash", "receiptHash",
    "signature", "metadata"
  ],
  "properties": {
    "version": {"type": "string", "const": "1.0"},
    "timestamp": {"type": "string"},
    "sessionId": {"type": "string", "minLength": 1},
    "agentId": {"type": ["string", "null"]},
    "promptHash": {"type": "string", "pattern": "^[0-9a-f]{64}$"},
    "responseHash": {"type": "string", "pattern": "^[0-9a-f]{64}$"},
    "scores": {
      "type": "object",
      "additionalProperties": {"type": "number", "minimum": 0, "maximum": 1}
    },
    "prevReceiptHash": {
      "anyOf": [
        {"type": "string", "pattern": "^[0-9a-f]{64}$"},
        {"type": "null"}
      ]
    },
    "receiptHash": {"type": "string", "pattern": "^[0-9a-f]{64}$"},
    "signature": {"type": "string", "pattern": "^([0-9a-f]{128})?$"},
    "metadata": {"type": "object"}
  }
}`

var compiledSchema = func() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(signedSchema)); err != nil {
		panic(fmt.Sprintf("receipt schema load failed: %v", err))
	}
	return c.MustCompile(schemaURL)
}()

// ParseSigned validates raw transport JSON against the receipt schema and
// decodes it. Foreign receipts should pass through here before verification
// so that structural defects surface as typed errors rather than as silent
// verification failures.
func ParseSigned(raw []byte) (Signed, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Signed{}, fmt.Errorf("parse receipt: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return Signed{}, fmt.Errorf("receipt schema validation failed: %w", err)
	}
	var s Signed
	if err := json.Unmarshal(raw, &s); err != nil {
		return Signed{}, fmt.Errorf("decode receipt: %w", err)
	}
	return s, nil
}
