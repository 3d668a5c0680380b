// Package canonicalize provides RFC 8785 (JSON Canonicalization Scheme)
// serialization and SHA-256 content digests for trust receipts.
//
// Every hash embedded in a receipt is computed over these canonical bytes.
// The determinism contract is strict: independent implementations hashing the
// same logical value must produce identical digests, regardless of map key
// insertion order or struct field order.
package canonicalize

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Canonicalize returns the RFC 8785 canonical JSON encoding of v.
//
// Object keys are sorted by code point, insignificant whitespace is removed,
// numbers use ES6 serialization, and strings are UTF-8 with minimal escaping
// (no HTML escaping). Values with no JSON representation — channels, funcs,
// cyclic structures, NaN, Inf — fail with an error rather than being coerced.
func Canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: unsupported value: %w", err)
	}
	if len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
		canonical, err := jcs.Transform(raw)
		if err != nil {
			return nil, fmt.Errorf("canonicalize: jcs transform failed: %w", err)
		}
		return canonical, nil
	}
	return canonicalScalar(raw)
}

// canonicalScalar canonicalizes a top-level scalar by wrapping it in a
// single-element array, transforming that, and unwrapping. This gives
// scalars the exact same number and string serialization as nested values,
// so a value hashes identically regardless of nesting depth.
func canonicalScalar(raw []byte) ([]byte, error) {
	wrapped := make([]byte, 0, len(raw)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, raw...)
	wrapped = append(wrapped, ']')

	canonical, err := jcs.Transform(wrapped)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: jcs transform failed: %w", err)
	}
	return canonical[1 : len(canonical)-1], nil
}

// CanonicalString returns the canonical encoding of v as a string.
func CanonicalString(v any) (string, error) {
	b, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// HashBytes computes the SHA-256 digest of data and returns it as a 64-char
// lowercase hex string.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashContent canonicalizes v and hashes the canonical bytes.
//
// A nil value hashes the empty byte string (e3b0c442...b855). Absent content
// is a legitimate input to the receipt pipeline, not an error.
func HashContent(v any) (string, error) {
	if v == nil {
		return HashBytes(nil), nil
	}
	b, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}
