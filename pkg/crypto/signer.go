// Package crypto implements the Ed25519 signing surface for trust receipts.
//
// Key material travels as hex strings: a 32-byte private seed and a 32-byte
// public point. Signatures are 64 bytes, hex encoded. Verification treats
// malformed input as an expected condition and reports false instead of
// failing; signing with malformed key material is a programmer error and
// returns one.
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// KeyPair holds hex-encoded Ed25519 key material.
type KeyPair struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

// GenerateKeyPair creates a fresh Ed25519 keypair.
func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("key generation failed: %w", err)
	}
	return KeyPair{
		PrivateKey: hex.EncodeToString(priv.Seed()),
		PublicKey:  hex.EncodeToString(pub),
	}, nil
}

// PublicKeyFromPrivate derives the hex public key from a hex private seed
// alone, without generating a new pair.
func PublicKeyFromPrivate(privHex string) (string, error) {
	priv, err := decodeSeed(privHex)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(priv.Public().(ed25519.PublicKey)), nil
}

// Sign signs message with the hex-encoded private seed and returns the
// hex-encoded 64-byte signature. Ed25519 signing is deterministic: the same
// (message, key) pair always yields identical signature bytes.
func Sign(message []byte, privHex string) (string, error) {
	priv, err := decodeSeed(privHex)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(ed25519.Sign(priv, message)), nil
}

// Verify reports whether sigHex is a valid signature over message under the
// hex-encoded public key. Bad hex, wrong lengths, and invalid keys all
// verify false; this function never panics and never returns an error.
func Verify(sigHex string, message []byte, pubHex string) bool {
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	pub, err := hex.DecodeString(pubHex)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, sig)
}

func decodeSeed(privHex string) (ed25519.PrivateKey, error) {
	seed, err := hex.DecodeString(privHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid private key size: %d", len(seed))
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// Signer is a stateful signing handle bound to one keypair.
type Signer struct {
	priv  ed25519.PrivateKey
	pub   ed25519.PublicKey
	KeyID string
}

// NewSigner generates a keypair and wraps it in a Signer with a fresh key ID.
func NewSigner() (*Signer, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("key generation failed: %w", err)
	}
	return &Signer{priv: priv, pub: pub, KeyID: uuid.New().String()}, nil
}

// NewSignerFromSeed builds a Signer from an existing hex private seed.
func NewSignerFromSeed(privHex string) (*Signer, error) {
	priv, err := decodeSeed(privHex)
	if err != nil {
		return nil, err
	}
	return &Signer{
		priv:  priv,
		pub:   priv.Public().(ed25519.PublicKey),
		KeyID: uuid.New().String(),
	}, nil
}

// Sign signs message and returns the hex signature.
func (s *Signer) Sign(message []byte) string {
	return hex.EncodeToString(ed25519.Sign(s.priv, message))
}

// PublicKey returns the hex-encoded public key.
func (s *Signer) PublicKey() string {
	return hex.EncodeToString(s.pub)
}

// PublicKeyBytes returns the raw 32-byte public key.
func (s *Signer) PublicKeyBytes() []byte {
	return append([]byte(nil), s.pub...)
}

// PrivateKeySeed returns the hex-encoded 32-byte private seed.
func (s *Signer) PrivateKeySeed() string {
	return hex.EncodeToString(s.priv.Seed())
}
