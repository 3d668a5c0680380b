package crypto

import (
	"strings"
	"testing"
)

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	if len(kp.PrivateKey) != 64 {
		t.Errorf("Expected 64 hex chars for private seed, got %d", len(kp.PrivateKey))
	}
	if len(kp.PublicKey) != 64 {
		t.Errorf("Expected 64 hex chars for public key, got %d", len(kp.PublicKey))
	}

	kp2, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	if kp.PrivateKey == kp2.PrivateKey {
		t.Error("Two generated keypairs should differ")
	}
}

func TestPublicKeyFromPrivate(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	pub, err := PublicKeyFromPrivate(kp.PrivateKey)
	if err != nil {
		t.Fatalf("PublicKeyFromPrivate failed: %v", err)
	}
	if pub != kp.PublicKey {
		t.Errorf("Derived public key %s does not match generated %s", pub, kp.PublicKey)
	}

	if _, err := PublicKeyFromPrivate("not-hex"); err == nil {
		t.Error("Expected error for malformed private key hex")
	}
	if _, err := PublicKeyFromPrivate("abcd"); err == nil {
		t.Error("Expected error for short private key")
	}
}

func TestSignVerify(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("hello world")
	sig, err := Sign(msg, kp.PrivateKey)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != 128 {
		t.Errorf("Expected 128 hex chars for signature, got %d", len(sig))
	}

	if !Verify(sig, msg, kp.PublicKey) {
		t.Error("Valid signature should verify")
	}
	if Verify(sig, []byte("hello world modified"), kp.PublicKey) {
		t.Error("Tampered message should not verify")
	}
}

func TestSign_Deterministic(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("deterministic")
	sig1, err := Sign(msg, kp.PrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	sig2, err := Sign(msg, kp.PrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	if sig1 != sig2 {
		t.Error("Re-signing the same message should yield identical bytes")
	}
}

func TestVerify_WrongKey(t *testing.T) {
	kp1, _ := GenerateKeyPair()
	kp2, _ := GenerateKeyPair()

	msg := []byte("payload")
	sig, err := Sign(msg, kp1.PrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	if Verify(sig, msg, kp2.PublicKey) {
		t.Error("Signature should not verify under an unrelated key")
	}
}

func TestVerify_MalformedInputReturnsFalse(t *testing.T) {
	kp, _ := GenerateKeyPair()
	msg := []byte("payload")
	sig, _ := Sign(msg, kp.PrivateKey)

	cases := []struct {
		name string
		sig  string
		pub  string
	}{
		{"bad signature hex", "zz" + sig[2:], kp.PublicKey},
		{"short signature", sig[:64], kp.PublicKey},
		{"empty signature", "", kp.PublicKey},
		{"bad key hex", sig, "not-hex"},
		{"short key", sig, kp.PublicKey[:32]},
		{"empty key", sig, ""},
		{"oversized key", sig, kp.PublicKey + "ab"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if Verify(tc.sig, msg, tc.pub) {
				t.Error("Malformed input should verify false, not panic")
			}
		})
	}
}

func TestSign_InvalidKey(t *testing.T) {
	if _, err := Sign([]byte("msg"), "nothex"); err == nil {
		t.Error("Expected error signing with malformed key")
	}
	if _, err := Sign([]byte("msg"), strings.Repeat("ab", 16)); err == nil {
		t.Error("Expected error signing with short key")
	}
}

func TestSigner(t *testing.T) {
	s, err := NewSigner()
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}
	if s.KeyID == "" {
		t.Error("Expected generated key ID")
	}

	sig := s.Sign([]byte("data"))
	if !Verify(sig, []byte("data"), s.PublicKey()) {
		t.Error("Signer output should verify under its public key")
	}

	restored, err := NewSignerFromSeed(s.PrivateKeySeed())
	if err != nil {
		t.Fatalf("NewSignerFromSeed failed: %v", err)
	}
	if restored.PublicKey() != s.PublicKey() {
		t.Error("Signer restored from seed should share the public key")
	}
}
