package receipt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonate-ai/trust-receipts-go/pkg/crypto"
)

func buildChain(t *testing.T, kp crypto.KeyPair, n int) []Signed {
	t.Helper()
	chain := make([]Signed, 0, n)
	prev := ""
	for i := 0; i < n; i++ {
		r, err := New(Data{
			SessionID:       "s1",
			Prompt:          fmt.Sprintf("prompt %d", i),
			Response:        fmt.Sprintf("response %d", i),
			PrevReceiptHash: prev,
		})
		require.NoError(t, err)
		require.NoError(t, r.Sign(kp.PrivateKey))
		prev = r.ReceiptHash
		chain = append(chain, r.ToJSON())
	}
	return chain
}

func TestVerifyChain_Valid(t *testing.T) {
	kp := testKeys(t)
	chain := buildChain(t, kp, 4)

	for i := 1; i < len(chain); i++ {
		require.NotNil(t, chain[i].PrevReceiptHash)
		assert.Equal(t, chain[i-1].ReceiptHash, *chain[i].PrevReceiptHash)
	}

	report := VerifyChain(chain, kp.PublicKey)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestVerifyChain_EmptyIsValid(t *testing.T) {
	report := VerifyChain(nil, "irrelevant")
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestVerifyChain_BreakDetection(t *testing.T) {
	kp := testKeys(t)
	chain := buildChain(t, kp, 4)

	// Overwrite a middle link with an arbitrary but well-formed hash. The
	// receipt itself now also fails signature verification, since its hashed
	// fields changed.
	bogus := strings.Repeat("ab", 32)
	chain[2].PrevReceiptHash = &bogus

	report := VerifyChain(chain, kp.PublicKey)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "receipt 2: chain broken, prevReceiptHash does not match receipt 1")
	assert.Contains(t, report.Errors, "receipt 2: invalid signature")
}

func TestVerifyChain_InvalidSignature(t *testing.T) {
	kp := testKeys(t)
	chain := buildChain(t, kp, 3)
	chain[1].Signature = strings.Repeat("00", 64)

	report := VerifyChain(chain, kp.PublicKey)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "receipt 1: invalid signature")
	assert.Len(t, report.Errors, 1, "errors accumulate without masking valid receipts")
}

func TestVerifyChain_UnsignedReceiptFails(t *testing.T) {
	kp := testKeys(t)
	r, err := New(Data{SessionID: "s1", Prompt: "p", Response: "r"})
	require.NoError(t, err)

	report := VerifyChain([]Signed{r.ToJSON()}, kp.PublicKey)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "receipt 0: invalid signature")
}

func TestVerifyChain_WrongKey(t *testing.T) {
	kp := testKeys(t)
	other := testKeys(t)
	chain := buildChain(t, kp, 2)

	report := VerifyChain(chain, other.PublicKey)
	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 2)
}

func TestVerifyChainKeys_PerReceiptKeys(t *testing.T) {
	kpA := testKeys(t)
	kpB := testKeys(t)

	first, err := New(Data{SessionID: "s1", Prompt: "p1", Response: "r1"})
	require.NoError(t, err)
	require.NoError(t, first.Sign(kpA.PrivateKey))

	second, err := New(Data{SessionID: "s1", Prompt: "p2", Response: "r2", PrevReceiptHash: first.ReceiptHash})
	require.NoError(t, err)
	require.NoError(t, second.Sign(kpB.PrivateKey))

	chain := []Signed{first.ToJSON(), second.ToJSON()}

	report := VerifyChainKeys(chain, []string{kpA.PublicKey, kpB.PublicKey})
	assert.True(t, report.Valid)

	report = VerifyChainKeys(chain, []string{kpA.PublicKey})
	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 1)
}
