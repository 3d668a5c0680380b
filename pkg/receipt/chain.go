package receipt

import "fmt"

// ChainReport is the outcome of verifying an ordered receipt sequence.
// Errors accumulate rather than fail fast so one pass over a chain surfaces
// every defect.
type ChainReport struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// VerifyChain verifies an ordered receipt sequence (oldest first) under a
// single public key: every receipt's signature, and for each receipt after
// the first, that its prevReceiptHash equals its predecessor's receiptHash.
// Empty input is trivially valid. The walk is O(n) and side-effect free.
func VerifyChain(receipts []Signed, pubHex string) ChainReport {
	keys := make([]string, len(receipts))
	for i := range keys {
		keys[i] = pubHex
	}
	return VerifyChainKeys(receipts, keys)
}

// VerifyChainKeys is VerifyChain with a per-receipt public key, for chains
// whose receipts were issued by different signers.
func VerifyChainKeys(receipts []Signed, keys []string) ChainReport {
	report := ChainReport{Valid: true, Errors: []string{}}
	if len(keys) != len(receipts) {
		report.Valid = false
		report.Errors = append(report.Errors,
			fmt.Sprintf("key count %d does not match receipt count %d", len(keys), len(receipts)))
		return report
	}

	for i := range receipts {
		current := FromJSON(receipts[i])
		if !current.Verify(keys[i]) {
			report.Errors = append(report.Errors,
				fmt.Sprintf("receipt %d: invalid signature", i))
		}
		if i > 0 {
			previous := FromJSON(receipts[i-1])
			if !current.VerifyChain(previous) {
				report.Errors = append(report.Errors,
					fmt.Sprintf("receipt %d: chain broken, prevReceiptHash does not match receipt %d", i, i-1))
			}
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}
