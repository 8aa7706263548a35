package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for content-addressed step identity. The version suffix
// leaves room for an algorithm migration without colliding with old IDs.
const DomainStep = "minededuce/step/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data). The null separator
// removes any ambiguity between domain and payload bytes.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StepID computes the content-addressed ID for a step. The same run token,
// sequence number, and mutation always hash to the same ID, which is what
// makes trace writes idempotent across replays.
//
// The step's own ID field is excluded from the hash.
func StepID(step Step) (string, error) {
	obj := map[string]any{
		"run_token":  step.RunToken,
		"seq":        step.Seq,
		"kind":       string(step.Kind),
		"rule":       step.Rule,
		"other_rule": step.OtherRule,
		"outcome":    step.Outcome,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("StepID: marshal: %w", err)
	}
	return hashWithDomain(DomainStep, canonical), nil
}
