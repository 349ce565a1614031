package record

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefix for label-sequence fingerprints.
// Version suffix enables future algorithm migration.
const domainLabels = "labelstore/labels/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes a stable identity for a label sequence, used in
// divergence diagnostics. Equal sequences (same elements, same order) always
// produce the same fingerprint. Comparison for divergence itself is done by
// value; fingerprints only make the log lines greppable.
func Fingerprint(labels []string) string {
	data, err := MarshalCanonical(labels)
	if err != nil {
		// Label sequences are plain strings and always marshal; guard anyway.
		return ""
	}
	return hashWithDomain(domainLabels, data)
}
