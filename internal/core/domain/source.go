package domain

import (
	"encoding/hex"
	"regexp"
)

// SourceFile is a file discovered under the source root. Its identity is its path.
type SourceFile struct {
	Path string
}

// String returns the path of the source file.
func (s SourceFile) String() string {
	return s.Path
}

// FingerprintSize is the length in bytes of a raw fingerprint digest.
const FingerprintSize = 32

var fingerprintPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Fingerprint is the lowercase hex SHA-256 digest of a source file's preprocessed form.
// It is the key of the object store.
type Fingerprint string

// NewFingerprint encodes a raw digest as a Fingerprint.
func NewFingerprint(sum []byte) Fingerprint {
	return Fingerprint(hex.EncodeToString(sum))
}

// String returns the hex form of the fingerprint.
func (f Fingerprint) String() string {
	return string(f)
}

// Short returns an abbreviated form for log output.
func (f Fingerprint) Short() string {
	if len(f) <= 12 {
		return string(f)
	}
	return string(f[:12])
}

// Valid reports whether f is a well-formed fingerprint.
func (f Fingerprint) Valid() bool {
	return fingerprintPattern.MatchString(string(f))
}

// FingerprintedSource pairs a source file with the fingerprint computed for it in this run.
type FingerprintedSource struct {
	Source      SourceFile
	Fingerprint Fingerprint
}

// LinkSet is the ordered list of object paths handed to the linker, one per source file.
type LinkSet []string

// UniqueFingerprints returns the distinct fingerprints of items in first-seen order.
func UniqueFingerprints(items []FingerprintedSource) []Fingerprint {
	seen := make(map[Fingerprint]struct{}, len(items))
	out := make([]Fingerprint, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Fingerprint]; ok {
			continue
		}
		seen[item.Fingerprint] = struct{}{}
		out = append(out, item.Fingerprint)
	}
	return out
}
