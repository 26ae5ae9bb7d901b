package ports

// Hasher computes non-cryptographic content digests.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash computes the digest of a file's content.
	ComputeFileHash(path string) (uint64, error)

	// ComputeTreeHash computes one digest over every file below the given roots.
	ComputeTreeHash(roots ...string) (uint64, error)
}
