package ports

// Hasher defines the interface for computing content digests.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash digests the fingerprint together with the content of
	// the given source files.
	ComputeInputHash(fingerprint string, sources []string) (string, error)
}
