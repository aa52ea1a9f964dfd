package ports

// Verifier checks that declared build products are present on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// TargetsExist reports whether every path exists.
	TargetsExist(paths []string) (bool, error)
}
