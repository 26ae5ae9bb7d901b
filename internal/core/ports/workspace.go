package ports

// Workspace creates the standard directory layout.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// Ensure creates any missing directories and stage script stubs below root.
	// Existing entries are left untouched.
	Ensure(root string) error
}
