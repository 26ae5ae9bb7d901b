package domain

// LinkRequest describes the single link invocation of a build.
type LinkRequest struct {
	// Backend is the link backend passed as -fuse-ld.
	Backend string
	// Objects is the LinkSet, in discovery order.
	Objects LinkSet
	// Flags is the preprocessor stage flag string, passed before the objects.
	Flags string
	// LinkerFlags is the linker stage flag string, appended after the objects.
	LinkerFlags string
	// Output is the path of the executable.
	Output string
}
