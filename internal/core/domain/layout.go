package domain

import "path/filepath"

const (
	// SrcDirName is the directory scanned for source files.
	SrcDirName = "src"

	// IncludeDirName is the directory passed as the compiler include search path.
	IncludeDirName = "include"

	// LibDirName is the directory passed as the linker library search path.
	LibDirName = "lib"

	// ObjCacheDirName is the name of the content addressed object store.
	ObjCacheDirName = ".obj_cache"

	// BinDirName is the output directory.
	BinDirName = "bin"

	// BuildFlagsDirName holds the stage scripts.
	BuildFlagsDirName = "buildflags"

	// DefaultOutputName is the file name of the linked executable inside BinDirName.
	DefaultOutputName = "main"

	// DefaultObjExt is the extension of compiled objects in the object store.
	DefaultObjExt = "o"

	// ScriptExt is the extension of stage scripts.
	ScriptExt = "sh"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "dmc.yaml"

	// EnvFileName is the name of the optional dotenv file holding DMC_* options.
	EnvFileName = ".dmc.env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ScriptPerm is the permission of stage script stubs (rwxrwxr-x).
	ScriptPerm = 0o775
)

// WorkspaceDirs returns the standard directories of a workspace, relative to its root.
func WorkspaceDirs() []string {
	return []string{
		SrcDirName,
		IncludeDirName,
		LibDirName,
		ObjCacheDirName,
		BinDirName,
		BuildFlagsDirName,
	}
}

// ScriptPath returns the path of the script for a stage, relative to root.
func ScriptPath(root string, stage Stage) string {
	return filepath.Join(root, BuildFlagsDirName, string(stage)+"."+ScriptExt)
}
