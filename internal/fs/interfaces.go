package fs

import (
	fusefs "bazil.org/fuse/fs"
)

// Directory represents a directory in the mounted view
type Directory interface {
	fusefs.Node
	fusefs.NodeStringLookuper
	fusefs.HandleReadDirAller
}

// FileInterface represents a file in the mounted view
type FileInterface interface {
	fusefs.Node
	fusefs.NodeOpener
}

// FileHandleInterface represents an open file handle
type FileHandleInterface interface {
	fusefs.Handle
	fusefs.HandleReader
	fusefs.HandleReleaser
}

var (
	_ fusefs.FS           = (*FS)(nil)
	_ Directory           = (*Dir)(nil)
	_ FileInterface       = (*File)(nil)
	_ FileHandleInterface = (*FileHandle)(nil)
)
