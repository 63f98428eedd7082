package fs

import (
	"context"
	"os"

	"vfsshell/internal/logging"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	dirLogger = logging.GetLogger().WithPrefix("dir")
)

// Dir exposes a directory node of the tree through FUSE.
type Dir struct {
	fs   *FS
	node *Node
	path *VirtualPath
}

// Attr implements the Node interface, returning directory attributes.
func (d *Dir) Attr(_ context.Context, a *fuse.Attr) error {
	dirLogger.Trace("Getting attributes for directory: %q", d.path.String())
	a.Mode = os.ModeDir | 0555
	a.Uid = d.fs.uid
	a.Gid = d.fs.gid
	return nil
}

// Lookup implements the NodeStringLookuper interface, finding a child node.
func (d *Dir) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	dirLogger.Debug("Looking up %q in directory %q", name, d.path.String())
	childPath := d.path.Child(name)

	child, ok := d.node.Child(name)
	if !ok {
		dirLogger.Debug("Path not found: %q", childPath.String())
		return nil, ToFuseError(NewFSError(OpLookup, childPath.String(), ErrPathNotFound))
	}

	if child.IsDir() {
		return &Dir{fs: d.fs, node: child, path: childPath}, nil
	}
	return &File{fs: d.fs, node: child, path: childPath}, nil
}

// ReadDirAll implements the HandleReadDirAller interface, listing directory contents.
func (d *Dir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	dirLogger.Debug("Reading directory contents: %q", d.path.String())

	names := d.node.ChildNames()
	entries := make([]fuse.Dirent, 0, len(names)+2)
	entries = append(entries, fuse.Dirent{Name: ".", Type: fuse.DT_Dir})
	entries = append(entries, fuse.Dirent{Name: "..", Type: fuse.DT_Dir})

	for _, name := range names {
		child, _ := d.node.Child(name)
		typ := fuse.DT_File
		if child.IsDir() {
			typ = fuse.DT_Dir
		}
		entries = append(entries, fuse.Dirent{Name: name, Type: typ})
	}

	dirLogger.Debug("Directory %q contains %d entries", d.path.String(), len(entries))
	return entries, nil
}
