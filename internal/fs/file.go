package fs

import (
	"bytes"
	"context"
	"io"

	"vfsshell/internal/logging"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	fileLogger = logging.GetLogger().WithPrefix("file")
)

// File exposes a file node of the tree through FUSE.
type File struct {
	fs   *FS
	node *Node
	path *VirtualPath
}

// Attr implements the Node interface, returning the file's attributes.
func (f *File) Attr(_ context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(len(f.node.Content()))
	a.Uid = f.fs.uid
	a.Gid = f.fs.gid
	a.BlockSize = 4096
	a.Blocks = (a.Size + 511) / 512

	fileLogger.Trace("File attributes for %q: mode=%v, size=%d", f.path.String(), a.Mode, a.Size)
	return nil
}

// Open implements the NodeOpener interface. Only read access is granted.
func (f *File) Open(_ context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fusefs.Handle, error) {
	fileLogger.Debug("Opening file %q with flags %v", f.path.String(), req.Flags)

	if !req.Flags.IsReadOnly() {
		fileLogger.Warn("Attempted write access to read-only file: %q", f.path.String())
		return nil, ToFuseError(NewFSError(OpOpen, f.path.String(), ErrReadOnly))
	}

	resp.Flags |= fuse.OpenKeepCache

	return &FileHandle{
		data: f.node.Content(),
		path: f.path.String(),
	}, nil
}

// FileHandle represents an open file handle over a file's content.
type FileHandle struct {
	data []byte
	path string // For logging purposes
}

// Read implements the HandleReader interface, reading data from the file.
func (fh *FileHandle) Read(_ context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	fileLogger.Trace("Reading %d bytes from file %q at offset %d", req.Size, fh.path, req.Offset)

	buf := make([]byte, req.Size)
	n, err := bytes.NewReader(fh.data).ReadAt(buf, req.Offset)
	if err != nil && err != io.EOF {
		fileLogger.Error("Failed to read from file: %v", err)
		return ToFuseError(NewFSError(OpRead, fh.path, err))
	}

	resp.Data = buf[:n]
	return nil
}

// Release implements the HandleReleaser interface.
func (fh *FileHandle) Release(_ context.Context, _ *fuse.ReleaseRequest) error {
	fileLogger.Debug("Closing file %q", fh.path)
	return nil
}
