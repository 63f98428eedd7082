package fs

import (
	"context"
	"fmt"
	"os"

	"vfsshell/internal/logging"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	vfsLogger = logging.GetLogger().WithPrefix("vfs")
)

// FS serves a loaded Tree as a read-only FUSE filesystem. The tree must not
// be changed while it is mounted.
type FS struct {
	tree *Tree
	uid  uint32 // Owner reported for every node
	gid  uint32 // Group reported for every node
}

// NewFS creates a FUSE view of tree owned by the current user.
func NewFS(tree *Tree) *FS {
	return &FS{
		tree: tree,
		uid:  idToUint32(os.Getuid()),
		gid:  idToUint32(os.Getgid()),
	}
}

// Root implements the fusefs.FS interface, returning the root directory node.
func (f *FS) Root() (fusefs.Node, error) {
	vfsLogger.Trace("Getting root directory node")
	return &Dir{
		fs:   f,
		node: f.tree.Root(),
		path: NewVirtualPath("/"),
	}, nil
}

// idToUint32 maps a negative id (unset on some platforms) to 0.
func idToUint32(id int) uint32 {
	if id < 0 {
		return 0
	}
	return uint32(id)
}

// Serve mounts the filesystem at mountPoint and serves it until ctx is
// cancelled or the kernel drops the connection.
func (f *FS) Serve(ctx context.Context, mountPoint string) error {
	vfsLogger.Info("Mounting virtual filesystem at %s", mountPoint)
	vfsLogger.Debug("UID: %d, GID: %d", f.uid, f.gid)

	mountOpts := []fuse.MountOption{
		fuse.FSName("vfsshell"),
		fuse.Subtype("vfsshell"),
		fuse.ReadOnly(),
		fuse.DefaultPermissions(),
	}

	c, err := fuse.Mount(mountPoint, mountOpts...)
	if err != nil {
		return fmt.Errorf("mount failed: %w", err)
	}
	defer c.Close()

	// Mount returns once the kernel has accepted the mount.
	vfsLogger.Info("Filesystem mounted and ready")
	return serveUntilDone(ctx, mountPoint, func() error {
		return fusefs.Serve(c, f)
	}, fuse.Unmount)
}

// serveUntilDone runs serve until it returns or ctx is done. On
// cancellation the mount is dropped, which makes serve return.
func serveUntilDone(ctx context.Context, mountPoint string, serve func() error, unmount func(string) error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- serve()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("FUSE server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	vfsLogger.Info("Unmounting filesystem from: %s", mountPoint)
	if err := unmount(mountPoint); err != nil {
		vfsLogger.Error("Unmount failed: %v", err)
		return err
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("FUSE server error: %w", err)
	}

	vfsLogger.Info("Clean shutdown complete")
	return nil
}
