package fs

import (
	"context"
	"syscall"
	"testing"

	"bazil.org/fuse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFile(t *testing.T, vfs *FS, dirName, name string) *File {
	t.Helper()
	ctx := context.Background()

	dirNode, err := rootDir(t, vfs).Lookup(ctx, dirName)
	require.NoError(t, err)
	node, err := dirNode.(*Dir).Lookup(ctx, name)
	require.NoError(t, err)

	file, ok := node.(*File)
	require.True(t, ok, "%s should be a File", name)
	return file
}

func TestFileOperations(t *testing.T) {
	vfs := setupTestFS(t)
	ctx := context.Background()
	file := lookupFile(t, vfs, "docs", "readme.txt")

	t.Run("FileAttributes", func(t *testing.T) {
		attr := &fuse.Attr{}
		require.NoError(t, file.Attr(ctx, attr))

		assert.False(t, attr.Mode.IsDir())
		assert.EqualValues(t, 0444, attr.Mode)
		assert.EqualValues(t, len("Hello, World!"), attr.Size)
		assert.EqualValues(t, 1, attr.Blocks)
	})

	t.Run("ReadFile", func(t *testing.T) {
		resp := &fuse.OpenResponse{}
		handle, err := file.Open(ctx, &fuse.OpenRequest{Flags: fuse.OpenReadOnly}, resp)
		require.NoError(t, err)
		fh := handle.(*FileHandle)

		tests := []struct {
			name     string
			offset   int64
			size     int
			expected string
		}{
			{name: "whole file", offset: 0, size: 4096, expected: "Hello, World!"},
			{name: "middle", offset: 7, size: 5, expected: "World"},
			{name: "past end", offset: 100, size: 10, expected: ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				readResp := &fuse.ReadResponse{}
				err := fh.Read(ctx, &fuse.ReadRequest{Offset: tt.offset, Size: tt.size}, readResp)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, string(readResp.Data))
			})
		}

		assert.NoError(t, fh.Release(ctx, &fuse.ReleaseRequest{}))
	})

	t.Run("WriteAccessDenied", func(t *testing.T) {
		for _, flags := range []fuse.OpenFlags{fuse.OpenWriteOnly, fuse.OpenReadWrite} {
			_, err := file.Open(ctx, &fuse.OpenRequest{Flags: flags}, &fuse.OpenResponse{})
			assert.Equal(t, syscall.EROFS, err)
		}
	})
}
