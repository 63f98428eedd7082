package fs

import (
	"strings"

	"vfsshell/internal/logging"
)

var (
	pathLogger = logging.GetLogger().WithPrefix("path")
)

// VirtualPath represents an absolute path in the virtual filesystem as its
// list of segments. The root path has no segments.
type VirtualPath struct {
	segments []string
}

// NewVirtualPath splits path on '/' and drops empty and "." segments, so
// "/a//b/", "./a/b" and "a/./b" all equal "a/b". ".." is kept as a segment
// and never resolved.
func NewVirtualPath(path string) *VirtualPath {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	vp := &VirtualPath{segments: segments}
	pathLogger.Trace("Creating new virtual path: %q -> %q", path, vp.String())
	return vp
}

// String returns the string representation of the path
func (vp *VirtualPath) String() string {
	return "/" + strings.Join(vp.segments, "/")
}

// Segments returns the path's segments from the root down.
func (vp *VirtualPath) Segments() []string {
	return vp.segments
}

// Child returns the path of the entry name inside vp.
func (vp *VirtualPath) Child(name string) *VirtualPath {
	segments := make([]string, len(vp.segments), len(vp.segments)+1)
	copy(segments, vp.segments)
	return &VirtualPath{segments: append(segments, name)}
}

// Prefix returns the path made of the first n segments.
func (vp *VirtualPath) Prefix(n int) *VirtualPath {
	return &VirtualPath{segments: vp.segments[:n:n]}
}

// Base returns the last element of the path
func (vp *VirtualPath) Base() string {
	if vp.IsRoot() {
		return "/"
	}
	return vp.segments[len(vp.segments)-1]
}

// IsRoot returns true if this is the root virtual path "/"
func (vp *VirtualPath) IsRoot() bool {
	return len(vp.segments) == 0
}

// validSegment reports whether name can be stored as a node name.
func validSegment(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.Contains(name, "/")
}
