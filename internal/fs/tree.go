package fs

import (
	"vfsshell/internal/logging"
	"vfsshell/internal/snapshot"
)

var (
	treeLogger = logging.GetLogger().WithPrefix("tree")
)

// Tree is the virtual namespace: a root directory and a working directory
// reference into it. A Tree has a single owner and is not safe for
// concurrent use.
type Tree struct {
	root    *Node
	cwd     *Node
	cwdPath *VirtualPath
}

// NewTree returns a tree holding only an empty root directory.
func NewTree() *Tree {
	t := &Tree{}
	t.Reset()
	return t
}

// Reset discards the whole tree and starts over with an empty root.
func (t *Tree) Reset() {
	treeLogger.Debug("Resetting tree to empty root")
	t.install(newDir("/"))
}

func (t *Tree) install(root *Node) {
	t.root = root
	t.cwd = root
	t.cwdPath = NewVirtualPath("/")
}

// Load replaces the tree with one built from records. Parent directories
// that have no record of their own are created implicitly. When a path
// appears more than once the first record wins; a later record that
// declares the other kind for the same path is an error. On error the
// current tree is left untouched.
func (t *Tree) Load(records []snapshot.Record) error {
	treeLogger.Debug("Building tree from %d records", len(records))

	root := newDir("/")
	for _, rec := range records {
		if err := insert(root, rec); err != nil {
			treeLogger.Error("Snapshot rejected at line %d: %v", rec.Line, err)
			return err
		}
	}

	t.install(root)
	treeLogger.Info("Tree loaded with %d records", len(records))
	return nil
}

func insert(root *Node, rec snapshot.Record) error {
	vp := NewVirtualPath(rec.Path)
	segments := vp.Segments()

	kind := KindDirectory
	if rec.Kind == snapshot.KindFile {
		kind = KindFile
	}

	if vp.IsRoot() {
		if kind == KindDirectory {
			// A dir row for "/" names the root itself.
			return nil
		}
		return NewFSError(OpLoad, rec.Path, ErrInvalidPath)
	}
	for _, seg := range segments {
		if !validSegment(seg) {
			return NewFSError(OpLoad, rec.Path, ErrInvalidPath)
		}
	}

	current := root
	for i, seg := range segments[:len(segments)-1] {
		child, ok := current.children[seg]
		if !ok {
			treeLogger.Trace("Creating implicit directory %q", vp.Prefix(i+1).String())
			child = newDir(seg)
			current.children[seg] = child
		} else if !child.IsDir() {
			return kindConflict(vp.Prefix(i+1), rec.Line)
		}
		current = child
	}

	name := vp.Base()
	if existing, ok := current.children[name]; ok {
		if existing.kind != kind {
			return kindConflict(vp, rec.Line)
		}
		treeLogger.Debug("Ignoring duplicate %s %q from line %d", kind, vp.String(), rec.Line)
		return nil
	}

	if kind == KindFile {
		current.children[name] = newFile(name, rec.Content)
	} else {
		current.children[name] = newDir(name)
	}
	treeLogger.Trace("Added %s %q", kind, vp.String())
	return nil
}

// kindConflict reports path as both file and directory. The error is also a
// *snapshot.FormatError, since the snapshot itself is inconsistent.
func kindConflict(path *VirtualPath, line int) error {
	return NewFSError(OpLoad, path.String(), &snapshot.FormatError{
		Line: line,
		Err:  ErrKindConflict,
	})
}

// Root returns the root directory.
func (t *Tree) Root() *Node {
	return t.root
}

// Cwd returns the absolute path of the working directory.
func (t *Tree) Cwd() string {
	return t.cwdPath.String()
}

// List returns the names of the working directory's children in byte
// order, so "Apple" sorts before "banana".
func (t *Tree) List() []string {
	return t.cwd.ChildNames()
}

// ChangeDirectory moves the working directory. "/" returns to the root and
// ".." does nothing. Any other name must be a child directory of the
// working directory; paths with several segments are not resolved. On error
// the working directory is unchanged.
func (t *Tree) ChangeDirectory(name string) error {
	switch name {
	case "/":
		t.cwd = t.root
		t.cwdPath = NewVirtualPath("/")
		return nil
	case "..":
		treeLogger.Debug("Ignoring parent navigation")
		return nil
	}

	child, ok := t.cwd.children[name]
	if !ok {
		return NewFSError(OpChdir, name, ErrPathNotFound)
	}
	if !child.IsDir() {
		return NewFSError(OpChdir, name, ErrNotADirectory)
	}

	t.cwd = child
	t.cwdPath = t.cwdPath.Child(name)
	treeLogger.Debug("Changed directory to %q", t.cwdPath.String())
	return nil
}

// Lookup resolves an absolute path from the root.
func (t *Tree) Lookup(path string) (*Node, error) {
	vp := NewVirtualPath(path)
	current := t.root
	for i, seg := range vp.Segments() {
		if !current.IsDir() {
			return nil, NewFSError(OpLookup, vp.Prefix(i).String(), ErrNotADirectory)
		}
		child, ok := current.children[seg]
		if !ok {
			return nil, NewFSError(OpLookup, vp.String(), ErrPathNotFound)
		}
		current = child
	}
	return current, nil
}

// ReadFile returns the content of the file at an absolute path.
func (t *Tree) ReadFile(path string) ([]byte, error) {
	node, err := t.Lookup(path)
	if err != nil {
		return nil, err
	}
	if node.IsDir() {
		return nil, NewFSError(OpRead, NewVirtualPath(path).String(), ErrIsDirectory)
	}
	return node.Content(), nil
}
