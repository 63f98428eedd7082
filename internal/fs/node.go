package fs

import "sort"

// Kind distinguishes directories from files.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node is a directory or a file. Every node is owned by its parent's
// children map; the root is owned by the Tree.
type Node struct {
	name     string
	kind     Kind
	content  []byte           // nil for directories
	children map[string]*Node // nil for files
}

func newDir(name string) *Node {
	return &Node{
		name:     name,
		kind:     KindDirectory,
		children: make(map[string]*Node),
	}
}

func newFile(name string, content []byte) *Node {
	if content == nil {
		content = []byte{}
	}
	return &Node{
		name:    name,
		kind:    KindFile,
		content: content,
	}
}

// Name returns the node's segment name; the root is "/".
func (n *Node) Name() string {
	return n.name
}

// Kind returns whether the node is a directory or a file.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.kind == KindDirectory
}

// Content returns a file's bytes, or nil for a directory. Callers must not
// modify the returned slice.
func (n *Node) Content() []byte {
	return n.content
}

// Child returns the direct child called name.
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// ChildNames returns the names of all direct children in byte order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
