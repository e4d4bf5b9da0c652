package lingo

import (
	"fmt"
	"sort"
	"strings"
)

// BundleNode is one node in a language's translation tree. A node is either
// a leaf holding a translated string, or a branch mapping a path segment to
// child nodes. Trees are built once per load and never mutated afterwards;
// a reload replaces the whole tree.
type BundleNode struct {
	value    string
	children map[string]*BundleNode
}

// NewLeaf creates a leaf node holding a translated string.
func NewLeaf(value string) *BundleNode {
	return &BundleNode{value: value}
}

// NewBranch creates an empty branch node.
func NewBranch() *BundleNode {
	return &BundleNode{children: make(map[string]*BundleNode)}
}

// IsLeaf reports whether the node holds a string value.
func (n *BundleNode) IsLeaf() bool {
	return n.children == nil
}

// Value returns the leaf string. It is empty for branch nodes.
func (n *BundleNode) Value() string {
	return n.value
}

// Child returns the named child of a branch node.
func (n *BundleNode) Child(name string) (*BundleNode, bool) {
	if n.children == nil {
		return nil, false
	}
	c, ok := n.children[name]
	return c, ok
}

// SetChild attaches a child to a branch node, replacing any existing child
// with the same name. Calling SetChild on a leaf is a no-op.
func (n *BundleNode) SetChild(name string, child *BundleNode) {
	if n.children == nil {
		return
	}
	n.children[name] = child
}

// Len returns the number of direct children of a branch node.
func (n *BundleNode) Len() int {
	return len(n.children)
}

// Keys returns the sorted names of a branch node's direct children.
func (n *BundleNode) Keys() []string {
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildNode converts a decoded JSON/YAML document into a bundle subtree.
// Nested objects become branches; everything else becomes a leaf, with
// non-string scalars rendered through fmt.Sprint.
func buildNode(v any) *BundleNode {
	switch m := v.(type) {
	case map[string]any:
		branch := NewBranch()
		for k, child := range m {
			branch.children[k] = buildNode(child)
		}
		return branch
	case map[any]any:
		// yaml.v2-style maps; yaml.v3 normally decodes string keys, but
		// tolerate mixed documents.
		branch := NewBranch()
		for k, child := range m {
			branch.children[fmt.Sprint(k)] = buildNode(child)
		}
		return branch
	case string:
		return NewLeaf(m)
	default:
		return NewLeaf(fmt.Sprint(m))
	}
}

// lookupPath descends the tree segment by segment and returns the leaf
// string addressed by a dot-path key. Every segment but the last must
// resolve to a branch, and the last must resolve to a non-empty leaf: an
// empty translation counts as missing so the key stays visible in output.
func lookupPath(n *BundleNode, key string) (string, bool) {
	if n == nil || key == "" {
		return "", false
	}

	current := n
	for _, segment := range strings.Split(key, ".") {
		child, ok := current.Child(segment)
		if !ok {
			return "", false
		}
		current = child
	}

	if !current.IsLeaf() || current.value == "" {
		return "", false
	}
	return current.value, true
}

// Flatten returns every leaf in the tree keyed by its dot-path. Used by the
// langfill tooling to diff languages against a reference.
func (n *BundleNode) Flatten() map[string]string {
	out := make(map[string]string)
	n.flattenInto("", out)
	return out
}

func (n *BundleNode) flattenInto(prefix string, out map[string]string) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		if prefix != "" {
			out[prefix] = n.value
		}
		return
	}
	for name, child := range n.children {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		child.flattenInto(path, out)
	}
}
