// Package keytree implements the nested key tree used for locale files.
//
// A tree maps key segments to nodes. A node is either a Leaf holding a
// translated string or a nested *Tree:
//
//	{
//	    "nav": {
//	        "home": "Home",
//	        "about": "about"
//	    }
//	}
//
// Child keys keep their insertion order, so flattening and encoding are
// deterministic. Keys extracted from source code start out as a Leaf whose
// value equals its own segment; that placeholder marks the key as
// untranslated.
package keytree

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"
)

// Separator joins key segments in dotted paths.
const Separator = "."

// Node is either a Leaf or a *Tree.
type Node interface {
	node()
}

// Leaf is a translated (or placeholder) string value.
type Leaf string

func (Leaf) node() {}

// Tree is a container node with ordered children.
type Tree struct {
	keys     []string
	children map[string]Node
}

func (*Tree) node() {}

// New returns an empty tree.
func New() *Tree {
	return &Tree{children: make(map[string]Node)}
}

// Len returns the number of direct children.
func (t *Tree) Len() int {
	return len(t.keys)
}

// Keys returns the child keys in insertion order.
func (t *Tree) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Get returns the child stored under key.
func (t *Tree) Get(key string) (Node, bool) {
	n, ok := t.children[key]
	return n, ok
}

// Set stores n under key. A new key is appended after the existing ones;
// replacing a key keeps its position.
func (t *Tree) Set(key string, n Node) {
	if t.children == nil {
		t.children = make(map[string]Node)
	}
	if _, ok := t.children[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.children[key] = n
}

// Lookup resolves a dotted path to a node.
func (t *Tree) Lookup(path string) (Node, bool) {
	var cur Node = t
	for _, seg := range strings.Split(path, Separator) {
		sub, ok := cur.(*Tree)
		if !ok {
			return nil, false
		}
		if cur, ok = sub.children[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// ErrorCode classifies a failed insert.
type ErrorCode string

const (
	// CodeConflict means the path would turn a leaf into a container or
	// the other way round.
	CodeConflict ErrorCode = "CONFLICT"
	// CodeEmptyPath means the path has an empty segment.
	CodeEmptyPath ErrorCode = "EMPTY_PATH"
)

var (
	// ErrConflict is matched by errors.Is for CONFLICT errors.
	ErrConflict = errors.New("key path conflicts with an existing node")
	// ErrEmptyPath is matched by errors.Is for EMPTY_PATH errors.
	ErrEmptyPath = errors.New("key path has an empty segment")
)

// PathError reports an insert that cannot be applied to the tree.
type PathError struct {
	Code ErrorCode
	Path string
}

func (e *PathError) Error() string {
	switch e.Code {
	case CodeConflict:
		return fmt.Sprintf("cannot create a string %s: it exists as an object", e.Path)
	case CodeEmptyPath:
		return fmt.Sprintf("cannot create a string property %q", e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Path)
}

// Unwrap maps the code to its sentinel error.
func (e *PathError) Unwrap() error {
	switch e.Code {
	case CodeConflict:
		return ErrConflict
	case CodeEmptyPath:
		return ErrEmptyPath
	}
	return nil
}

// ---------------------------------------------------------------------------
// Building
// ---------------------------------------------------------------------------

// Split turns a dotted path into segments.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Join turns segments into a dotted path.
func Join(segments []string) string {
	return strings.Join(segments, Separator)
}

// Insert adds the dotted path to t with a placeholder leaf.
// See InsertPath.
func Insert(t *Tree, path string) error {
	return InsertPath(t, Split(path))
}

// InsertPath adds a path to t, creating intermediate containers as needed.
// The final segment becomes a Leaf equal to the segment itself. Inserting an
// existing leaf path is a no-op. A path that passes through a leaf, or ends
// on a container, fails with CONFLICT; an empty segment fails with
// EMPTY_PATH. A failed insert leaves no new containers behind.
func InsertPath(t *Tree, segments []string) error {
	full := Join(segments)
	if len(segments) == 0 {
		return &PathError{Code: CodeEmptyPath, Path: full}
	}
	for _, seg := range segments {
		if seg == "" {
			return &PathError{Code: CodeEmptyPath, Path: full}
		}
	}

	// Check the whole walk before mutating anything.
	cur := t
	depth := 0
	for ; depth < len(segments)-1; depth++ {
		n, ok := cur.children[segments[depth]]
		if !ok {
			break
		}
		sub, ok := n.(*Tree)
		if !ok {
			return &PathError{Code: CodeConflict, Path: full}
		}
		cur = sub
	}
	if depth == len(segments)-1 {
		last := segments[depth]
		switch cur.children[last].(type) {
		case *Tree:
			return &PathError{Code: CodeConflict, Path: full}
		case Leaf:
			return nil
		}
	}

	for ; depth < len(segments)-1; depth++ {
		sub := New()
		cur.Set(segments[depth], sub)
		cur = sub
	}
	last := segments[len(segments)-1]
	cur.Set(last, Leaf(last))
	return nil
}

// ---------------------------------------------------------------------------
// Traversal
// ---------------------------------------------------------------------------

// Leaves yields every leaf as (dotted path, value), depth first in key
// order.
func Leaves(t *Tree) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		walkLeaves(t, "", yield)
	}
}

func walkLeaves(t *Tree, prefix string, yield func(string, string) bool) bool {
	for _, key := range t.keys {
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		switch n := t.children[key].(type) {
		case *Tree:
			if !walkLeaves(n, path, yield) {
				return false
			}
		case Leaf:
			if !yield(path, string(n)) {
				return false
			}
		}
	}
	return true
}

// Flatten returns the dotted paths of all leaves in traversal order.
func Flatten(t *Tree) []string {
	var paths []string
	for path := range Leaves(t) {
		paths = append(paths, path)
	}
	return paths
}

// ---------------------------------------------------------------------------
// Transformations. None of these modify their arguments.
// ---------------------------------------------------------------------------

// Clone returns a deep copy of t.
func Clone(t *Tree) *Tree {
	out := &Tree{
		keys:     append([]string(nil), t.keys...),
		children: make(map[string]Node, len(t.children)),
	}
	for k, n := range t.children {
		if sub, ok := n.(*Tree); ok {
			n = Clone(sub)
		}
		out.children[k] = n
	}
	return out
}

// Without returns a copy of t with the given leaf paths removed and every
// container that ends up with no children pruned, recursively.
func Without(t *Tree, paths []string) *Tree {
	remove := make(map[string]bool, len(paths))
	for _, p := range paths {
		remove[p] = true
	}
	return without(t, "", remove)
}

func without(t *Tree, prefix string, remove map[string]bool) *Tree {
	out := New()
	for _, key := range t.keys {
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		switch n := t.children[key].(type) {
		case *Tree:
			if sub := without(n, path, remove); sub.Len() > 0 {
				out.Set(key, sub)
			}
		case Leaf:
			if !remove[path] {
				out.Set(key, n)
			}
		}
	}
	return out
}

// Merge deep-merges override into a copy of base. On a key present in both,
// two containers are merged recursively; in every other case the node from
// override wins. Keys only in override are appended after base's keys.
func Merge(base, override *Tree) *Tree {
	out := Clone(base)
	mergeInto(out, override)
	return out
}

func mergeInto(dst, src *Tree) {
	for _, key := range src.keys {
		srcNode := src.children[key]
		if srcSub, ok := srcNode.(*Tree); ok {
			if dstSub, ok := dst.children[key].(*Tree); ok {
				mergeInto(dstSub, srcSub)
				continue
			}
			dst.Set(key, Clone(srcSub))
			continue
		}
		dst.Set(key, srcNode)
	}
}

// Sorted returns a copy of t with keys sorted lexicographically at every
// level.
func Sorted(t *Tree) *Tree {
	keys := append([]string(nil), t.keys...)
	sort.Strings(keys)
	out := &Tree{keys: keys, children: make(map[string]Node, len(keys))}
	for _, k := range keys {
		n := t.children[k]
		if sub, ok := n.(*Tree); ok {
			n = Sorted(sub)
		}
		out.children[k] = n
	}
	return out
}
