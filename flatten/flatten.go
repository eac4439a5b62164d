// Package flatten implements the nested-map flattener and
// structure builder: converting between a bounded-depth nested YamlValue
// tree and a flat list of (Path, leaf) assignments. Domains use it to turn
// the subtree under their document key into entries, and to rebuild that
// subtree when rendering.
package flatten

import (
	"fmt"
	"strconv"

	"github.com/chrisskorka/sysconf/internal/pathutil"
	"github.com/chrisskorka/sysconf/yamlvalue"
)

// Path is the finite ordered sequence of string segments leading to an
// entry within its domain's subtree. Its length equals the owning domain's
// declared path depth.
type Path []string

// String renders the path the way it is displayed to a user (segments
// joined with dots), via the shared incremental path builder.
func (p Path) String() string {
	return pathutil.Join([]string(p))
}

// Equal reports whether two paths have the same segments in the same order.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	cp := make(Path, len(p))
	copy(cp, p)
	return cp
}

// Entry is one flattened (path, leaf) assignment.
type Entry struct {
	Path Path
	Leaf yamlvalue.Value
}

// Flatten descends tree exactly depth levels, requiring a mapping at each
// intermediate level, and yields one Entry per leaf reached at that depth.
// A Null value at any level is dropped (yields no entries for that branch).
// depth == 0 yields a single entry with an empty path whose leaf is tree
// itself — this is how a depth-0 domain's subtree is handled as a single
// unit.
func Flatten(tree yamlvalue.Value, depth int) ([]Entry, error) {
	if depth < 0 {
		return nil, fmt.Errorf("flatten: depth must be >= 0, got %d", depth)
	}
	return flattenLevel(tree, depth, nil)
}

func flattenLevel(tree yamlvalue.Value, remaining int, prefix []string) ([]Entry, error) {
	if tree.IsNull() {
		return nil, nil
	}
	if remaining == 0 {
		path := make(Path, len(prefix))
		copy(path, prefix)
		return []Entry{{Path: path, Leaf: tree}}, nil
	}
	if tree.Kind() != yamlvalue.KindMapping {
		return nil, fmt.Errorf("flatten: expected mapping at %s, found %s", pathutil.Join(prefix), tree.Kind())
	}
	var out []Entry
	for _, pair := range tree.Mapping() {
		next := make([]string, len(prefix)+1)
		copy(next, prefix)
		next[len(prefix)] = pair.Key
		sub, err := flattenLevel(pair.Value, remaining-1, next)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// nodeKind distinguishes how a builder node has committed to being used.
// A node starts unset and locks into exactly one kind on first use.
type nodeKind int

const (
	kindUnset nodeKind = iota
	kindMap
	kindList
	kindLeaf
)

// node is the mutable intermediate representation Build assembles before
// freezing it into an immutable yamlvalue.Value tree.
type node struct {
	kind     nodeKind
	leaf     yamlvalue.Value
	keys     []string
	children map[string]*node
	list     []*node
}

// Build materializes a nested YamlValue tree from a sequence of (Path,
// leaf) assignments. Intermediate map levels are created on demand. A path
// segment that parses as a non-negative integer equal to the current
// length of the list at that position appends a new list element;
// revisiting an existing index returns that element; any other integer
// value is a skipped-ahead index and is an error.
func Build(assignments []Entry) (yamlvalue.Value, error) {
	root := &node{kind: kindMap, children: map[string]*node{}}
	for _, a := range assignments {
		if len(a.Path) == 0 {
			return a.Leaf, nil
		}
		cur := root
		for _, seg := range a.Path[:len(a.Path)-1] {
			next, err := cur.descend(seg)
			if err != nil {
				return yamlvalue.Value{}, err
			}
			cur = next
		}
		last := a.Path[len(a.Path)-1]
		if err := cur.setLeaf(last, a.Leaf); err != nil {
			return yamlvalue.Value{}, err
		}
	}
	return root.freeze(), nil
}

// descend returns the branch node at seg, creating it (as a map or list
// child, per the index rule above) if absent.
func (n *node) descend(seg string) (*node, error) {
	child, err := n.childFor(seg, false)
	if err != nil {
		return nil, err
	}
	return child, nil
}

// setLeaf assigns a terminal leaf value at seg.
func (n *node) setLeaf(seg string, v yamlvalue.Value) error {
	child, err := n.childFor(seg, true)
	if err != nil {
		return err
	}
	if child.kind != kindUnset {
		return fmt.Errorf("flatten: conflicting assignment at segment %q", seg)
	}
	child.kind = kindLeaf
	child.leaf = v
	return nil
}

func (n *node) childFor(seg string, terminal bool) (*node, error) {
	idx, isIndex := parseIndex(seg)

	switch n.kind {
	case kindUnset:
		if isIndex && idx == 0 {
			n.kind = kindList
			n.list = []*node{{}}
			return n.list[0], nil
		}
		n.kind = kindMap
		n.children = map[string]*node{}
		n.keys = nil
		return n.mapChild(seg), nil

	case kindList:
		if !isIndex {
			return nil, fmt.Errorf("flatten: expected integer index, got segment %q", seg)
		}
		switch {
		case idx == len(n.list):
			n.list = append(n.list, &node{})
			return n.list[idx], nil
		case idx < len(n.list):
			return n.list[idx], nil
		default:
			return nil, fmt.Errorf("flatten: index %d skips ahead of list length %d", idx, len(n.list))
		}

	case kindMap:
		return n.mapChild(seg), nil

	default: // kindLeaf
		return nil, fmt.Errorf("flatten: path continues through a leaf value at segment %q", seg)
	}
}

func (n *node) mapChild(key string) *node {
	if child, ok := n.children[key]; ok {
		return child
	}
	child := &node{}
	n.children[key] = child
	n.keys = append(n.keys, key)
	return child
}

func parseIndex(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func (n *node) freeze() yamlvalue.Value {
	switch n.kind {
	case kindLeaf:
		return n.leaf
	case kindList:
		items := make([]yamlvalue.Value, len(n.list))
		for i, c := range n.list {
			items[i] = c.freeze()
		}
		return yamlvalue.Sequence(items...)
	case kindMap:
		pairs := make([]yamlvalue.Pair, len(n.keys))
		for i, k := range n.keys {
			pairs[i] = yamlvalue.Pair{Key: k, Value: n.children[k].freeze()}
		}
		return yamlvalue.Mapping(pairs...)
	default:
		return yamlvalue.Null()
	}
}
