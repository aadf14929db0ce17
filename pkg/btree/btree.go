// Package btree implements an in-memory B+ tree, the ordered storage
// backing relations.
//
// Design:
// - Keys are []byte in an order-preserving encoding (see pkg/relation)
// - Values are opaque to the tree
// - Interior nodes hold keys and child pointers
// - Leaf nodes hold keys and values, linked left-to-right for ordered scans
// - Nodes are plain structs; nothing here touches disk
package btree

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
)

// Common errors for B+ tree operations
var (
	ErrKeyNotFound  = errors.New("btree: key not found")
	ErrDuplicateKey = errors.New("btree: duplicate key not allowed")
	ErrEmptyKey     = errors.New("btree: empty key not allowed")
)

// NodeType identifies whether a node is a leaf or internal node.
type NodeType uint8

const (
	NodeTypeLeaf     NodeType = 1
	NodeTypeInternal NodeType = 2
)

// DefaultDegree is the fanout used when Config.Degree is zero. In-memory
// nodes have no page-size constraint, so a wide fanout keeps trees shallow.
const DefaultDegree = 64

// BTree represents a B+ tree.
type BTree struct {
	root   *node
	degree int
	unique bool // If true, duplicate keys are not allowed
	size   int
	mu     sync.RWMutex

	maxKeys int
}

// Config holds configuration for creating a new B+ tree.
type Config struct {
	Degree int  // Max children per internal node; 0 means DefaultDegree
	Unique bool // If true, reject duplicate keys
}

// New creates a new empty B+ tree.
func New(cfg Config) (*BTree, error) {
	degree := cfg.Degree
	if degree == 0 {
		degree = DefaultDegree
	}
	if degree < 3 {
		return nil, fmt.Errorf("btree: degree %d too small (min 3)", degree)
	}

	bt := &BTree{
		degree:  degree,
		unique:  cfg.Unique,
		maxKeys: degree - 1,
	}

	// A new tree is a single empty leaf acting as root.
	bt.root = &node{nodeType: NodeTypeLeaf}

	return bt, nil
}

// node represents a B+ tree node.
type node struct {
	nodeType NodeType
	parent   *node
	rightSib *node // For leaf nodes: next leaf

	// For leaf nodes: keys[i] -> values[i]
	// For internal nodes: keys[i] separates children[i] and children[i+1]
	keys     [][]byte
	values   []interface{} // Leaf nodes only
	children []*node       // Internal nodes only
}

// Len returns the number of stored entries.
func (bt *BTree) Len() int {
	bt.mu.RLock()
	defer bt.mu.RUnlock()
	return bt.size
}

// Get returns the value associated with a key.
// Returns ErrKeyNotFound if the key doesn't exist.
func (bt *BTree) Get(key []byte) (interface{}, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	bt.mu.RLock()
	defer bt.mu.RUnlock()

	leaf := bt.findLeaf(key)

	// Search within the leaf
	for i := 0; i < len(leaf.keys); i++ {
		cmp := compareKeys(key, leaf.keys[i])
		if cmp == 0 {
			return leaf.values[i], nil
		}
		if cmp < 0 {
			// Keys are sorted, so key doesn't exist
			break
		}
	}

	return nil, ErrKeyNotFound
}

// Entry is a key-value pair returned by Scan.
type Entry struct {
	Key   []byte
	Value interface{}
}

// Scan returns all entries with keys in the range [start, end], in key
// order. A nil start begins at the leftmost key; a nil end runs to the
// rightmost. Returned slices alias tree storage and must not be modified.
func (bt *BTree) Scan(start, end []byte) []Entry {
	bt.mu.RLock()
	defer bt.mu.RUnlock()

	var results []Entry

	var leaf *node
	if start == nil {
		leaf = bt.findLeftmostLeaf()
	} else {
		leaf = bt.findLeaf(start)
	}

	// Find starting position within leaf
	startIdx := 0
	if start != nil {
		for i := 0; i < len(leaf.keys); i++ {
			if compareKeys(leaf.keys[i], start) >= 0 {
				startIdx = i
				break
			}
			startIdx = i + 1
		}
	}

	// Walk leaves until we pass end
	for leaf != nil {
		for i := startIdx; i < len(leaf.keys); i++ {
			if end != nil && compareKeys(leaf.keys[i], end) > 0 {
				return results
			}
			results = append(results, Entry{Key: leaf.keys[i], Value: leaf.values[i]})
		}
		leaf = leaf.rightSib
		startIdx = 0
	}

	return results
}

// findLeaf descends from root to the leaf that should contain the key.
func (bt *BTree) findLeaf(key []byte) *node {
	n := bt.root
	for n.nodeType == NodeTypeInternal {
		n = n.children[bt.findChildIndex(n, key)]
	}
	return n
}

// findLeftmostLeaf finds the leftmost leaf node.
func (bt *BTree) findLeftmostLeaf() *node {
	n := bt.root
	for n.nodeType == NodeTypeInternal {
		n = n.children[0]
	}
	return n
}

// findChildIndex finds which child to descend into for a given key.
func (bt *BTree) findChildIndex(n *node, key []byte) int {
	for i := 0; i < len(n.keys); i++ {
		if compareKeys(key, n.keys[i]) < 0 {
			return i
		}
	}
	// Key is >= all keys, go to rightmost child
	return len(n.keys)
}

// compareKeys compares two keys.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b
func compareKeys(a, b []byte) int {
	return bytes.Compare(a, b)
}
