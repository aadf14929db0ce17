package btree

// Insert adds a key-value pair to the tree.
// Returns ErrDuplicateKey if unique=true and the key already exists.
func (bt *BTree) Insert(key []byte, value interface{}) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}

	bt.mu.Lock()
	defer bt.mu.Unlock()

	// Find the leaf node where this key should go
	leaf := bt.findLeaf(key)

	// Check for duplicate if unique
	if bt.unique {
		for i := 0; i < len(leaf.keys); i++ {
			if compareKeys(key, leaf.keys[i]) == 0 {
				return ErrDuplicateKey
			}
		}
	}

	bt.insertIntoLeaf(leaf, key, value)
	bt.size++
	return nil
}

// insertIntoLeaf inserts a key-value pair into a leaf node.
func (bt *BTree) insertIntoLeaf(leaf *node, key []byte, value interface{}) {
	// Find insertion position
	insertPos := 0
	for i := 0; i < len(leaf.keys); i++ {
		if compareKeys(key, leaf.keys[i]) < 0 {
			break
		}
		insertPos = i + 1
	}

	leaf.keys = insertKeyAt(leaf.keys, insertPos, key)
	leaf.values = insertValueAt(leaf.values, insertPos, value)

	if bt.needsSplit(leaf) {
		bt.splitLeaf(leaf)
	}
}

// needsSplit checks if a node needs to be split.
func (bt *BTree) needsSplit(n *node) bool {
	return len(n.keys) > bt.maxKeys
}

// splitLeaf splits a leaf node into two.
func (bt *BTree) splitLeaf(leaf *node) {
	mid := len(leaf.keys) / 2

	// Create right leaf; it takes the old right sibling
	rightLeaf := &node{
		nodeType: NodeTypeLeaf,
		rightSib: leaf.rightSib,
		parent:   leaf.parent,
		keys:     make([][]byte, len(leaf.keys)-mid),
		values:   make([]interface{}, len(leaf.values)-mid),
	}
	copy(rightLeaf.keys, leaf.keys[mid:])
	copy(rightLeaf.values, leaf.values[mid:])

	// Left leaf keeps the lower half
	leaf.keys = leaf.keys[:mid]
	leaf.values = leaf.values[:mid]
	leaf.rightSib = rightLeaf

	// Insert separator key into parent
	separatorKey := rightLeaf.keys[0]
	bt.insertIntoParent(leaf, separatorKey, rightLeaf)
}

// insertIntoParent inserts a separator key and new child into the parent.
func (bt *BTree) insertIntoParent(left *node, key []byte, right *node) {
	// If left is root, create new root
	if left.parent == nil {
		bt.createNewRoot(left, key, right)
		return
	}

	parent := left.parent

	// Find position of left child in parent
	leftIdx := -1
	for i, child := range parent.children {
		if child == left {
			leftIdx = i
			break
		}
	}

	// Insert key and new child after left
	parent.keys = insertKeyAt(parent.keys, leftIdx, key)
	parent.children = insertChildAt(parent.children, leftIdx+1, right)
	right.parent = parent

	if bt.needsSplit(parent) {
		bt.splitInternal(parent)
	}
}

// createNewRoot creates a new root with two children.
func (bt *BTree) createNewRoot(left *node, key []byte, right *node) {
	newRoot := &node{
		nodeType: NodeTypeInternal,
		keys:     [][]byte{key},
		children: []*node{left, right},
	}
	left.parent = newRoot
	right.parent = newRoot
	bt.root = newRoot
}

// splitInternal splits an internal node.
func (bt *BTree) splitInternal(n *node) {
	mid := len(n.keys) / 2

	// The key at mid goes up to the parent
	upKey := n.keys[mid]

	// Right internal node takes keys after mid, children after mid+1
	rightInternal := &node{
		nodeType: NodeTypeInternal,
		parent:   n.parent,
		keys:     make([][]byte, len(n.keys)-mid-1),
		children: make([]*node, len(n.children)-mid-1),
	}
	copy(rightInternal.keys, n.keys[mid+1:])
	copy(rightInternal.children, n.children[mid+1:])

	// Left internal node keeps the lower half
	n.keys = n.keys[:mid]
	n.children = n.children[:mid+1]

	// Moved children point at the new parent
	for _, child := range rightInternal.children {
		child.parent = rightInternal
	}

	bt.insertIntoParent(n, upKey, rightInternal)
}

// Helper functions for slice manipulation

func insertKeyAt(slice [][]byte, pos int, val []byte) [][]byte {
	slice = append(slice, nil)
	copy(slice[pos+1:], slice[pos:])
	slice[pos] = val
	return slice
}

func insertValueAt(slice []interface{}, pos int, val interface{}) []interface{} {
	slice = append(slice, nil)
	copy(slice[pos+1:], slice[pos:])
	slice[pos] = val
	return slice
}

func insertChildAt(slice []*node, pos int, val *node) []*node {
	slice = append(slice, nil)
	copy(slice[pos+1:], slice[pos:])
	slice[pos] = val
	return slice
}
