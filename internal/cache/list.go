package cache

// Entry is a single key-value pair held by a cache.
//
// The cache owns its entries exclusively: an Entry lives from its
// insertion until it is evicted or removed, and is never aliased
// outside the engine.
type Entry struct {
	Key   interface{}
	Value interface{}

	// frequency is the access count of the entry. It is maintained
	// only by the LFU cache: it starts at 1 on insertion and grows
	// by exactly 1 on every hit.
	frequency int
}

// node wraps an Entry inside a doubly linked list.
//
// The sentinel nodes bounding a list carry a nil entry. They are a
// purely structural boundary marker, not a fake key-value pair, so
// no key is reserved as "never valid".
type node struct {
	prev  *node
	next  *node
	entry *Entry
}

// list is a doubly linked list bounded by two sentinel nodes that
// are never removed. The list is structurally non-empty even when
// it holds zero entries, so insertions and removals at either end
// need no nil checks.
//
// The node after head is the most recently used position and the
// node before tail the least recently used one. Both caches
// maintain that order on every access.
type list struct {
	head *node
	tail *node
	size int
}

// newList returns a new empty list with both sentinels in place.
func newList() *list {
	head := &node{}
	tail := &node{}
	head.next = tail
	tail.prev = head
	return &list{
		head: head,
		tail: tail,
	}
}

// pushFront links n into the most recently used position.
func (l *list) pushFront(n *node) {
	n.prev = l.head
	n.next = l.head.next
	l.head.next.prev = n
	l.head.next = n
	l.size++
}

// remove unlinks n from the list and severs its own links.
// n must belong to this list and must not be a sentinel.
func (l *list) remove(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
	l.size--
}

// back returns the least recently used node, or nil if the list
// holds no entries.
func (l *list) back() *node {
	if l.tail.prev == l.head {
		return nil
	}
	return l.tail.prev
}

// empty returns true if the list holds no entries.
func (l *list) empty() bool {
	return l.size == 0
}
