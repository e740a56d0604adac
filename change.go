package structdiff

import (
	"slices"
)

// Operation defines the operation of a Change
type Operation string

const (
	// DTContext marks a container whose children describe the actual
	// differences
	DTContext = Operation(" ")
	// DTDelete means an element or entry present on the left is missing on
	// the right
	DTDelete = Operation("-")
	// DTInsert is the compliment of deleting, an element or entry only the
	// right side has
	DTInsert = Operation("+")
	// DTUpdate is an alteration of a value that is compared as a whole
	DTUpdate = Operation("~")
)

// Change records a difference between a left and a right value found at a
// path. At most one of Left and Right is nil
type Change interface {
	// Path is the location the change was found at
	Path() Path
	// Left is the value on the left hand side of the comparison
	Left() any
	// Right is the value on the right hand side of the comparison
	Right() any
	// Op classifies the change
	Op() Operation
}

// IndexedChange is a change to one element of an array or collection
type IndexedChange interface {
	Change
	Index() int
}

// KeyedChange is a change to one entry of a map
type KeyedChange interface {
	Change
	Key() any
}

// Compound is a change made up of nested changes
type Compound interface {
	Change
	Children() Changes
}

// Changes is an ordered list of changes. A nil or empty list means no
// differences were found
type Changes []Change

// Paths renders the path of every top level change
func (cs Changes) Paths() []string {
	paths := make([]string, len(cs))
	for i, c := range cs {
		paths[i] = c.Path().String()
	}
	return paths
}

type change struct {
	path  Path
	left  any
	right any
}

func (c *change) Path() Path { return c.path }
func (c *change) Left() any  { return c.left }
func (c *change) Right() any { return c.right }

// ValueChange is a plain change of a value compared as a whole
type ValueChange struct {
	change
}

// NewValueChange creates a plain change
func NewValueChange(path Path, left, right any) *ValueChange {
	return &ValueChange{change{path: path, left: left, right: right}}
}

// Op implements Change
func (c *ValueChange) Op() Operation { return DTUpdate }

// ElementAddOrRemove is an element present on only one side of an array or
// collection comparison
type ElementAddOrRemove struct {
	change
	index int
	added bool
}

// NewElementAdded records value as added at index
func NewElementAdded(path Path, index int, value any) *ElementAddOrRemove {
	return &ElementAddOrRemove{change: change{path: path, right: value}, index: index, added: true}
}

// NewElementRemoved records value as removed from index
func NewElementRemoved(path Path, index int, value any) *ElementAddOrRemove {
	return &ElementAddOrRemove{change: change{path: path, left: value}, index: index}
}

// Index implements IndexedChange
func (c *ElementAddOrRemove) Index() int { return c.index }

// Added reports whether only the right side holds the element
func (c *ElementAddOrRemove) Added() bool { return c.added }

// Removed reports whether only the left side holds the element
func (c *ElementAddOrRemove) Removed() bool { return !c.added }

// Op implements Change
func (c *ElementAddOrRemove) Op() Operation {
	if c.added {
		return DTInsert
	}
	return DTDelete
}

// ElementChange holds the differences within one element both sides have
type ElementChange struct {
	change
	index   int
	changes Changes
}

// NewElementChange wraps the changes found within the element at index
func NewElementChange(path Path, index int, left, right any, changes Changes) *ElementChange {
	return &ElementChange{
		change:  change{path: path, left: left, right: right},
		index:   index,
		changes: slices.Clone(changes),
	}
}

// Index implements IndexedChange
func (c *ElementChange) Index() int { return c.index }

// Changes lists the differences within the element
func (c *ElementChange) Changes() Changes { return c.changes }

// Children implements Compound
func (c *ElementChange) Children() Changes { return c.changes }

// Op implements Change
func (c *ElementChange) Op() Operation { return DTContext }

// EntryAddOrRemove is a map entry present on only one side
type EntryAddOrRemove struct {
	change
	key   any
	added bool
}

// NewEntryAdded records value as added under key
func NewEntryAdded(path Path, key, value any) *EntryAddOrRemove {
	return &EntryAddOrRemove{change: change{path: path, right: value}, key: key, added: true}
}

// NewEntryRemoved records value as removed from key
func NewEntryRemoved(path Path, key, value any) *EntryAddOrRemove {
	return &EntryAddOrRemove{change: change{path: path, left: value}, key: key}
}

// Key implements KeyedChange
func (c *EntryAddOrRemove) Key() any { return c.key }

// Added reports whether only the right map holds the key
func (c *EntryAddOrRemove) Added() bool { return c.added }

// Removed reports whether only the left map holds the key
func (c *EntryAddOrRemove) Removed() bool { return !c.added }

// Op implements Change
func (c *EntryAddOrRemove) Op() Operation {
	if c.added {
		return DTInsert
	}
	return DTDelete
}

// EntryChange holds the differences within a value both maps store under
// the same key
type EntryChange struct {
	change
	key     any
	changes Changes
}

// NewEntryChange wraps the changes found within the values stored at key
func NewEntryChange(path Path, key, left, right any, changes Changes) *EntryChange {
	return &EntryChange{
		change:  change{path: path, left: left, right: right},
		key:     key,
		changes: slices.Clone(changes),
	}
}

// Key implements KeyedChange
func (c *EntryChange) Key() any { return c.key }

// Changes lists the differences within the entry's values
func (c *EntryChange) Changes() Changes { return c.changes }

// Children implements Compound
func (c *EntryChange) Children() Changes { return c.changes }

// Op implements Change
func (c *EntryChange) Op() Operation { return DTContext }

// ArrayChange groups the element changes between two go arrays
type ArrayChange struct {
	change
	elements []IndexedChange
}

// NewArrayChange groups element changes of two arrays
func NewArrayChange(path Path, left, right any, elements []IndexedChange) *ArrayChange {
	return &ArrayChange{change: change{path: path, left: left, right: right}, elements: slices.Clone(elements)}
}

// Elements lists the per-element changes in index order
func (c *ArrayChange) Elements() []IndexedChange { return c.elements }

// Children implements Compound
func (c *ArrayChange) Children() Changes { return indexedChanges(c.elements) }

// Op implements Change
func (c *ArrayChange) Op() Operation { return DTContext }

// CollectionChange groups the element changes between two slices
type CollectionChange struct {
	change
	elements []IndexedChange
}

// NewCollectionChange groups element changes of two slices
func NewCollectionChange(path Path, left, right any, elements []IndexedChange) *CollectionChange {
	return &CollectionChange{change: change{path: path, left: left, right: right}, elements: slices.Clone(elements)}
}

// Elements lists the per-element changes in index order
func (c *CollectionChange) Elements() []IndexedChange { return c.elements }

// Children implements Compound
func (c *CollectionChange) Children() Changes { return indexedChanges(c.elements) }

// Op implements Change
func (c *CollectionChange) Op() Operation { return DTContext }

// MapChange groups the entry changes between two maps
type MapChange struct {
	change
	entries []KeyedChange
}

// NewMapChange groups entry changes of two maps
func NewMapChange(path Path, left, right any, entries []KeyedChange) *MapChange {
	return &MapChange{change: change{path: path, left: left, right: right}, entries: slices.Clone(entries)}
}

// Entries lists changed entries, left map entries first
func (c *MapChange) Entries() []KeyedChange { return c.entries }

// Children implements Compound
func (c *MapChange) Children() Changes {
	children := make(Changes, len(c.entries))
	for i, e := range c.entries {
		children[i] = e
	}
	return children
}

// Op implements Change
func (c *MapChange) Op() Operation { return DTContext }

func indexedChanges(elements []IndexedChange) Changes {
	children := make(Changes, len(elements))
	for i, e := range elements {
		children[i] = e
	}
	return children
}
