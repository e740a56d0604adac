package structdiff

import (
	"reflect"
)

// ArrayComparator compares go arrays position by position and reports the
// differences as one ArrayChange
func ArrayComparator() Comparator {
	return NullSafe(func(e *Engine, path Path, t reflect.Type, left, right any) Changes {
		elements := e.diffSequence(path, reflect.ValueOf(left), reflect.ValueOf(right))
		if len(elements) == 0 {
			return nil
		}
		return Changes{NewArrayChange(path, left, right, elements)}
	})
}

// CollectionComparator compares slices position by position and reports the
// differences as one CollectionChange. Elements are never aligned by value:
// inserting at the front of a slice changes every following position
func CollectionComparator() Comparator {
	return NullSafe(func(e *Engine, path Path, t reflect.Type, left, right any) Changes {
		elements := e.diffSequence(path, reflect.ValueOf(left), reflect.ValueOf(right))
		if len(elements) == 0 {
			return nil
		}
		return Changes{NewCollectionChange(path, left, right, elements)}
	})
}

// diffSequence walks two sequences in lockstep. When one side is empty every
// element of the other side is drained as an add or remove
func (e *Engine) diffSequence(path Path, left, right reflect.Value) []IndexedChange {
	leftLen, rightLen := left.Len(), right.Len()
	if leftLen == 0 || rightLen == 0 {
		return drain(path, left, right)
	}

	var elements []IndexedChange
	idx := 0
	for ; idx < leftLen && idx < rightLen; idx++ {
		l, r := left.Index(idx).Interface(), right.Index(idx).Interface()
		if isNil(l) && isNil(r) {
			continue
		}
		if changes := e.FindPathChanges(nil, e.indexPath(path, idx), l, r); len(changes) > 0 {
			elements = append(elements, NewElementChange(path, idx, l, r, changes))
		}
	}

	for ; idx < rightLen; idx++ {
		elements = append(elements, NewElementAdded(path, idx, right.Index(idx).Interface()))
	}
	for ; idx < leftLen; idx++ {
		elements = append(elements, NewElementRemoved(path, idx, left.Index(idx).Interface()))
	}
	return elements
}

func drain(path Path, left, right reflect.Value) []IndexedChange {
	leftLen, rightLen := left.Len(), right.Len()
	if leftLen == 0 && rightLen == 0 {
		return nil
	}

	if leftLen == 0 {
		elements := make([]IndexedChange, rightLen)
		for i := range elements {
			elements[i] = NewElementAdded(path, i, right.Index(i).Interface())
		}
		return elements
	}

	elements := make([]IndexedChange, leftLen)
	for i := range elements {
		elements[i] = NewElementRemoved(path, i, left.Index(i).Interface())
	}
	return elements
}
