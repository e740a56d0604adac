package structdiff

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// MapComparator compares maps entry by entry. Entries of the left map are
// reported first (changed, then removed, in key order), followed by entries
// only the right map holds
func MapComparator() Comparator {
	return NullSafe(findMapChanges)
}

func findMapChanges(e *Engine, path Path, t reflect.Type, left, right any) Changes {
	lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)

	var entries []KeyedChange
	for _, k := range sortedKeys(lv) {
		key := k.Interface()
		l := lv.MapIndex(k).Interface()
		rval := rv.MapIndex(k)
		if !rval.IsValid() {
			entries = append(entries, NewEntryRemoved(path, key, l))
			continue
		}

		r := rval.Interface()
		if isNil(l) && isNil(r) {
			continue
		}
		if changes := e.FindPathChanges(nil, e.keyPath(path, key), l, r); len(changes) > 0 {
			entries = append(entries, NewEntryChange(path, key, l, r, changes))
		}
	}

	for _, k := range sortedKeys(rv) {
		if lv.MapIndex(k).IsValid() {
			continue
		}
		entries = append(entries, NewEntryAdded(path, k.Interface(), rv.MapIndex(k).Interface()))
	}

	if len(entries) == 0 {
		return nil
	}
	return Changes{NewMapChange(path, left, right, entries)}
}

// sortedKeys gives go's randomized map iteration a stable order. keys of
// ordered kinds sort by value, everything else by its formatted text
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortStableFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	if !a.IsValid() || !b.IsValid() {
		return cmp.Compare(boolRank(a.IsValid()), boolRank(b.IsValid()))
	}
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Type().String(), b.Type().String())
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
