package structdiff

import (
	"fmt"
	"reflect"
	"regexp"
)

// Comparator produces the changes between two values of the type t found at
// path. Comparators compare nested values by calling back into the Engine.
// A Comparator must return nil or an empty list when nothing differs, never
// a container change without children
type Comparator interface {
	FindChanges(e *Engine, path Path, t reflect.Type, left, right any) Changes
}

// ComparatorFunc adapts a function to the Comparator interface. A plain
// ComparatorFunc receives nil operands as-is, wrap it with NullSafe to have
// them handled by the usual null rule
type ComparatorFunc func(e *Engine, path Path, t reflect.Type, left, right any) Changes

// FindChanges implements Comparator
func (f ComparatorFunc) FindChanges(e *Engine, path Path, t reflect.Type, left, right any) Changes {
	return f(e, path, t, left, right)
}

// NullSafe applies the null rule before calling fn: two nil values are
// unchanged, a single nil value is one ValueChange, fn only ever sees two
// non-nil values
func NullSafe(fn ComparatorFunc) Comparator {
	return ComparatorFunc(func(e *Engine, path Path, t reflect.Type, left, right any) Changes {
		if changes, done := nullChanges(path, left, right); done {
			return changes
		}
		return fn(e, path, t, left, right)
	})
}

func nullChanges(path Path, left, right any) (Changes, bool) {
	leftNil, rightNil := isNil(left), isNil(right)
	switch {
	case leftNil && rightNil:
		return nil, true
	case leftNil || rightNil:
		return Changes{NewValueChange(path, left, right)}, true
	default:
		return nil, false
	}
}

// isNil treats nil pointers, maps, slices, interfaces, funcs and chans as
// absent values
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// EqualityComparator treats values as atomic: equal values are unchanged,
// anything else is one ValueChange
func EqualityComparator() Comparator {
	return NullSafe(findEqualityChanges)
}

func findEqualityChanges(e *Engine, path Path, t reflect.Type, left, right any) Changes {
	if equal(left, right) {
		return nil
	}
	return Changes{NewValueChange(path, left, right)}
}

// equal prefers an Equal(T) bool method when the type declares one, the way
// time.Time asks to be compared
func equal(left, right any) bool {
	lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)
	if lv.Type() != rv.Type() {
		return false
	}
	if eq, ok := equalMethod(lv, rv); ok {
		return eq
	}
	if lv.Kind() == reflect.Func {
		return lv.Pointer() == rv.Pointer()
	}
	return reflect.DeepEqual(left, right)
}

func equalMethod(lv, rv reflect.Value) (eq, ok bool) {
	m := lv.MethodByName("Equal")
	if !m.IsValid() {
		return false, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Bool || !rv.Type().AssignableTo(mt.In(0)) {
		return false, false
	}
	return m.Call([]reflect.Value{rv})[0].Bool(), true
}

// BooleanComparator compares bool kinds
func BooleanComparator() Comparator {
	return NullSafe(func(e *Engine, path Path, t reflect.Type, left, right any) Changes {
		lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)
		if lv.Kind() == reflect.Bool && rv.Kind() == reflect.Bool && lv.Bool() == rv.Bool() {
			return nil
		}
		return Changes{NewValueChange(path, left, right)}
	})
}

// CharacterComparator compares runes and bytes by code point
func CharacterComparator() Comparator {
	return NullSafe(func(e *Engine, path Path, t reflect.Type, left, right any) Changes {
		l, lok := codePoint(reflect.ValueOf(left))
		r, rok := codePoint(reflect.ValueOf(right))
		if lok && rok {
			if l == r {
				return nil
			}
			return Changes{NewValueChange(path, left, right)}
		}
		return findEqualityChanges(e, path, t, left, right)
	})
}

func codePoint(v reflect.Value) (uint64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Int() < 0 {
			return 0, false
		}
		return uint64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), true
	}
	return 0, false
}

// EnumComparator compares enum-like named constants by identity
func EnumComparator() Comparator {
	return NullSafe(findEqualityChanges)
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// enumMatcher picks up the go enum idiom: a named integer or string type
// outside the standard library that implements fmt.Stringer
func enumMatcher() Matcher {
	return Satisfying(func(t reflect.Type) bool {
		if t.Name() == "" || isStdlib(t) || !t.Implements(stringerType) {
			return false
		}
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.String:
			return true
		}
		return false
	})
}

var regexpType = reflect.TypeOf(regexp.Regexp{})

// PatternComparator compares compiled regular expressions by their source
// text
func PatternComparator() Comparator {
	return NullSafe(func(e *Engine, path Path, t reflect.Type, left, right any) Changes {
		l, lok := patternSource(left)
		r, rok := patternSource(right)
		if lok && rok && l == r {
			return nil
		}
		return Changes{NewValueChange(path, left, right)}
	})
}

func patternSource(v any) (string, bool) {
	switch re := v.(type) {
	case *regexp.Regexp:
		return re.String(), true
	case regexp.Regexp:
		return re.String(), true
	}
	return "", false
}

// PointerComparator dereferences two non-nil pointers and compares what they
// point to at the same path
func PointerComparator() Comparator {
	return NullSafe(findPointerChanges)
}

func findPointerChanges(e *Engine, path Path, t reflect.Type, left, right any) Changes {
	lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)
	if lv.Kind() != reflect.Pointer || rv.Kind() != reflect.Pointer {
		return findEqualityChanges(e, path, t, left, right)
	}
	if lv.Pointer() == rv.Pointer() {
		return nil
	}
	elem := lv.Type().Elem()
	if t != nil && t.Kind() == reflect.Pointer {
		elem = t.Elem()
	}
	return e.FindPathChanges(elem, path, lv.Elem().Interface(), rv.Elem().Interface())
}
