package structdiff

import (
	"reflect"
	"strings"
)

// Matcher is a predicate over a type descriptor, used to pick the comparator
// or default supplier that handles a type. Matchers must be pure: they run on
// every dispatch
type Matcher func(t reflect.Type) bool

// Or combines two matchers, accepting any type either one accepts
func (m Matcher) Or(other Matcher) Matcher {
	return func(t reflect.Type) bool {
		return m(t) || other(t)
	}
}

// Exact matches a single type by identity
func Exact(want reflect.Type) Matcher {
	return func(t reflect.Type) bool {
		return t == want
	}
}

// Satisfying matches any non-nil type the predicate accepts. Instantiations
// of generic types are concrete types in go, so pred sees them as-is. Use
// Generic to match every instantiation of a generic type at once
func Satisfying(pred func(t reflect.Type) bool) Matcher {
	return func(t reflect.Type) bool {
		return t != nil && pred(t)
	}
}

// Generic matches all instantiations of the generic type called name that is
// declared in pkgPath, eg. Generic("example.com/list", "List") matches both
// List[int] and List[string]
func Generic(pkgPath, name string) Matcher {
	return Satisfying(func(t reflect.Type) bool {
		return t.PkgPath() == pkgPath && rawName(t) == name
	})
}

// rawName strips type arguments from a type name
func rawName(t reflect.Type) string {
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

// AssignableTo matches types whose values can be assigned to target
func AssignableTo(target reflect.Type) Matcher {
	return Satisfying(func(t reflect.Type) bool {
		return t.AssignableTo(target)
	})
}

// Implementing matches types that implement the interface type iface.
// Implementing panics if iface is not an interface type
func Implementing(iface reflect.Type) Matcher {
	if iface == nil || iface.Kind() != reflect.Interface {
		panic("structdiff: Implementing requires an interface type")
	}
	return Satisfying(func(t reflect.Type) bool {
		return t.Implements(iface)
	})
}

// InPackage matches named types declared in a package whose import path
// starts with prefix
func InPackage(prefix string) Matcher {
	return Satisfying(func(t reflect.Type) bool {
		pkg := t.PkgPath()
		return pkg != "" && strings.HasPrefix(pkg, prefix)
	})
}

// InStandardLibrary matches named types declared in the go standard library
func InStandardLibrary() Matcher {
	return Satisfying(isStdlib)
}

// isStdlib relies on the go toolchain reserving import paths without a dot in
// their first element for the standard library
func isStdlib(t reflect.Type) bool {
	pkg := t.PkgPath()
	if pkg == "" || pkg == "main" {
		return false
	}
	first, _, _ := strings.Cut(pkg, "/")
	return !strings.Contains(first, ".")
}

// AnyOf matches any of the given types by identity
func AnyOf(types ...reflect.Type) Matcher {
	return func(t reflect.Type) bool {
		for _, candidate := range types {
			if t == candidate {
				return true
			}
		}
		return false
	}
}

// OfKind matches types of any of the given kinds
func OfKind(kinds ...reflect.Kind) Matcher {
	return Satisfying(func(t reflect.Type) bool {
		k := t.Kind()
		for _, candidate := range kinds {
			if k == candidate {
				return true
			}
		}
		return false
	})
}
