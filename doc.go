// Package structdiff compares two go values of (nominally) the same type and
// reports every divergence as a path-addressed change record.
//
// Where a plain equality check answers "are these the same?", structdiff
// answers "where exactly do they differ?". Given two values it walks their
// structure recursively: struct fields through reflection, arrays & slices
// position by position, maps key by key, and numbers, booleans, runes, enums
// and standard library types as atomic values. Every difference becomes a
// Change that carries the location it was found at, for example:
//
//	~ $.seedB.id: "a4f0" -> "9c1e"
//
// Comparison is driven by an ordered registry of (Matcher, Comparator) pairs.
// A Matcher is a predicate over a reflect.Type, a Comparator produces the
// changes for two values of a matched type and may re-enter the Engine to
// compare nested values. Registries are scanned in insertion order and the
// first match wins, with user registrations checked before the built-in
// comparators. Types no comparator claims fall through to a reflective
// structural comparator.
//
// When a struct field is nil on one side, the Engine substitutes a
// placeholder from its default value registry before recursing, which keeps
// differences local to the sub-fields that actually diverge.
//
// Collections are compared positionally, not by set alignment. Cyclic object
// graphs are not detected and will recurse until the stack limit is reached.
//
// An Engine is immutable once built and safe for concurrent use.
package structdiff
