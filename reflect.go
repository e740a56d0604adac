package structdiff

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"unsafe"

	"github.com/sirupsen/logrus"
)

// DefaultTagName is the struct tag key consulted for field names
const DefaultTagName = "diff"

// ReflectiveComparator compares structs field by field, recursing into the
// engine for every field. Embedded structs contribute their fields as if they
// were declared on the outer struct. Values that are not structs are compared
// by equality
func ReflectiveComparator() Comparator {
	return NullSafe(findStructChanges)
}

// field describes one comparable field of a struct type
type field struct {
	name  string
	typ   reflect.Type
	index []int
}

type descriptorKey struct {
	typ          reflect.Type
	tag          string
	exportedOnly bool
}

// descriptors caches field lists per struct type and engine field settings.
// entries are computed from the type alone, so two goroutines racing to fill
// the same key store identical lists
var descriptors sync.Map

func findStructChanges(e *Engine, path Path, t reflect.Type, left, right any) Changes {
	lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)
	if lv.Kind() == reflect.Pointer && rv.Kind() == reflect.Pointer {
		if lv.Pointer() == rv.Pointer() {
			return nil
		}
		lv, rv = lv.Elem(), rv.Elem()
	}
	if lv.Kind() != reflect.Struct || lv.Type() != rv.Type() {
		return findEqualityChanges(e, path, t, left, right)
	}

	lv, rv = addressable(lv), addressable(rv)

	var changes Changes
	for _, f := range e.fields(lv.Type()) {
		l, r := e.readField(lv, f), e.readField(rv, f)
		if isNil(l) && isNil(r) {
			continue
		}
		if isNil(l) {
			l = e.DefaultInstance(f.typ)
		}
		if isNil(r) {
			r = e.DefaultInstance(f.typ)
		}
		changes = append(changes, e.FindPathChanges(f.typ, path.Append(f.name), l, r)...)
	}
	return changes
}

// addressable returns v itself when it can be addressed, otherwise an
// addressable copy. unexported fields can only be read through an address
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}

// fields returns the cached descriptor list for struct type t
func (e *Engine) fields(t reflect.Type) []field {
	key := descriptorKey{typ: t, tag: e.tagName, exportedOnly: e.exportedOnly}
	if cached, ok := descriptors.Load(key); ok {
		return cached.([]field)
	}

	fields := collectFields(t, e.tagName, e.exportedOnly)
	actual, loaded := descriptors.LoadOrStore(key, fields)
	if !loaded && e.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		e.log.WithFields(logrus.Fields{
			"type":   t.String(),
			"fields": len(fields),
		}).Debug("cached field descriptors")
	}
	return actual.([]field)
}

func collectFields(t reflect.Type, tagName string, exportedOnly bool) []field {
	var fields []field
	seen := map[reflect.Type]bool{}

	var visit func(t reflect.Type, index []int)
	visit = func(t reflect.Type, index []int) {
		if seen[t] {
			return
		}
		seen[t] = true
		defer delete(seen, t)

		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.Name == "_" {
				continue
			}
			name, skip := parseTag(sf.Tag.Get(tagName))
			if skip {
				continue
			}
			idx := append(slices.Clone(index), i)

			if embedded := embeddedStruct(sf); embedded != nil && name == "" {
				visit(embedded, idx)
				continue
			}
			if exportedOnly && !sf.IsExported() {
				continue
			}
			if name == "" {
				name = sf.Name
			}
			fields = append(fields, field{name: name, typ: sf.Type, index: idx})
		}
	}

	visit(t, nil)
	return fields
}

// embeddedStruct returns the struct type an anonymous field promotes fields
// from. standard library types stay whole so a time.Time is compared as a
// time, not as its internals
func embeddedStruct(sf reflect.StructField) reflect.Type {
	if !sf.Anonymous {
		return nil
	}
	t := sf.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || isStdlib(t) {
		return nil
	}
	return t
}

// parseTag reads a field tag of the form `diff:"name"`. `diff:"-"` skips the
// field entirely
func parseTag(tag string) (name string, skip bool) {
	name, _, _ = strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	return name, false
}

// readField reads the field f from the addressable struct v. reads that cannot
// complete, like promotion through a nil embedded pointer, yield nil
func (e *Engine) readField(v reflect.Value, f field) (value any) {
	defer func() {
		if r := recover(); r != nil {
			e.logReadFailure(v.Type(), f, fmt.Errorf("%v", r))
			value = nil
		}
	}()

	fv, err := v.FieldByIndexErr(f.index)
	if err != nil {
		e.logReadFailure(v.Type(), f, err)
		return nil
	}
	if !fv.CanInterface() {
		if e.exportedOnly || !fv.CanAddr() {
			e.logReadFailure(v.Type(), f, fmt.Errorf("field %s is not accessible", f.name))
			return nil
		}
		fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
	}
	return fv.Interface()
}

func (e *Engine) logReadFailure(t reflect.Type, f field, err error) {
	if !e.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	e.log.WithError(err).WithFields(logrus.Fields{
		"type":  t.String(),
		"field": f.name,
	}).Debug("reading field")
}
