package structdiff

import (
	"reflect"
)

// DefaultSupplier returns a stand-in value for a field of type t that read
// as nil, or nil when it has none to offer
type DefaultSupplier func(t reflect.Type) any

var primitiveKinds = map[reflect.Kind]bool{
	reflect.Bool:       true,
	reflect.Int:        true,
	reflect.Int8:       true,
	reflect.Int16:      true,
	reflect.Int32:      true,
	reflect.Int64:      true,
	reflect.Uint:       true,
	reflect.Uint8:      true,
	reflect.Uint16:     true,
	reflect.Uint32:     true,
	reflect.Uint64:     true,
	reflect.Uintptr:    true,
	reflect.Float32:    true,
	reflect.Float64:    true,
	reflect.Complex64:  true,
	reflect.Complex128: true,
	reflect.String:     true,
}

// PrimitiveDefaults supplies the zero value of boolean, numeric and string
// kinds, and nil for everything else
func PrimitiveDefaults() DefaultSupplier {
	return func(t reflect.Type) any {
		if t == nil || !primitiveKinds[t.Kind()] {
			return nil
		}
		return reflect.Zero(t).Interface()
	}
}

// ZeroDefaults supplies the zero value of any type, and a pointer to a new
// zero value for pointer types. Unlike PrimitiveDefaults it turns a missing
// struct into an empty one, so a nil field compared to a populated one is
// reported field by field
func ZeroDefaults() DefaultSupplier {
	return func(t reflect.Type) any {
		if t == nil {
			return nil
		}
		switch t.Kind() {
		case reflect.Interface:
			return nil
		case reflect.Pointer:
			return reflect.New(t.Elem()).Interface()
		}
		return reflect.Zero(t).Interface()
	}
}
