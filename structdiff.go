package structdiff

import (
	"errors"
	"reflect"

	"github.com/sirupsen/logrus"
)

// ErrMisconfigured is returned when an Engine cannot be built from the options
// it was given
var ErrMisconfigured = errors.New("structdiff: misconfigured engine")

type comparatorEntry struct {
	match      Matcher
	comparator Comparator
}

type supplierEntry struct {
	match    Matcher
	supplier DefaultSupplier
}

// Engine finds the changes between two values by dispatching each type it
// meets to the first registered Comparator whose Matcher accepts it. An Engine
// is immutable once built and safe for concurrent use
type Engine struct {
	comparators       []comparatorEntry
	suppliers         []supplierEntry
	defaultComparator Comparator
	defaultSupplier   DefaultSupplier
	paths             *PathFactory

	elementSegments bool
	exportedOnly    bool
	tagName         string

	log *logrus.Entry
}

// New builds an Engine. Options apply in order, comparators and suppliers
// registered through options take precedence over the built-in ones
func New(opts ...Option) (*Engine, error) {
	s := newSettings()
	for _, opt := range opts {
		opt(s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		comparators:       s.comparators,
		suppliers:         s.suppliers,
		defaultComparator: s.defaultComparator,
		defaultSupplier:   s.defaultSupplier,
		paths:             NewPathFactory(s.RootIndicator, s.PathSeparator),
		elementSegments:   s.ElementSegments,
		exportedOnly:      s.ExportedFieldsOnly,
		tagName:           s.TagName,
		log:               s.logger.WithField("component", "structdiff"),
	}
	if s.RegisterDefaults {
		e.comparators = append(e.comparators, builtinComparators()...)
	}

	if e.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		e.log.WithFields(logrus.Fields{
			"comparators":   len(e.comparators),
			"suppliers":     len(e.suppliers),
			"rootIndicator": s.RootIndicator,
			"separator":     s.PathSeparator,
		}).Debug("built engine")
	}
	return e, nil
}

// MustNew is like New but panics if the engine cannot be built
func MustNew(opts ...Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

var defaultEngine = MustNew()

// FindChanges compares left and right with an engine using the built-in
// comparators and default settings
func FindChanges(left, right any) Changes {
	return defaultEngine.FindChanges(left, right)
}

// FindChanges compares left and right starting at the root path, using the
// dynamic type of whichever value is not nil
func (e *Engine) FindChanges(left, right any) Changes {
	return e.FindPathChanges(nil, e.BeginPath(), left, right)
}

// FindTypedChanges compares left and right as values of type t starting at the
// root path
func (e *Engine) FindTypedChanges(t reflect.Type, left, right any) Changes {
	return e.FindPathChanges(t, e.BeginPath(), left, right)
}

// FindPathChanges compares left and right as values of type t found at path.
// A nil or interface t is replaced with the dynamic type of the operands.
// comparators call FindPathChanges to compare nested values
func (e *Engine) FindPathChanges(t reflect.Type, path Path, left, right any) Changes {
	if t == nil || t.Kind() == reflect.Interface {
		t = dynamicType(left, right)
		if t == nil {
			return nil
		}
	}

	if !isNil(left) && !isNil(right) {
		lt, rt := reflect.TypeOf(left), reflect.TypeOf(right)
		if lt != rt && !(isNumber(left) && isNumber(right)) {
			if e.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
				e.log.WithFields(logrus.Fields{
					"path":  path.String(),
					"left":  lt.String(),
					"right": rt.String(),
				}).Trace("type mismatch")
			}
			return Changes{NewValueChange(path, left, right)}
		}
	}

	return e.comparatorFor(t).FindChanges(e, path, t, left, right)
}

func dynamicType(left, right any) reflect.Type {
	if left != nil {
		return reflect.TypeOf(left)
	}
	if right != nil {
		return reflect.TypeOf(right)
	}
	return nil
}

func (e *Engine) comparatorFor(t reflect.Type) Comparator {
	for _, entry := range e.comparators {
		if entry.match(t) {
			return entry.comparator
		}
	}
	if e.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		e.log.WithField("type", t.String()).Trace("using default comparator")
	}
	return e.defaultComparator
}

// DefaultInstance returns the stand-in value for type t: the value of the
// first registered supplier matching t, otherwise the default supplier's
func (e *Engine) DefaultInstance(t reflect.Type) any {
	if t == nil {
		return nil
	}
	for _, entry := range e.suppliers {
		if entry.match(t) {
			return entry.supplier(t)
		}
	}
	return e.defaultSupplier(t)
}

// BeginPath returns the root path of this engine's path factory
func (e *Engine) BeginPath() Path {
	return e.paths.Begin()
}

// indexPath is the path nested comparisons of the element at idx run at
func (e *Engine) indexPath(path Path, idx int) Path {
	if e.elementSegments {
		return path.AppendIndex(idx)
	}
	return path
}

// keyPath is the path nested comparisons of the entry under key run at
func (e *Engine) keyPath(path Path, key any) Path {
	if e.elementSegments {
		return path.AppendKey(key)
	}
	return path
}

// builtinComparators lists the comparators registered unless WithoutDefaults
// is used, in lookup order
func builtinComparators() []comparatorEntry {
	return []comparatorEntry{
		{OfKind(reflect.Map), MapComparator()},
		{enumMatcher(), EnumComparator()},
		{OfKind(reflect.Array), ArrayComparator()},
		{OfKind(reflect.Slice), CollectionComparator()},
		{OfKind(reflect.Bool), BooleanComparator()},
		{AnyOf(runeType, byteType), CharacterComparator()},
		{numberMatcher(), NumberComparator()},
		{AnyOf(regexpType, reflect.PointerTo(regexpType)), PatternComparator()},
		{OfKind(reflect.Pointer), PointerComparator()},
		{InStandardLibrary(), EqualityComparator()},
		{OfKind(reflect.String, reflect.Complex64, reflect.Complex128, reflect.Chan, reflect.Func, reflect.UnsafePointer), EqualityComparator()},
	}
}

var (
	runeType = reflect.TypeOf(rune(0))
	byteType = reflect.TypeOf(byte(0))
)
