package structdiff

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row flattens a change for comparison in tests. containers leave their
// operands out, their children describe them
type row struct {
	Depth int
	Op    Operation
	Path  string
	Label string
	Left  any
	Right any
}

func rows(changes Changes) []row {
	var rs []row
	Walk(changes, func(depth int, c Change) bool {
		r := row{Depth: depth, Op: c.Op(), Path: c.Path().String(), Label: label(c)}
		if _, ok := c.(Compound); !ok {
			r.Left, r.Right = c.Left(), c.Right()
		}
		rs = append(rs, r)
		return true
	})
	return rs
}

type seedB struct {
	ID   string `diff:"id"`
	Name string `diff:"name"`
}

type seedA struct {
	ID         int               `diff:"id"`
	SeedB      *seedB            `diff:"seedB"`
	ColOfSeedB []seedB           `diff:"colOfSeedB"`
	Labels     map[string]string `diff:"labels"`
}

type TestCase struct {
	description string
	left, right any
	expect      []row
}

func RunTestCases(t *testing.T, cases []TestCase, opts ...Option) {
	e, err := New(opts...)
	require.NoError(t, err)

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			got := rows(e.FindChanges(c.left, c.right))
			if diff := cmp.Diff(c.expect, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBasicTypes(t *testing.T) {
	cases := []TestCase{
		{"nil nil", nil, nil, nil},
		{"nil value", nil, "x", []row{
			{Op: DTUpdate, Path: "$", Right: "x"},
		}},
		{"value nil", 3, nil, []row{
			{Op: DTUpdate, Path: "$", Left: 3},
		}},
		{"equal strings", "a", "a", nil},
		{"strings", "a", "b", []row{
			{Op: DTUpdate, Path: "$", Left: "a", Right: "b"},
		}},
		{"bools", true, false, []row{
			{Op: DTUpdate, Path: "$", Left: true, Right: false},
		}},
		{"int float", 7, 7.0, nil},
		{"int float changed", 7, 7.5, []row{
			{Op: DTUpdate, Path: "$", Left: 7, Right: 7.5},
		}},
		{"mismatched types", "1", 1, []row{
			{Op: DTUpdate, Path: "$", Left: "1", Right: 1},
		}},
		{"complex", complex(1, 2), complex(1, 3), []row{
			{Op: DTUpdate, Path: "$", Left: complex(1, 2), Right: complex(1, 3)},
		}},
	}
	RunTestCases(t, cases)
}

func TestNullHandling(t *testing.T) {
	assert.Empty(t, FindChanges(nil, nil))

	changes := FindChanges(nil, "x")
	require.Len(t, changes, 1)
	assert.IsType(t, &ValueChange{}, changes[0])
	assert.Nil(t, changes[0].Left())
	assert.Equal(t, "x", changes[0].Right())
	assert.True(t, changes[0].Path().IsRoot())

	var nilMap map[string]int
	assert.Empty(t, FindChanges(nilMap, nil))
	assert.Len(t, FindChanges(nilMap, map[string]int{}), 1)
}

func TestNestedStructs(t *testing.T) {
	left := &seedA{
		ID:         1,
		SeedB:      &seedB{ID: "b1", Name: "bee"},
		ColOfSeedB: []seedB{{ID: "c1"}},
		Labels:     map[string]string{"env": "prod"},
	}
	right := &seedA{
		ID:         1,
		SeedB:      &seedB{ID: "b2", Name: "bee"},
		ColOfSeedB: []seedB{{ID: "c2"}, {ID: "c3"}},
		Labels:     map[string]string{"env": "prod", "team": "data"},
	}

	cases := []TestCase{
		{"identical", left, left, nil},
		{"nested", left, right, []row{
			{Op: DTUpdate, Path: "$.seedB.id", Left: "b1", Right: "b2"},
			{Op: DTContext, Path: "$.colOfSeedB"},
			{Depth: 1, Op: DTContext, Path: "$.colOfSeedB", Label: "[0]"},
			{Depth: 2, Op: DTUpdate, Path: "$.colOfSeedB.id", Left: "c1", Right: "c2"},
			{Depth: 1, Op: DTInsert, Path: "$.colOfSeedB", Label: "[1]", Right: seedB{ID: "c3"}},
			{Op: DTContext, Path: "$.labels"},
			{Depth: 1, Op: DTInsert, Path: "$.labels", Label: "[team]", Right: "data"},
		}},
		{"nil nested pointer", &seedA{ID: 1}, &seedA{ID: 1, SeedB: &seedB{ID: "b"}}, []row{
			{Op: DTUpdate, Path: "$.seedB", Right: &seedB{ID: "b"}},
		}},
	}
	RunTestCases(t, cases)
}

func TestElementSegments(t *testing.T) {
	cases := []TestCase{
		{"slice", []seedB{{ID: "a"}}, []seedB{{ID: "b"}}, []row{
			{Op: DTContext, Path: "$"},
			{Depth: 1, Op: DTContext, Path: "$", Label: "[0]"},
			{Depth: 2, Op: DTUpdate, Path: "$.0.id", Left: "a", Right: "b"},
		}},
		{"map", map[string]seedB{"k": {ID: "a"}}, map[string]seedB{"k": {ID: "b"}}, []row{
			{Op: DTContext, Path: "$"},
			{Depth: 1, Op: DTContext, Path: "$", Label: "[k]"},
			{Depth: 2, Op: DTUpdate, Path: "$.k.id", Left: "a", Right: "b"},
		}},
	}
	RunTestCases(t, cases, WithElementSegments())
}

func TestCustomPaths(t *testing.T) {
	left := &seedA{SeedB: &seedB{ID: "x"}}
	right := &seedA{SeedB: &seedB{ID: "y"}}

	cases := []struct {
		description string
		opts        []Option
		expect      string
	}{
		{"default", nil, "$.seedB.id"},
		{"no root", []Option{WithRootIndicator("")}, "seedB.id"},
		{"custom", []Option{WithRootIndicator("§"), WithPathSeparator("__")}, "§__seedB__id"},
		{"config", []Option{WithConfig(Config{RegisterDefaults: true, RootIndicator: "root", PathSeparator: "/", TagName: "diff"})}, "root/seedB/id"},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			e := MustNew(c.opts...)
			changes := e.FindChanges(left, right)
			assert.Equal(t, []string{c.expect}, changes.Paths())
		})
	}
}

func TestCustomComparator(t *testing.T) {
	caseInsensitive := NullSafe(func(e *Engine, path Path, t reflect.Type, left, right any) Changes {
		if strings.EqualFold(left.(string), right.(string)) {
			return nil
		}
		return Changes{NewValueChange(path, left, right)}
	})
	e := MustNew(WithComparator(Exact(reflect.TypeOf("")), caseInsensitive))

	assert.Empty(t, e.FindChanges("Hello", "hello"))
	assert.Len(t, e.FindChanges("Hello", "world"), 1)
	assert.Empty(t, e.FindChanges(&seedB{ID: "A"}, &seedB{ID: "a"}))

	// raw comparators see nil operands, so an empty string can stand for a
	// missing one
	var emptyIsNil ComparatorFunc = func(e *Engine, path Path, t reflect.Type, left, right any) Changes {
		l, _ := left.(*string)
		r, _ := right.(*string)
		if deref(l) == deref(r) {
			return nil
		}
		return Changes{NewValueChange(path, left, right)}
	}
	empty := ""
	e = MustNew(WithComparator(Exact(reflect.TypeOf(&empty)), emptyIsNil))
	assert.Empty(t, e.FindTypedChanges(reflect.TypeOf(&empty), (*string)(nil), &empty))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TestComparatorPrecedence(t *testing.T) {
	var calls int
	counting := ComparatorFunc(func(e *Engine, path Path, t reflect.Type, left, right any) Changes {
		calls++
		return nil
	})
	e := MustNew(
		WithComparator(OfKind(reflect.Slice), counting),
		WithComparator(OfKind(reflect.Slice), EqualityComparator()),
	)
	assert.Empty(t, e.FindChanges([]int{1}, []int{2}))
	assert.Equal(t, 1, calls)
}

func TestWithoutDefaults(t *testing.T) {
	e := MustNew(WithoutDefaults())

	changes := e.FindChanges([]string{"a"}, []string{"b"})
	require.Len(t, changes, 1)
	assert.IsType(t, &ValueChange{}, changes[0])

	// structs are still compared field by field by the default comparator
	changes = e.FindChanges(&seedB{ID: "a"}, &seedB{ID: "b"})
	assert.Equal(t, []string{"$.id"}, changes.Paths())
}

func TestDefaultComparator(t *testing.T) {
	e := MustNew(WithoutDefaults(), WithDefaultComparator(EqualityComparator()))
	changes := e.FindChanges(&seedB{ID: "a"}, &seedB{ID: "b"})
	require.Len(t, changes, 1)
	assert.Equal(t, "$", changes[0].Path().String())
}

func TestFindTypedChanges(t *testing.T) {
	e := MustNew()
	var stringer interface{ String() string }
	iface := reflect.TypeOf(&stringer).Elem()

	assert.Empty(t, e.FindTypedChanges(reflect.TypeOf(0), nil, nil))
	assert.Len(t, e.FindTypedChanges(reflect.TypeOf(0), nil, 1), 1)
	// interface types resolve to the dynamic type of the operands
	assert.Empty(t, e.FindTypedChanges(iface, nil, nil))
	assert.Len(t, e.FindTypedChanges(iface, 1, 2), 1)
}

func TestFindPathChanges(t *testing.T) {
	e := MustNew()
	path := e.BeginPath().Append("outer").Append("inner")

	changes := e.FindPathChanges(nil, path, math.Pi, 3.0)
	require.Len(t, changes, 1)
	assert.Equal(t, "$.outer.inner", changes[0].Path().String())
	assert.Equal(t, "inner", changes[0].Path().Current())
}

func TestMisconfiguration(t *testing.T) {
	stringType := reflect.TypeOf("")
	cases := []struct {
		description string
		opts        []Option
	}{
		{"nil matcher", []Option{WithComparator(nil, EqualityComparator())}},
		{"nil comparator", []Option{WithComparator(Exact(stringType), nil)}},
		{"nil supplier matcher", []Option{WithSupplier(nil, PrimitiveDefaults())}},
		{"nil supplier", []Option{WithSupplier(Exact(stringType), nil)}},
		{"nil default comparator", []Option{WithDefaultComparator(nil)}},
		{"nil default supplier", []Option{WithDefaultSupplier(nil)}},
		{"nil logger", []Option{WithLogger(nil)}},
		{"empty tag name", []Option{WithTagName("")}},
		{"empty tag name config", []Option{WithConfig(Config{})}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			e, err := New(c.opts...)
			assert.Nil(t, e)
			if !errors.Is(err, ErrMisconfigured) {
				t.Errorf("expected ErrMisconfigured, got: %v", err)
			}
			assert.Panics(t, func() { MustNew(c.opts...) })
		})
	}
}

func TestDefaultInstance(t *testing.T) {
	e := MustNew(WithSupplier(Exact(reflect.TypeOf(&seedB{})), func(reflect.Type) any {
		return &seedB{Name: "unknown"}
	}))

	assert.Equal(t, 0, e.DefaultInstance(reflect.TypeOf(0)))
	assert.Equal(t, "", e.DefaultInstance(reflect.TypeOf("")))
	assert.Equal(t, false, e.DefaultInstance(reflect.TypeOf(true)))
	assert.Nil(t, e.DefaultInstance(reflect.TypeOf([]int{})))
	assert.Nil(t, e.DefaultInstance(nil))
	assert.Equal(t, &seedB{Name: "unknown"}, e.DefaultInstance(reflect.TypeOf(&seedB{})))

	// a missing nested struct is replaced by the supplied one before comparing
	changes := e.FindChanges(&seedA{}, &seedA{SeedB: &seedB{ID: "b", Name: "unknown"}})
	assert.Equal(t, []string{"$.seedB.id"}, changes.Paths())
}
