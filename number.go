package structdiff

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/shopspring/decimal"
)

var (
	jsonNumberType = reflect.TypeOf(json.Number(""))
	bigIntType     = reflect.TypeOf(big.Int{})
	bigFloatType   = reflect.TypeOf(big.Float{})
	decimalType    = reflect.TypeOf(decimal.Decimal{})

	numberTypes = []reflect.Type{
		jsonNumberType,
		bigIntType, reflect.PointerTo(bigIntType),
		bigFloatType, reflect.PointerTo(bigFloatType),
		decimalType, reflect.PointerTo(decimalType),
	}

	isNumberType = numberMatcher()
)

func numberMatcher() Matcher {
	return OfKind(
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
	).Or(AnyOf(numberTypes...))
}

// isNumber reports whether v is a value the number comparator can widen.
// two numbers of different types are still compared by value
func isNumber(v any) bool {
	return v != nil && isNumberType(reflect.TypeOf(v))
}

// NumberComparator compares numbers by exact decimal value, so int32(7),
// int64(7) and float64(7) are all unchanged against each other. NaN only
// equals NaN, infinities only equal the infinity of the same sign. Values
// that can't be widened to a decimal are parsed from their text form; if
// neither side parses the pair is unchanged, if only one does it changed
func NumberComparator() Comparator {
	return NullSafe(findNumberChanges)
}

func findNumberChanges(e *Engine, path Path, t reflect.Type, left, right any) Changes {
	if sameValue(left, right) || !numberChanged(left, right) {
		return nil
	}
	return Changes{NewValueChange(path, left, right)}
}

func sameValue(left, right any) bool {
	lt := reflect.TypeOf(left)
	if lt != reflect.TypeOf(right) {
		return false
	}
	if lt.Comparable() {
		return left == right
	}
	return reflect.DeepEqual(left, right)
}

func numberChanged(left, right any) bool {
	if changed, special := compareSpecial(left, right); special {
		return changed
	}
	l, lok := toDecimal(left)
	r, rok := toDecimal(right)
	if lok && rok {
		return !l.Equal(r)
	}
	return lok != rok
}

// compareSpecial settles comparisons involving NaN or an infinity, which
// have no decimal representation
func compareSpecial(left, right any) (changed, special bool) {
	l, lok := floatOf(left)
	r, rok := floatOf(right)
	lspecial := lok && (math.IsNaN(l) || math.IsInf(l, 0))
	rspecial := rok && (math.IsNaN(r) || math.IsInf(r, 0))
	if !lspecial && !rspecial {
		return false, false
	}
	if !lok || !rok {
		return true, true
	}
	if math.IsNaN(l) && math.IsNaN(r) {
		return false, true
	}
	return l != r, true
}

func floatOf(v any) (float64, bool) {
	switch f := v.(type) {
	case *big.Float:
		if f.IsInf() {
			return math.Inf(f.Sign()), true
		}
		return 0, false
	case big.Float:
		if f.IsInf() {
			return math.Inf(f.Sign()), true
		}
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		return *n, true
	case *big.Int:
		return decimal.NewFromBigInt(n, 0), true
	case big.Int:
		return decimal.NewFromBigInt(&n, 0), true
	case *big.Float:
		return parseDecimal(n.Text('g', -1))
	case big.Float:
		return parseDecimal(n.Text('g', -1))
	case json.Number:
		return parseDecimal(n.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(rv.Uint()), 0), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}
		if rv.Kind() == reflect.Float32 {
			return decimal.NewFromFloat32(float32(f)), true
		}
		return decimal.NewFromFloat(f), true
	}
	return parseDecimal(fmt.Sprint(v))
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
