// Package value implements the dynamic value model observed by the watch engine:
// ordered objects with property descriptors, arrays, sets, maps, dates and weak
// collections, plus the per-kind method tables that operate on them.
package value

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the container variant behind a value.
// It is resolved once when a value is wrapped and drives method dispatch.
type Kind uint8

const (
	// KindInvalid marks primitives, functions, symbols and anything else that cannot be observed.
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindDate
	KindSet
	KindMap
	KindWeakSet
	KindWeakMap
)

var kindNames = [...]string{"invalid", "object", "array", "date", "set", "map", "weakset", "weakmap"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf reports the container kind of v.
func KindOf(v any) Kind {
	switch x := v.(type) {
	case *Object:
		if x != nil {
			return KindObject
		}
	case *Array:
		if x != nil {
			return KindArray
		}
	case *Date:
		if x != nil {
			return KindDate
		}
	case *Set:
		if x != nil {
			return KindSet
		}
	case *Map:
		if x != nil {
			return KindMap
		}
	case *WeakSet:
		if x != nil {
			return KindWeakSet
		}
	case *WeakMap:
		if x != nil {
			return KindWeakMap
		}
	}
	return KindInvalid
}

// IsContainer reports whether v is one of the observable container kinds.
func IsContainer(v any) bool {
	return KindOf(v) != KindInvalid
}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the value of a missing property or an absent argument.
var Undefined any = undefined{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Symbol is a unique property key. Two symbols are equal only by identity.
type Symbol struct {
	desc string
}

// NewSymbol creates a fresh symbol with the given description.
func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc}
}

// Description returns the text the symbol was created with.
func (s *Symbol) Description() string { return s.desc }

func (s *Symbol) String() string { return "Symbol(" + s.desc + ")" }

// Func is a callable value. Methods, accessors and callbacks are all Funcs;
// accessor identity is pointer identity.
type Func struct {
	name string
	fn   func(this any, args ...any) any
}

// NewFunc wraps fn as a named callable.
func NewFunc(name string, fn func(this any, args ...any) any) *Func {
	return &Func{name: name, fn: fn}
}

// Name returns the function name.
func (f *Func) Name() string { return f.name }

// Call invokes the function with the given receiver.
func (f *Func) Call(this any, args ...any) any {
	if f == nil || f.fn == nil {
		return Undefined
	}
	return f.fn(this, args...)
}

func (f *Func) String() string { return "function " + f.name + "() { [native code] }" }

// Normalize converts Go scalars to the model's primitive set: every number
// becomes float64 and time.Time becomes a *Date. Other values pass through.
func Normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case time.Time:
		return NewDate(x)
	}
	return v
}

// ToNumber converts a primitive to a float64 the way arithmetic coercion does.
func ToNumber(v any) float64 {
	switch x := Normalize(v).(type) {
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	case nil:
		return 0
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case *Date:
		return x.Time()
	}
	return math.NaN()
}

// ToInteger truncates ToNumber towards zero, mapping NaN to 0.
func ToInteger(v any) int {
	f := ToNumber(v)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

// Truthy reports the boolean coercion of v.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil, undefined:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	}
	if n, ok := Normalize(v).(float64); ok {
		return n != 0 && !math.IsNaN(n)
	}
	return true
}

// FormatNumber renders a float64 the way string coercion does.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Display renders v with string coercion semantics.
func Display(v any) string {
	return display(v, nil)
}

func display(v any, seen map[*Array]struct{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return FormatNumber(x)
	case string:
		return x
	case *Array:
		if seen == nil {
			seen = make(map[*Array]struct{})
		}
		if _, cyclic := seen[x]; cyclic {
			return ""
		}
		seen[x] = struct{}{}
		defer delete(seen, x)
		parts := make([]string, x.Len())
		for i := range parts {
			e := x.Index(i)
			if e == nil || IsUndefined(e) {
				continue
			}
			parts[i] = display(e, seen)
		}
		return strings.Join(parts, ",")
	case *Object:
		return "[object Object]"
	case *Set:
		return "[object Set]"
	case *Map:
		return "[object Map]"
	case *WeakSet:
		return "[object WeakSet]"
	case *WeakMap:
		return "[object WeakMap]"
	case fmt.Stringer:
		return x.String()
	}
	if n, ok := Normalize(v).(float64); ok {
		return FormatNumber(n)
	}
	return fmt.Sprint(v)
}

// SameValue is the identity-like equality used by default for change detection:
// NaN equals NaN, +0 and -0 differ, containers compare by reference.
func SameValue(a, b any) bool {
	if fa, ok := a.(float64); ok {
		fb, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb && math.Signbit(fa) == math.Signbit(fb)
	}
	return strictEqual(a, b)
}

// SameValueZero is SameValue except that +0 and -0 are equal. Sets and maps use it for membership.
func SameValueZero(a, b any) bool {
	if fa, ok := a.(float64); ok {
		fb, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	}
	return strictEqual(a, b)
}

func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
