package value

import (
	"math"
	"slices"
)

// Method is a built-in method body. this is the receiver: the raw container, or
// a wrapper implementing Record/Indexed when the call is routed through a handle.
type Method func(this any, args []any) (any, error)

var methodTables = map[Kind]map[string]Method{
	KindObject:  objectMethods,
	KindArray:   withObjectMethods(arrayMethods),
	KindSet:     setMethods,
	KindMap:     mapMethods,
	KindDate:    dateMethods(),
	KindWeakSet: weakSetMethods,
	KindWeakMap: weakMapMethods,
}

// MethodOf resolves a built-in method for a container kind.
func MethodOf(kind Kind, name string) (Method, bool) {
	m, ok := methodTables[kind][name]
	return m, ok
}

// MethodNames lists the built-in methods of a kind, sorted.
func MethodNames(kind Kind) []string {
	names := make([]string, 0, len(methodTables[kind]))
	for name := range methodTables[kind] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve finds the callable behind name on target: a built-in method of its
// kind, or a function-valued own property.
func Resolve(target any, name string) (Method, error) {
	kind := KindOf(target)
	if m, ok := MethodOf(kind, name); ok {
		return m, nil
	}
	if v, ok := Lookup(target, NewKey(name)); ok {
		if f, isFunc := v.(*Func); isFunc {
			return func(this any, args []any) (any, error) {
				return f.Call(this, args...), nil
			}, nil
		}
	}
	return nil, notCallable(kind, name)
}

// Invoke resolves name on target and calls it with the given receiver.
func Invoke(target, this any, name string, args []any) (any, error) {
	m, err := Resolve(target, name)
	if err != nil {
		return nil, err
	}
	return m(this, args)
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return Undefined
}

func callback(name string, args []any) (*Func, error) {
	f, ok := arg(args, 0).(*Func)
	if !ok {
		return nil, notCallable(KindInvalid, name+" callback")
	}
	return f, nil
}

// relative resolves a possibly negative index argument against length n.
func relative(v any, n, def int) int {
	if IsUndefined(v) {
		return def
	}
	x := ToInteger(v)
	if x < 0 {
		return max(n+x, 0)
	}
	return min(x, n)
}

func strictEquals(a, b any) bool {
	if fa, ok := a.(float64); ok {
		fb, ok := b.(float64)
		return ok && fa == fb
	}
	return strictEqual(a, b)
}

var objectMethods = map[string]Method{
	"hasOwnProperty": func(this any, args []any) (any, error) {
		r, ok := this.(Record)
		if !ok {
			return nil, incompatible("hasOwnProperty", this)
		}
		return r.Has(arg(args, 0)), nil
	},
	"isPrototypeOf": func(any, []any) (any, error) {
		return false, nil
	},
	"propertyIsEnumerable": func(this any, args []any) (any, error) {
		r, ok := this.(Record)
		if !ok {
			return nil, incompatible("propertyIsEnumerable", this)
		}
		d, found := r.Descriptor(arg(args, 0))
		return found && d.Enumerable, nil
	},
	"toLocaleString": func(this any, _ []any) (any, error) {
		return Display(Raw(this)), nil
	},
	"toString": func(this any, _ []any) (any, error) {
		return Display(Raw(this)), nil
	},
	"valueOf": func(this any, _ []any) (any, error) {
		return this, nil
	},
}

func withObjectMethods(table map[string]Method) map[string]Method {
	out := make(map[string]Method, len(table)+len(objectMethods))
	for name, m := range objectMethods {
		out[name] = m
	}
	for name, m := range table {
		out[name] = m
	}
	return out
}

var setMethods = map[string]Method{
	"add": setMethod("add", func(s *Set, this any, args []any) (any, error) {
		s.Add(Raw(arg(args, 0)))
		return this, nil
	}),
	"clear": setMethod("clear", func(s *Set, _ any, _ []any) (any, error) {
		s.Clear()
		return Undefined, nil
	}),
	"delete": setMethod("delete", func(s *Set, _ any, args []any) (any, error) {
		return s.Delete(Raw(arg(args, 0))), nil
	}),
	"has": setMethod("has", func(s *Set, _ any, args []any) (any, error) {
		return s.Has(Raw(arg(args, 0))), nil
	}),
	"forEach": setMethod("forEach", func(s *Set, this any, args []any) (any, error) {
		fn, err := callback("forEach", args)
		if err != nil {
			return nil, err
		}
		for v := range s.Iter().All() {
			fn.Call(arg(args, 1), v, v, this)
		}
		return Undefined, nil
	}),
	"keys": setMethod("keys", func(s *Set, _ any, _ []any) (any, error) {
		return s.Iter(), nil
	}),
	"values": setMethod("values", func(s *Set, _ any, _ []any) (any, error) {
		return s.Iter(), nil
	}),
	"entries": setMethod("entries", func(s *Set, _ any, _ []any) (any, error) {
		return s.Iter().Map(func(v any) any { return Entry{Key: v, Value: v} }), nil
	}),
	"toString": setMethod("toString", func(s *Set, _ any, _ []any) (any, error) {
		return s.String(), nil
	}),
}

func setMethod(name string, fn func(s *Set, this any, args []any) (any, error)) Method {
	return func(this any, args []any) (any, error) {
		s, ok := Raw(this).(*Set)
		if !ok {
			return nil, incompatible(name, this)
		}
		return fn(s, this, args)
	}
}

var mapMethods = map[string]Method{
	"set": mapMethod("set", func(m *Map, this any, args []any) (any, error) {
		m.Set(Raw(arg(args, 0)), Raw(arg(args, 1)))
		return this, nil
	}),
	"get": mapMethod("get", func(m *Map, _ any, args []any) (any, error) {
		return m.Get(Raw(arg(args, 0))), nil
	}),
	"has": mapMethod("has", func(m *Map, _ any, args []any) (any, error) {
		return m.Has(Raw(arg(args, 0))), nil
	}),
	"delete": mapMethod("delete", func(m *Map, _ any, args []any) (any, error) {
		return m.Delete(Raw(arg(args, 0))), nil
	}),
	"clear": mapMethod("clear", func(m *Map, _ any, _ []any) (any, error) {
		m.Clear()
		return Undefined, nil
	}),
	"forEach": mapMethod("forEach", func(m *Map, this any, args []any) (any, error) {
		fn, err := callback("forEach", args)
		if err != nil {
			return nil, err
		}
		for e := range m.Iter().All() {
			entry := e.(Entry)
			fn.Call(arg(args, 1), entry.Value, entry.Key, this)
		}
		return Undefined, nil
	}),
	"keys": mapMethod("keys", func(m *Map, _ any, _ []any) (any, error) {
		return m.IterKeys(), nil
	}),
	"values": mapMethod("values", func(m *Map, _ any, _ []any) (any, error) {
		return m.IterValues(), nil
	}),
	"entries": mapMethod("entries", func(m *Map, _ any, _ []any) (any, error) {
		return m.Iter(), nil
	}),
	"toString": mapMethod("toString", func(m *Map, _ any, _ []any) (any, error) {
		return m.String(), nil
	}),
}

func mapMethod(name string, fn func(m *Map, this any, args []any) (any, error)) Method {
	return func(this any, args []any) (any, error) {
		m, ok := Raw(this).(*Map)
		if !ok {
			return nil, incompatible(name, this)
		}
		return fn(m, this, args)
	}
}

var weakSetMethods = map[string]Method{
	"add": func(this any, args []any) (any, error) {
		s, ok := Raw(this).(*WeakSet)
		if !ok {
			return nil, incompatible("add", this)
		}
		if err := s.Add(Raw(arg(args, 0))); err != nil {
			return nil, err
		}
		return this, nil
	},
	"delete": func(this any, args []any) (any, error) {
		s, ok := Raw(this).(*WeakSet)
		if !ok {
			return nil, incompatible("delete", this)
		}
		return s.Delete(Raw(arg(args, 0))), nil
	},
	"has": func(this any, args []any) (any, error) {
		s, ok := Raw(this).(*WeakSet)
		if !ok {
			return nil, incompatible("has", this)
		}
		return s.Has(Raw(arg(args, 0))), nil
	},
}

var weakMapMethods = map[string]Method{
	"set": func(this any, args []any) (any, error) {
		m, ok := Raw(this).(*WeakMap)
		if !ok {
			return nil, incompatible("set", this)
		}
		if err := m.Set(Raw(arg(args, 0)), Raw(arg(args, 1))); err != nil {
			return nil, err
		}
		return this, nil
	},
	"get": func(this any, args []any) (any, error) {
		m, ok := Raw(this).(*WeakMap)
		if !ok {
			return nil, incompatible("get", this)
		}
		return m.Get(Raw(arg(args, 0))), nil
	},
	"has": func(this any, args []any) (any, error) {
		m, ok := Raw(this).(*WeakMap)
		if !ok {
			return nil, incompatible("has", this)
		}
		return m.Has(Raw(arg(args, 0))), nil
	},
	"delete": func(this any, args []any) (any, error) {
		m, ok := Raw(this).(*WeakMap)
		if !ok {
			return nil, incompatible("delete", this)
		}
		return m.Delete(Raw(arg(args, 0))), nil
	},
}

func dateMethods() map[string]Method {
	table := map[string]Method{
		"getTime": dateMethod("getTime", func(d *Date, _ []any) any { return d.Time() }),
		"valueOf": dateMethod("valueOf", func(d *Date, _ []any) any { return d.Time() }),
		"setTime": dateMethod("setTime", func(d *Date, args []any) any {
			return d.SetTime(ToNumber(arg(args, 0)))
		}),
		"getDay": dateMethod("getDay", func(d *Date, _ []any) any {
			if !d.Valid() {
				return math.NaN()
			}
			return float64(d.GoTime().Weekday())
		}),
		"toISOString": dateMethod("toISOString", func(d *Date, _ []any) any { return d.ISOString() }),
		"toJSON":      dateMethod("toJSON", func(d *Date, _ []any) any { return d.ISOString() }),
		"toString":    dateMethod("toString", func(d *Date, _ []any) any { return d.String() }),
	}
	fields := map[string]dateField{
		"FullYear":     fieldYear,
		"Month":        fieldMonth,
		"Date":         fieldDay,
		"Hours":        fieldHours,
		"Minutes":      fieldMinutes,
		"Seconds":      fieldSeconds,
		"Milliseconds": fieldMillis,
	}
	for suffix, f := range fields {
		get := func(d *Date, _ []any) any { return d.field(f) }
		set := func(d *Date, args []any) any { return d.setField(f, ToNumber(arg(args, 0))) }
		table["get"+suffix] = dateMethod("get"+suffix, get)
		table["getUTC"+suffix] = dateMethod("getUTC"+suffix, get)
		table["set"+suffix] = dateMethod("set"+suffix, set)
		table["setUTC"+suffix] = dateMethod("setUTC"+suffix, set)
	}
	return table
}

func dateMethod(name string, fn func(d *Date, args []any) any) Method {
	return func(this any, args []any) (any, error) {
		d, ok := Raw(this).(*Date)
		if !ok {
			return nil, incompatible(name, this)
		}
		return fn(d, args), nil
	}
}
