package watch

import "github.com/Viskhan-95/golden-chicken/internal/engine/value"

// diffFunc decides whether a method call changed its receiver, given the
// frame holding the before-image and the live receiver.
type diffFunc func(f *cloneFrame, live any) bool

// inspectionMethods are the object methods intercepted at all; objects are
// otherwise mutated through property traps.
var inspectionMethods = set("hasOwnProperty", "isPrototypeOf", "propertyIsEnumerable", "toLocaleString", "toString", "valueOf")

var arrayReaders = set("concat", "includes", "indexOf", "join", "keys", "lastIndexOf")

var arrayMutators = map[string]diffFunc{
	"push":       diffCertain,
	"pop":        diffCertain,
	"shift":      diffCertain,
	"unshift":    diffCertain,
	"copyWithin": diffArrays,
	"reverse":    diffArrays,
	"sort":       diffArrays,
	"splice":     diffArrays,
	"flat":       diffArrays,
	"fill":       diffArrays,
}

var setMutators = map[string]diffFunc{
	"add":     diffSets,
	"clear":   diffSets,
	"delete":  diffSets,
	"forEach": diffSets,
}

var mapMutators = map[string]diffFunc{
	"set":     diffMaps,
	"clear":   diffMaps,
	"delete":  diffMaps,
	"forEach": diffMaps,
}

var iteratorMethods = set("keys", "values", "entries")

var setReaders = union(set("has", "toString"), iteratorMethods)

var mapReaders = union(set("get", "has", "toString"), iteratorMethods)

func set(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func union(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for n := range a {
		out[n] = struct{}{}
	}
	for n := range b {
		out[n] = struct{}{}
	}
	return out
}

// isHandledMethod reports whether a call runs against the raw receiver with a
// dedicated change check, rather than through the handle.
func isHandledMethod(kind value.Kind, name string) bool {
	has := func(m map[string]struct{}) bool {
		_, ok := m[name]
		return ok
	}
	switch kind {
	case value.KindObject:
		return has(inspectionMethods)
	case value.KindArray:
		_, mut := arrayMutators[name]
		return mut || has(arrayReaders) || has(inspectionMethods)
	case value.KindSet:
		_, mut := setMutators[name]
		return mut || has(setReaders)
	case value.KindMap:
		_, mut := mapMutators[name]
		return mut || has(mapReaders)
	case value.KindDate, value.KindWeakSet, value.KindWeakMap:
		return true
	}
	return false
}

// changeCheck returns the change predicate for a handled method, or nil when
// the method cannot change its receiver.
func changeCheck(kind value.Kind, name string) diffFunc {
	switch kind {
	case value.KindArray:
		return arrayMutators[name]
	case value.KindSet:
		return setMutators[name]
	case value.KindMap:
		return mapMutators[name]
	case value.KindDate:
		return diffDates
	case value.KindWeakSet, value.KindWeakMap:
		return diffWeak
	}
	return nil
}

// detailable reports whether a kind can run its methods through the handle so
// that every element write is reported on its own.
func detailable(kind value.Kind) bool {
	return kind == value.KindObject || kind == value.KindArray
}

func diffCertain(*cloneFrame, any) bool { return true }

func diffArrays(f *cloneFrame, live any) bool {
	before, ok1 := f.clone.(*value.Array)
	after, ok2 := live.(*value.Array)
	if !ok1 || !ok2 || before.Len() != after.Len() {
		return true
	}
	for i := range before.Len() {
		if !value.SameValue(before.Index(i), after.Index(i)) {
			return true
		}
	}
	return false
}

func diffSets(f *cloneFrame, live any) bool {
	before, ok1 := f.clone.(*value.Set)
	after, ok2 := live.(*value.Set)
	if !ok1 || !ok2 || before.Size() != after.Size() {
		return true
	}
	for _, v := range before.Values() {
		if !after.Has(v) {
			return true
		}
	}
	return false
}

func diffMaps(f *cloneFrame, live any) bool {
	before, ok1 := f.clone.(*value.Map)
	after, ok2 := live.(*value.Map)
	if !ok1 || !ok2 || before.Size() != after.Size() {
		return true
	}
	for _, e := range before.Entries() {
		v, ok := after.Lookup(e.Key)
		if !ok || !value.SameValue(v, e.Value) {
			return true
		}
	}
	return false
}

func diffDates(f *cloneFrame, live any) bool {
	before, ok1 := f.clone.(*value.Date)
	after, ok2 := live.(*value.Date)
	return !ok1 || !ok2 || !value.SameValue(before.Time(), after.Time())
}

// diffWeak compares the single entry touched by the call; weak collections cannot be enumerated.
func diffWeak(f *cloneFrame, live any) bool {
	had, prev := f.weak.had, f.weak.value
	switch c := live.(type) {
	case *value.WeakSet:
		return had != c.Has(f.weak.key)
	case *value.WeakMap:
		v, ok := c.Lookup(f.weak.key)
		return had != ok || !value.SameValue(v, prev)
	}
	return false
}
