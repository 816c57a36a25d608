package value

import (
	"cmp"
	"slices"
	"strings"
)

var arrayMethods = map[string]Method{
	"push":        arrayMethod("push", arrayPush),
	"pop":         arrayMethod("pop", arrayPop),
	"shift":       arrayMethod("shift", arrayShift),
	"unshift":     arrayMethod("unshift", arrayUnshift),
	"splice":      arrayMethod("splice", arraySplice),
	"reverse":     arrayMethod("reverse", arrayReverse),
	"sort":        arrayMethod("sort", arraySort),
	"fill":        arrayMethod("fill", arrayFill),
	"copyWithin":  arrayMethod("copyWithin", arrayCopyWithin),
	"flat":        arrayMethod("flat", arrayFlat),
	"concat":      arrayMethod("concat", arrayConcat),
	"includes":    arrayMethod("includes", arrayIncludes),
	"indexOf":     arrayMethod("indexOf", arrayIndexOf),
	"lastIndexOf": arrayMethod("lastIndexOf", arrayLastIndexOf),
	"join":        arrayMethod("join", arrayJoin),
	"keys":        arrayMethod("keys", arrayKeys),
	"values":      arrayMethod("values", arrayValues),
	"entries":     arrayMethod("entries", arrayEntries),
	"slice":       arrayMethod("slice", arraySlice),
	"map":         arrayMethod("map", arrayMap),
	"filter":      arrayMethod("filter", arrayFilter),
	"find":        arrayMethod("find", arrayFind),
	"findIndex":   arrayMethod("findIndex", arrayFindIndex),
	"forEach":     arrayMethod("forEach", arrayForEach),
	"some":        arrayMethod("some", arraySome),
	"every":       arrayMethod("every", arrayEvery),
	"reduce":      arrayMethod("reduce", arrayReduce),
	"at":          arrayMethod("at", arrayAt),
	"toString": arrayMethod("toString", func(a Indexed, _ any, _ []any) (any, error) {
		return arrayJoin(a, nil, nil)
	}),
}

func arrayMethod(name string, fn func(a Indexed, this any, args []any) (any, error)) Method {
	return func(this any, args []any) (any, error) {
		a, ok := this.(Indexed)
		if !ok {
			return nil, incompatible(name, this)
		}
		if _, isArray := Raw(this).(*Array); !isArray {
			return nil, incompatible(name, this)
		}
		return fn(a, this, args)
	}
}

func arrayPush(a Indexed, _ any, args []any) (any, error) {
	n := a.Len()
	for i, v := range args {
		a.SetIndex(n+i, v)
	}
	a.SetLen(n + len(args))
	return float64(n + len(args)), nil
}

func arrayPop(a Indexed, _ any, _ []any) (any, error) {
	n := a.Len()
	if n == 0 {
		a.SetLen(0)
		return Undefined, nil
	}
	v := a.Index(n - 1)
	a.DeleteIndex(n - 1)
	a.SetLen(n - 1)
	return v, nil
}

func arrayShift(a Indexed, _ any, _ []any) (any, error) {
	n := a.Len()
	if n == 0 {
		a.SetLen(0)
		return Undefined, nil
	}
	first := a.Index(0)
	for k := 1; k < n; k++ {
		a.SetIndex(k-1, a.Index(k))
	}
	a.DeleteIndex(n - 1)
	a.SetLen(n - 1)
	return first, nil
}

func arrayUnshift(a Indexed, _ any, args []any) (any, error) {
	n, c := a.Len(), len(args)
	if c > 0 {
		for k := n - 1; k >= 0; k-- {
			a.SetIndex(k+c, a.Index(k))
		}
		for i, v := range args {
			a.SetIndex(i, v)
		}
	}
	a.SetLen(n + c)
	return float64(n + c), nil
}

func arraySplice(a Indexed, _ any, args []any) (any, error) {
	n := a.Len()
	start := relative(arg(args, 0), n, 0)
	del := 0
	switch len(args) {
	case 0:
	case 1:
		del = n - start
	default:
		del = min(max(ToInteger(args[1]), 0), n-start)
	}
	var items []any
	if len(args) > 2 {
		items = args[2:]
	}
	removed := &Array{elems: make([]any, del)}
	for i := range del {
		removed.elems[i] = Raw(a.Index(start + i))
	}
	c := len(items)
	switch {
	case c < del:
		for k := start; k < n-del; k++ {
			a.SetIndex(k+c, a.Index(k+del))
		}
		for k := n; k > n-del+c; k-- {
			a.DeleteIndex(k - 1)
		}
	case c > del:
		for k := n - del; k > start; k-- {
			a.SetIndex(k+c-1, a.Index(k+del-1))
		}
	}
	for i, v := range items {
		a.SetIndex(start+i, v)
	}
	a.SetLen(n - del + c)
	return removed, nil
}

func arrayReverse(a Indexed, this any, _ []any) (any, error) {
	for lo, hi := 0, a.Len()-1; lo < hi; lo, hi = lo+1, hi-1 {
		l, h := a.Index(lo), a.Index(hi)
		a.SetIndex(lo, h)
		a.SetIndex(hi, l)
	}
	return this, nil
}

func arraySort(a Indexed, this any, args []any) (any, error) {
	items := make([]any, a.Len())
	for i := range items {
		items[i] = a.Index(i)
	}
	compare := func(x, y any) int {
		return cmp.Compare(Display(Raw(x)), Display(Raw(y)))
	}
	if f, ok := arg(args, 0).(*Func); ok {
		compare = func(x, y any) int {
			r := ToNumber(f.Call(Undefined, x, y))
			switch {
			case r < 0:
				return -1
			case r > 0:
				return 1
			}
			return 0
		}
	}
	slices.SortStableFunc(items, func(x, y any) int {
		xu, yu := IsUndefined(x), IsUndefined(y)
		switch {
		case xu && yu:
			return 0
		case xu:
			return 1
		case yu:
			return -1
		}
		return compare(x, y)
	})
	for i, v := range items {
		a.SetIndex(i, v)
	}
	return this, nil
}

func arrayFill(a Indexed, this any, args []any) (any, error) {
	n := a.Len()
	end := relative(arg(args, 2), n, n)
	for i := relative(arg(args, 1), n, 0); i < end; i++ {
		a.SetIndex(i, arg(args, 0))
	}
	return this, nil
}

func arrayCopyWithin(a Indexed, this any, args []any) (any, error) {
	n := a.Len()
	to := relative(arg(args, 0), n, 0)
	from := relative(arg(args, 1), n, 0)
	end := relative(arg(args, 2), n, n)
	count := min(end-from, n-to)
	if count <= 0 {
		return this, nil
	}
	buf := make([]any, count)
	for i := range buf {
		buf[i] = a.Index(from + i)
	}
	for i, v := range buf {
		a.SetIndex(to+i, v)
	}
	return this, nil
}

func arrayFlat(a Indexed, _ any, args []any) (any, error) {
	depth := 1
	if !IsUndefined(arg(args, 0)) {
		depth = ToInteger(args[0])
	}
	out := &Array{}
	flatten(out, a, depth)
	return out, nil
}

func flatten(out *Array, a Indexed, depth int) {
	for i := range a.Len() {
		v := Raw(a.Index(i))
		if inner, ok := v.(*Array); ok && depth > 0 {
			flatten(out, inner, depth-1)
			continue
		}
		if r, ok := a.(*Array); ok && !r.HasIndex(i) {
			continue
		}
		out.elems = append(out.elems, v)
	}
}

func arrayConcat(a Indexed, _ any, args []any) (any, error) {
	out := &Array{elems: make([]any, 0, a.Len())}
	for i := range a.Len() {
		out.elems = append(out.elems, Raw(a.Index(i)))
	}
	for _, item := range args {
		if inner, ok := Raw(item).(*Array); ok {
			out.elems = append(out.elems, inner.Values()...)
			continue
		}
		out.elems = append(out.elems, Raw(item))
	}
	return out, nil
}

func arrayIncludes(a Indexed, _ any, args []any) (any, error) {
	needle := Raw(arg(args, 0))
	for i := relative(arg(args, 1), a.Len(), 0); i < a.Len(); i++ {
		if SameValueZero(Raw(a.Index(i)), needle) {
			return true, nil
		}
	}
	return false, nil
}

func arrayIndexOf(a Indexed, _ any, args []any) (any, error) {
	needle := Raw(arg(args, 0))
	for i := relative(arg(args, 1), a.Len(), 0); i < a.Len(); i++ {
		if strictEquals(Raw(a.Index(i)), needle) {
			return float64(i), nil
		}
	}
	return float64(-1), nil
}

func arrayLastIndexOf(a Indexed, _ any, args []any) (any, error) {
	needle := Raw(arg(args, 0))
	for i := a.Len() - 1; i >= 0; i-- {
		if strictEquals(Raw(a.Index(i)), needle) {
			return float64(i), nil
		}
	}
	return float64(-1), nil
}

func arrayJoin(a Indexed, _ any, args []any) (any, error) {
	sep := ","
	if s, ok := arg(args, 0).(string); ok {
		sep = s
	}
	parts := make([]string, a.Len())
	for i := range parts {
		v := Raw(a.Index(i))
		if v == nil || IsUndefined(v) {
			continue
		}
		parts[i] = Display(v)
	}
	return strings.Join(parts, sep), nil
}

func arrayKeys(a Indexed, _ any, _ []any) (any, error) {
	i := 0
	return NewIterator(func() (any, bool) {
		if i >= a.Len() {
			return nil, false
		}
		i++
		return float64(i - 1), true
	}), nil
}

func arrayValues(a Indexed, _ any, _ []any) (any, error) {
	i := 0
	return NewIterator(func() (any, bool) {
		if i >= a.Len() {
			return nil, false
		}
		i++
		return a.Index(i - 1), true
	}), nil
}

func arrayEntries(a Indexed, _ any, _ []any) (any, error) {
	i := 0
	return NewIterator(func() (any, bool) {
		if i >= a.Len() {
			return nil, false
		}
		i++
		return Entry{Key: float64(i - 1), Value: a.Index(i - 1)}, true
	}), nil
}

func arraySlice(a Indexed, _ any, args []any) (any, error) {
	n := a.Len()
	start := relative(arg(args, 0), n, 0)
	end := relative(arg(args, 1), n, n)
	out := &Array{}
	for i := start; i < end; i++ {
		out.elems = append(out.elems, Raw(a.Index(i)))
	}
	return out, nil
}

// each runs the callback over every element until it returns false.
func each(a Indexed, this any, args []any, name string, visit func(i int, v, result any) bool) error {
	fn, err := callback(name, args)
	if err != nil {
		return err
	}
	thisArg := arg(args, 1)
	for i := 0; i < a.Len(); i++ {
		v := a.Index(i)
		if !visit(i, v, fn.Call(thisArg, v, float64(i), this)) {
			return nil
		}
	}
	return nil
}

func arrayMap(a Indexed, this any, args []any) (any, error) {
	out := &Array{elems: make([]any, 0, a.Len())}
	err := each(a, this, args, "map", func(_ int, _, r any) bool {
		out.elems = append(out.elems, Normalize(Raw(r)))
		return true
	})
	return out, err
}

func arrayFilter(a Indexed, this any, args []any) (any, error) {
	out := &Array{}
	err := each(a, this, args, "filter", func(_ int, v, r any) bool {
		if Truthy(r) {
			out.elems = append(out.elems, Raw(v))
		}
		return true
	})
	return out, err
}

func arrayFind(a Indexed, this any, args []any) (any, error) {
	found := Undefined
	err := each(a, this, args, "find", func(_ int, v, r any) bool {
		if Truthy(r) {
			found = v
			return false
		}
		return true
	})
	return found, err
}

func arrayFindIndex(a Indexed, this any, args []any) (any, error) {
	found := -1
	err := each(a, this, args, "findIndex", func(i int, _, r any) bool {
		if Truthy(r) {
			found = i
			return false
		}
		return true
	})
	return float64(found), err
}

func arrayForEach(a Indexed, this any, args []any) (any, error) {
	err := each(a, this, args, "forEach", func(int, any, any) bool { return true })
	return Undefined, err
}

func arraySome(a Indexed, this any, args []any) (any, error) {
	hit := false
	err := each(a, this, args, "some", func(_ int, _, r any) bool {
		hit = Truthy(r)
		return !hit
	})
	return hit, err
}

func arrayEvery(a Indexed, this any, args []any) (any, error) {
	all := true
	err := each(a, this, args, "every", func(_ int, _, r any) bool {
		all = Truthy(r)
		return all
	})
	return all, err
}

func arrayReduce(a Indexed, this any, args []any) (any, error) {
	fn, err := callback("reduce", args)
	if err != nil {
		return nil, err
	}
	i, acc := 0, arg(args, 1)
	if len(args) < 2 {
		if a.Len() == 0 {
			return nil, notCallable(KindArray, "reduce of empty array with no initial value")
		}
		acc, i = a.Index(0), 1
	}
	for ; i < a.Len(); i++ {
		acc = fn.Call(Undefined, acc, a.Index(i), float64(i), this)
	}
	return acc, nil
}

func arrayAt(a Indexed, _ any, args []any) (any, error) {
	i := ToInteger(arg(args, 0))
	if i < 0 {
		i += a.Len()
	}
	if i < 0 || i >= a.Len() {
		return Undefined, nil
	}
	return a.Index(i), nil
}
