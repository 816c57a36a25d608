package value

import "strconv"

// Key is a property key: a string name, a symbol, or (for map lookups) a raw key value.
// The zero Key is the empty key.
type Key struct {
	name string
	sym  *Symbol
	raw  any
}

// NewKey returns a string-named key.
func NewKey(name string) Key {
	return Key{name: name}
}

// SymbolKey returns a key for the given symbol. Its text form is the symbol's canonical form.
func SymbolKey(s *Symbol) Key {
	return Key{name: s.String(), sym: s}
}

// MapKey returns a key that addresses a map entry by its raw key value.
// raw must be comparable.
func MapKey(raw any) Key {
	raw = Normalize(raw)
	if s, ok := raw.(*Symbol); ok {
		return Key{name: s.String(), sym: s, raw: s}
	}
	return Key{name: Display(raw), raw: raw}
}

// KeyOf coerces v to a property key.
func KeyOf(v any) Key {
	switch x := v.(type) {
	case Key:
		return x
	case string:
		return NewKey(x)
	case *Symbol:
		return SymbolKey(x)
	case int:
		return NewKey(strconv.Itoa(x))
	case float64:
		return NewKey(FormatNumber(x))
	}
	if n, ok := Normalize(v).(float64); ok {
		return NewKey(FormatNumber(n))
	}
	return MapKey(v)
}

func (k Key) String() string { return k.name }

// IsSymbol reports whether the key is a symbol.
func (k Key) IsSymbol() bool { return k.sym != nil }

// Symbol returns the key's symbol, or nil.
func (k Key) Symbol() *Symbol { return k.sym }

// IsEmpty reports whether k is the empty key.
func (k Key) IsEmpty() bool {
	return k.name == "" && k.sym == nil && k.raw == nil
}

// Value returns the key as a value: the raw map key if there is one, the symbol, or the name.
func (k Key) Value() any {
	switch {
	case k.raw != nil:
		return k.raw
	case k.sym != nil:
		return k.sym
	}
	return k.name
}

// Equal compares two keys. Symbols compare by identity and never equal a string key.
func (k Key) Equal(o Key) bool {
	if k.sym != nil || o.sym != nil {
		return k.sym == o.sym
	}
	if k.raw != nil || o.raw != nil {
		return SameValueZero(k.Value(), o.Value())
	}
	return k.name == o.name
}

// Index parses the key as a canonical array index.
func (k Key) Index() (int, bool) {
	if k.sym != nil || k.name == "" || len(k.name) > 10 {
		return 0, false
	}
	if k.raw != nil {
		if _, isString := k.raw.(string); !isString {
			if _, isNumber := k.raw.(float64); !isNumber {
				return 0, false
			}
		}
	}
	if len(k.name) > 1 && k.name[0] == '0' {
		return 0, false
	}
	n := 0
	for i := 0; i < len(k.name); i++ {
		c := k.name[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n >= 1<<32-1 {
		return 0, false
	}
	return n, true
}

// Prop strips the raw map key so the key can address an own property.
func (k Key) Prop() Key {
	return Key{name: k.name, sym: k.sym}
}

const lengthKey = "length"

// IsLength reports whether k is the array length pseudo-property.
func (k Key) IsLength() bool {
	return k.sym == nil && k.name == lengthKey
}
