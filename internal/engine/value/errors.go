package value

import "go.trai.ch/zerr"

var (
	// ErrNotCallable is returned when a method name does not resolve to a function.
	ErrNotCallable = zerr.New("value is not callable")

	// ErrIncompatibleReceiver is returned when a method runs against the wrong container kind.
	ErrIncompatibleReceiver = zerr.New("method called on incompatible receiver")

	// ErrInvalidWeakKey is returned when a weak collection is given a non-reference key.
	ErrInvalidWeakKey = zerr.New("invalid value used as weak collection key")
)

func invalidWeakKey(v any) error {
	return zerr.With(zerr.Wrap(ErrInvalidWeakKey, "weak collections only hold references"), "key", Display(v))
}

func notCallable(kind Kind, name string) error {
	return zerr.With(zerr.With(zerr.Wrap(ErrNotCallable, "method lookup failed"), "kind", kind.String()), "method", name)
}

func incompatible(name string, this any) error {
	return zerr.With(zerr.Wrap(ErrIncompatibleReceiver, "receiver mismatch"), "method", name+" on "+KindOf(this).String())
}
