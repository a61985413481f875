package nibble

// Option is the result of Opt. Ok reports if Value is present.
type Option[T any] struct {
	Value T
	Ok    bool
}

func Some[T any](value T) Option[T] {
	return Option[T]{Value: value, Ok: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Ok
}

// Or returns the value if present, fallback otherwise.
func (o Option[T]) Or(fallback T) T {
	if o.Ok {
		return o.Value
	}

	return fallback
}

// Pair is the result of And.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Either is the result of Or. If IsRight is set, Right holds the value of
// the second parser, otherwise Left holds the value of the first one.
type Either[A, B any] struct {
	Left    A
	Right   B
	IsRight bool
}

func Left[A, B any](value A) Either[A, B] {
	return Either[A, B]{Left: value}
}

func Right[A, B any](value B) Either[A, B] {
	return Either[A, B]{Right: value, IsRight: true}
}
