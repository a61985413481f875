package nibble

// Seq returns a parser that applies child exactly count times and collects the
// values in order. If a repetition fails, Seq rolls back to the input before the
// first repetition and returns a SeqError holding the failing step.
// Seq panics if count is negative.
func Seq[T any](count int, child Parser[T]) Parser[[]T] {
	if count < 0 {
		panic("seq: negative count")
	}

	return func(input []byte) ([]byte, []T, error) {
		// count may come from untrusted input, do not let it dictate the allocation
		values := make([]T, 0, min(count, len(input)))

		rest := input
		for step := range count {
			next, value, err := child(rest)
			if err != nil {
				return input, nil, SeqError{At: rest, Step: step, Err: err}
			}

			values = append(values, value)
			rest = next
		}

		return rest, values, nil
	}
}

// Opt returns a parser that applies child once. If child fails, its error is
// discarded and Opt returns an absent Option with the untouched input.
// The parser returned by Opt never fails.
func Opt[T any](child Parser[T]) Parser[Option[T]] {
	return func(input []byte) ([]byte, Option[T], error) {
		rest, value, err := child(input)
		if err != nil {
			return input, None[T](), nil
		}

		return rest, Some(value), nil
	}
}

// And returns a parser that applies one and then two on the remaining input.
// If either fails, And rolls back to its input and returns that error.
func And[A, B any](one Parser[A], two Parser[B]) Parser[Pair[A, B]] {
	return func(input []byte) ([]byte, Pair[A, B], error) {
		rest, first, err := one(input)
		if err != nil {
			return input, Pair[A, B]{}, err
		}

		rest, second, err := two(rest)
		if err != nil {
			return input, Pair[A, B]{}, err
		}

		return rest, Pair[A, B]{First: first, Second: second}, nil
	}
}

// Or returns a parser that applies one, and if that fails, two on the same input.
// The first parser that succeeds wins. The error of one is discarded, the error
// of two is returned as is.
func Or[A, B any](one Parser[A], two Parser[B]) Parser[Either[A, B]] {
	return func(input []byte) ([]byte, Either[A, B], error) {
		if rest, value, err := one(input); err == nil {
			return rest, Left[A, B](value), nil
		}

		rest, value, err := two(input)
		if err != nil {
			return input, Either[A, B]{}, err
		}

		return rest, Right[A](value), nil
	}
}

// Finish returns a parser that requires child to consume all of its input.
// Left over bytes result in a FinishError.
func Finish[T any](child Parser[T]) Parser[T] {
	return func(input []byte) ([]byte, T, error) {
		var zeroValue T

		rest, value, err := child(input)
		if err != nil {
			return input, zeroValue, err
		}

		if len(rest) != 0 {
			return input, zeroValue, FinishError{At: rest}
		}

		return rest, value, nil
	}
}

// Map returns a parser that transforms the value of parser using fn.
func Map[T, U any](parser Parser[T], fn func(T) U) Parser[U] {
	return func(input []byte) ([]byte, U, error) {
		rest, value, err := parser(input)
		if err != nil {
			var zeroValue U
			return input, zeroValue, err
		}

		return rest, fn(value), nil
	}
}

// Bind returns a parser that applies parser and then the parser returned by next
// for its value. It is used for formats where earlier values decide how to parse
// later ones, e.g. a length prefix:
//
//	Bind(U16BE, func(n uint16) Parser[[]byte] { return Take(int(n)) })
//
// If either stage fails, Bind rolls back to its input.
func Bind[T, U any](parser Parser[T], next func(T) Parser[U]) Parser[U] {
	return func(input []byte) ([]byte, U, error) {
		var zeroValue U

		rest, value, err := parser(input)
		if err != nil {
			return input, zeroValue, err
		}

		rest, result, err := next(value)(rest)
		if err != nil {
			return input, zeroValue, err
		}

		return rest, result, nil
	}
}
