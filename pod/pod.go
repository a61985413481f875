// Package pod reinterprets bytes of the input as values of a fixed memory layout
// without copying them.
//
// The returned values alias the input buffer and use the native byte order of the
// machine. They are only valid as long as the input buffer is not modified.
// Only plain types are accepted: booleans, fixed width numbers and arrays or
// structs built from those. Types that contain pointers, strings, slices, maps,
// channels, functions or interfaces are rejected with a LayoutError.
package pod

import (
	"errors"
	"fmt"
	"github.com/go-gum/nibble"
	"reflect"
	"sync"
	"unsafe"
)

var ErrMisaligned = errors.New("misaligned input")
var ErrNotPlain = errors.New("type is not plain old data")

// LayoutError is returned if the input can not be viewed as the requested type.
type LayoutError struct {
	At   []byte
	Type reflect.Type
	Err  error
}

func (e LayoutError) Error() string {
	return fmt.Sprintf("view %s: %s", e.Type, e.Err)
}

func (e LayoutError) Is(target error) bool {
	return target == nibble.ErrLayoutMismatch
}

func (e LayoutError) Unwrap() error {
	return e.Err
}

func (e LayoutError) Remaining() []byte {
	return e.At
}

// View reinterprets the next unsafe.Sizeof(T) bytes of input as a *T. The input
// must be aligned for T.
func View[T any](input []byte) ([]byte, *T, error) {
	rest, values, err := view[T](input, 1)
	if err != nil {
		return input, nil, err
	}

	return rest, &values[0], nil
}

// Slice returns a parser that reinterprets the next count*unsafe.Sizeof(T) bytes
// of input as a []T. Slice panics if count is negative.
func Slice[T any](count int) nibble.Parser[[]T] {
	if count < 0 {
		panic("slice: negative count")
	}

	return func(input []byte) ([]byte, []T, error) {
		return view[T](input, count)
	}
}

func view[T any](input []byte, count int) ([]byte, []T, error) {
	ty := reflect.TypeFor[T]()
	if err := checkPlain(ty); err != nil {
		return input, nil, LayoutError{At: input, Type: ty, Err: err}
	}

	size := int(ty.Size())
	if size == 0 {
		// zero sized values occupy no input and need no backing memory
		return input, make([]T, count), nil
	}

	if count > len(input)/size {
		return input, nil, nibble.InsufficientBytesError{At: input, Requested: count * size}
	}

	if count == 0 {
		return input, []T{}, nil
	}

	ptr := unsafe.Pointer(unsafe.SliceData(input))
	if uintptr(ptr)%uintptr(ty.Align()) != 0 {
		return input, nil, LayoutError{At: input, Type: ty, Err: ErrMisaligned}
	}

	length := count * size
	return input[length:], unsafe.Slice((*T)(ptr), count), nil
}

// plainCache holds the result of checkPlain, indexed by reflect.Type
var plainCache sync.Map

func checkPlain(ty reflect.Type) error {
	if cached, ok := plainCache.Load(ty); ok {
		err, _ := cached.(error)
		return err
	}

	err := isPlain(ty)
	plainCache.Store(ty, err)

	return err
}

func isPlain(ty reflect.Type) error {
	switch ty.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil

	case reflect.Array:
		if err := isPlain(ty.Elem()); err != nil {
			return fmt.Errorf("element of %s: %w", ty, err)
		}

		return nil

	case reflect.Struct:
		for idx := range ty.NumField() {
			fi := ty.Field(idx)
			if err := isPlain(fi.Type); err != nil {
				return fmt.Errorf("field %q of %s: %w", fi.Name, ty, err)
			}
		}

		return nil

	default:
		return fmt.Errorf("%s: %w", ty, ErrNotPlain)
	}
}
