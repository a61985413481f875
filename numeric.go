package nibble

import (
	"encoding/binary"
	"golang.org/x/exp/constraints"
	"math"
	"unsafe"
)

var U8 = Integer[uint8](binary.LittleEndian)
var I8 = Integer[int8](binary.LittleEndian)

var U16LE = Integer[uint16](binary.LittleEndian)
var U16BE = Integer[uint16](binary.BigEndian)
var I16LE = Integer[int16](binary.LittleEndian)
var I16BE = Integer[int16](binary.BigEndian)

var U32LE = Integer[uint32](binary.LittleEndian)
var U32BE = Integer[uint32](binary.BigEndian)
var I32LE = Integer[int32](binary.LittleEndian)
var I32BE = Integer[int32](binary.BigEndian)

var U64LE = Integer[uint64](binary.LittleEndian)
var U64BE = Integer[uint64](binary.BigEndian)
var I64LE = Integer[int64](binary.LittleEndian)
var I64BE = Integer[int64](binary.BigEndian)

var F32LE = Float[float32](binary.LittleEndian)
var F32BE = Float[float32](binary.BigEndian)
var F64LE = Float[float64](binary.LittleEndian)
var F64BE = Float[float64](binary.BigEndian)

// Integer returns a parser that decodes a fixed-width integer of type T
// in the given byte order. It consumes exactly unsafe.Sizeof(T) bytes.
func Integer[T constraints.Integer](order binary.ByteOrder) Parser[T] {
	var decode func([]byte) T

	size := int(unsafe.Sizeof(T(0)))
	switch size {
	case 1:
		decode = func(b []byte) T { return T(b[0]) }
	case 2:
		decode = func(b []byte) T { return T(order.Uint16(b)) }
	case 4:
		decode = func(b []byte) T { return T(order.Uint32(b)) }
	case 8:
		decode = func(b []byte) T { return T(order.Uint64(b)) }
	default:
		panic("integer must be 1, 2, 4 or 8 byte")
	}

	return fixed(size, decode)
}

// Float returns a parser that decodes an IEEE 754 float of type T
// in the given byte order.
func Float[T constraints.Float](order binary.ByteOrder) Parser[T] {
	var decode func([]byte) T

	size := int(unsafe.Sizeof(T(0)))
	switch size {
	case 4:
		decode = func(b []byte) T { return T(math.Float32frombits(order.Uint32(b))) }
	case 8:
		decode = func(b []byte) T { return T(math.Float64frombits(order.Uint64(b))) }
	default:
		panic("float must be 4 or 8 byte")
	}

	return fixed(size, decode)
}

// fixed builds a parser that checks for size bytes before handing them to decode.
func fixed[T any](size int, decode func([]byte) T) Parser[T] {
	return func(input []byte) ([]byte, T, error) {
		if len(input) < size {
			var zeroValue T
			return input, zeroValue, InsufficientBytesError{At: input, Requested: size}
		}

		return input[size:], decode(input[:size]), nil
	}
}
