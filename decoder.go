package nibble

import (
	"encoding/binary"
	"fmt"
	"golang.org/x/exp/constraints"
	"reflect"
	"sync"
)

// Unmarshaler is implemented by types that decode themselves from a prefix of
// the input. UnmarshalPrefix returns the input that is left after decoding.
type Unmarshaler interface {
	UnmarshalPrefix(input []byte) ([]byte, error)
}

// Struct returns a parser that decodes T field by field using the default Decoder.
func Struct[T any]() Parser[T] {
	return StructWith[T](&dec)
}

// StructWith returns a parser that decodes T field by field using the given Decoder.
// If T has no fixed binary layout, the parser always fails with a NotSupportedError.
func StructWith[T any](dec *Decoder) Parser[T] {
	setter, err := dec.setterOf(reflect.TypeFor[T](), dec.byteOrder())

	return func(input []byte) ([]byte, T, error) {
		var target T
		if err != nil {
			return input, target, err
		}

		rest, err := setter(input, reflect.ValueOf(&target).Elem())
		if err != nil {
			var zeroValue T
			return input, zeroValue, err
		}

		return rest, target, nil
	}
}

// Unmarshal decodes buf into target using the default Decoder.
// buf must be consumed entirely.
func Unmarshal(buf []byte, target any) error {
	return dec.Unmarshal(buf, target)
}

func UnmarshalNew[T any](buf []byte) (T, error) {
	return Run(Struct[T](), buf)
}

func UnmarshalNewWith[T any](dec *Decoder, buf []byte) (T, error) {
	return Run(StructWith[T](dec), buf)
}

// A setter decodes a prefix of the input into the reflect.Value and returns the remaining input
type setter func([]byte, reflect.Value) ([]byte, error)

type setterKey struct {
	Type  reflect.Type
	Order binary.ByteOrder
}

var tyUnmarshaler = reflect.TypeFor[Unmarshaler]()
var tyUint128 = reflect.TypeFor[Uint128]()
var tyInt128 = reflect.TypeFor[Int128]()

// The default Decoder instance.
var dec Decoder

// Decoder builds parsers for fixed-layout structs. A Decoder is safe for concurrent use.
type Decoder struct {
	// the struct tag that is used
	structTag string

	// the byte order used for fields without an explicit order
	order binary.ByteOrder

	// Cache for setters, indexed by setterKey
	setterCache sync.Map
}

func NewDecoder() *Decoder {
	return &Decoder{
		structTag: "nibble",
		order:     binary.LittleEndian,
	}
}

func (d *Decoder) WithTag(structTag string) *Decoder {
	if d.structTag == structTag {
		return d
	}

	return &Decoder{
		structTag: structTag,
		order:     d.order,
	}
}

func (d *Decoder) WithByteOrder(order binary.ByteOrder) *Decoder {
	if d.order == order {
		return d
	}

	return &Decoder{
		structTag: d.structTag,
		order:     order,
	}
}

// Unmarshal decodes buf into the value pointed to by target.
// buf must be consumed entirely.
func (d *Decoder) Unmarshal(buf []byte, target any) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Pointer || targetValue.IsNil() {
		return NotSupportedError{Type: reflect.TypeOf(target)}
	}

	targetValue = targetValue.Elem()

	// build the setter for the targets type
	setter, err := d.setterOf(targetValue.Type(), d.byteOrder())
	if err != nil {
		return err
	}

	rest, err := setter(buf, targetValue)
	if err != nil {
		return err
	}

	if len(rest) != 0 {
		return FinishError{At: rest}
	}

	return nil
}

func (d *Decoder) byteOrder() binary.ByteOrder {
	if d.order == nil {
		return binary.LittleEndian
	}

	return d.order
}

func (d *Decoder) tag() string {
	if d.structTag == "" {
		return "nibble"
	}

	return d.structTag
}

func (d *Decoder) setterOf(ty reflect.Type, order binary.ByteOrder) (setter, error) {
	key := setterKey{Type: ty, Order: order}

	if cached, ok := d.setterCache.Load(key); ok {
		return cached.(setter), nil
	}

	setter, err := d.makeSetterOf(ty, order)
	if err != nil {
		return nil, err
	}

	d.setterCache.Store(key, setter)

	return setter, nil
}

func (d *Decoder) makeSetterOf(ty reflect.Type, order binary.ByteOrder) (setter, error) {
	if reflect.PointerTo(ty).Implements(tyUnmarshaler) {
		return setUnmarshaler, nil
	}

	switch ty {
	case tyUint128:
		return makeSetParsed(uint128(order)), nil
	case tyInt128:
		return makeSetParsed(int128(order)), nil
	}

	switch ty.Kind() {
	case reflect.Bool:
		return setBool, nil

	case reflect.Int8:
		return makeSetInt(Integer[int8](order)), nil

	case reflect.Int16:
		return makeSetInt(Integer[int16](order)), nil

	case reflect.Int32:
		return makeSetInt(Integer[int32](order)), nil

	case reflect.Int64:
		return makeSetInt(Integer[int64](order)), nil

	case reflect.Uint8:
		return makeSetUint(Integer[uint8](order)), nil

	case reflect.Uint16:
		return makeSetUint(Integer[uint16](order)), nil

	case reflect.Uint32:
		return makeSetUint(Integer[uint32](order)), nil

	case reflect.Uint64:
		return makeSetUint(Integer[uint64](order)), nil

	case reflect.Float32:
		return makeSetFloat(Float[float32](order)), nil

	case reflect.Float64:
		return makeSetFloat(Float[float64](order)), nil

	case reflect.Array:
		return d.makeSetArray(ty, order)

	case reflect.Struct:
		return d.makeSetStruct(ty, order)

	default:
		// int, uint and uintptr have no fixed width
		return nil, NotSupportedError{Type: ty}
	}
}

func (d *Decoder) makeSetStruct(ty reflect.Type, order binary.ByteOrder) (setter, error) {
	var setters []setter

	fields := fieldsToDecode(ty, d.tag(), order)

	for _, field := range fields {
		if field.Padding {
			skip, err := d.makeSkip(field.Type, field.Order)
			if err != nil {
				return nil, fmt.Errorf("padding field %q: %w", field.Name, err)
			}

			setters = append(setters, skip)
			continue
		}

		if field.Embedded {
			// the embedded value itself is read only, decode into its fields
			de, err := d.makeSetStruct(field.Type, field.Order)
			if err != nil {
				return nil, fmt.Errorf("setter for embedded field %q: %w", field.Name, err)
			}

			setters = append(setters, de)
			continue
		}

		de, err := d.setterOf(field.Type, field.Order)
		if err != nil {
			return nil, fmt.Errorf("setter for field %q: %w", field.Name, err)
		}

		setters = append(setters, de)
	}

	setter := func(input []byte, target reflect.Value) ([]byte, error) {
		rest := input

		for idx, field := range fields {
			var fieldValue reflect.Value
			if !field.Padding {
				fieldValue = target.FieldByIndex(field.Index)
			}

			next, err := setters[idx](rest, fieldValue)
			if err != nil {
				return input, fmt.Errorf("field %q of %q: %w", field.Name, target.Type(), err)
			}

			rest = next
		}

		return rest, nil
	}

	return setter, nil
}

func (d *Decoder) makeSetArray(ty reflect.Type, order binary.ByteOrder) (setter, error) {
	// number of elements in the array
	elementCount := ty.Len()

	if ty.Elem() == reflect.TypeFor[byte]() {
		take := Take(elementCount)

		setter := func(input []byte, target reflect.Value) ([]byte, error) {
			rest, value, err := take(input)
			if err != nil {
				return input, err
			}

			reflect.Copy(target, reflect.ValueOf(value))
			return rest, nil
		}

		return setter, nil
	}

	elementSetter, err := d.setterOf(ty.Elem(), order)
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	setter := func(input []byte, target reflect.Value) ([]byte, error) {
		rest := input

		for idx := 0; idx < elementCount; idx++ {
			next, err := elementSetter(rest, target.Index(idx))
			if err != nil {
				return input, SeqError{At: rest, Step: idx, Err: err}
			}

			rest = next
		}

		return rest, nil
	}

	return setter, nil
}

// makeSkip consumes a value of type ty without setting anything. The value is
// decoded into a scratch value, so padding follows the same layout as data.
func (d *Decoder) makeSkip(ty reflect.Type, order binary.ByteOrder) (setter, error) {
	setter, err := d.setterOf(ty, order)
	if err != nil {
		return nil, err
	}

	return func(input []byte, _ reflect.Value) ([]byte, error) {
		return setter(input, reflect.New(ty).Elem())
	}, nil
}

func setBool(input []byte, target reflect.Value) ([]byte, error) {
	rest, value, err := Byte(input)
	if err != nil {
		return input, err
	}

	target.SetBool(value != 0)
	return rest, nil
}

func makeSetInt[T constraints.Signed](parser Parser[T]) setter {
	return func(input []byte, target reflect.Value) ([]byte, error) {
		rest, value, err := parser(input)
		if err != nil {
			return input, err
		}

		target.SetInt(int64(value))
		return rest, nil
	}
}

func makeSetUint[T constraints.Unsigned](parser Parser[T]) setter {
	return func(input []byte, target reflect.Value) ([]byte, error) {
		rest, value, err := parser(input)
		if err != nil {
			return input, err
		}

		target.SetUint(uint64(value))
		return rest, nil
	}
}

func makeSetFloat[T constraints.Float](parser Parser[T]) setter {
	return func(input []byte, target reflect.Value) ([]byte, error) {
		rest, value, err := parser(input)
		if err != nil {
			return input, err
		}

		target.SetFloat(float64(value))
		return rest, nil
	}
}

// makeSetParsed sets values of exactly type T
func makeSetParsed[T any](parser Parser[T]) setter {
	return func(input []byte, target reflect.Value) ([]byte, error) {
		rest, value, err := parser(input)
		if err != nil {
			return input, err
		}

		target.Set(reflect.ValueOf(value))
		return rest, nil
	}
}

func setUnmarshaler(input []byte, target reflect.Value) ([]byte, error) {
	m := target.Addr().Interface().(Unmarshaler)

	rest, err := m.UnmarshalPrefix(input)
	if err != nil {
		return input, err
	}

	return rest, nil
}
