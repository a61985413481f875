package nibble

import (
	"encoding/binary"
	"reflect"
	"strings"
)

type field struct {
	Name  string
	Type  reflect.Type
	Index []int
	Order binary.ByteOrder

	// unexported and blank fields are consumed but never set
	Padding bool

	// an embedded struct of an unexported type. Only its exported fields can be set
	Embedded bool
}

// fieldsToDecode returns the fields of ty in declaration order, which is
// the order they appear in the binary layout.
func fieldsToDecode(ty reflect.Type, structTag string, order binary.ByteOrder) []field {
	if ty.Kind() != reflect.Struct {
		panic("not a struct")
	}

	var fields []field

	for idx := range ty.NumField() {
		fi := ty.Field(idx)

		skip, fieldOrder := optionsOf(fi, structTag, order)
		if skip {
			continue
		}

		embedded := fi.Anonymous && !fi.IsExported() && fi.Type.Kind() == reflect.Struct

		fields = append(fields, field{
			Name:     fi.Name,
			Type:     fi.Type,
			Index:    fi.Index,
			Order:    fieldOrder,
			Padding:  !fi.IsExported() && !embedded,
			Embedded: embedded,
		})
	}

	return fields
}

// optionsOf parses a struct tag like `nibble:"be"`. The options "be" and "le"
// select the byte order of the field, "-" skips the field entirely.
func optionsOf(fi reflect.StructField, structTag string, order binary.ByteOrder) (skip bool, fieldOrder binary.ByteOrder) {
	tag := fi.Tag.Get(structTag)

	if tag == "-" {
		return true, nil
	}

	fieldOrder = order

	for _, option := range strings.Split(tag, ",") {
		switch strings.TrimSpace(option) {
		case "be":
			fieldOrder = binary.BigEndian
		case "le":
			fieldOrder = binary.LittleEndian
		}
	}

	return false, fieldOrder
}
