package nibble

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrEndOfInput = errors.New("end of input")
var ErrInsufficientBytes = errors.New("insufficient bytes")
var ErrTagMismatch = errors.New("tag mismatch")
var ErrUnconsumedInput = errors.New("unconsumed input")
var ErrLayoutMismatch = errors.New("layout mismatch")

// EndOfInputError is returned by Byte if the input is empty.
type EndOfInputError struct {
	At []byte
}

func (e EndOfInputError) Error() string {
	return "end of input"
}

func (e EndOfInputError) Is(target error) bool {
	return target == ErrEndOfInput
}

func (e EndOfInputError) Remaining() []byte {
	return e.At
}

// InsufficientBytesError is returned if fewer bytes than requested remain in the input.
type InsufficientBytesError struct {
	At        []byte
	Requested int
}

func (e InsufficientBytesError) Error() string {
	return fmt.Sprintf("insufficient bytes: requested %d, available %d", e.Requested, len(e.At))
}

func (e InsufficientBytesError) Is(target error) bool {
	return target == ErrInsufficientBytes
}

func (e InsufficientBytesError) Remaining() []byte {
	return e.At
}

// Available returns the number of bytes that were left in the input.
func (e InsufficientBytesError) Available() int {
	return len(e.At)
}

// TagError is returned by Tag. If the input was too short, Err holds the cause.
// Otherwise the input did not match and the error matches ErrTagMismatch.
type TagError struct {
	At       []byte
	Expected []byte
	Err      error
}

func (e TagError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tag %x: %s", e.Expected, e.Err)
	}

	return fmt.Sprintf("tag %x: mismatch", e.Expected)
}

func (e TagError) Is(target error) bool {
	return target == ErrTagMismatch && e.Err == nil
}

func (e TagError) Unwrap() error {
	return e.Err
}

func (e TagError) Remaining() []byte {
	return e.At
}

// SeqError is returned by Seq if one repetition of the child parser fails.
type SeqError struct {
	// input at the point the failing repetition started
	At []byte

	// zero based index of the failing repetition
	Step int

	// the error of the child parser
	Err error
}

func (e SeqError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Err)
}

func (e SeqError) Unwrap() error {
	return e.Err
}

func (e SeqError) Remaining() []byte {
	return e.At
}

// FinishError is returned by Finish if the child parser did not consume
// all of its input. At holds the bytes that were left over.
type FinishError struct {
	At []byte
}

func (e FinishError) Error() string {
	return fmt.Sprintf("%d unconsumed bytes", len(e.At))
}

func (e FinishError) Is(target error) bool {
	return target == ErrUnconsumedInput
}

func (e FinishError) Remaining() []byte {
	return e.At
}

// NotSupportedError is returned by a Decoder for types that have no fixed binary layout.
type NotSupportedError struct {
	Type reflect.Type
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported", n.Type)
}
