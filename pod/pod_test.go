package pod

import (
	"encoding/binary"
	"github.com/go-gum/nibble"
	"github.com/stretchr/testify/require"
	"testing"
	"unsafe"
)

type point struct {
	X int32
	Y int32
}

// alignedBytes returns a zeroed byte slice of the given size that is aligned to 8 bytes
func alignedBytes(size int) []byte {
	words := make([]uint64, (size+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size)
}

func TestView(t *testing.T) {
	buf := alignedBytes(12)
	binary.NativeEndian.PutUint32(buf[0:], 7)
	binary.NativeEndian.PutUint32(buf[4:], uint32(0xfffffffd))
	buf[8] = 0xff

	rest, value, err := View[point](buf)
	require.NoError(t, err)
	require.Equal(t, *value, point{X: 7, Y: -3})
	require.Equal(t, rest, buf[8:])

	// the view aliases the input
	binary.NativeEndian.PutUint32(buf[0:], 8)
	require.Equal(t, value.X, int32(8))
}

func TestViewInsufficientBytes(t *testing.T) {
	buf := alignedBytes(4)

	rest, value, err := View[point](buf)
	require.ErrorIs(t, err, nibble.ErrInsufficientBytes)
	require.Nil(t, value)
	require.Equal(t, rest, buf)
}

func TestViewMisaligned(t *testing.T) {
	buf := alignedBytes(16)[1:]

	rest, _, err := View[point](buf)
	require.ErrorIs(t, err, nibble.ErrLayoutMismatch)
	require.ErrorIs(t, err, ErrMisaligned)
	require.Equal(t, rest, buf)

	// byte sized values have no alignment requirement
	_, _, err = View[[3]byte](buf)
	require.NoError(t, err)
}

func TestViewNotPlain(t *testing.T) {
	type withPointer struct {
		A int32
		B *int32
	}

	buf := alignedBytes(16)

	_, _, err := View[withPointer](buf)
	require.ErrorIs(t, err, nibble.ErrLayoutMismatch)
	require.ErrorIs(t, err, ErrNotPlain)

	var layoutError LayoutError
	require.ErrorAs(t, err, &layoutError)
	require.ErrorContains(t, layoutError, `field "B"`)

	_, _, err = View[string](buf)
	require.ErrorIs(t, err, ErrNotPlain)

	_, _, err = View[[2][]byte](buf)
	require.ErrorIs(t, err, ErrNotPlain)
}

func TestSlice(t *testing.T) {
	buf := alignedBytes(10)
	for idx := range 4 {
		binary.NativeEndian.PutUint16(buf[idx*2:], uint16(idx+1))
	}

	rest, values, err := Slice[uint16](4)(buf)
	require.NoError(t, err)
	require.Equal(t, values, []uint16{1, 2, 3, 4})
	require.Len(t, rest, 2)

	rest, values, err = Slice[uint16](0)(buf)
	require.NoError(t, err)
	require.Empty(t, values)
	require.Equal(t, rest, buf)

	rest, _, err = Slice[uint16](6)(buf)
	require.ErrorIs(t, err, nibble.ErrInsufficientBytes)
	require.Equal(t, rest, buf)
}

func TestSliceComposes(t *testing.T) {
	buf := alignedBytes(16)
	buf[0] = 2
	binary.NativeEndian.PutUint32(buf[4:], 10)
	binary.NativeEndian.PutUint32(buf[8:], 20)

	// a count byte, three bytes of padding and count uint32 values
	parser := nibble.Bind(
		nibble.And(nibble.U8, nibble.Take(3)),
		func(header nibble.Pair[uint8, []byte]) nibble.Parser[[]uint32] {
			return Slice[uint32](int(header.First))
		},
	)

	rest, values, err := parser(buf)
	require.NoError(t, err)
	require.Equal(t, values, []uint32{10, 20})
	require.Len(t, rest, 4)
}

func TestSliceNegativeCount(t *testing.T) {
	require.Panics(t, func() { Slice[uint16](-1) })
}
