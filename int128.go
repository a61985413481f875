package nibble

import (
	"encoding/binary"
	"math/big"
)

// Uint128 is an unsigned 128 bit integer, split into its upper and lower 64 bits.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Int128 is a signed 128 bit integer in two's complement. Hi carries the sign.
type Int128 struct {
	Hi int64
	Lo uint64
}

var U128LE = uint128(binary.LittleEndian)
var U128BE = uint128(binary.BigEndian)
var I128LE = int128(binary.LittleEndian)
var I128BE = int128(binary.BigEndian)

// Big returns the value as a big.Int.
func (u Uint128) Big() *big.Int {
	value := new(big.Int).SetUint64(u.Hi)
	value.Lsh(value, 64)
	return value.Or(value, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	return u.Big().String()
}

// Big returns the value as a big.Int.
func (i Int128) Big() *big.Int {
	value := big.NewInt(i.Hi)
	value.Lsh(value, 64)
	return value.Add(value, new(big.Int).SetUint64(i.Lo))
}

func (i Int128) String() string {
	return i.Big().String()
}

func uint128(order binary.ByteOrder) Parser[Uint128] {
	bigEndian := isBigEndian(order)
	return fixed(16, func(b []byte) Uint128 {
		hi, lo := halves(order, bigEndian, b)
		return Uint128{Hi: hi, Lo: lo}
	})
}

func int128(order binary.ByteOrder) Parser[Int128] {
	bigEndian := isBigEndian(order)
	return fixed(16, func(b []byte) Int128 {
		hi, lo := halves(order, bigEndian, b)
		return Int128{Hi: int64(hi), Lo: lo}
	})
}

// halves splits a 16 byte value into its upper and lower 64 bits.
func halves(order binary.ByteOrder, bigEndian bool, b []byte) (hi, lo uint64) {
	if bigEndian {
		return order.Uint64(b[:8]), order.Uint64(b[8:16])
	}

	return order.Uint64(b[8:16]), order.Uint64(b[:8])
}

func isBigEndian(order binary.ByteOrder) bool {
	return order.Uint16([]byte{0, 1}) == 1
}
