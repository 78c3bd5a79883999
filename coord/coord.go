package coord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// FieldBits is the width of one mode field inside a Key.
	FieldBits = 16

	// KeyBits is the width of a Key.
	KeyBits = 64

	// MaxOrder is the largest coordinate length that fits into a Key.
	MaxOrder = KeyBits / FieldBits

	// MaxMode is the largest index a single field can hold.
	MaxMode Mode = 1<<FieldBits - 1

	fieldMask = uint64(MaxMode)
)

var (
	// ErrCapacity is returned when a coordinate does not fit into a Key.
	ErrCapacity = errors.New("coord: key encoding capacity exceeded")

	// ErrLengthMismatch is returned when two coordinates of different
	// length are compared.
	ErrLengthMismatch = errors.New("coord: coordinate length mismatch")
)

// Mode is an index along one tensor axis.
type Mode uint32

// Key is the packed form of a coordinate.
type Key uint64

// Coords is an ordered tuple of mode indices, axis 0 first.
type Coords []Mode

// Clone returns a copy of c that shares no memory with it.
func (c Coords) Clone() Coords {
	if c == nil {
		return Coords{}
	}
	out := make(Coords, len(c))
	copy(out, c)
	return out
}

// Equal reports whether c and o hold the same indices.
func (c Coords) Equal(o Coords) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the coordinate as "[i, j, k]".
func (c Coords) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, m := range c {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(uint64(m), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Encode packs c into a Key. Each mode is shifted in after the previous ones,
// so mode 0 ends up in the most-significant field.
func Encode(c Coords) (Key, error) {
	if len(c)*FieldBits > KeyBits {
		return 0, fmt.Errorf("%w: order %d needs %d bits, key has %d", ErrCapacity, len(c), len(c)*FieldBits, KeyBits)
	}
	var k uint64
	for axis, m := range c {
		if m > MaxMode {
			return 0, fmt.Errorf("%w: mode %d at axis %d exceeds %d", ErrCapacity, m, axis, MaxMode)
		}
		k = k<<FieldBits | uint64(m)
	}
	return Key(k), nil
}

// Decode unpacks a Key produced by Encode for a coordinate of the given order.
func Decode(order int, k Key) (Coords, error) {
	if order < 0 || order > MaxOrder {
		return nil, fmt.Errorf("%w: order %d", ErrCapacity, order)
	}
	out := make(Coords, order)
	v := uint64(k)
	for axis := order - 1; axis >= 0; axis-- {
		out[axis] = Mode(v & fieldMask)
		v >>= FieldBits
	}
	return out, nil
}

// Compare orders a and b by their encoded keys. It returns -1, 0 or +1.
func Compare(a, b Coords) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	ka, err := Encode(a)
	if err != nil {
		return 0, err
	}
	kb, err := Encode(b)
	if err != nil {
		return 0, err
	}
	switch {
	case ka < kb:
		return -1, nil
	case ka > kb:
		return 1, nil
	default:
		return 0, nil
	}
}

// Less reports whether a sorts before b.
func Less(a, b Coords) (bool, error) { return compareWith(a, b, func(c int) bool { return c < 0 }) }

// LessEq reports whether a sorts before or equal to b.
func LessEq(a, b Coords) (bool, error) { return compareWith(a, b, func(c int) bool { return c <= 0 }) }

// Greater reports whether a sorts after b.
func Greater(a, b Coords) (bool, error) { return compareWith(a, b, func(c int) bool { return c > 0 }) }

// GreaterEq reports whether a sorts after or equal to b.
func GreaterEq(a, b Coords) (bool, error) { return compareWith(a, b, func(c int) bool { return c >= 0 }) }

// Same reports whether a and b encode to the same key.
func Same(a, b Coords) (bool, error) { return compareWith(a, b, func(c int) bool { return c == 0 }) }

func compareWith(a, b Coords, pred func(int) bool) (bool, error) {
	c, err := Compare(a, b)
	if err != nil {
		return false, err
	}
	return pred(c), nil
}
