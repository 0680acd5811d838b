// Package bitset holds width-generic bit helpers for fixed-size unsigned words.
//
// Positions outside [0, Width) never panic: Set/Clear/Toggle return the value
// unchanged, Get returns 0 and the shifts return 0.
package bitset

import (
	"fmt"
	"math/bits"
	"strings"

	"golang.org/x/exp/constraints"
)

// Width returns the number of bits in T.
func Width[T constraints.Unsigned]() int {
	var zero T
	return bits.Len64(uint64(^zero))
}

func inRange[T constraints.Unsigned](pos int) bool {
	return pos >= 0 && pos < Width[T]()
}

func Set[T constraints.Unsigned](v T, pos int) T {
	if !inRange[T](pos) {
		return v
	}
	return v | T(1)<<pos
}

func Clear[T constraints.Unsigned](v T, pos int) T {
	if !inRange[T](pos) {
		return v
	}
	return v &^ (T(1) << pos)
}

func Toggle[T constraints.Unsigned](v T, pos int) T {
	if !inRange[T](pos) {
		return v
	}
	return v ^ T(1)<<pos
}

// Get reports bit pos as 0 or 1.
func Get[T constraints.Unsigned](v T, pos int) int {
	if !inRange[T](pos) {
		return 0
	}
	return int((v >> pos) & 1)
}

func Count[T constraints.Unsigned](v T) int {
	return bits.OnesCount64(uint64(v))
}

// ShiftLeft shifts with zero fill; n outside [0, Width) yields 0.
func ShiftLeft[T constraints.Unsigned](v T, n int) T {
	if !inRange[T](n) {
		return 0
	}
	return v << n
}

// ShiftRight shifts with zero fill; n outside [0, Width) yields 0.
func ShiftRight[T constraints.Unsigned](v T, n int) T {
	if !inRange[T](n) {
		return 0
	}
	return v >> n
}

// FormatBinary prints v most significant bit first, with a space after every nibble.
func FormatBinary[T constraints.Unsigned](v T) string {
	w := Width[T]()
	var sb strings.Builder
	sb.Grow(w + w/4)
	for i := w - 1; i >= 0; i-- {
		sb.WriteByte(byte('0' + Get(v, i)))
		if i%4 == 0 && i > 0 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// FormatHex prints v as 0x followed by upper-case digits padded to the full width.
func FormatHex[T constraints.Unsigned](v T) string {
	return fmt.Sprintf("0x%0*X", Width[T]()/4, uint64(v))
}
