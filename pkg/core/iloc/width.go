package iloc

import "math"

// Width is the storage width of a compact unsigned integer array.
// It is a pure memory optimization: an Array behaves identically at every
// width, only its footprint changes.
type Width uint8

const (
	W8 Width = iota
	W16
	W32
	W64
)

// Max returns the largest value representable at this width. This value is
// reserved as the "missing" sentinel and is never a valid iloc.
func (w Width) Max() uint64 {
	switch w {
	case W8:
		return math.MaxUint8
	case W16:
		return math.MaxUint16
	case W32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

// Bytes returns the storage cost of one entry at this width.
func (w Width) Bytes() int {
	switch w {
	case W8:
		return 1
	case W16:
		return 2
	case W32:
		return 4
	default:
		return 8
	}
}

func (w Width) String() string {
	switch w {
	case W8:
		return "uint8"
	case W16:
		return "uint16"
	case W32:
		return "uint32"
	default:
		return "uint64"
	}
}

// WidthFor returns the smallest width able to represent n. Because Max() is
// reserved as the sentinel, an index of n elements (ilocs 0..n-1) fits as
// long as n itself is representable.
func WidthFor(n int) Width {
	switch {
	case uint64(n) <= math.MaxUint8:
		return W8
	case uint64(n) <= math.MaxUint16:
		return W16
	case uint64(n) <= math.MaxUint32:
		return W32
	default:
		return W64
	}
}
