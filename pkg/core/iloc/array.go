package iloc

// Array is a fixed-length array of unsigned integers stored at an explicit
// Width. It backs everything that stores ilocs in bulk (type-code columns,
// edge endpoint columns, flat adjacency arrays) so that a graph with fewer
// than 256 nodes pays one byte per endpoint, not eight.
//
// Exactly one of the four slices is non-nil, matching the Array's width.
type Array struct {
	width Width
	u8    []uint8
	u16   []uint16
	u32   []uint32
	u64   []uint64
}

// NewArray returns a zeroed Array of n entries at the given width.
func NewArray(w Width, n int) *Array {
	a := &Array{width: w}
	switch w {
	case W8:
		a.u8 = make([]uint8, n)
	case W16:
		a.u16 = make([]uint16, n)
	case W32:
		a.u32 = make([]uint32, n)
	default:
		a.u64 = make([]uint64, n)
	}
	return a
}

// FromInts builds an Array holding vals at the given width. Negative values
// are stored as the width's sentinel (the missing marker).
func FromInts(w Width, vals []int) *Array {
	a := NewArray(w, len(vals))
	for i, v := range vals {
		if v < 0 {
			a.SetSentinel(i)
			continue
		}
		a.Set(i, v)
	}
	return a
}

// Len returns the number of entries.
func (a *Array) Len() int {
	switch a.width {
	case W8:
		return len(a.u8)
	case W16:
		return len(a.u16)
	case W32:
		return len(a.u32)
	default:
		return len(a.u64)
	}
}

// Width returns the storage width.
func (a *Array) Width() Width { return a.width }

// Sentinel returns the missing marker for this array, the maximum value
// representable at its width. For W64 the conversion to int wraps to -1,
// which is still never a valid iloc.
func (a *Array) Sentinel() int { return int(a.width.Max()) }

// Get returns entry i as an int.
func (a *Array) Get(i int) int {
	switch a.width {
	case W8:
		return int(a.u8[i])
	case W16:
		return int(a.u16[i])
	case W32:
		return int(a.u32[i])
	default:
		return int(a.u64[i])
	}
}

// Set stores v at entry i. v must be non-negative and representable at the
// array's width; the caller is expected to have sized the width from the
// value range.
func (a *Array) Set(i, v int) {
	switch a.width {
	case W8:
		a.u8[i] = uint8(v)
	case W16:
		a.u16[i] = uint16(v)
	case W32:
		a.u32[i] = uint32(v)
	default:
		a.u64[i] = uint64(v)
	}
}

// SetSentinel stores the missing marker at entry i.
func (a *Array) SetSentinel(i int) {
	switch a.width {
	case W8:
		a.u8[i] = ^uint8(0)
	case W16:
		a.u16[i] = ^uint16(0)
	case W32:
		a.u32[i] = ^uint32(0)
	default:
		a.u64[i] = ^uint64(0)
	}
}

// Ints returns a copy of the array as a plain int slice, with sentinels
// preserved as the width's Sentinel value.
func (a *Array) Ints() []int {
	out := make([]int, a.Len())
	for i := range out {
		out[i] = a.Get(i)
	}
	return out
}

// Slice returns a view of entries [lo, hi). The view shares storage with the
// array; no copy is made.
func (a *Array) Slice(lo, hi int) Slice {
	return Slice{a: a, lo: lo, hi: hi}
}

// Slice is a read-only view into a contiguous run of an Array. Its zero
// value is the empty slice.
type Slice struct {
	a      *Array
	lo, hi int
}

// Len returns the number of entries in the view.
func (s Slice) Len() int { return s.hi - s.lo }

// At returns the i-th entry of the view.
func (s Slice) At(i int) int { return s.a.Get(s.lo + i) }

// Ints copies the view into a plain int slice.
func (s Slice) Ints() []int {
	out := make([]int, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Contains reports whether v occurs in the view. Linear scan; views are
// expected to be short (one node's incident edges).
func (s Slice) Contains(v int) bool {
	for i := 0; i < s.Len(); i++ {
		if s.At(i) == v {
			return true
		}
	}
	return false
}
