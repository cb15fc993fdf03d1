package iloc

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestIndexRoundTrip(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	ix, err := New(ids)
	if err != nil {
		t.Fatal(err)
	}

	locs := ix.ToIloc(ids)
	if !slices.Equal(locs, []int{0, 1, 2, 3}) {
		t.Fatalf("ToIloc = %v, want [0 1 2 3]", locs)
	}

	back := ix.FromIloc(locs)
	if !slices.Equal(back, ids) {
		t.Fatalf("FromIloc(ToIloc(ids)) = %v, want %v", back, ids)
	}

	if !ix.Contains("c") || ix.Contains("z") {
		t.Error("Contains misreported membership")
	}
}

func TestIndexDuplicates(t *testing.T) {
	_, err := New([]string{"x", "y", "x"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if !strings.Contains(err.Error(), "x") || strings.Contains(err.Error(), "y") {
		t.Errorf("expected only the duplicate %q to be reported: %v", "x", err)
	}

	// each duplicate reported once, even when repeated more than twice
	_, err = New([]int{7, 7, 7, 8, 8})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "7, 8") {
		t.Errorf("expected duplicates listed once each, got %v", got)
	}
}

func TestIndexMissing(t *testing.T) {
	ix, err := New([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}

	// non-strict: invalid marker
	locs := ix.ToIloc([]string{"a", "nope", "b"})
	if !slices.Equal(locs, []int{0, -1, 1}) {
		t.Fatalf("ToIloc = %v, want [0 -1 1]", locs)
	}
	mask := ix.ValidMask(locs)
	if !slices.Equal(mask, []bool{true, false, true}) {
		t.Fatalf("ValidMask = %v", mask)
	}

	// compact: width sentinel
	arr := ix.ToCompact([]string{"nope", "a"})
	if arr.Get(0) != arr.Sentinel() || arr.Get(1) != 0 {
		t.Fatalf("ToCompact = [%d %d], sentinel %d", arr.Get(0), arr.Get(1), arr.Sentinel())
	}

	// strict, single missing: reported alone
	_, err = ix.ToIlocStrict([]string{"a", "nope"})
	if !errors.Is(err, ErrUnknownID) {
		t.Fatalf("expected ErrUnknownID, got %v", err)
	}
	if !strings.Contains(err.Error(), "nope") || strings.Contains(err.Error(), ",") {
		t.Errorf("single missing ID should be reported alone: %v", err)
	}

	// strict, several missing: the full set
	_, err = ix.ToIlocStrict([]string{"u", "a", "v"})
	if err == nil || !strings.Contains(err.Error(), "u, v") {
		t.Errorf("expected both missing IDs reported, got %v", err)
	}
}

func TestWidthFor(t *testing.T) {
	cases := []struct {
		n    int
		want Width
	}{
		{0, W8},
		{1, W8},
		{255, W8},
		{256, W16},
		{65535, W16},
		{65536, W32},
		{1 << 32, W64},
	}
	for _, c := range cases {
		if got := WidthFor(c.n); got != c.want {
			t.Errorf("WidthFor(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestArrayWidths(t *testing.T) {
	vals := []int{0, 5, 254, 3}
	for _, w := range []Width{W8, W16, W32, W64} {
		a := FromInts(w, vals)
		if a.Width() != w {
			t.Fatalf("Width() = %v, want %v", a.Width(), w)
		}
		// behavior identical regardless of width
		if got := a.Ints(); !slices.Equal(got, vals) {
			t.Errorf("width %v: Ints() = %v, want %v", w, got, vals)
		}
	}

	// negatives stored as the sentinel
	a := FromInts(W16, []int{-1, 2})
	if a.Get(0) != a.Sentinel() {
		t.Errorf("negative value should store as sentinel, got %d", a.Get(0))
	}
}

func TestArraySlice(t *testing.T) {
	a := FromInts(W8, []int{9, 8, 7, 6, 5})
	s := a.Slice(1, 4)
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if got := s.Ints(); !slices.Equal(got, []int{8, 7, 6}) {
		t.Fatalf("Ints = %v", got)
	}
	if !s.Contains(7) || s.Contains(9) {
		t.Error("Contains misreported view membership")
	}

	var empty Slice
	if empty.Len() != 0 {
		t.Error("zero Slice should be empty")
	}
}
