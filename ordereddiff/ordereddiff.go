// Package ordereddiff implements ordered set differencing:
// comparing two ordered sequences of distinct, comparable elements and
// partitioning them into old-exclusive, new-exclusive, intersection, and
// union slices plus a merged pair stream, all order-preserving. A single
// result value holds every partition computed from one pass over the two
// inputs, rather than several independent helper calls.
package ordereddiff

// Pair is one element of a Diff's PairStream: the old-side occurrence (if
// any) and the new-side occurrence (if any) of a single logical element.
// Both HasOld and HasNew false is a hard invariant violation and never
// produced by Diff.
type Pair[T any] struct {
	Old   T
	HasOld bool
	New   T
	HasNew bool
}

// Diff is the result of comparing old against new. All fields are computed
// eagerly by New so that equality of two Diffs (via Equal) is a plain
// structural comparison.
type Diff[T comparable] struct {
	ExclusiveOld []T
	ExclusiveNew []T
	Intersection []T
	Union        []T
	PairStream   []Pair[T]
}

// New computes the Diff of old against new. Both inputs must already be
// free of internal duplicates; New does not detect or reject duplicates,
// it is the caller's responsibility to supply distinct elements.
func New[T comparable](old, new_ []T) Diff[T] {
	inOld := make(map[T]bool, len(old))
	for _, o := range old {
		inOld[o] = true
	}
	inNew := make(map[T]bool, len(new_))
	for _, n := range new_ {
		inNew[n] = true
	}

	d := Diff[T]{}

	for _, o := range old {
		if !inNew[o] {
			d.ExclusiveOld = append(d.ExclusiveOld, o)
		}
	}
	for _, n := range new_ {
		if inOld[n] {
			d.Intersection = append(d.Intersection, n)
		} else {
			d.ExclusiveNew = append(d.ExclusiveNew, n)
		}
	}

	d.Union = make([]T, 0, len(d.ExclusiveOld)+len(new_))
	d.Union = append(d.Union, d.ExclusiveOld...)
	d.Union = append(d.Union, new_...)

	d.PairStream = make([]Pair[T], 0, len(d.ExclusiveOld)+len(new_))
	for _, o := range d.ExclusiveOld {
		d.PairStream = append(d.PairStream, Pair[T]{Old: o, HasOld: true})
	}
	for _, n := range new_ {
		p := Pair[T]{New: n, HasNew: true}
		if inOld[n] {
			p.Old = n
			p.HasOld = true
		}
		d.PairStream = append(d.PairStream, p)
	}

	return d
}

// Equal reports whether two Diffs are structurally identical across
// every field.
func Equal[T comparable](a, b Diff[T]) bool {
	return slicesEqual(a.ExclusiveOld, b.ExclusiveOld) &&
		slicesEqual(a.ExclusiveNew, b.ExclusiveNew) &&
		slicesEqual(a.Intersection, b.Intersection) &&
		slicesEqual(a.Union, b.Union) &&
		pairsEqual(a.PairStream, b.PairStream)
}

func slicesEqual[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func pairsEqual[T comparable](a, b []Pair[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
