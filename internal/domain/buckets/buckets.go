// Package buckets classifies scalar values into configured display buckets.
// A bucket list is an ascending sequence of lower bounds; the comparison is
// lower-exclusive, upper-inclusive, so a value equal to a boundary falls into
// the bucket that boundary closes.
package buckets

import "fmt"

// Bucket is one classification interval (Lower, Upper]. A nil Upper marks the
// terminal open-ended bucket ("at least Lower").
type Bucket struct {
	Lower float64
	Upper *float64
}

// Pair returns the bucket in its wire shape: [lower, upper], or [lower] for
// the terminal open-ended bucket.
func (b *Bucket) Pair() []float64 {
	if b == nil {
		return nil
	}
	if b.Upper == nil {
		return []float64{b.Lower}
	}
	return []float64{b.Lower, *b.Upper}
}

// Range classifies v against an ascending boundary list.
//
// Returns nil when bounds is empty or v <= bounds[0]; the interior bucket
// (bounds[i], bounds[i+1]] when one contains v; the terminal bucket when v
// exceeds the last boundary. Behavior is undefined for non-ascending bounds,
// which ValidateAscending rejects at configuration load.
func Range(bounds []float64, v float64) *Bucket {
	idx := ClassIndex(bounds, v)
	if idx == 0 {
		return nil
	}
	if idx == len(bounds) {
		return &Bucket{Lower: bounds[len(bounds)-1]}
	}
	upper := bounds[idx]
	return &Bucket{Lower: bounds[idx-1], Upper: &upper}
}

// ClassIndex returns the 1-based index of the bucket v falls into, which for
// ascending bounds equals the number of boundaries strictly below v. 0 means
// v does not clear the first boundary and matches no bucket.
func ClassIndex(bounds []float64, v float64) int {
	n := 0
	for _, b := range bounds {
		if b >= v {
			break
		}
		n++
	}
	return n
}

// ValidateAscending rejects boundary lists that are not strictly ascending.
// Called once at configuration load; request-time bucketing assumes it held.
func ValidateAscending(bounds []float64) error {
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return fmt.Errorf("boundary %d (%v) must be greater than boundary %d (%v)", i, bounds[i], i-1, bounds[i-1])
		}
	}
	return nil
}
