// Package sizeof gives every payload, diff, proof and state value used by
// the simulator a structural byte size: fixed-size primitives report a
// declared constant, containers sum element sizes, and polymorphic
// containers may estimate from the first element when the container is
// known to be homogeneous.
package sizeof

// DataSized reports the structural byte size of a value as it would cross
// the wire or sit in server storage. It is not a serialization format;
// it only has to be consistent enough to compare authenticators.
type DataSized interface {
	Size() uint64
}

const (
	Uint64Size  = 8
	Uint32Size  = 4
	HashSize    = 32 // SHA3-256 digest
	RSADigestSize = 256 // 2048-bit modulus, big-endian byte length
)

// String reports the byte length of s, matching how PackageID/UserID are
// measured on the wire: no length prefix is charged.
func String(s string) uint64 {
	return uint64(len(s))
}

// Slice sums the sizes of a homogeneous slice.
func Slice[T DataSized](items []T) uint64 {
	var total uint64
	for _, it := range items {
		total += it.Size()
	}
	return total
}

// EstimateHomogeneous estimates a slice's size from its first element,
// for containers that are too large to size exactly but are known to
// hold same-shaped elements (e.g. CDN-wide leaf counts).
func EstimateHomogeneous[T DataSized](items []T) uint64 {
	if len(items) == 0 {
		return 0
	}
	return items[0].Size() * uint64(len(items))
}

// Opt reports the size of an optional value: 1 tag byte plus the payload
// when present, 1 tag byte alone when absent.
func Opt[T DataSized](v *T) uint64 {
	if v == nil {
		return 1
	}
	return 1 + (*v).Size()
}
