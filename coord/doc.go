// Package coord packs tensor coordinates into fixed-width integer keys.
//
// A coordinate of order n is stored in a 64-bit Key as n consecutive 16-bit
// fields. Mode 0 occupies the most-significant used field, so comparing two
// keys of equal order compares the coordinates lexicographically:
//
//	Encode([1, 2])    == 0x0000_0000_0001_0002
//	Decode(2, 0x10002) == [1, 2]
//
// The maximum supported order is MaxOrder (4) and the largest encodable mode
// index is MaxMode (65535).
package coord
