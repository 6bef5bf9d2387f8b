package stablehash

import "unicode/utf16"

const (
	seed       = 5381
	multiplier = 1566083941
)

// Hash returns the stable 32-bit hash the game uses to key properties and
// prefabs. The string is walked as UTF-16 code units, two at a time, and
// hashing stops at the first NUL unit.
func Hash(s string) int32 {
	units := utf16.Encode([]rune(s))
	a := int32(seed)
	b := int32(seed)
	for i := 0; i < len(units) && units[i] != 0; i += 2 {
		a = ((a << 5) + a) ^ int32(units[i])
		if i == len(units)-1 || units[i+1] == 0 {
			break
		}
		b = ((b << 5) + b) ^ int32(units[i+1])
	}
	return a + b*multiplier
}
