// Package stablehash implements the game's stable string hash and a reverse
// lookup table for turning stored hashes back into readable names.
//
// Save files key object properties and prefab types by a 32-bit hash of their
// name. The hash cannot be inverted, so a Registry hashes a corpus of known
// names up front and answers lookups from that table.
package stablehash
