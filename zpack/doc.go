// Package zpack implements the little-endian binary cursor used by every
// save archive.
//
// A Package is either a reader over a fixed byte region (usually a read-only
// memory mapping of a save file) or a writer over a growable in-memory buffer.
// On top of the fixed-width primitives it provides the composite encodings the
// archives are built from:
//
//   - strings prefixed by a 7-bit group length
//   - item counts in either the legacy character form or the compact form
//     introduced with world version 33
//   - length-prefixed (framed) sub-objects, optionally followed by a SHA-512
//     trailer
//   - gzip-compressed sub-packages
//
// Framed reads are forgiving: when a record reader stops short of, or runs
// past, the declared frame length, the drift is logged and the cursor is
// moved to the end of the frame. Everything else is strict. Reading past the
// end of the region, writing to a reader or decoding a corrupt compressed
// blob aborts the whole operation with a *ParseError.
//
// Cursor methods do not return errors. They abort by panicking with a
// *ParseError, which the caller converts back into an ordinary error with a
// deferred Recover at its own API boundary:
//
//	func decode(data []byte) (m *Model, err error) {
//		defer zpack.Recover(&err)
//		p := zpack.NewReader(data)
//		...
//	}
package zpack
