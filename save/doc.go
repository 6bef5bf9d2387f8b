// Package save reads and writes the game's save archives.
//
// Three archive kinds exist, each stored under its own extension:
//
//   - .fwl world metadata (Metadata)
//   - .db world database (World)
//   - .fch character (Character)
//
// Every record carries its own format version and optional fields are gated
// on it, both when reading and when writing, so a file decoded and encoded
// again without edits comes out byte for byte identical. Records newer than
// this package knows are read on a best-effort basis unless
// ReaderHints.FailOnUnsupportedVersion is set.
//
// Object properties and prefab types are stored as stable hashes. With
// ReaderHints.ResolveNames set, hashes known to the name registry are turned
// into NameKeys on read. Resolution never changes what is written back.
//
// Archives can also be dumped to and loaded from JSON, which is handy for
// inspecting or hand-editing a save.
package save
