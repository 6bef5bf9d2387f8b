// Package main provides the valheim-save-tools command-line interface.
//
// valheim-save-tools reads and writes Valheim world metadata (.fwl), world
// databases (.db) and character files (.fch). Archives can be dumped to JSON
// and converted back byte for byte, and world databases can be edited with
// the global key, structure cleanup and world reset processors.
//
// The main binary supports multiple subcommands:
//   - convert: Convert and edit archives
//   - validate: Round trip check archives
//   - stats: Summarise a world database
//   - hash: Compute or reverse stable hashes
//   - seed: Generate synthetic archives for testing
package main
