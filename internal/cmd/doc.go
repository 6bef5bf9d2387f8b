// Package cmd provides the command-line interface for valheim-save-tools.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - convert: Archive conversion with the global key, cleanup and reset processors
//   - validate: Decode/encode round trip checks over files and directories
//   - stats: World database statistics
//   - hash: Stable hash computation and reverse lookup
//   - seed: Synthetic archive generation for testing
//   - version: Build information
//
// Each command is implemented in its own file with a constructor returning a
// *cobra.Command. Commands do their work in a run function that returns an
// error and writes its report to an io.Writer; the cobra wrapper turns errors
// into a fatal log line.
package cmd
