// Package version provides version information and build metadata for
// valheim-save-tools.
//
// Version, Commit and Date can be set at build time:
//
//	-ldflags "-X github.com/dendrascience/valheim-save-tools/version.Version=v1.0.0"
//
// Otherwise the values recorded by the go tool are used. Info also lists
// the newest archive format versions the build understands, which is what a
// user usually needs to know when a save from a newer game fails to load.
package version
