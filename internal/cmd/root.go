package cmd

import (
	"github.com/dendrascience/valheim-save-tools/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the
// valheim-save-tools CLI. It sets up all subcommands and command groups.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "valheim-save-tools",
		Short: "valheim-save-tools - read, edit and write Valheim save archives",
		Long: `valheim-save-tools reads and writes Valheim world metadata (.fwl), world
databases (.db) and character files (.fch), and converts them to and from JSON.

Use subcommands to perform different operations:
  - convert: Convert an archive and optionally edit it on the way
  - validate: Check that archives survive a decode/encode round trip
  - stats: Summarise the contents of a world database
  - hash: Compute or reverse stable string hashes
  - seed: Generate a synthetic set of archives for testing`,
		Version: version.GetFullVersion(),
	}

	groupArchive := "archive"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupArchive,
		Title: "Archive Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	convertCmd := NewConvertCmd()
	validateCmd := NewValidateCmd()
	statsCmd := NewStatsCmd()
	hashCmd := NewHashCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	convertCmd.GroupID = groupArchive
	validateCmd.GroupID = groupArchive
	statsCmd.GroupID = groupArchive
	hashCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// NewVersionCmd creates the version subcommand.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion("valheim-save-tools")
		},
	}
}
