package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dendrascience/valheim-save-tools/stablehash"
	"github.com/spf13/cobra"
)

// NewHashCmd creates and returns the hash subcommand.
func NewHashCmd() *cobra.Command {
	var lookup bool

	cmd := &cobra.Command{
		Use:   "hash NAME...",
		Short: "Compute or reverse stable string hashes",
		Long: `Hash prints the stable hash the game uses for each NAME.

With --lookup each argument is read as a hash and resolved back to a name
through the built-in name registry.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runHash(args, lookup, os.Stdout); err != nil {
				log.Fatalf("Hash failed: %v", err)
			}
		},
	}

	cmd.Flags().BoolVarP(&lookup, "lookup", "l", false, "Resolve hashes back to names")

	return cmd
}

func runHash(args []string, lookup bool, out io.Writer) error {
	if !lookup {
		for _, name := range args {
			fmt.Fprintf(out, "%d\t%s\n", stablehash.Hash(name), name)
		}
		return nil
	}

	names := stablehash.Default()
	for _, arg := range args {
		h, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid hash %q: %w", arg, err)
		}
		name, ok := names.Lookup(int32(h))
		if !ok {
			name = "(unknown)"
		}
		fmt.Fprintf(out, "%d\t%s\n", h, name)
	}
	return nil
}
