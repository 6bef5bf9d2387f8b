package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dendrascience/valheim-save-tools/internal/config"
	"github.com/dendrascience/valheim-save-tools/save"
	"github.com/dendrascience/valheim-save-tools/world"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type convertOptions struct {
	input                    string
	output                   string
	listGlobalKeys           bool
	addGlobalKeys            []string
	removeGlobalKeys         []string
	cleanStructures          bool
	cleanThreshold           int
	resetWorld               bool
	skipResolveNames         bool
	failOnUnsupportedVersion bool
	rulesPath                string
}

// worldEdits reports whether any processor needs a world database.
func (o convertOptions) worldEdits() bool {
	return o.listGlobalKeys || len(o.addGlobalKeys) > 0 || len(o.removeGlobalKeys) > 0 ||
		o.cleanStructures || o.resetWorld
}

// NewConvertCmd creates and returns the convert subcommand.
// It reads an archive, applies the requested processors and writes the
// result in the format implied by the output extension.
func NewConvertCmd() *cobra.Command {
	var (
		opts    convertOptions
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT [OUTPUT]",
		Short: "Convert an archive between binary and JSON, editing it on the way",
		Long: `Convert reads a .fwl, .db, .fch or .json archive and writes it to OUTPUT.

The output format follows the OUTPUT extension, so a .db file can be dumped to
.json, edited and converted back. World processors run in this order:
add global keys, remove global keys, clean structures, reset world, list
global keys. Without OUTPUT the archive is only read and processed.`,
		Args: cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			opts.input = args[0]
			if len(args) > 1 {
				opts.output = args[1]
			}
			if cmd.Flags().Changed("clean-structures-threshold") {
				opts.cleanStructures = true
			}
			logger := setupLogging(verbose)
			defer logger.Sync()

			if err := runConvert(opts, os.Stdout); err != nil {
				log.Fatalf("Convert failed: %v", err)
			}
		},
	}

	cmd.Flags().BoolVar(&opts.listGlobalKeys, "list-global-keys", false, "Print the world's global keys")
	cmd.Flags().StringArrayVar(&opts.addGlobalKeys, "add-global-key", nil, "Add a global key (repeatable)")
	cmd.Flags().StringArrayVar(&opts.removeGlobalKeys, "remove-global-key", nil, "Remove a global key, or all of them with \"all\" (repeatable)")
	cmd.Flags().BoolVar(&opts.cleanStructures, "clean-structures", false, "Remove player built structures in sparsely built areas")
	cmd.Flags().IntVar(&opts.cleanThreshold, "clean-structures-threshold", -1, "Structure density below which an area is cleared (implies --clean-structures)")
	cmd.Flags().BoolVar(&opts.resetWorld, "reset-world", false, "Regenerate everything outside player bases and boss altars")
	cmd.Flags().BoolVar(&opts.skipResolveNames, "skip-resolve-names", false, "Keep property and prefab hashes instead of resolving names")
	cmd.Flags().BoolVar(&opts.failOnUnsupportedVersion, "fail-on-unsupported-version", false, "Fail on record versions newer than supported")
	cmd.Flags().StringVarP(&opts.rulesPath, "rules", "r", "", "Path to a YAML rules file for the world processors")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runConvert(opts convertOptions, out io.Writer) error {
	hints := save.DefaultHints()
	hints.ResolveNames = !opts.skipResolveNames
	hints.FailOnUnsupportedVersion = opts.failOnUnsupportedVersion

	rules, err := config.Load(opts.rulesPath)
	if err != nil {
		return err
	}
	if opts.cleanThreshold >= 0 {
		rules.Threshold = opts.cleanThreshold
	}

	a, err := save.ReadFile(opts.input, hints)
	if err != nil {
		return err
	}
	save.Logger().Info("read archive", zap.String("path", opts.input), zap.Stringer("type", a.Type()))

	if opts.worldEdits() {
		w, err := save.AsWorld(a)
		if err != nil {
			return fmt.Errorf("%s: %w", opts.input, err)
		}
		if err := processWorld(w, opts, rules, out); err != nil {
			return err
		}
	}

	if opts.output == "" {
		return nil
	}
	if err := save.WriteFile(a, opts.output); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", opts.output)
	return nil
}

func processWorld(w *save.World, opts convertOptions, rules world.Rules, out io.Writer) error {
	if len(opts.addGlobalKeys) > 0 {
		n := world.AddGlobalKeys(w, opts.addGlobalKeys...)
		fmt.Fprintf(out, "Added %d global keys\n", n)
	}
	if len(opts.removeGlobalKeys) > 0 {
		n := world.RemoveGlobalKeys(w, opts.removeGlobalKeys...)
		fmt.Fprintf(out, "Removed %d global keys\n", n)
	}
	if opts.cleanStructures {
		r, err := world.CleanStructures(w, rules)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleaned structures: removed %d objects from %d sectors (%d sectors kept)\n",
			r.RemovedObjects, r.AffectedSectors, r.KeptSectors)
	}
	if opts.resetWorld {
		r, err := world.ResetWorld(w, rules)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Reset world: removed %d objects and %d zones, %d locations will regenerate\n",
			r.RemovedObjects, r.RemovedZones, r.ResetLocations)
	}
	if opts.listGlobalKeys {
		keys := w.Zones.ListGlobalKeys()
		fmt.Fprintf(out, "Global keys (%d):\n", len(keys))
		for _, k := range keys {
			fmt.Fprintf(out, "  %s\n", k)
		}
	}
	return nil
}
