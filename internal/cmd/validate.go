package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dendrascience/valheim-save-tools/save"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewValidateCmd creates and returns the validate subcommand.
// It checks that archives decode and re-encode to the same bytes.
func NewValidateCmd() *cobra.Command {
	var (
		path    string
		jobs    int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that archives survive a decode/encode round trip",
		Long: `Validate decodes every .fwl, .db and .fch file under a path, encodes it
again and compares the result with the original bytes.

Any file that fails to decode or does not re-encode byte for byte is reported
and the command exits with a non-zero status.`,
		Run: func(cmd *cobra.Command, args []string) {
			logger := setupLogging(verbose)
			defer logger.Sync()

			sum, err := runValidate(cmd.Context(), path, jobs, os.Stdout)
			if err != nil {
				log.Fatalf("Validation failed: %v", err)
			}
			if sum.failed > 0 {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "File or directory of archives to validate (required)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of files validated in parallel")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("path")

	return cmd
}

type validateSummary struct {
	checked int
	failed  int
}

type validateResult struct {
	path string
	err  error
}

func runValidate(ctx context.Context, root string, jobs int, out io.Writer) (validateSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	paths, err := collectArchives(root)
	if err != nil {
		return validateSummary{}, err
	}

	results := make([]validateResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = validateResult{path: p, err: validateArchive(p)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return validateSummary{}, err
	}

	sum := validateSummary{checked: len(results)}
	for _, r := range results {
		if r.err != nil {
			sum.failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", r.path, r.err)
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", r.path)
	}

	fmt.Fprintf(out, "\nValidation complete:\n")
	fmt.Fprintf(out, "  Archives checked: %d\n", sum.checked)
	fmt.Fprintf(out, "  Failures: %d\n", sum.failed)
	return sum, nil
}

// collectArchives lists the binary archives at or below root in walk order.
func collectArchives(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if _, err := binaryType(root); err != nil {
			return nil, err
		}
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, err := binaryType(path); err == nil {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func binaryType(path string) (save.Type, error) {
	t, err := save.TypeFromPath(path)
	if err != nil {
		return t, err
	}
	if t == save.TypeJSON {
		return t, fmt.Errorf("%s: json dumps cannot be validated", path)
	}
	return t, nil
}

// validateArchive decodes path and checks that encoding the result yields
// the original bytes.
func validateArchive(path string) error {
	t, err := binaryType(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	a, err := save.Decode(data, t, save.DefaultHints())
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	encoded, err := save.Encode(a)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if !bytes.Equal(data, encoded) {
		return fmt.Errorf("re-encoded archive differs at byte %d (%d bytes in, %d bytes out)",
			firstDifference(data, encoded), len(data), len(encoded))
	}
	return nil
}

func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
