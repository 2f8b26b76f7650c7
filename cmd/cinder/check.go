package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/diag"
	"cinder/internal/diagfmt"
	"cinder/internal/driver"
	"cinder/internal/project"
	"cinder/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Analyze Cinder sources for control-flow errors",
	Long: `Check runs the uninitialized-storage analysis over a file or directory.
Without a path it looks for the nearest cinder.toml and checks the project's
source directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|golden)")
	checkCmd.Flags().Int("jobs", 0, "parallel workers for directory mode (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", true, "show secondary notes")
	checkCmd.Flags().Bool("no-cache", false, "disable the on-disk result cache")
	checkCmd.Flags().Bool("drop-cache", false, "invalidate the on-disk result cache before checking")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	warningsAsErrors, _ := cmd.Flags().GetBool("warnings-as-errors")
	withNotes, _ := cmd.Flags().GetBool("with-notes")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	dropCache, _ := cmd.Flags().GetBool("drop-cache")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	target, manifest, err := resolveCheckTarget(args)
	if err != nil {
		return err
	}
	if manifest != nil {
		if maxDiagnostics <= 0 {
			maxDiagnostics = manifest.MaxDiagnostics()
		}
		if manifest.Config.Check.WarningsAsErrors {
			warningsAsErrors = true
		}
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = project.DefaultMaxDiagnostics
	}

	opts := driver.Options{MaxDiagnostics: maxDiagnostics, Jobs: jobs}
	if !noCache {
		if cache, err := driver.OpenDiskCache("cinder"); err == nil {
			if dropCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("failed to drop cache: %w", err)
				}
			}
			opts.Cache = cache
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}

	var fileSet *source.FileSet
	var bag *diag.Bag
	if info.IsDir() {
		fs, results, err := driver.CheckDir(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		fileSet = fs
		bag = driver.MergeResults(results, maxDiagnostics)
	} else {
		fileSet = source.NewFileSet()
		res := driver.CheckFile(fileSet, target, opts)
		bag = res.Bag
		bag.Sort()
	}

	if err := emitDiagnostics(cmd, format, bag, fileSet, withNotes); err != nil {
		return err
	}

	failed := bag.HasErrors() || (warningsAsErrors && bag.HasWarnings())
	if failed {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintf(os.Stderr, "check failed with %d diagnostic(s)\n", bag.Len())
		}
		return fmt.Errorf("check failed")
	}
	return nil
}

// resolveCheckTarget picks the path to analyze: an explicit argument wins,
// otherwise the manifest's source directory, otherwise the working directory.
func resolveCheckTarget(args []string) (string, *project.Manifest, error) {
	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	manifest, ok, err := project.Load(start)
	if err != nil {
		return "", nil, err
	}
	if len(args) == 1 {
		if !ok {
			return args[0], nil, nil
		}
		return args[0], manifest, nil
	}
	if ok {
		return manifest.SourceDir(), manifest, nil
	}
	return ".", nil, nil
}

func emitDiagnostics(cmd *cobra.Command, format string, bag *diag.Bag, fileSet *source.FileSet, withNotes bool) error {
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: withNotes,
		})
		return nil
	case "json":
		return diagfmt.JSON(os.Stdout, bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     withNotes,
		})
	case "golden":
		_, err := fmt.Fprint(os.Stdout, diag.FormatGolden(bag, fileSet, withNotes))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
