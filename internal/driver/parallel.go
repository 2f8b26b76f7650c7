package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"cinder/internal/diag"
	"cinder/internal/source"
)

// SourceExt is the file extension of Cinder sources.
const SourceExt = ".cin"

// ListSourceFiles returns all *.cin files under dir, sorted for
// deterministic processing order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir analyzes every *.cin file under dir in parallel. Each file gets
// its own bag; results come back in the same deterministic order as
// ListSourceFiles regardless of goroutine scheduling.
func CheckDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []CheckResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload sequentially: FileSet mutation is not goroutine-safe and the
	// analysis dominates the run anyway.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = CheckResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			if opts.Cache != nil {
				if bag, ok := opts.Cache.Lookup(file, opts.maxDiagnostics()); ok {
					results[i] = CheckResult{Path: path, FileID: fileID, Bag: bag}
					return nil
				}
			}

			bag := CheckSource(fileSet, fileID, opts.maxDiagnostics())
			if opts.Cache != nil {
				_ = opts.Cache.Store(file, bag)
			}

			// Index i is unique per goroutine, no mutex needed.
			results[i] = CheckResult{Path: path, FileID: fileID, Bag: bag}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeResults folds per-file bags into one sorted bag. Duplicate
// diagnostics (same code and span, possible when a cached and a fresh run
// of the same content meet) are collapsed.
func MergeResults(results []CheckResult, maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for _, res := range results {
		if res.Bag != nil {
			merged.Merge(res.Bag)
		}
	}
	merged.Sort()
	merged.Dedup()
	return merged
}
