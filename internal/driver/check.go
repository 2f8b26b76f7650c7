// Package driver wires the front-end phases into runnable pipelines:
// single-file checks, parallel directory checks and the standard-json
// batch interface.
package driver

import (
	"cinder/internal/ast"
	"cinder/internal/cfg"
	"cinder/internal/controlflow"
	"cinder/internal/diag"
	"cinder/internal/parser"
	"cinder/internal/source"
)

// Options tunes a check run.
type Options struct {
	// MaxDiagnostics caps each file's bag. Non-positive means a default cap.
	MaxDiagnostics int
	// Jobs bounds directory-mode parallelism. Non-positive means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, short-circuits files whose content hash has an
	// up-to-date entry.
	Cache *DiskCache
}

const defaultMaxDiagnostics = 256

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// CheckResult is the outcome of analyzing one source file.
type CheckResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
}

// CheckSource runs the full pipeline over one already-loaded file:
// parse, build control-flow graphs, run the uninitialized-storage pass.
// The returned bag is sorted.
func CheckSource(fileSet *source.FileSet, fileID source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	file := fileSet.Get(fileID)
	if file == nil {
		return bag
	}
	reporter := diag.BagReporter{Bag: bag}

	builder := ast.NewBuilder(ast.Hints{})
	astFile := parser.ParseFile(builder, file, reporter)
	flows := cfg.Construct(builder, astFile, reporter)
	controlflow.Analyze(builder, astFile, flows, reporter)

	bag.Sort()
	return bag
}

// CheckFile loads a single path and analyzes it. Load failures surface as
// an IOLoadFileError diagnostic, not a process error.
func CheckFile(fileSet *source.FileSet, path string, opts Options) CheckResult {
	fileID, err := fileSet.Load(path)
	if err != nil {
		bag := diag.NewBag(opts.maxDiagnostics())
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + err.Error(),
		})
		return CheckResult{Path: path, Bag: bag}
	}

	file := fileSet.Get(fileID)
	if opts.Cache != nil {
		if bag, ok := opts.Cache.Lookup(file, opts.maxDiagnostics()); ok {
			return CheckResult{Path: path, FileID: fileID, Bag: bag}
		}
	}

	bag := CheckSource(fileSet, fileID, opts.maxDiagnostics())
	if opts.Cache != nil {
		// Cache write failures degrade to a cold run next time.
		_ = opts.Cache.Store(file, bag)
	}
	return CheckResult{Path: path, FileID: fileID, Bag: bag}
}
