package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reflectc/internal/diag"
	"reflectc/internal/source"
	"reflectc/internal/trace"
)

// DefaultExtensions are the header suffixes picked up by directory runs.
var DefaultExtensions = []string{".h", ".hpp", ".hlsli"}

// DirOptions extend Options for directory runs.
type DirOptions struct {
	Options
	Extensions []string // nil selects DefaultExtensions
	Jobs       int      // <= 0 selects GOMAXPROCS
	Sink       ProgressSink
	FileSet    *source.FileSet // nil creates one based at dir
}

// ListSources returns every file under dir with one of exts, sorted.
func ListSources(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == strings.ToLower(want) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ReflectDir reflects every source under dir in parallel. Each unit gets its
// own parser and registry; results come back in path order. A file that
// fails to load yields a result with an IOLoadFileError diagnostic.
func ReflectDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []ReflectResult, error) {
	files, err := ListSources(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet := opts.FileSet
	if fileSet == nil {
		fileSet = source.NewFileSetWithBase(dir)
	}
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ctx, sp := trace.StartSpan(ctx, trace.ScopeDriver, "reflect-dir")
	sp.WithExtra("dir", dir)

	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]ReflectResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()

			if loadErr := loadErrors[i]; loadErr != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				results[i] = ReflectResult{Path: path, Bag: bag}
				emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(start)})
				return nil
			}

			unitOpts := opts.Options
			unitOpts.Observer = observerFor(opts.Sink, path)
			res, err := Reflect(gctx, fileSet, fileIDs[i], unitOpts)
			if err != nil {
				emit(opts.Sink, Event{File: path, Stage: StageReport, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = *res

			status := StatusDone
			switch {
			case res.Cached:
				status = StatusCached
			case !res.OK:
				status = StatusError
			}
			emit(opts.Sink, Event{File: path, Stage: StageReport, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		sp.Fail(err)
		return fileSet, results, err
	}
	sp.End(fmt.Sprintf("%d units", len(files)))
	return fileSet, results, nil
}

// MergeBags folds every unit's diagnostics into one bag for rendering.
func MergeBags(results []ReflectResult, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for i := range results {
		if results[i].Bag != nil {
			bag.Merge(results[i].Bag)
		}
	}
	return bag
}
