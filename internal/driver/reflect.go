package driver

import (
	"context"
	"fmt"

	"reflectc/internal/diag"
	"reflectc/internal/layout"
	"reflectc/internal/observ"
	"reflectc/internal/parser"
	"reflectc/internal/source"
	"reflectc/internal/trace"
)

// ReflectResult is the TypeInfo table of one translation unit.
type ReflectResult struct {
	Path   string
	FileID source.FileID
	Infos  []layout.TypeInfo
	Bag    *diag.Bag
	Cached bool
	OK     bool
	Timing *observ.Report
	Parse  *ParseResult // nil for cache hits
}

// Table rebuilds a lookup table over Infos.
func (r *ReflectResult) Table() *layout.Table {
	if r == nil {
		return layout.NewTable()
	}
	return layout.FromInfos(r.Infos)
}

// ReflectFile loads path into a fresh FileSet and reflects it.
func ReflectFile(ctx context.Context, path string, opts Options) (*source.FileSet, *ReflectResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	res, err := Reflect(ctx, fs, fileID, opts)
	return fs, res, err
}

// Reflect produces the TypeInfo table for a file in fs. Clean results are
// stored in opts.Cache; a cache hit skips lexing and parsing. Cache failures
// degrade to warnings.
func Reflect(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*ReflectResult, error) {
	file := fs.Get(fileID)
	if file == nil {
		return nil, fmt.Errorf("unknown file id %d", fileID)
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = parser.DefaultMaxDepth
	}
	ptrSize := layout.TargetForPointerSize(opts.PointerSize).PtrSize

	ctx, unit := trace.StartSpan(ctx, trace.ScopeUnit, "reflect")
	unit.WithExtra("file", file.Path)

	timer := observ.NewTimer()
	out := &ReflectResult{Path: file.Path, FileID: fileID}

	key := CacheKey(file.Hash, ptrSize, opts.MaxDepth)
	var cacheWarn error
	if opts.Cache != nil {
		endCache := opts.Observer.begin(StageCache)
		done := timer.Track(string(StageCache))
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		endCache()
		switch {
		case err != nil:
			cacheWarn = err
			done("miss: " + err.Error())
		case hit:
			done("hit")
			out.Infos = payload.Infos
			out.Bag = diag.NewBag(opts.MaxDiagnostics)
			out.Cached = true
			out.OK = true
			finish(out, timer, opts)
			unit.End(fmt.Sprintf("cached, %d types", len(out.Infos)))
			return out, nil
		default:
			done("miss")
		}
	}

	pr, err := parseWithTimer(ctx, fs, file, opts, timer)
	if err != nil {
		unit.Fail(err)
		return nil, err
	}
	out.Parse = pr
	out.Bag = pr.Bag
	out.Infos = pr.Result.Infos.All()
	out.OK = pr.Result.OK && !pr.Bag.HasErrors()

	if cacheWarn != nil {
		diag.ReportWarning(diag.BagReporter{Bag: out.Bag}, diag.IOCacheError, source.Span{File: fileID}, cacheWarn.Error()).Emit()
	}
	if opts.Cache != nil && out.OK {
		err := opts.Cache.Put(key, &DiskPayload{
			Path:        file.Path,
			ContentHash: file.Hash,
			PtrSize:     ptrSize,
			Infos:       out.Infos,
		})
		if err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: out.Bag}, diag.IOCacheError, source.Span{File: fileID}, "cache store: "+err.Error()).Emit()
		}
	}

	finish(out, timer, opts)
	unit.End(fmt.Sprintf("%d types, %d errors", len(out.Infos), pr.Result.Errors))
	return out, nil
}

func finish(out *ReflectResult, timer *observ.Timer, opts Options) {
	report := timer.Report()
	out.Timing = &report
	if opts.Timings {
		appendTimingDiagnostic(out.Bag, unitTimings(out.Path, len(out.Infos), report))
	}
}
