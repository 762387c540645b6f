package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"reflectc/internal/diag"
	"reflectc/internal/layout"
	"reflectc/internal/observ"
	"reflectc/internal/parser"
	"reflectc/internal/source"
	"reflectc/internal/token"
	"reflectc/internal/trace"
)

// Options configure one reflection run.
type Options struct {
	MaxDiagnostics int
	MaxDepth       int
	PointerSize    uint32
	Cache          *DiskCache
	Timings        bool // attach an ObsTimings record to the bag
	Observer       PhaseObserver
}

func (o Options) parserOptions(rep diag.Reporter) (parser.Options, error) {
	var maxErrors uint
	if o.MaxDiagnostics > 0 {
		n, err := safecast.Conv[uint](o.MaxDiagnostics)
		if err != nil {
			return parser.Options{}, err
		}
		maxErrors = n
	}
	return parser.Options{
		MaxErrors: maxErrors,
		MaxDepth:  o.MaxDepth,
		Target:    layout.TargetForPointerSize(o.PointerSize),
		Reporter:  rep,
	}, nil
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Symbols *token.Stream
	Result  parser.Result
	Bag     *diag.Bag
	Timing  *observ.Report
}

// Parse loads path, lexes and parses it.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(ctx, fs, fileID, opts)
}

// ParseFile lexes and parses a file already present in fs. Lexer and parser
// diagnostics share one bag.
func ParseFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*ParseResult, error) {
	file := fs.Get(fileID)
	if file == nil {
		return nil, fmt.Errorf("unknown file id %d", fileID)
	}
	timer := observ.NewTimer()
	res, err := parseWithTimer(ctx, fs, file, opts, timer)
	if err != nil {
		return nil, err
	}
	report := timer.Report()
	res.Timing = &report
	return res, nil
}

func parseWithTimer(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, timer *observ.Timer) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	endLex := opts.Observer.begin(StageLex)
	_, lexSpan := trace.StartSpan(ctx, trace.ScopePass, "lex")
	lexIdx := timer.Begin(string(StageLex))
	tok := tokenizeFile(fs, file, opts.MaxDiagnostics)
	detail := fmt.Sprintf("%d symbols", tok.Symbols.Len())
	timer.End(lexIdx, detail)
	lexSpan.End(detail)
	endLex()

	rep := diag.NewDedupReporter(diag.MultiReporter{
		diag.BagReporter{Bag: tok.Bag},
		traceReporter(ctx),
	})
	popts, err := opts.parserOptions(rep)
	if err != nil {
		return nil, err
	}

	endParse := opts.Observer.begin(StageParse)
	parseCtx, parseSpan := trace.StartSpan(ctx, trace.ScopePass, "parse")
	parseIdx := timer.Begin(string(StageParse))
	result := parser.Execute(parseCtx, tok.Symbols, popts)
	detail = fmt.Sprintf("%d nodes, %d types, %d errors", result.Tree.Len(), result.Infos.Len(), result.Errors)
	timer.End(parseIdx, detail)
	parseSpan.End(detail)
	endParse()

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Symbols: tok.Symbols,
		Result:  result,
		Bag:     tok.Bag,
	}, nil
}

// traceReporter mirrors grammar diagnostics into the trace as node-scope
// points, so a debug trace shows where recovery kicked in. Nil when tracing
// would drop them anyway.
func traceReporter(ctx context.Context) diag.Reporter {
	tracer := trace.FromContext(ctx)
	if !tracer.Enabled() || !tracer.Level().ShouldEmit(trace.ScopeNode) {
		return nil
	}
	parent := trace.CurrentSpan(ctx).SpanID
	return diag.ReporterFunc(func(code diag.Code, sev diag.Severity, primary source.Span, msg string, _ []diag.Note) {
		trace.Point(tracer, trace.ScopeNode, "diag:"+code.ID(), fmt.Sprintf("%s %s %s", sev, primary, msg), parent)
	})
}
