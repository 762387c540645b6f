package parser

import (
	"context"
	"fmt"

	"reflectc/internal/ast"
	"reflectc/internal/diag"
	"reflectc/internal/layout"
	"reflectc/internal/token"
	"reflectc/internal/trace"
	"reflectc/internal/types"
)

// DefaultMaxDepth bounds namespace/brace nesting.
const DefaultMaxDepth = 256

type Options struct {
	MaxErrors uint
	MaxDepth  int
	Target    layout.Target
	Reporter  diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) enough(current uint) bool {
	return o.MaxErrors != 0 && current >= o.MaxErrors
}

// Result is everything one translation unit produced. Tree, Types and Infos
// are populated even when OK is false.
type Result struct {
	Tree     *ast.Tree
	Types    *types.Registry
	Infos    *layout.Table
	Consumed int
	Errors   uint
	OK       bool
}

// Parser - состояние разбора одной единицы трансляции.
type Parser struct {
	syms   *token.Stream
	tree   *ast.Tree
	reg    *types.Registry
	gen    *layout.Generator
	opts   Options
	tracer trace.Tracer
	span   uint64 // parent span for node-level events

	ns     []string // текущий путь пространств имён
	depth  int
	errors uint
}

// New creates a parser over syms. The type registry is seeded with built-ins.
func New(syms *token.Stream, opts Options) *Parser {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	reg := types.NewRegistry()
	return &Parser{
		syms:   syms,
		tree:   ast.NewTree(syms),
		reg:    reg,
		gen:    layout.NewGenerator(opts.Target, reg),
		opts:   opts,
		tracer: trace.Nop,
	}
}

// Execute parses the whole stream. Each class/struct is laid out as soon as
// its declaration is complete. OK is true only when the stream was consumed
// completely and no error was reported.
func Execute(ctx context.Context, syms *token.Stream, opts Options) Result {
	p := New(syms, opts)
	p.tracer = trace.FromContext(ctx)
	p.span = trace.CurrentSpan(ctx).SpanID
	return p.Run()
}

// Run executes the top-level loop.
func (p *Parser) Run() Result {
	pos := 0
	root := p.tree.Root()
	for p.syms.Has(pos) {
		n, err := p.parseScopeItem(pos, root)
		if err != nil {
			p.reportErr(err)
			break
		}
		pos += n
	}
	return Result{
		Tree:     p.tree,
		Types:    p.reg,
		Infos:    p.gen.Table,
		Consumed: pos,
		Errors:   p.errors,
		OK:       p.errors == 0 && pos >= p.syms.Len(),
	}
}

// Tree returns the syntax tree built so far.
func (p *Parser) Tree() *ast.Tree { return p.tree }

// Types returns the parser's type registry.
func (p *Parser) Types() *types.Registry { return p.reg }

// Infos returns the TypeInfo table.
func (p *Parser) Infos() *layout.Table { return p.gen.Table }

func (p *Parser) reportErr(err error) {
	switch e := err.(type) {
	case *SyntaxError:
		p.report(e.Code, e.Sym, e.Msg, e.Notes...)
	case *layout.Error:
		p.report(e.Code(), e.Sym, e.Msg)
	default:
		p.report(diag.UnknownCode, p.syms.At(0), err.Error())
	}
}

func (p *Parser) report(code diag.Code, sym token.Symbol, msg string, notes ...diag.Note) {
	p.errors++
	if p.opts.Reporter == nil || p.opts.enough(p.errors-1) {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, sym.Span, msg, notes)
}

// layoutRecord runs the Type-Info generator on a freshly parsed record.
func (p *Parser) layoutRecord(record ast.NodeID) {
	sp := trace.Begin(p.tracer, trace.ScopeNode, "layout", p.span)
	info, err := p.gen.Generate(p.tree, record)
	if err != nil {
		sp.Fail(err)
		p.reportErr(err)
		return
	}
	sp.WithExtra("type", info.TypeName).End(fmt.Sprintf("size=%d members=%d", info.Size, len(info.Members)))
}

// enter bumps the nesting depth; callers must call leave when it succeeds.
func (p *Parser) enter(pos int) error {
	if p.depth >= p.opts.MaxDepth {
		return p.fail(pos, diag.SynNestingTooDeep, fmt.Sprintf("nesting deeper than %d levels", p.opts.MaxDepth))
	}
	p.depth++
	return nil
}

func (p *Parser) leave() { p.depth-- }
