package trace

import "context"

type ctxKey struct{}

// ctxState is what a context carries: the tracer and the innermost open
// span. Both travel under one key so StartSpan does a single lookup.
type ctxState struct {
	tracer Tracer
	span   SpanContext
}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer stores t in ctx and resets the span parent. A nil tracer
// stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: t})
}

// SpanContext identifies the innermost open span for propagation.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// CurrentSpan returns the span stored in ctx; the zero value means "root".
func CurrentSpan(ctx context.Context) SpanContext {
	return stateOf(ctx).span
}

// StartSpan opens a span under the one in ctx and returns a context that
// carries the new span. Inert spans leave ctx untouched.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	st := stateOf(ctx)
	sp := Begin(st.tracer, scope, name, st.span.SpanID)
	if sp.ID() == 0 {
		return ctx, sp
	}
	st.span = SpanContext{SpanID: sp.ID(), GID: sp.begin.GID}
	return context.WithValue(ctx, ctxKey{}, st), sp
}
