// Package shastina wires the source, filter, tokenizer, and parser layers
// into a single pull-based Reader, the same way a caller of the reference
// C library would wrap sn_source, the filter, and the parser together
// behind one handle.
package shastina

import (
	"github.com/aledsdavies/shastina/config"
	"github.com/aledsdavies/shastina/entity"
	"github.com/aledsdavies/shastina/filter"
	"github.com/aledsdavies/shastina/source"
	"github.com/aledsdavies/shastina/token"
)

// Re-export the entity vocabulary so callers need only import this package
// for ordinary use.
type (
	Entity  = entity.Entity
	Kind    = entity.Kind
	Quoting = token.Quoting
)

const (
	BeginMeta  = entity.BeginMeta
	EndMeta    = entity.EndMeta
	BeginGroup = entity.BeginGroup
	EndGroup   = entity.EndGroup
	Numeric    = entity.Numeric
	Variable   = entity.Variable
	Constant   = entity.Constant
	Assign     = entity.Assign
	Get        = entity.Get
	Operation  = entity.Operation
	MetaToken  = entity.MetaToken
	String     = entity.String
	MetaString = entity.MetaString
	Array      = entity.Array
	Eof        = entity.Eof
	Error      = entity.Error
)

const (
	Quoted = token.Quoted
	Curly  = token.Curly
)

// Option configures a Reader's numeric limits.
type Option func(*options)

type options struct {
	limits config.Limits
}

// WithLimits overrides every length/nesting limit used by the tokenizer and
// parser.
func WithLimits(l config.Limits) Option {
	return func(o *options) { o.limits = l }
}

// Reader is the top-level pull interface: call Next repeatedly until it
// returns an Eof or Error entity.
type Reader struct {
	f *filter.Filter
	p *entity.Parser
}

// New builds a Reader over src.
func New(src source.Source, opts ...Option) *Reader {
	o := &options{limits: config.Default()}
	for _, opt := range opts {
		opt(o)
	}
	f := filter.New(src)
	tok := token.New(f, token.WithLimits(o.limits))
	p := entity.New(tok, entity.WithLimits(o.limits))
	return &Reader{f: f, p: p}
}

// Next returns the next entity in the stream.
func (r *Reader) Next() Entity {
	return r.p.Next()
}

// LineCount returns the 1-based source line reached so far.
func (r *Reader) LineCount() int64 {
	return r.f.LineCount()
}

// Drain reads every entity from r until Eof or Error, returning them all in
// order (the terminal entity included).
func Drain(r *Reader) []Entity {
	var out []Entity
	for {
		e := r.Next()
		out = append(out, e)
		if e.Kind == Eof || e.Kind == Error {
			return out
		}
	}
}
