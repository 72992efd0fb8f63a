package entity

import (
	"github.com/aledsdavies/shastina/config"
	"github.com/aledsdavies/shastina/errkind"
	"github.com/aledsdavies/shastina/token"
)

// tokenizer is the minimal pull interface the parser needs from the
// tokenizer layer.
type tokenizer interface {
	Next() token.Token
}

// Option configures a Parser.
type Option func(*Parser)

// WithLimits overrides the default array/group nesting limits.
func WithLimits(l config.Limits) Option {
	return func(p *Parser) { p.limits = l }
}

// Parser is the stack-based entity synthesizer.
type Parser struct {
	tok    tokenizer
	limits config.Limits

	meta         bool
	arrayPending bool
	arrayStack   []uint32
	groupStack   []uint32

	queue []Entity

	terminal *Entity
}

// New returns a Parser reading tokens from tok.
func New(tok tokenizer, opts ...Option) *Parser {
	p := &Parser{
		tok:        tok,
		limits:     config.Default(),
		groupStack: []uint32{0},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next returns the next entity. Once Eof or Error has been returned, every
// subsequent call returns that same terminal entity again.
func (p *Parser) Next() Entity {
	if len(p.queue) > 0 {
		e := p.queue[0]
		p.queue = p.queue[1:]
		return e
	}
	if p.terminal != nil {
		return *p.terminal
	}
	for {
		p.step()
		if len(p.queue) > 0 {
			break
		}
		if p.terminal != nil {
			return *p.terminal
		}
	}
	e := p.queue[0]
	p.queue = p.queue[1:]
	return e
}

func (p *Parser) enqueue(e Entity) { p.queue = append(p.queue, e) }

func (p *Parser) fail(k errkind.Kind) {
	t := Entity{Kind: Error, Err: k}
	p.terminal = &t
}

func simpleText(tk token.Token) (string, bool) {
	if tk.Kind == token.Simple {
		return tk.Text, true
	}
	return "", false
}

func (p *Parser) step() {
	tk := p.tok.Next()

	if tk.Kind == token.Error {
		p.fail(tk.Err)
		return
	}
	if tk.Kind == token.End {
		p.handleEnd()
		return
	}

	text, isSimple := simpleText(tk)

	if p.meta {
		p.handleMetaToken(tk, text, isSimple)
		return
	}

	isRSqr := isSimple && text == "]"
	if !isRSqr {
		if bad := p.resolvePending(); bad {
			return
		}
	}

	if isSimple {
		switch text {
		case "%":
			p.doBeginMeta()
			return
		case ";":
			p.fail(errkind.Semicolon)
			return
		case "(":
			p.doBeginGroup()
			return
		case ")":
			p.doEndGroup()
			return
		case "[":
			p.arrayPending = true
			return
		case "]":
			p.doEndArray()
			return
		case ",":
			p.doComma()
			return
		}
		p.handleSimpleOperand(text)
		return
	}

	p.enqueue(Entity{Kind: String, Prefix: tk.Prefix, Quoting: tk.Quoting, Payload: tk.Payload})
}

func (p *Parser) handleMetaToken(tk token.Token, text string, isSimple bool) {
	if isSimple {
		switch text {
		case "%":
			p.fail(errkind.MetaNest)
			return
		case ";":
			p.meta = false
			p.enqueue(Entity{Kind: EndMeta})
			return
		}
		p.enqueue(Entity{Kind: MetaToken, Text: text})
		return
	}
	p.enqueue(Entity{Kind: MetaString, Prefix: tk.Prefix, Quoting: tk.Quoting, Payload: tk.Payload})
}

func (p *Parser) handleSimpleOperand(text string) {
	if text == "" {
		p.enqueue(Entity{Kind: Operation, Text: text})
		return
	}
	switch text[0] {
	case '?':
		p.enqueue(Entity{Kind: Variable, Text: text[1:]})
	case '@':
		p.enqueue(Entity{Kind: Constant, Text: text[1:]})
	case ':':
		p.enqueue(Entity{Kind: Assign, Text: text[1:]})
	case '=':
		p.enqueue(Entity{Kind: Get, Text: text[1:]})
	default:
		if text[0] == '+' || text[0] == '-' || (text[0] >= '0' && text[0] <= '9') {
			p.enqueue(Entity{Kind: Numeric, Text: text})
		} else {
			p.enqueue(Entity{Kind: Operation, Text: text})
		}
	}
}

// resolvePending opens the implicit group for a pending array, if one was
// left by a preceding `[`. Returns true if it failed (a terminal error was
// set) and the caller must stop processing the current token.
func (p *Parser) resolvePending() bool {
	if !p.arrayPending {
		return false
	}
	p.arrayPending = false
	if uint32(len(p.arrayStack)) >= p.limits.MaxArrayDepth {
		p.fail(errkind.DeepArray)
		return true
	}
	p.arrayStack = append(p.arrayStack, 1)
	p.groupStack = append(p.groupStack, 0)
	p.enqueue(Entity{Kind: BeginGroup})
	return false
}

func (p *Parser) topGroup() uint32 {
	return p.groupStack[len(p.groupStack)-1]
}

func (p *Parser) doBeginMeta() {
	if p.meta {
		p.fail(errkind.MetaNest)
		return
	}
	p.meta = true
	p.enqueue(Entity{Kind: BeginMeta})
}

func (p *Parser) doBeginGroup() {
	top := len(p.groupStack) - 1
	if p.groupStack[top] >= p.limits.MaxGroupDepth {
		p.fail(errkind.DeepGroup)
		return
	}
	p.groupStack[top]++
	p.enqueue(Entity{Kind: BeginGroup})
}

func (p *Parser) doEndGroup() {
	top := len(p.groupStack) - 1
	if p.groupStack[top] == 0 {
		p.fail(errkind.RParen)
		return
	}
	p.groupStack[top]--
	p.enqueue(Entity{Kind: EndGroup})
}

func (p *Parser) doEndArray() {
	if p.arrayPending {
		p.arrayPending = false
		p.enqueue(Entity{Kind: Array, Count: 0})
		return
	}
	if len(p.arrayStack) == 0 {
		p.fail(errkind.RSqr)
		return
	}
	if p.topGroup() != 0 {
		p.fail(errkind.OpenGroup)
		return
	}
	n := p.arrayStack[len(p.arrayStack)-1]
	p.arrayStack = p.arrayStack[:len(p.arrayStack)-1]
	p.groupStack = p.groupStack[:len(p.groupStack)-1]
	p.enqueue(Entity{Kind: EndGroup})
	p.enqueue(Entity{Kind: Array, Count: n})
}

func (p *Parser) doComma() {
	if len(p.arrayStack) == 0 {
		p.fail(errkind.Comma)
		return
	}
	if p.topGroup() != 0 {
		p.fail(errkind.OpenGroup)
		return
	}
	idx := len(p.arrayStack) - 1
	if p.arrayStack[idx] >= p.limits.MaxArrayElems {
		p.fail(errkind.LongArray)
		return
	}
	p.arrayStack[idx]++
	p.enqueue(Entity{Kind: EndGroup})
	p.enqueue(Entity{Kind: BeginGroup})
}

func (p *Parser) handleEnd() {
	if p.meta {
		p.fail(errkind.OpenMeta)
		return
	}
	if p.arrayPending || len(p.arrayStack) > 0 {
		p.fail(errkind.OpenArray)
		return
	}
	if len(p.groupStack) != 1 {
		panic("entity: group stack invariant violated")
	}
	if p.groupStack[0] != 0 {
		p.fail(errkind.OpenGroup)
		return
	}
	t := Entity{Kind: Eof}
	p.terminal = &t
}
