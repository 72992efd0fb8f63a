package token

import (
	"github.com/aledsdavies/shastina/config"
	"github.com/aledsdavies/shastina/errkind"
)

// reader is the minimal pull interface the tokenizer needs out of the
// filter layer, narrowed so this package doesn't need to import filter
// directly and tests can supply a fake.
type reader interface {
	ReadCode() (int32, error)
	Pushback()
}

// atomic tokens stand alone as a single-codepoint token regardless of
// context.
var atomicSet = map[int32]bool{
	'(': true, ')': true, '[': true, ']': true,
	',': true, '%': true, ';': true,
	'"': true, '{': true, '}': true,
}

// exclusiveCloser ends a token in progress without being included in it.
var exclusiveCloser = map[int32]bool{
	' ': true, '\t': true, '\n': true,
	'(': true, ')': true, '[': true, ']': true,
	',': true, '%': true, ';': true, '#': true, '}': true,
}

func isInclusiveCloser(cp int32) bool { return cp == '"' || cp == '{' }

func isWhitespace(cp int32) bool { return cp == ' ' || cp == '\t' || cp == '\n' }

// legal reports whether cp may appear outside a string literal: space, tab,
// line feed, or visible ASCII 0x21-0x7E.
func legal(cp int32) bool {
	if isWhitespace(cp) {
		return true
	}
	return cp >= 0x21 && cp <= 0x7E
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithLimits overrides the default token and string length limits.
func WithLimits(l config.Limits) Option {
	return func(t *Tokenizer) { t.limits = l }
}

// Tokenizer turns a codepoint stream into Shastina tokens.
type Tokenizer struct {
	r      reader
	limits config.Limits

	latched    bool
	latchedTok Token
}

// New returns a Tokenizer reading from r.
func New(r reader, opts ...Option) *Tokenizer {
	t := &Tokenizer{r: r, limits: config.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Next returns the next token. Once it returns an End or Error token, every
// subsequent call returns that same token again.
func (t *Tokenizer) Next() Token {
	if t.latched {
		return t.latchedTok
	}
	tok := t.next()
	if tok.Kind == Error || tok.Kind == End {
		t.latched = true
		t.latchedTok = tok
	}
	return tok
}

func (t *Tokenizer) read() (int32, error) {
	return t.r.ReadCode()
}

// skipWhitespaceAndComments consumes runs of whitespace and `#` comments,
// leaving the next significant codepoint unread (pushed back) on success.
func (t *Tokenizer) skipWhitespaceAndComments() (errkind.Kind, bool) {
	for {
		cp, err := t.read()
		if err != nil {
			return errkind.KindOf(err)
		}
		if isWhitespace(cp) {
			continue
		}
		if cp == '#' {
			for {
				c2, err2 := t.read()
				if err2 != nil {
					k, _ := errkind.KindOf(err2)
					return k, true
				}
				if c2 == '\n' {
					break
				}
			}
			continue
		}
		t.r.Pushback()
		return 0, false
	}
}

func (t *Tokenizer) next() Token {
	if k, bad := t.skipWhitespaceAndComments(); bad {
		return errTok(k)
	}

	cp, err := t.read()
	if err != nil {
		k, _ := errkind.KindOf(err)
		return errTok(k)
	}
	if !legal(cp) {
		return errTok(errkind.BadChar)
	}

	if cp == '|' {
		nxt, err2 := t.read()
		if err2 != nil {
			k, _ := errkind.KindOf(err2)
			return errTok(k)
		}
		if nxt == ';' {
			return end()
		}
		t.r.Pushback()
	}

	if atomicSet[cp] {
		return t.finishPlain(string(rune(cp)), cp)
	}

	runes := []rune{rune(cp)}
	for {
		c2, err2 := t.read()
		if err2 != nil {
			k, _ := errkind.KindOf(err2)
			return errTok(k)
		}
		if exclusiveCloser[c2] {
			t.r.Pushback()
			break
		}
		if isInclusiveCloser(c2) {
			runes = append(runes, rune(c2))
			return t.finishPlain(string(runes), c2)
		}
		if !legal(c2) {
			return errTok(errkind.BadChar)
		}
		runes = append(runes, rune(c2))
		if uint32(len(runes)) > t.limits.MaxTokenLen {
			return errTok(errkind.LongToken)
		}
	}
	return t.finishPlain(string(runes), 0)
}

// finishPlain wraps up a plain token whose text is complete. last is the
// final codepoint of text, or 0 for a multi-codepoint token that ended at
// an exclusive closer; when it is an inclusive closer ('"' or '{'), a
// string payload follows.
func (t *Tokenizer) finishPlain(text string, last int32) Token {
	if last == '"' {
		return t.finishString(text[:len(text)-1], Quoted)
	}
	if last == '{' {
		return t.finishString(text[:len(text)-1], Curly)
	}
	return simple(text)
}

func (t *Tokenizer) finishString(prefix string, q Quoting) Token {
	payload, k, bad := t.readPayload(q)
	if bad {
		return errTok(k)
	}
	return strTok(prefix, q, payload)
}

// readPayload consumes a string's payload up to (and, for Curly, including
// any nested braces but not the final closing brace) its closing delimiter,
// honoring escape parity throughout.
func (t *Tokenizer) readPayload(q Quoting) (string, errkind.Kind, bool) {
	var out []rune
	parity := 0
	depth := 1 // only meaningful for Curly

	for {
		cp, err := t.read()
		if err != nil {
			k, _ := errkind.KindOf(err)
			if k == errkind.Eof {
				return "", errkind.OpenStr, true
			}
			return "", k, true
		}

		even := parity%2 == 0
		appendCP := true
		closed := false

		switch {
		case q == Quoted && cp == '"' && even:
			closed = true
			appendCP = false
		case q == Curly && cp == '{' && even:
			depth++
			if depth > int(t.limits.MaxCurlyDepth)+1 {
				return "", errkind.DeepCurly, true
			}
		case q == Curly && cp == '}' && even:
			depth--
			if depth == 0 {
				closed = true
				appendCP = false
			}
		case cp == 0:
			return "", errkind.NullChr, true
		}

		if appendCP {
			out = append(out, rune(cp))
			if uint32(len(out)) > t.limits.MaxStringLen {
				return "", errkind.LongStr, true
			}
		}

		if cp == '\\' {
			parity++
		} else {
			parity = 0
		}

		if closed {
			return string(out), 0, false
		}
	}
}
