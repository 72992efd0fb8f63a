// Package token implements the tokenizer: it turns the filter's codepoint
// stream into Shastina tokens, classifying characters, skipping whitespace
// and comments, and reading string payloads with escape-aware closers.
package token

import "github.com/aledsdavies/shastina/errkind"

// Quoting identifies which delimiter opened a string token.
type Quoting int

const (
	// Quoted strings are delimited by a pair of double quotes.
	Quoted Quoting = iota
	// Curly strings are delimited by a balanced, nestable pair of braces.
	Curly
)

// Kind discriminates the variants of Token.
type Kind int

const (
	// Simple is a plain, non-string token: its Text is the full token.
	Simple Kind = iota
	// String is a quoted or curly string token: Prefix holds whatever
	// preceded the opening delimiter, Payload holds the content between
	// the delimiters.
	String
	// End is the `|;` sentinel that terminates a Shastina document.
	End
	// Error reports a failure from this layer or one bubbled up from the
	// filter below it.
	Error
)

// Token is the tagged union produced by Next. Only the fields relevant to
// Kind are meaningful.
type Token struct {
	Kind    Kind
	Text    string
	Prefix  string
	Quoting Quoting
	Payload string
	Err     errkind.Kind
}

func simple(text string) Token         { return Token{Kind: Simple, Text: text} }
func end() Token                       { return Token{Kind: End} }
func errTok(k errkind.Kind) Token      { return Token{Kind: Error, Err: k} }
func strTok(prefix string, q Quoting, payload string) Token {
	return Token{Kind: String, Prefix: prefix, Quoting: q, Payload: payload}
}
