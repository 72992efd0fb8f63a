package token

import (
	"testing"

	"github.com/aledsdavies/shastina/config"
	"github.com/aledsdavies/shastina/errkind"
	"github.com/aledsdavies/shastina/filter"
	"github.com/aledsdavies/shastina/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenizeAll(src string) []Token {
	f := filter.New(source.NewMemory([]byte(src)))
	tok := New(f)
	var toks []Token
	for {
		tk := tok.Next()
		toks = append(toks, tk)
		if tk.Kind == End || tk.Kind == Error {
			break
		}
	}
	return toks
}

func TestPlainTokenAndComments(t *testing.T) {
	toks := tokenizeAll("foo # a comment\nbar |;")
	require.Len(t, toks, 3)
	assert.Equal(t, simple("foo"), toks[0])
	assert.Equal(t, simple("bar"), toks[1])
	assert.Equal(t, end(), toks[2])
}

func TestAtomicTokensStandAlone(t *testing.T) {
	toks := tokenizeAll("( ) [ ] , |;")
	var texts []string
	for _, tk := range toks[:len(toks)-1] {
		require.Equal(t, Simple, tk.Kind)
		texts = append(texts, tk.Text)
	}
	assert.Equal(t, []string{"(", ")", "[", "]", ","}, texts)
}

func TestQuotedString(t *testing.T) {
	toks := tokenizeAll(`x"hello"  |;`)
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, strTok("x", Quoted, "hello"), toks[0])
}

func TestQuotedStringWithEscapedQuote(t *testing.T) {
	toks := tokenizeAll(`"a\"b" |;`)
	assert.Equal(t, strTok("", Quoted, `a\"b`), toks[0])
}

func TestCurlyStringWithEscapeOnly(t *testing.T) {
	toks := tokenizeAll(`{a\}b}c |;`)
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, strTok("", Curly, `a\}b`), toks[0])
	assert.Equal(t, simple("c"), toks[1])
}

func TestCurlyStringWithBalancedNesting(t *testing.T) {
	toks := tokenizeAll(`{a{b}c}d |;`)
	assert.Equal(t, strTok("", Curly, "a{b}c"), toks[0])
	assert.Equal(t, simple("d"), toks[1])
}

func TestPipeNotFollowedBySemicolonIsAPlainToken(t *testing.T) {
	toks := tokenizeAll(`|foo |;`)
	assert.Equal(t, simple("|foo"), toks[0])
	assert.Equal(t, end(), toks[1])
}

func TestBareClosingBraceIsAtomic(t *testing.T) {
	toks := tokenizeAll(`} |;`)
	assert.Equal(t, simple("}"), toks[0])
}

func TestIllegalCharacterIsBadChar(t *testing.T) {
	toks := tokenizeAll("\x01 |;")
	assert.Equal(t, errTok(errkind.BadChar), toks[0])
}

func TestNullInStringIsNullChr(t *testing.T) {
	toks := tokenizeAll("\"a\x00b\" |;")
	assert.Equal(t, errTok(errkind.NullChr), toks[0])
}

func TestUnterminatedStringIsOpenStr(t *testing.T) {
	toks := tokenizeAll(`"abc`)
	assert.Equal(t, errTok(errkind.OpenStr), toks[0])
}

func TestUnterminatedStringLatches(t *testing.T) {
	f := filter.New(source.NewMemory([]byte(`"abc`)))
	tok := New(f)
	first := tok.Next()
	second := tok.Next()
	assert.Equal(t, first, second)
}

func TestLongTokenLimit(t *testing.T) {
	f := filter.New(source.NewMemory([]byte("aaaaaa |;")))
	tok := New(f, WithLimits(config.Limits{
		MaxTokenLen: 3, MaxStringLen: 65535, MaxCurlyDepth: 1,
		MaxArrayElems: 1, MaxArrayDepth: 1, MaxGroupDepth: 1,
	}))
	tk := tok.Next()
	assert.Equal(t, errTok(errkind.LongToken), tk)
}

func TestLongStringLimit(t *testing.T) {
	f := filter.New(source.NewMemory([]byte(`"aaaaaa" |;`)))
	tok := New(f, WithLimits(config.Limits{
		MaxTokenLen: 65535, MaxStringLen: 3, MaxCurlyDepth: 1,
		MaxArrayElems: 1, MaxArrayDepth: 1, MaxGroupDepth: 1,
	}))
	tk := tok.Next()
	assert.Equal(t, errTok(errkind.LongStr), tk)
}

func TestDeepCurlyLimit(t *testing.T) {
	f := filter.New(source.NewMemory([]byte(`{a{b{c}d}e} |;`)))
	tok := New(f, WithLimits(config.Limits{
		MaxTokenLen: 65535, MaxStringLen: 65535, MaxCurlyDepth: 1,
		MaxArrayElems: 1, MaxArrayDepth: 1, MaxGroupDepth: 1,
	}))
	tk := tok.Next()
	assert.Equal(t, errTok(errkind.DeepCurly), tk)
}

func TestBadCrBubblesUpVerbatim(t *testing.T) {
	toks := tokenizeAll("foo\rbar")
	assert.Equal(t, errTok(errkind.BadCr), toks[0])
}

func FuzzTokenizerIsDeterministic(f *testing.F) {
	seeds := []string{
		"foo |;",
		`"hi" |;`,
		"{a{b}c}d |;",
		`"a\"b" |;`,
		"( ) [ ] , |;",
		"# comment\nfoo |;",
		"\x01 |;",
		"",
		`"abc`,
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		toks1 := tokenizeAll(string(input))
		toks2 := tokenizeAll(string(input))
		assert.Equal(t, toks1, toks2, "tokenizing the same input twice must yield identical tokens")
	})
}
