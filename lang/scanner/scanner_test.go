package scanner_test

import (
	"testing"

	"github.com/cabin-lang/cabin/lang/scanner"
	"github.com/cabin-lang/cabin/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScan_KeywordsAndPunctuation(t *testing.T) {
	toks, err := scanner.Scan("test.cabin", []byte("let x: Number = 1 + 2"))
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.COLON, token.IDENT, token.EQ,
		token.NUMBER, token.PLUS, token.NUMBER, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "x", toks[1].Lit)
	assert.Equal(t, "Number", toks[3].Lit)
}

func TestScan_NumberLiteral(t *testing.T) {
	toks, err := scanner.Scan("test.cabin", []byte("3.14"))
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, "3.14", toks[0].Lit)
}

func TestScan_TextLiteralWithEscapes(t *testing.T) {
	toks, err := scanner.Scan("test.cabin", []byte(`"hello\nworld"`))
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.TEXT, toks[0].Kind)
	assert.Equal(t, "hello\nworld", toks[0].Lit)
}

func TestScan_LineCommentIsSkipped(t *testing.T) {
	toks, err := scanner.Scan("test.cabin", []byte("let x = 1 -- this is a comment\nlet y = 2"))
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.EQ, token.NUMBER,
		token.LET, token.IDENT, token.EQ, token.NUMBER,
		token.EOF,
	}, kinds(toks))
}

func TestScan_ArrowAndComparisonOperators(t *testing.T) {
	toks, err := scanner.Scan("test.cabin", []byte("x -> y == z != w <= v >= u"))
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.IDENT, token.ARROW, token.IDENT, token.EQEQ, token.IDENT,
		token.BANGEQ, token.IDENT, token.LTE, token.IDENT, token.GTE,
		token.IDENT, token.EOF,
	}, kinds(toks))
}

func TestScan_KeywordsDisambiguatedFromIdentifiers(t *testing.T) {
	toks, err := scanner.Scan("test.cabin", []byte("either letter"))
	require.NoError(t, err)
	assert.Equal(t, token.EITHER, toks[0].Kind)
	assert.Equal(t, token.IDENT, toks[1].Kind, "\"letter\" shares a prefix with \"let\" but is not the keyword")
}

func TestScan_IllegalCharacterIsReportedButScanningContinues(t *testing.T) {
	toks, err := scanner.Scan("test.cabin", []byte("x $ y"))
	require.Error(t, err)
	assert.Equal(t, []token.Kind{token.IDENT, token.ILLEGAL, token.IDENT, token.EOF}, kinds(toks))
}

func TestScan_UnterminatedTextLiteral(t *testing.T) {
	_, err := scanner.Scan("test.cabin", []byte(`"oops`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not terminated")
}
