package token_test

import (
	"testing"

	"github.com/cabin-lang/cabin/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePeekPop(t *testing.T) {
	q := token.NewQueue([]token.Token{
		{Kind: token.LET},
		{Kind: token.IDENT, Lit: "x"},
		{Kind: token.EQ},
		{Kind: token.NUMBER, Lit: "1"},
		{Kind: token.EOF},
	})

	assert.Equal(t, token.LET, q.Peek().Kind)
	assert.Equal(t, token.LET, q.Peek().Kind, "peek must not consume")

	tok, err := q.Expect(token.LET)
	require.NoError(t, err)
	assert.Equal(t, token.LET, tok.Kind)

	assert.Equal(t, "x", q.PeekAt(0).Lit)
	assert.Equal(t, token.EQ, q.PeekAt(1).Kind)

	_, err = q.Expect(token.EQ)
	assert.Error(t, err, "next token is IDENT, not EQ")

	id := q.Pop()
	assert.Equal(t, "x", id.Lit)

	_, err = q.Expect(token.EQ)
	require.NoError(t, err)

	num, err := q.ExpectOneOf(token.TEXT, token.NUMBER)
	require.NoError(t, err)
	assert.Equal(t, "1", num.Lit)

	assert.True(t, q.At(token.EOF))
}

func TestQueuePastEnd(t *testing.T) {
	q := token.NewQueue([]token.Token{{Kind: token.EOF}})
	q.Pop()
	assert.Equal(t, token.EOF, q.Peek().Kind)
	assert.Equal(t, token.EOF, q.Pop().Kind)
}

func TestQueueEmpty(t *testing.T) {
	q := token.NewQueue(nil)
	assert.Equal(t, token.EOF, q.Peek().Kind)
}
