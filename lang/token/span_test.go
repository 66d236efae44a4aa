package token_test

import (
	"testing"

	"github.com/cabin-lang/cabin/lang/token"
	"github.com/stretchr/testify/assert"
)

func TestSpanContains(t *testing.T) {
	s := token.Span{Start: 5, End: 10}
	assert.True(t, s.Contains(5))
	assert.True(t, s.Contains(9))
	assert.False(t, s.Contains(10))
	assert.False(t, s.Contains(4))
}

func TestSpanTo(t *testing.T) {
	a := token.Span{Start: 2, End: 5}
	b := token.Span{Start: 10, End: 12}
	assert.Equal(t, token.Span{Start: 2, End: 12}, a.To(b))
	assert.Equal(t, token.Span{Start: 2, End: 12}, b.To(a))
}

func TestSpanUnknown(t *testing.T) {
	u := token.Unknown()
	assert.True(t, u.IsUnknown())
	assert.Equal(t, 0, u.Length())

	s := token.Span{Start: 1, End: 3}
	assert.Equal(t, s, u.To(s))
	assert.Equal(t, s, s.To(u))
}

func TestSpanLength(t *testing.T) {
	assert.Equal(t, 5, token.Span{Start: 3, End: 8}.Length())
}
