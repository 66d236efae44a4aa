// Package scanner tokenizes Cabin source text into the token stream consumed
// by lang/parser. The lexer's regex rules are explicitly out of scope for
// the core spec (spec §1); this package is a from-scratch implementation of
// the token categories spec.md's glossary and §2/§3 imply, grounded on the
// teacher's scanning loop (byte-at-a-time advance/peek, an accumulating
// error list rather than a panic) and on original_source/src/lexer.rs for the concrete
// shapes (number and string literal grammar, "--" line comments).
package scanner

import (
	"fmt"
	goscanner "go/scanner"
	gotoken "go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cabin-lang/cabin/lang/token"
)

// Error and ErrorList are reused from the standard library's go/scanner
// package, exactly as the teacher does: a scan can produce several errors
// (one per illegal token) without aborting, and ErrorList already knows how
// to sort and render them.
type (
	Error     = goscanner.Error
	ErrorList = goscanner.ErrorList
)

// Scanner tokenizes a single source file for the parser to consume.
type Scanner struct {
	filename string
	src      []byte
	errs     ErrorList

	sb strings.Builder

	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset following cur

	line, lineStart int // 1-based line number and byte offset of its first column, for error reporting only
}

// Init prepares s to scan src. filename is used only to label errors.
func (s *Scanner) Init(filename string, src []byte) {
	s.filename = filename
	s.src = src
	s.errs = nil
	s.sb.Reset()
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line = 1
	s.lineStart = 0
	s.advance()
}

// Scan tokenizes the entirety of src and returns the resulting token stream,
// always terminated by an EOF token. If any illegal sequences were
// encountered, the returned error is a non-nil ErrorList holding all of them,
// sorted by position.
func Scan(filename string, src []byte) ([]token.Token, error) {
	var s Scanner
	s.Init(filename, src)

	var toks []token.Token
	for {
		t := s.next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	s.errs.Sort()
	return toks, s.errs.Err()
}

func (s *Scanner) position(off int) gotoken.Position {
	line := 1 + strings.Count(string(s.src[:off]), "\n")
	col := off - s.lineStart
	if idx := strings.LastIndexByte(string(s.src[:off]), '\n'); idx >= 0 {
		col = off - idx - 1
	}
	return gotoken.Position{Filename: s.filename, Offset: off, Line: line, Column: col + 1}
}

func (s *Scanner) error(off int, format string, args ...any) {
	s.errs.Add(s.position(off), fmt.Sprintf(format, args...))
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}
	s.off = s.roff
	if s.cur == '\n' {
		s.line++
		s.lineStart = s.off
	}

	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

// advanceIf advances and returns true if cur equals any of matches.
func (s *Scanner) advanceIf(matches ...rune) bool {
	for _, m := range matches {
		if s.cur == m {
			s.advance()
			return true
		}
	}
	return false
}

// next scans and returns the next token, skipping whitespace and comments.
func (s *Scanner) next() token.Token {
	s.skipWhitespaceAndComments()

	start := s.off
	span := func() token.Span { return token.Span{Start: start, End: s.off} }

	switch cur := s.cur; {
	case cur == -1:
		return token.Token{Kind: token.EOF, Span: span()}

	case isLetter(cur):
		lit := s.ident()
		if kind, ok := token.Keywords[lit]; ok {
			return token.Token{Kind: kind, Span: span(), Lit: lit}
		}
		return token.Token{Kind: token.IDENT, Span: span(), Lit: lit}

	case isDigit(cur):
		lit := s.number()
		return token.Token{Kind: token.NUMBER, Span: span(), Lit: lit}

	case cur == '"':
		lit := s.text()
		return token.Token{Kind: token.TEXT, Span: span(), Lit: lit}
	}

	cur := s.cur
	s.advance() // always make progress
	switch cur {
	case '+':
		return token.Token{Kind: token.PLUS, Span: span(), Lit: "+"}
	case '-':
		if s.advanceIf('>') {
			return token.Token{Kind: token.ARROW, Span: span(), Lit: "->"}
		}
		return token.Token{Kind: token.MINUS, Span: span(), Lit: "-"}
	case '*':
		return token.Token{Kind: token.STAR, Span: span(), Lit: "*"}
	case '/':
		return token.Token{Kind: token.SLASH, Span: span(), Lit: "/"}
	case '%':
		return token.Token{Kind: token.PERCENT, Span: span(), Lit: "%"}
	case '=':
		if s.advanceIf('=') {
			return token.Token{Kind: token.EQEQ, Span: span(), Lit: "=="}
		}
		return token.Token{Kind: token.EQ, Span: span(), Lit: "="}
	case '!':
		if s.advanceIf('=') {
			return token.Token{Kind: token.BANGEQ, Span: span(), Lit: "!="}
		}
		s.error(start, "illegal character %#U, did you mean \"!=\"?", cur)
		return token.Token{Kind: token.ILLEGAL, Span: span(), Lit: "!"}
	case '<':
		if s.advanceIf('=') {
			return token.Token{Kind: token.LTE, Span: span(), Lit: "<="}
		}
		return token.Token{Kind: token.LT, Span: span(), Lit: "<"}
	case '>':
		if s.advanceIf('=') {
			return token.Token{Kind: token.GTE, Span: span(), Lit: ">="}
		}
		return token.Token{Kind: token.GT, Span: span(), Lit: ">"}
	case '?':
		return token.Token{Kind: token.QUESTION, Span: span(), Lit: "?"}
	case '.':
		return token.Token{Kind: token.DOT, Span: span(), Lit: "."}
	case ',':
		return token.Token{Kind: token.COMMA, Span: span(), Lit: ","}
	case ':':
		return token.Token{Kind: token.COLON, Span: span(), Lit: ":"}
	case ';':
		return token.Token{Kind: token.SEMI, Span: span(), Lit: ";"}
	case '(':
		return token.Token{Kind: token.LPAREN, Span: span(), Lit: "("}
	case ')':
		return token.Token{Kind: token.RPAREN, Span: span(), Lit: ")"}
	case '{':
		return token.Token{Kind: token.LBRACE, Span: span(), Lit: "{"}
	case '}':
		return token.Token{Kind: token.RBRACE, Span: span(), Lit: "}"}
	case '[':
		return token.Token{Kind: token.LBRACK, Span: span(), Lit: "["}
	case ']':
		return token.Token{Kind: token.RBRACK, Span: span(), Lit: "]"}
	case '@':
		return token.Token{Kind: token.AT, Span: span(), Lit: "@"}
	case '#':
		return token.Token{Kind: token.HASH, Span: span(), Lit: "#"}
	default:
		s.error(start, "illegal character %#U", cur)
		return token.Token{Kind: token.ILLEGAL, Span: span(), Lit: string(cur)}
	}
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// skipWhitespaceAndComments consumes runs of whitespace and "--"-introduced
// line comments (teacher convention), since spec.md's token categories have
// no COMMENT kind: comments never reach the parser.
func (s *Scanner) skipWhitespaceAndComments() {
	for {
		for isWhitespace(s.cur) {
			s.advance()
		}
		if s.cur == '-' && s.peek() == '-' {
			s.advance()
			s.advance()
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
			continue
		}
		return
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
