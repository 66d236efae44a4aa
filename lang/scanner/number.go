package scanner

// number scans a Number literal: one or more decimal digits, optionally
// followed by a '.' and one or more further digits. Grounded on
// original_source/src/lexer.rs's Number regex (`^-?\d+(\.\d+)?`); the
// leading sign is not part of the literal here: a '-' is always a separate
// MINUS token, avoiding the lexer/parser ambiguity a sign-swallowing number
// token creates in front of a binary minus (e.g. "a -1" vs "a-1"). The
// parser has no prefix-minus form, so a negative literal cannot be written.
func (s *Scanner) number() string {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDigit(rune(s.peek())) {
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
	return string(s.src[start:s.off])
}
