package token

// manglePrefix is prepended to a Name's text when Mangle is true and the name
// is rendered for backend (C) output, to avoid collisions with C keywords and
// reserved identifiers.
const manglePrefix = "u_"

// Name is a user identifier: its original source text, the span it was
// written at, and whether it should be mangled for backend output.
// Equality and hashing go through Key, which is the Text only; comparing two
// Names with == also compares Span and Mangle.
type Name struct {
	Text   string
	Span   Span
	Mangle bool
}

// NewName builds a user-written Name (Mangle defaults to true; compiler-
// synthesized names should use Synthetic instead).
func NewName(text string, span Span) Name {
	return Name{Text: text, Span: span, Mangle: true}
}

// Synthetic builds a compiler-generated Name that bypasses mangling, for
// identifiers invented by the evaluator (e.g. "anonymous group #1") rather
// than written by the user.
func Synthetic(text string) Name {
	return Name{Text: text, Span: Unknown(), Mangle: false}
}

// Mangled returns the name text as it should appear in generated backend
// code.
func (n Name) Mangled() string {
	if !n.Mangle {
		return n.Text
	}
	return manglePrefix + n.Text
}

func (n Name) String() string { return n.Text }

// key returns the comparable value used for equality/hashing: Name values
// compare and hash on Text only, ignoring Span and Mangle, so two Names
// parsed at different source locations with the same text are the same
// binding key.
type key = string

// Key returns the map key to use for this Name (its Text).
func (n Name) Key() key { return n.Text }
