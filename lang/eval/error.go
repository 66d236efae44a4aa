package eval

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/cabin-lang/cabin/lang/token"
)

// ErrorKind discriminates the evaluator's structured errors (spec §7).
type ErrorKind int

const (
	ErrInternal ErrorKind = iota
	ErrUnknownName
	ErrTypeMismatch
	ErrShadowing
	ErrMissingField
	ErrBuiltinNotFound
	ErrArity
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownName:
		return "unknown name"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrShadowing:
		return "shadowing"
	case ErrMissingField:
		return "missing field"
	case ErrBuiltinNotFound:
		return "builtin not found"
	case ErrArity:
		return "arity mismatch"
	default:
		return "internal error"
	}
}

// Error is the evaluator's structured error type (spec §7): a kind, a
// human message, a span, an optional list of closest-name suggestions, and
// a breadcrumb trail of "while ..." context accumulated as the error
// propagates out through nested evaluations.
type Error struct {
	Kind         ErrorKind
	Message      string
	Span         token.Span
	ClosestNames []token.Name
	Breadcrumbs  []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.ClosestNames) > 0 {
		b.WriteString(" (did you mean ")
		for i, n := range e.ClosestNames {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fmt.Sprintf("%q", n.Text))
		}
		b.WriteString("?)")
	}
	for _, crumb := range e.Breadcrumbs {
		b.WriteString("\n\twhile ")
		b.WriteString(crumb)
	}
	return b.String()
}

// withBreadcrumb returns a copy of err with crumb appended to its trail, if
// err is an *Error; otherwise it wraps err plainly. Call sites use this to
// build the "while evaluating X, while evaluating Y, ..." chain described
// in spec §7 as the error propagates up through nested calls.
func withBreadcrumb(err error, crumb string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		cp := *e
		cp.Breadcrumbs = append(slices.Clone(e.Breadcrumbs), crumb)
		return &cp
	}
	return fmt.Errorf("%w\n\twhile %s", err, crumb)
}
