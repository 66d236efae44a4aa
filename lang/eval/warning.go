package eval

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/token"
)

// WarningKind enumerates the concrete warning kinds the evaluator emits,
// supplemented from original_source/src/api/builtin.rs (spec.md leaves the
// set abstract; SPEC_FULL.md names these three so WarningSuppressor tags
// have something concrete to name).
type WarningKind int

const (
	WarningRuntimeCallAtCompileTime WarningKind = iota
	WarningUnusedVariable
	WarningShadowedDefaultExtension
)

func (k WarningKind) String() string {
	switch k {
	case WarningRuntimeCallAtCompileTime:
		return "RuntimeCallAtCompileTime"
	case WarningUnusedVariable:
		return "UnusedVariable"
	case WarningShadowedDefaultExtension:
		return "ShadowedDefaultExtension"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is one accumulated diagnostic that does not stop evaluation.
type Warning struct {
	Kind    WarningKind
	Span    token.Span
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Kind, w.Message, w.Span)
}
