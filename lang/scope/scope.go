// Package scope implements the scope graph (spec component B): a persistent,
// append-only arena of lexical scopes supporting forward references and
// per-scope variable resolution.
//
// Graph is generic over the value type E bound to each name, so that this
// package has no dependency on the AST: callers instantiate scope.Graph[ast.Expr].
package scope

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/token"
	"github.com/dolthub/swiss"
)

// ID identifies a Scope in a Graph. Once handed out, an ID is permanently
// valid: scopes are never removed.
type ID int

// Kind is the kind of a scope, used for debugging and for dispatch rules
// that depend on the syntactic context a scope was created for (e.g. field
// access policy).
type Kind int

const (
	Global Kind = iota
	File
	Function
	Block
	Group
	Either
	OneOf
	RepresentAs
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case File:
		return "file"
	case Function:
		return "function"
	case Block:
		return "block"
	case Group:
		return "group"
	case Either:
		return "either"
	case OneOf:
		return "oneof"
	case RepresentAs:
		return "represent-as"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type binding[E any] struct {
	name  token.Name
	value E
}

// Scope is one node in the tree of lexical scopes rooted at the Graph's
// global scope.
type Scope[E any] struct {
	id       ID
	parent   ID
	hasParent bool
	children []ID
	kind     Kind
	label    *token.Name

	variables *swiss.Map[string, binding[E]]
	// order records the keys of variables in declaration order, since the
	// swiss map itself does not preserve insertion order and
	// closest-name suggestions must break ties by insertion order.
	order []string
	// defaultExtensions holds the default-extension values (RepresentAs-like
	// declarations) registered directly in this scope, in registration order.
	defaultExtensions []E
}

// ID returns the scope's own id.
func (s *Scope[E]) ID() ID { return s.id }

// Kind returns the scope's kind.
func (s *Scope[E]) Kind() Kind { return s.kind }

// Label returns the scope's label, if any.
func (s *Scope[E]) Label() (token.Name, bool) {
	if s.label == nil {
		return token.Name{}, false
	}
	return *s.label, true
}

// Graph is the arena of scopes plus a current-scope cursor. The zero value
// is not usable; use New.
type Graph[E any] struct {
	scopes  []*Scope[E]
	current ID
}

// New creates a Graph with a single Global scope as both root and current
// scope.
func New[E any]() *Graph[E] {
	g := &Graph[E]{}
	g.scopes = append(g.scopes, &Scope[E]{
		id:        0,
		variables: swiss.NewMap[string, binding[E]](uint32(8)),
		kind:      Global,
	})
	g.current = 0
	return g
}

// Current returns the id of the current scope.
func (g *Graph[E]) Current() ID { return g.current }

// Scope returns the scope with the given id. It panics if id is out of
// range, which can only happen if the caller fabricated an id never
// returned by this Graph.
func (g *Graph[E]) Scope(id ID) *Scope[E] { return g.scopes[id] }

// EnterNewScope pushes a new child scope under the current scope, makes it
// current, and returns its id.
func (g *Graph[E]) EnterNewScope(kind Kind, label *token.Name) ID {
	id := ID(len(g.scopes))
	s := &Scope[E]{
		id:        id,
		parent:    g.current,
		hasParent: true,
		kind:      kind,
		label:     label,
		variables: swiss.NewMap[string, binding[E]](uint32(4)),
	}
	g.scopes[g.current].children = append(g.scopes[g.current].children, id)
	g.scopes = append(g.scopes, s)
	g.current = id
	return id
}

// ExitScope pops the current scope to its parent. It fails (returns false)
// if the current scope is the global scope, which has no parent.
func (g *Graph[E]) ExitScope() bool {
	s := g.scopes[g.current]
	if !s.hasParent {
		return false
	}
	g.current = s.parent
	return true
}

// SetCurrentScope moves the cursor to id and returns the previous current
// scope id, so callers can restore it later (e.g. via a deferred call). This
// is how the evaluator re-enters a block's or function's inner scope and
// guarantees restoration on every exit path, including error paths.
func (g *Graph[E]) SetCurrentScope(id ID) ID {
	prev := g.current
	g.current = id
	return prev
}

// DeclareNewVariable declares name in the current scope. It fails if name
// already resolves in the current scope or any ancestor (shadowing is
// forbidden).
func (g *Graph[E]) DeclareNewVariable(name token.Name, value E) error {
	return g.DeclareNewVariableIn(g.current, name, value)
}

// DeclareNewVariableIn declares name in the scope identified by id (rather
// than the current scope), used by the evaluator to populate a callee's
// inner scope with argument bindings without changing the cursor.
func (g *Graph[E]) DeclareNewVariableIn(id ID, name token.Name, value E) error {
	if _, ok := g.lookupFrom(id, name.Key()); ok {
		return fmt.Errorf("already declared: %s", name.Text)
	}
	sc := g.scopes[id]
	sc.variables.Put(name.Key(), binding[E]{name: name, value: value})
	sc.order = append(sc.order, name.Key())
	return nil
}

// GetVariable looks up name starting at the current scope, walking up to
// the global scope.
func (g *Graph[E]) GetVariable(name token.Name) (E, bool) {
	return g.GetVariableFrom(g.current, name)
}

// GetVariableFrom looks up name starting at the scope identified by id.
func (g *Graph[E]) GetVariableFrom(id ID, name token.Name) (E, bool) {
	b, ok := g.lookupFrom(id, name.Key())
	if !ok {
		var zero E
		return zero, false
	}
	return b.value, true
}

func (g *Graph[E]) lookupFrom(id ID, key string) (binding[E], bool) {
	for {
		s := g.scopes[id]
		if b, ok := s.variables.Get(key); ok {
			return b, true
		}
		if !s.hasParent {
			return binding[E]{}, false
		}
		id = s.parent
	}
}

// ReassignVariableFrom walks id's ancestors until name is found, and
// overwrites its bound value. It fails if no such variable exists anywhere
// in id's ancestor chain.
func (g *Graph[E]) ReassignVariableFrom(id ID, name token.Name, value E) error {
	key := name.Key()
	for {
		s := g.scopes[id]
		if b, ok := s.variables.Get(key); ok {
			b.value = value
			s.variables.Put(key, b)
			return nil
		}
		if !s.hasParent {
			return fmt.Errorf("cannot reassign undeclared variable: %s", name.Text)
		}
		id = s.parent
	}
}

// ExitToLabel pops scopes (from current) until one with the matching label
// is current. It fails if the global scope is reached without a match.
func (g *Graph[E]) ExitToLabel(name token.Name) error {
	id := g.current
	for {
		s := g.scopes[id]
		if s.label != nil && s.label.Text == name.Text {
			g.current = id
			return nil
		}
		if !s.hasParent {
			return fmt.Errorf("label not found: %s", name.Text)
		}
		id = s.parent
	}
}

// ScopeTypeOf returns the kind of the scope labeled name, searching from the
// current scope upward.
func (g *Graph[E]) ScopeTypeOf(name token.Name) (Kind, error) {
	id := g.current
	for {
		s := g.scopes[id]
		if s.label != nil && s.label.Text == name.Text {
			return s.kind, nil
		}
		if !s.hasParent {
			return 0, fmt.Errorf("label not found: %s", name.Text)
		}
		id = s.parent
	}
}

// AddDefaultExtension attaches decl to the current scope's default
// extension list.
func (g *Graph[E]) AddDefaultExtension(decl E) {
	s := g.scopes[g.current]
	s.defaultExtensions = append(s.defaultExtensions, decl)
}

// DefaultExtensions recursively collects default extensions registered from
// the current scope upward to the global scope, innermost first (so that an
// inner registration shadows an outer one of the same target type when the
// caller picks the first applicable match).
func (g *Graph[E]) DefaultExtensions() []E {
	var all []E
	id := g.current
	for {
		s := g.scopes[id]
		all = append(all, s.defaultExtensions...)
		if !s.hasParent {
			return all
		}
		id = s.parent
	}
}
