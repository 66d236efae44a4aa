package scope

import (
	"sort"

	"github.com/cabin-lang/cabin/lang/token"
)

// AllVariableNames returns every name visible from the current scope,
// including ancestors, in the order they were first seen (innermost scope
// first, declaration order within a scope).
func (g *Graph[E]) AllVariableNames() []token.Name {
	var names []token.Name
	id := g.current
	for {
		s := g.scopes[id]
		for _, k := range s.order {
			b, _ := s.variables.Get(k)
			names = append(names, b.name)
		}
		if !s.hasParent {
			return names
		}
		id = s.parent
	}
}

// candidate pairs a name with its distance from the query, for sorting.
type candidate struct {
	name token.Name
	dist int
	seq  int
}

// ClosestVariables returns the k variables visible from the current scope
// whose name has the smallest Levenshtein distance to name, ties broken by
// insertion (scope-then-declaration) order.
func (g *Graph[E]) ClosestVariables(name string, k int) []token.Name {
	all := g.AllVariableNames()
	cands := make([]candidate, len(all))
	for i, n := range all {
		cands[i] = candidate{name: n, dist: levenshtein(name, n.Text), seq: i}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].seq < cands[j].seq
	})
	if k > len(cands) {
		k = len(cands)
	}
	res := make([]token.Name, k)
	for i := 0; i < k; i++ {
		res[i] = cands[i].name
	}
	return res
}

// levenshtein computes the edit distance between a and b using the
// iterative two-row algorithm (O(len(a)*len(b)) time, O(min(len(a),len(b)))
// space).
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
