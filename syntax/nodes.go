// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

// Node is a single element of a tokenized makefile statement. The set of
// implementations is closed; consumers switch on the concrete type.
//
// Nodes are immutable once a tokenizer has built them: nothing in this
// package modifies a node after returning it.
type Node interface {
	// Makefile renders the node back to makefile source text.
	Makefile() string
	node()
}

func (*Lit) node()           {}
func (*VarRef) node()        {}
func (*Word) node()          {}
func (AssignOperator) node() {}
func (RuleOperator) node()   {}
func (*Assignment) node()    {}
func (*Rule) node()          {}
func (*PrereqList) node()    {}
func (*Recipe) node()        {}
func (*RecipeList) node()    {}

// Lit is a verbatim run of source text. It may be empty: tokenizers flush
// the current run before splicing in a variable reference and again at end
// of input, and an empty run still marks that boundary in the tree.
type Lit struct {
	Value string
}

// VarRef is a variable reference: $x, $(name) or ${name}, with arbitrary
// nesting. Parts holds Lits and nested VarRefs whose rendered forms
// concatenate to exactly the text between the delimiters; escaped dollars
// stay in the literals as "$$".
type VarRef struct {
	Parts []Node
}

// Word is an ordered sequence of Lits and VarRefs with no separator between
// them: an assignment name or value, or a single target or prerequisite.
type Word struct {
	Parts []Node
}

// Assignment is a variable assignment: name, operator, value.
type Assignment struct {
	Name  *Word
	Op    AssignOperator
	Value *Word
}

// Rule is a rule statement. Exactly one of Prereqs and TargetAssign is set:
// a target-specific variable assignment takes the place of the prerequisite
// list. A rule without prerequisites still carries an empty PrereqList,
// never nil.
type Rule struct {
	// Targets holds one word per target, in source order.
	Targets []*Word
	Op      RuleOperator

	// Pattern is the target pattern of a static pattern rule, introduced
	// by a second colon on the right-hand side. Nil otherwise.
	Pattern *PrereqList

	Prereqs      *PrereqList
	TargetAssign *Assignment

	// Inline is the recipe introduced by ';' on the rule line, if any.
	Inline *Recipe
}

// PrereqList is a rule's prerequisites, one *Word per prerequisite. Unlike
// the parts of a Word, its elements are logically separate tokens and render
// space-joined. OrderOnly holds the prerequisites after '|'; it is non-nil
// exactly when the rule carries the separator, even if nothing follows it.
type PrereqList struct {
	Prereqs   []Node
	OrderOnly []Node
}

// Recipe is a single recipe line, without its prefix character.
type Recipe struct {
	Parts []Node
}

// RecipeList is the ordered recipe lines belonging to one rule.
type RecipeList struct {
	Recipes []*Recipe
}

// Equal reports whether two nodes are structurally equal: the same concrete
// type at every position, with equal payloads. Child type identity is
// checked before payload, so a Lit never equals a VarRef that renders to the
// same text.
func Equal(x, y Node) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	switch x := x.(type) {
	case *Lit:
		y, ok := y.(*Lit)
		return ok && x.Value == y.Value
	case *VarRef:
		y, ok := y.(*VarRef)
		return ok && equalParts(x.Parts, y.Parts)
	case *Word:
		y, ok := y.(*Word)
		return ok && equalParts(x.Parts, y.Parts)
	case AssignOperator:
		y, ok := y.(AssignOperator)
		return ok && x == y
	case RuleOperator:
		y, ok := y.(RuleOperator)
		return ok && x == y
	case *Assignment:
		y, ok := y.(*Assignment)
		return ok && Equal(x.Name, y.Name) && x.Op == y.Op && Equal(x.Value, y.Value)
	case *Rule:
		y, ok := y.(*Rule)
		if !ok || x.Op != y.Op || len(x.Targets) != len(y.Targets) {
			return false
		}
		for i := range x.Targets {
			if !Equal(x.Targets[i], y.Targets[i]) {
				return false
			}
		}
		if !equalOptPrereqs(x.Pattern, y.Pattern) {
			return false
		}
		if !equalOptPrereqs(x.Prereqs, y.Prereqs) {
			return false
		}
		if (x.TargetAssign == nil) != (y.TargetAssign == nil) {
			return false
		}
		if x.TargetAssign != nil && !Equal(x.TargetAssign, y.TargetAssign) {
			return false
		}
		if (x.Inline == nil) != (y.Inline == nil) {
			return false
		}
		return x.Inline == nil || Equal(x.Inline, y.Inline)
	case *PrereqList:
		y, ok := y.(*PrereqList)
		if !ok || !equalParts(x.Prereqs, y.Prereqs) {
			return false
		}
		if (x.OrderOnly == nil) != (y.OrderOnly == nil) {
			return false
		}
		return equalParts(x.OrderOnly, y.OrderOnly)
	case *Recipe:
		y, ok := y.(*Recipe)
		return ok && equalParts(x.Parts, y.Parts)
	case *RecipeList:
		y, ok := y.(*RecipeList)
		if !ok || len(x.Recipes) != len(y.Recipes) {
			return false
		}
		for i := range x.Recipes {
			if !Equal(x.Recipes[i], y.Recipes[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func equalParts(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalOptPrereqs(a, b *PrereqList) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || Equal(a, b)
}
