// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

// Walk traverses a node tree in depth-first order, calling f for each node
// starting with n itself. If f returns false, the node's children are
// skipped.
func Walk(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	switch n := n.(type) {
	case *Lit, AssignOperator, RuleOperator:
	case *VarRef:
		walkList(n.Parts, f)
	case *Word:
		walkList(n.Parts, f)
	case *Assignment:
		Walk(n.Name, f)
		Walk(n.Op, f)
		Walk(n.Value, f)
	case *Rule:
		for _, w := range n.Targets {
			Walk(w, f)
		}
		Walk(n.Op, f)
		if n.Pattern != nil {
			Walk(n.Pattern, f)
		}
		if n.TargetAssign != nil {
			Walk(n.TargetAssign, f)
		} else if n.Prereqs != nil {
			Walk(n.Prereqs, f)
		}
		if n.Inline != nil {
			Walk(n.Inline, f)
		}
	case *PrereqList:
		walkList(n.Prereqs, f)
		walkList(n.OrderOnly, f)
	case *Recipe:
		walkList(n.Parts, f)
	case *RecipeList:
		for _, rec := range n.Recipes {
			Walk(rec, f)
		}
	}
}

func walkList(parts []Node, f func(Node) bool) {
	for _, part := range parts {
		Walk(part, f)
	}
}
