// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestEqualLeaves(t *testing.T) {
	t.Parallel()

	qt.Assert(t, Equal(lit("x"), lit("x")), qt.IsTrue)
	qt.Assert(t, Equal(lit("x"), lit("y")), qt.IsFalse)
	qt.Assert(t, Equal(lit(""), lit("")), qt.IsTrue)

	// same rendered text, different kind
	qt.Assert(t, Equal(lit("$(x)"), ref(lit("x"))), qt.IsFalse)

	qt.Assert(t, Equal(Assign, Assign), qt.IsTrue)
	qt.Assert(t, Equal(Assign, ColonAssign), qt.IsFalse)
	qt.Assert(t, Equal(Colon, Colon), qt.IsTrue)
	qt.Assert(t, Equal(Colon, DblColon), qt.IsFalse)

	// an assignment operator never equals a rule operator
	qt.Assert(t, Equal(Assign, Colon), qt.IsFalse)

	qt.Assert(t, Equal(nil, nil), qt.IsTrue)
	qt.Assert(t, Equal(lit("x"), nil), qt.IsFalse)
	qt.Assert(t, Equal(nil, lit("x")), qt.IsFalse)
}

func TestEqualComposites(t *testing.T) {
	t.Parallel()

	qt.Assert(t, Equal(
		ref(lit("a"), ref(lit("b")), lit("")),
		ref(lit("a"), ref(lit("b")), lit("")),
	), qt.IsTrue)

	// child identity matters at every depth
	qt.Assert(t, Equal(
		ref(lit("a"), ref(lit("b")), lit("")),
		ref(lit("a"), lit("$(b)"), lit("")),
	), qt.IsFalse)

	qt.Assert(t, Equal(word(lit("a"), lit("b")), word(lit("ab"))), qt.IsFalse)
	qt.Assert(t, Equal(word(), word()), qt.IsTrue)

	a := &Assignment{Name: word(lit("CC")), Op: Assign, Value: word(lit("gcc"))}
	b := &Assignment{Name: word(lit("CC")), Op: ColonAssign, Value: word(lit("gcc"))}
	qt.Assert(t, Equal(a, a), qt.IsTrue)
	qt.Assert(t, Equal(a, b), qt.IsFalse)
}

func TestEqualRules(t *testing.T) {
	t.Parallel()

	mk := func(op RuleOperator) *Rule {
		return &Rule{
			Targets: targets(word(lit("all"))),
			Op:      op,
			Prereqs: prereqList(word(lit("dep"))),
		}
	}
	qt.Assert(t, Equal(mk(Colon), mk(Colon)), qt.IsTrue)
	qt.Assert(t, Equal(mk(Colon), mk(DblColon)), qt.IsFalse)

	other := mk(Colon)
	other.Targets = targets(word(lit("all")), word(lit("extra")))
	qt.Assert(t, Equal(mk(Colon), other), qt.IsFalse)

	// prerequisites versus a target-specific assignment
	assign := &Rule{
		Targets: targets(word(lit("all"))),
		Op:      Colon,
		TargetAssign: &Assignment{
			Name: word(lit("CC")), Op: Assign, Value: word(lit("gcc")),
		},
	}
	qt.Assert(t, Equal(mk(Colon), assign), qt.IsFalse)

	withInline := mk(Colon)
	withInline.Inline = &Recipe{Parts: []Node{lit("echo")}}
	qt.Assert(t, Equal(mk(Colon), withInline), qt.IsFalse)

	withPattern := mk(Colon)
	withPattern.Pattern = prereqList(word(lit("%.o")))
	qt.Assert(t, Equal(mk(Colon), withPattern), qt.IsFalse)
}

func TestEqualOrderOnly(t *testing.T) {
	t.Parallel()

	plain := &PrereqList{Prereqs: []Node{word(lit("a"))}}
	// the '|' separator is significant even with nothing after it
	sep := &PrereqList{Prereqs: []Node{word(lit("a"))}, OrderOnly: []Node{}}
	qt.Assert(t, Equal(plain, sep), qt.IsFalse)
	qt.Assert(t, Equal(sep, sep), qt.IsTrue)

	full := &PrereqList{
		Prereqs:   []Node{word(lit("a"))},
		OrderOnly: []Node{word(lit("b"))},
	}
	qt.Assert(t, Equal(sep, full), qt.IsFalse)
	qt.Assert(t, Equal(full, full), qt.IsTrue)
}

func TestEqualRecipes(t *testing.T) {
	t.Parallel()

	a := &RecipeList{Recipes: []*Recipe{{Parts: []Node{lit("echo a")}}}}
	b := &RecipeList{Recipes: []*Recipe{{Parts: []Node{lit("echo b")}}}}
	qt.Assert(t, Equal(a, a), qt.IsTrue)
	qt.Assert(t, Equal(a, b), qt.IsFalse)
	qt.Assert(t, Equal(a, &RecipeList{}), qt.IsFalse)
}
