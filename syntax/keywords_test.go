// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestKeywordPredicates(t *testing.T) {
	t.Parallel()

	qt.Assert(t, IsDirective("include"), qt.IsTrue)
	qt.Assert(t, IsDirective("-include"), qt.IsTrue)
	qt.Assert(t, IsDirective("ifeq"), qt.IsTrue)
	qt.Assert(t, IsDirective("Include"), qt.IsFalse)
	qt.Assert(t, IsDirective(""), qt.IsFalse)

	qt.Assert(t, IsSpecialTarget(".PHONY"), qt.IsTrue)
	qt.Assert(t, IsSpecialTarget(".ONESHELL"), qt.IsTrue)
	qt.Assert(t, IsSpecialTarget("PHONY"), qt.IsFalse)
	qt.Assert(t, IsSpecialTarget(".phony"), qt.IsFalse)

	qt.Assert(t, IsFunctionName("patsubst"), qt.IsTrue)
	qt.Assert(t, IsFunctionName("filter-out"), qt.IsTrue)
	qt.Assert(t, IsFunctionName("shell"), qt.IsTrue)
	qt.Assert(t, IsFunctionName("notafunc"), qt.IsFalse)

	qt.Assert(t, IsAutomaticVariable("@"), qt.IsTrue)
	qt.Assert(t, IsAutomaticVariable("@D"), qt.IsTrue)
	qt.Assert(t, IsAutomaticVariable("^F"), qt.IsTrue)
	qt.Assert(t, IsAutomaticVariable("$@"), qt.IsFalse)
	qt.Assert(t, IsAutomaticVariable("x"), qt.IsFalse)
}

// The predicates classify tokenizer output; the tokenizer itself must not
// treat the vocabulary specially.
func TestKeywordsAreOrdinaryText(t *testing.T) {
	t.Parallel()

	n, err := ParseStatement(".PHONY: all clean")
	qt.Assert(t, err, qt.IsNil)
	r := n.(*Rule)
	qt.Assert(t, len(r.Targets), qt.Equals, 1)
	qt.Assert(t, r.Targets[0].Makefile(), qt.Equals, ".PHONY")
	qt.Assert(t, IsSpecialTarget(r.Targets[0].Makefile()), qt.IsTrue)

	n, err = ParseStatement("SRCS=$(wildcard *.c)")
	qt.Assert(t, err, qt.IsNil)
	v := n.(*Assignment).Value
	qt.Assert(t, v.Makefile(), qt.Equals, "$(wildcard *.c)")
}
