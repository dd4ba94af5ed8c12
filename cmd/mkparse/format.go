// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package main

import (
	"fmt"
	"strings"

	"github.com/mkparse/mkparse/syntax"
)

// normalize rewrites each statement of a makefile in the tokenizer's
// canonical form. Blank lines, comment lines, directive lines and define
// bodies pass through untouched; the tokenizer only covers rules and
// assignments. Backslash-newline continuations of a statement are folded
// into one logical line first, so normalizing may join lines.
func normalize(name string, src []byte) ([]byte, error) {
	lines := strings.Split(string(src), "\n")
	finalNewline := false
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
		finalNewline = true
	}

	var sb strings.Builder
	emit := func(s string) {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	inDefine := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		lineno := i + 1
		switch {
		case inDefine:
			emit(line)
			if fields := strings.Fields(line); len(fields) > 0 && fields[0] == "endef" {
				inDefine = false
			}
		case strings.TrimSpace(line) == "":
			emit(line)
		case line[0] == syntax.RecipePrefix:
			list, err := syntax.ParseRecipe(line)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %v", name, lineno, err)
			}
			emit(list.Makefile())
		case strings.TrimSpace(line)[0] == '#':
			emit(line)
		case isDirectiveLine(line):
			emit(line)
			if isDefineLine(line) {
				inDefine = true
			}
		default:
			logical := line
			for strings.HasSuffix(logical, `\`) && i+1 < len(lines) {
				i++
				logical = logical[:len(logical)-1] + " " + strings.TrimLeft(lines[i], " \t")
			}
			n, err := syntax.ParseStatement(logical)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %v", name, lineno, err)
			}
			emit(n.Makefile())
		}
	}

	s := sb.String()
	if !finalNewline {
		s = strings.TrimSuffix(s, "\n")
	}
	return []byte(s), nil
}

func isDirectiveLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "override", "export", "unexport", "private":
		// modifiers may prefix another directive, "override define" chiefly
		if len(fields) > 1 && syntax.IsDirective(fields[1]) {
			return true
		}
	}
	return syntax.IsDirective(fields[0])
}

func isDefineLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	return fields[0] == "define" || (len(fields) > 1 && fields[1] == "define")
}
