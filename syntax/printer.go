// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

import (
	"io"
	"strings"
)

// Fprint writes the makefile form of the node to w.
func Fprint(w io.Writer, n Node) error {
	_, err := io.WriteString(w, n.Makefile())
	return err
}

func (l *Lit) Makefile() string { return l.Value }

func (o AssignOperator) Makefile() string { return o.String() }

func (o RuleOperator) Makefile() string { return o.String() }

// Makefile renders a reference as $( ... ) regardless of the opener that
// appeared in the source; ${ } is normalized away. The concatenated parts
// reproduce the inner text exactly, nesting included.
func (v *VarRef) Makefile() string {
	var sb strings.Builder
	sb.WriteString("$(")
	for _, part := range v.Parts {
		sb.WriteString(part.Makefile())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (w *Word) Makefile() string {
	var sb strings.Builder
	for _, part := range w.Parts {
		sb.WriteString(part.Makefile())
	}
	return sb.String()
}

func (a *Assignment) Makefile() string {
	return a.Name.Makefile() + a.Op.String() + a.Value.Makefile()
}

// Makefile joins prerequisites with single spaces; they are logically
// separate tokens, unlike the parts of a Word.
func (pl *PrereqList) Makefile() string {
	var sb strings.Builder
	for i, part := range pl.Prereqs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(part.Makefile())
	}
	if pl.OrderOnly != nil {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('|')
		for _, part := range pl.OrderOnly {
			sb.WriteByte(' ')
			sb.WriteString(part.Makefile())
		}
	}
	return sb.String()
}

// Makefile joins the targets with single spaces, like a prerequisite list.
func (r *Rule) Makefile() string {
	var sb strings.Builder
	for i, w := range r.Targets {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(w.Makefile())
	}
	sb.WriteString(r.Op.String())
	if r.Pattern != nil {
		sb.WriteString(r.Pattern.Makefile())
		sb.WriteByte(':')
	}
	if r.TargetAssign != nil {
		sb.WriteString(r.TargetAssign.Makefile())
	} else if r.Prereqs != nil {
		sb.WriteString(r.Prereqs.Makefile())
	}
	if r.Inline != nil {
		sb.WriteByte(';')
		sb.WriteString(r.Inline.Makefile())
	}
	return sb.String()
}

func (rc *Recipe) Makefile() string {
	var sb strings.Builder
	for _, part := range rc.Parts {
		sb.WriteString(part.Makefile())
	}
	return sb.String()
}

// Makefile renders each recipe prefixed by a tab, newline-joined.
func (rl *RecipeList) Makefile() string {
	if len(rl.Recipes) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, rec := range rl.Recipes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte(RecipePrefix)
		sb.WriteString(rec.Makefile())
	}
	return sb.String()
}
