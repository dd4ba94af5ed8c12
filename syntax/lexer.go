// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

// statement-internal whitespace; newlines end the statement instead
func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isNewline(b byte) bool {
	return b == '\n' || b == '\r'
}

// characters that a backslash escapes on a statement's left-hand side;
// anything else keeps the backslash literally
func isBackslashable(b byte) bool {
	switch b {
	case '%', ' ', ':', ',':
		return true
	}
	return false
}

// skipComment consumes a '#' comment through end of line, leaving the
// newline (if any) unread. The scanner must be positioned at the '#'.
func (p *parser) skipComment() error {
	b, err := p.sc.Next()
	if err != nil || b != '#' {
		return p.errf(ErrMalformedComment, "comment skipper not positioned at '#'")
	}
	for {
		b, err := p.sc.Next()
		if err != nil {
			return nil
		}
		if isNewline(b) {
			p.sc.Pushback()
			return nil
		}
	}
}

// varRef tokenizes a variable reference with the scanner positioned at the
// '$'. It handles the single-character form ($x, $@), the delimited forms
// ($(...), ${...}) and arbitrary nesting inside them. The '$$' escape never
// reaches this tokenizer; callers fold it into their current literal run.
func (p *parser) varRef() (*VarRef, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.exit()

	b, err := p.sc.Next()
	if err != nil || b != '$' {
		return nil, p.errf(ErrUnterminatedVarRef, "variable reference does not start with '$'")
	}
	for {
		b, err = p.sc.Next()
		if err != nil {
			return nil, p.errf(ErrUnterminatedVarRef, "'$' with no reference body")
		}
		switch {
		case b == '(' || b == '{':
			return p.varRefBody(b)
		case isSpace(b):
			// whitespace between '$' and a single-character name is
			// skipped, matching GNU Make's own looseness
		default:
			return &VarRef{Parts: []Node{&Lit{Value: string(b)}}}, nil
		}
	}
}

// varRefBody accumulates the inside of a delimited reference, past the
// opener. Closers are matched permissively: either ')' or '}' ends the
// reference regardless of which opener began it.
func (p *parser) varRefBody(opener byte) (*VarRef, error) {
	var parts []Node
	var run []byte
	for {
		b, err := p.sc.Next()
		if err != nil {
			return nil, p.errf(ErrUnterminatedVarRef,
				"reached end of input without closing %q", string(opener))
		}
		switch b {
		case ')', '}':
			parts = append(parts, &Lit{Value: string(run)})
			return &VarRef{Parts: parts}, nil
		case '$':
			if nb, err := p.sc.Peek(); err == nil && nb == '$' {
				p.sc.Next()
				run = append(run, '$', '$')
				continue
			}
			// nested reference: flush the run, recurse, resume after it
			parts = append(parts, &Lit{Value: string(run)})
			run = run[:0]
			p.sc.Pushback()
			inner, err := p.varRef()
			if err != nil {
				return nil, err
			}
			parts = append(parts, inner)
		default:
			run = append(run, b)
		}
	}
}
