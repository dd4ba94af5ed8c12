// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

import (
	"errors"
	"fmt"
)

// RecipePrefix introduces a recipe line. GNU Make allows overriding it via
// .RECIPEPREFIX; resolving that is the evaluation engine's job, so the
// tokenizer always uses the default.
const RecipePrefix = '\t'

// maxDepth bounds tokenizer recursion per parse. Each tokenizer entry counts
// as one level, so the practical nesting bound for variable references is a
// little lower at the statement entry points.
const maxDepth = 10

var (
	// ErrUnterminatedVarRef is reported when a $(, ${ or lone $ form ends
	// before its closer or single-character body.
	ErrUnterminatedVarRef = errors.New("unterminated variable reference")

	// ErrMalformedComment is reported when the comment skipper is invoked
	// while not positioned at '#' (an internal invariant).
	ErrMalformedComment = errors.New("not positioned at a comment")

	// ErrNestingTooDeep is reported when tokenizer recursion exceeds the
	// fixed bound, before any further input is consumed.
	ErrNestingTooDeep = errors.New("nesting too deep")

	// ErrAmbiguousStatement is reported when a statement fits neither the
	// rule nor the assignment interpretation.
	ErrAmbiguousStatement = errors.New("statement is neither a rule nor an assignment")
)

// ParseError is an error found while tokenizing a statement.
type ParseError struct {
	Offset int // byte offset into the statement
	Text   string
	Err    error // one of the Err sentinels above, or a scanner error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// parser holds the per-parse state: the scanner and the recursion depth
// counter. Every top-level Parse call builds a fresh parser, so concurrent
// parses share nothing.
type parser struct {
	sc    *Scanner
	depth int
}

func (p *parser) errf(err error, format string, a ...any) *ParseError {
	return &ParseError{
		Offset: p.sc.Offset(),
		Text:   fmt.Sprintf(format, a...),
		Err:    err,
	}
}

// enter counts one level of tokenizer recursion; every recursive entry point
// calls it before consuming input, paired with a deferred exit.
func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.errf(ErrNestingTooDeep, "tokenizer recursion exceeds %d levels", maxDepth)
	}
	return nil
}

func (p *parser) exit() { p.depth-- }

// ParseStatement tokenizes one logical line of makefile source: a rule or a
// variable assignment. The returned node is a *Rule or an *Assignment.
// Backslash-newline folding is assumed to have happened already.
func ParseStatement(src string) (Node, error) {
	p := &parser{sc: NewScanner(src)}
	return p.statement()
}

// ParseRecipe tokenizes the indented recipe block following a rule, line by
// line, stopping at the first line that is neither blank nor prefixed by the
// recipe prefix.
func ParseRecipe(src string) (*RecipeList, error) {
	p := &parser{sc: NewScanner(src)}
	return p.recipes()
}

// statement disambiguates a rule from an assignment. The left-hand side of
// both looks identical until the terminating operator, so it is tokenized
// once under assignment whitespace rules; if the operator turns out to be a
// rule operator, the scanner is rewound and the left side re-tokenized with
// whitespace as a hard separator. The second pass cannot be derived from the
// first: the two modes split words differently.
func (p *parser) statement() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.exit()

	p.sc.Checkpoint()
	lhs, op, err := p.lhs(false)
	if err != nil {
		return nil, err
	}

	if _, isRule := op.(RuleOperator); isRule {
		p.sc.Restore()
		targets, op, err := p.lhs(true)
		if err != nil {
			return nil, err
		}
		rop, ok := op.(RuleOperator)
		if !ok {
			return nil, p.errf(ErrAmbiguousStatement,
				"left-hand side changed interpretation between passes")
		}
		r := &Rule{Targets: targets, Op: rop}
		if err := p.ruleRHS(r); err != nil {
			return nil, err
		}
		return r, nil
	}

	p.sc.Commit()
	value, err := p.assignRHS()
	if err != nil {
		return nil, err
	}
	return &Assignment{Name: lhs[0], Op: op.(AssignOperator), Value: value}, nil
}

// lhs tokenizes the left-hand side of a statement up to the deciding
// operator, returning the words and the operator (an AssignOperator or a
// RuleOperator). In rule mode whitespace separates the words, one per
// target; in assignment mode the whole left side is a single word whose
// internal whitespace is preserved, with only the whitespace around it
// stripped. Either way an assignment operator always leaves at least one
// word for the name, empty if need be.
func (p *parser) lhs(ruleMode bool) ([]*Word, Node, error) {
	if err := p.enter(); err != nil {
		return nil, nil, err
	}
	defer p.exit()

	const (
		stateStart = iota
		stateInWord
		stateColon
		stateColonColon
	)
	state := stateStart
	var run []byte
	var parts []Node
	var words []*Word

	flush := func(strip bool) {
		s := string(run)
		if strip {
			s = stripRight(s)
		}
		parts = append(parts, &Lit{Value: s})
		run = run[:0]
	}
	closeWord := func(strip bool) {
		flush(strip)
		words = append(words, &Word{Parts: parts})
		parts = nil
	}
	named := func() []*Word {
		if len(words) == 0 {
			words = append(words, &Word{})
		}
		return words
	}

	for {
		b, err := p.sc.Next()
		if err != nil {
			// end of input: only a pending ':' or '::' completes the
			// left-hand side
			switch state {
			case stateColon:
				return words, Colon, nil
			case stateColonColon:
				return words, DblColon, nil
			}
			return nil, nil, p.errf(ErrAmbiguousStatement,
				"statement ended before an operator was found")
		}

		switch state {
		case stateStart:
			switch {
			case isSpace(b) || isNewline(b):
				// leading whitespace never reaches a word
			case b == ':':
				state = stateColon
			default:
				p.sc.Pushback()
				state = stateInWord
			}

		case stateInWord:
			switch {
			case b == '\\':
				nb, err := p.sc.Next()
				if err != nil {
					run = append(run, '\\')
					continue
				}
				if isBackslashable(nb) {
					run = append(run, nb)
				} else {
					run = append(run, '\\', nb)
				}
			case ruleMode && isSpace(b):
				closeWord(false)
				state = stateStart
			case b == '$':
				if nb, err := p.sc.Peek(); err == nil && nb == '$' {
					p.sc.Next()
					run = append(run, '$', '$')
					continue
				}
				flush(false)
				p.sc.Pushback()
				ref, err := p.varRef()
				if err != nil {
					return nil, nil, err
				}
				parts = append(parts, ref)
			case b == '#':
				p.sc.Pushback()
				if err := p.skipComment(); err != nil {
					return nil, nil, err
				}
			case b == ':':
				closeWord(true)
				state = stateColon
			case b == '?' || b == '+' || b == '!':
				if nb, err := p.sc.Peek(); err == nil && nb == '=' {
					p.sc.Next()
					closeWord(true)
					var op AssignOperator
					switch b {
					case '?':
						op = QuestAssign
					case '+':
						op = PlusAssign
					default:
						op = ShellAssign
					}
					return words, op, nil
				}
				run = append(run, b)
			case b == '=':
				closeWord(true)
				return words, Assign, nil
			case isNewline(b):
				return nil, nil, p.errf(ErrAmbiguousStatement,
					"line ended before an operator was found")
			default:
				run = append(run, b)
			}

		case stateColon:
			// ':' was seen; one more byte decides ':=' vs '::' vs ':'
			switch b {
			case ':':
				state = stateColonColon
			case '=':
				return named(), ColonAssign, nil
			default:
				p.sc.Pushback()
				return words, Colon, nil
			}

		case stateColonColon:
			// '::' was seen; one more byte decides '::=' vs '::'
			if b == '=' {
				return named(), DblColonAssign, nil
			}
			p.sc.Pushback()
			return words, DblColon, nil
		}
	}
}

// ruleRHS tokenizes everything after a rule operator. It first tries the
// prerequisite-list interpretation; if that scan runs into an assignment
// operator, the right side is really a target-specific variable assignment,
// so the scanner is rewound and the text re-tokenized as one.
func (p *parser) ruleRHS(r *Rule) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.exit()

	p.sc.Checkpoint()
	ok, err := p.prereqs(r)
	if err != nil {
		return err
	}
	if ok {
		p.sc.Commit()
		return nil
	}

	p.sc.Restore()
	// the abandoned scan may have mistaken part of the assignment for a
	// target pattern
	r.Pattern = nil
	name, op, err := p.lhs(false)
	if err != nil {
		return err
	}
	aop, isAssign := op.(AssignOperator)
	if !isAssign {
		return p.errf(ErrAmbiguousStatement,
			"rule right-hand side is neither prerequisites nor an assignment")
	}
	value, err := p.assignRHS()
	if err != nil {
		return err
	}
	r.TargetAssign = &Assignment{Name: name[0], Op: aop, Value: value}
	return nil
}

// prereqs scans a prerequisite list: whitespace-separated words, terminated
// by ';' (an inline recipe follows), '#' or end of line. It reports ok=false
// without consuming further when the scan turns out to be an assignment
// instead; the caller backtracks. A '|' starts the order-only section, and a
// bare ':' ends the target-pattern section of a static pattern rule.
func (p *parser) prereqs(r *Rule) (bool, error) {
	if err := p.enter(); err != nil {
		return false, err
	}
	defer p.exit()

	const (
		stateStart = iota
		stateInWord
		stateColon
		stateColonColon
	)
	state := stateStart
	var run []byte
	var parts []Node
	var normal, orderOnly []Node
	ordering := false

	appendWord := func(w *Word) {
		if ordering {
			orderOnly = append(orderOnly, w)
		} else {
			normal = append(normal, w)
		}
	}
	flush := func(strip bool) {
		s := string(run)
		if strip {
			s = stripRight(s)
		}
		parts = append(parts, &Lit{Value: s})
		run = run[:0]
	}
	closeWord := func(strip bool) {
		flush(strip)
		appendWord(&Word{Parts: parts})
		parts = nil
	}
	startOrderOnly := func() {
		ordering = true
		if orderOnly == nil {
			orderOnly = []Node{}
		}
	}
	// a bare colon ends the target-pattern section: everything accumulated
	// so far moves to the rule's pattern and prerequisites restart
	patternBreak := func() {
		closeWord(true)
		r.Pattern = &PrereqList{Prereqs: normal, OrderOnly: orderOnly}
		normal, orderOnly = nil, nil
		ordering = false
	}
	// end of the statement while between words: a rule with nothing at all
	// after its operator still records one empty prerequisite
	endBetweenWords := func() {
		if len(normal) == 0 && orderOnly == nil {
			closeWord(false)
		}
	}
	finish := func() {
		r.Prereqs = &PrereqList{Prereqs: normal, OrderOnly: orderOnly}
	}
	inline := func() error {
		rec, err := p.recipeLine()
		if err != nil {
			return err
		}
		if rec == nil {
			rec = &Recipe{Parts: []Node{&Lit{Value: ""}}}
		}
		r.Inline = rec
		return nil
	}

	for {
		b, err := p.sc.Next()
		if err != nil {
			switch state {
			case stateColon, stateColonColon:
				if r.Pattern == nil {
					patternBreak()
				} else {
					run = append(run, ':')
					if state == stateColonColon {
						run = append(run, ':')
					}
					closeWord(false)
				}
			case stateInWord:
				closeWord(false)
			default:
				endBetweenWords()
			}
			finish()
			return true, nil
		}

		switch state {
		case stateStart:
			switch {
			case b == '$':
				if nb, err := p.sc.Peek(); err == nil && nb == '$' {
					p.sc.Next()
					run = append(run, '$', '$')
					state = stateInWord
					continue
				}
				flush(true)
				p.sc.Pushback()
				ref, err := p.varRef()
				if err != nil {
					return false, err
				}
				parts = append(parts, ref)
				state = stateInWord
			case b == '#':
				p.sc.Pushback()
				if err := p.skipComment(); err != nil {
					return false, err
				}
				endBetweenWords()
				finish()
				return true, nil
			case b == ';':
				finish()
				return true, inline()
			case b == '|':
				startOrderOnly()
			case isNewline(b):
				p.sc.Pushback()
				endBetweenWords()
				finish()
				return true, nil
			case isSpace(b):
				// eat whitespace between words
			default:
				p.sc.Pushback()
				state = stateInWord
			}

		case stateInWord:
			switch {
			case isSpace(b):
				closeWord(false)
				state = stateStart
			case isNewline(b):
				p.sc.Pushback()
				closeWord(false)
				finish()
				return true, nil
			case b == '\\':
				nb, err := p.sc.Next()
				if err != nil {
					run = append(run, '\\')
					continue
				}
				if isBackslashable(nb) {
					run = append(run, nb)
				} else {
					run = append(run, '\\', nb)
				}
			case b == ':':
				state = stateColon
			case b == '|':
				closeWord(false)
				startOrderOnly()
				state = stateStart
			case b == '?' || b == '+' || b == '!':
				if nb, err := p.sc.Peek(); err == nil && nb == '=' {
					// an assignment operator: this is no prerequisite list
					return false, nil
				}
				run = append(run, b)
			case b == '=':
				return false, nil
			case b == '#':
				p.sc.Pushback()
				if err := p.skipComment(); err != nil {
					return false, err
				}
				closeWord(false)
				finish()
				return true, nil
			case b == '$':
				if nb, err := p.sc.Peek(); err == nil && nb == '$' {
					p.sc.Next()
					run = append(run, '$', '$')
					continue
				}
				flush(true)
				p.sc.Pushback()
				ref, err := p.varRef()
				if err != nil {
					return false, err
				}
				parts = append(parts, ref)
			case b == ';':
				closeWord(false)
				finish()
				return true, inline()
			default:
				run = append(run, b)
			}

		case stateColon:
			switch {
			case b == ':':
				state = stateColonColon
			case b == '=':
				return false, nil
			default:
				p.sc.Pushback()
				if r.Pattern == nil {
					patternBreak()
					state = stateStart
				} else {
					// further colons are ordinary content
					run = append(run, ':')
					state = stateInWord
				}
			}

		case stateColonColon:
			if b == '=' {
				return false, nil
			}
			p.sc.Pushback()
			if r.Pattern == nil {
				patternBreak()
				state = stateStart
			} else {
				run = append(run, ':', ':')
				state = stateInWord
			}
		}
	}
}

// assignRHS tokenizes an assignment's value. Leading whitespace is
// insignificant; once inside the value every character is preserved
// verbatim, including internal and trailing whitespace, up to a comment or
// end of line. The asymmetry is GNU Make's own.
func (p *parser) assignRHS() (*Word, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.exit()

	const (
		stateStart = iota
		stateLiteral
	)
	state := stateStart
	var run []byte
	var parts []Node

	flush := func() {
		parts = append(parts, &Lit{Value: string(run)})
		run = run[:0]
	}

	for {
		b, err := p.sc.Next()
		if err != nil {
			flush()
			return &Word{Parts: parts}, nil
		}

		switch state {
		case stateStart:
			switch {
			case b == '$':
				if nb, err := p.sc.Peek(); err == nil && nb == '$' {
					p.sc.Next()
					run = append(run, '$', '$')
					state = stateLiteral
					continue
				}
				flush()
				p.sc.Pushback()
				ref, err := p.varRef()
				if err != nil {
					return nil, err
				}
				parts = append(parts, ref)
				state = stateLiteral
			case b == '#':
				p.sc.Pushback()
				if err := p.skipComment(); err != nil {
					return nil, err
				}
				flush()
				return &Word{Parts: parts}, nil
			case isNewline(b):
				p.sc.Pushback()
				flush()
				return &Word{Parts: parts}, nil
			case isSpace(b):
				// leading whitespace only; nothing after this state is
				// stripped
			default:
				p.sc.Pushback()
				state = stateLiteral
			}

		case stateLiteral:
			switch {
			case b == '$':
				if nb, err := p.sc.Peek(); err == nil && nb == '$' {
					p.sc.Next()
					run = append(run, '$', '$')
					continue
				}
				flush()
				p.sc.Pushback()
				ref, err := p.varRef()
				if err != nil {
					return nil, err
				}
				parts = append(parts, ref)
			case b == '#':
				p.sc.Pushback()
				if err := p.skipComment(); err != nil {
					return nil, err
				}
				flush()
				return &Word{Parts: parts}, nil
			case isNewline(b):
				p.sc.Pushback()
				flush()
				return &Word{Parts: parts}, nil
			default:
				run = append(run, b)
			}
		}
	}
}

// recipes consumes recipe lines until the first line that is neither blank
// nor prefixed by the recipe prefix; that line is pushed back, not consumed.
// Blank lines and comment lines between recipes do not end the list.
func (p *parser) recipes() (*RecipeList, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.exit()

	list := &RecipeList{}
	for {
		b, err := p.sc.Next()
		if err != nil {
			return list, nil
		}
		switch {
		case b == RecipePrefix:
			rec, err := p.recipeLine()
			if err != nil {
				return nil, err
			}
			if rec != nil {
				list.Recipes = append(list.Recipes, rec)
			}
		case isNewline(b):
			// blank line between recipes
		case b == '#':
			p.sc.Pushback()
			if err := p.skipComment(); err != nil {
				return nil, err
			}
		case isSpace(b):
			// space-indented lines may only be blank or comments; anything
			// else belongs to the next statement
			for {
				nb, err := p.sc.Next()
				if err != nil {
					return list, nil
				}
				if isSpace(nb) {
					continue
				}
				if isNewline(nb) {
					break
				}
				if nb == '#' {
					p.sc.Pushback()
					if err := p.skipComment(); err != nil {
						return nil, err
					}
					break
				}
				p.sc.Pushback()
				return list, nil
			}
		default:
			p.sc.Pushback()
			return list, nil
		}
	}
}

// recipeLine tokenizes one recipe line with the scanner positioned just
// past the recipe prefix (or past the ';' of an inline recipe). Whitespace
// after the prefix is stripped; everything else, trailing whitespace
// included, is preserved. Returns nil for a blank line.
func (p *parser) recipeLine() (*Recipe, error) {
	for {
		b, err := p.sc.Next()
		if err != nil {
			return nil, nil
		}
		if isNewline(b) {
			return nil, nil
		}
		if !isSpace(b) {
			p.sc.Pushback()
			break
		}
	}

	var run []byte
	var parts []Node
	flush := func() {
		parts = append(parts, &Lit{Value: string(run)})
		run = run[:0]
	}
	for {
		b, err := p.sc.Next()
		if err != nil {
			flush()
			return &Recipe{Parts: parts}, nil
		}
		switch {
		case isNewline(b):
			flush()
			return &Recipe{Parts: parts}, nil
		case b == '#':
			// a comment ends this line's text; the recipe list continues
			// on the next prefixed line
			p.sc.Pushback()
			if err := p.skipComment(); err != nil {
				return nil, err
			}
			flush()
			return &Recipe{Parts: parts}, nil
		case b == '$':
			if nb, err := p.sc.Peek(); err == nil && nb == '$' {
				p.sc.Next()
				run = append(run, '$', '$')
				continue
			}
			flush()
			p.sc.Pushback()
			ref, err := p.varRef()
			if err != nil {
				return nil, err
			}
			parts = append(parts, ref)
		default:
			run = append(run, b)
		}
	}
}

// stripRight trims trailing statement whitespace, leaving other trailing
// bytes alone.
func stripRight(s string) string {
	i := len(s)
	for i > 0 && isSpace(s[i-1]) {
		i--
	}
	return s[:i]
}
