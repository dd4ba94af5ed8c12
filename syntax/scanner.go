// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

import "errors"

var (
	// ErrExhaustedInput is reported when the scanner is advanced or peeked
	// past the end of its text while a token still required more input.
	ErrExhaustedInput = errors.New("input exhausted")

	// ErrInvalidPushback is reported when a pushback is attempted at the
	// start of the text. It always indicates a tokenizer logic error, never
	// bad user input.
	ErrInvalidPushback = errors.New("pushback at start of input")
)

// Scanner is a position-addressable cursor over one statement's source text.
// It supports one byte of lookahead, stepping backward, and a stack of
// position checkpoints for backtracking. Tokenizers never touch the raw text
// except through a Scanner.
//
// The cursor works on bytes. Make's structural characters are all ASCII;
// multi-byte runes only ever appear inside literal runs, where their bytes
// are carried through unchanged.
type Scanner struct {
	src   string
	pos   int
	marks []int
}

// NewScanner returns a Scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Next returns the byte under the cursor and advances past it.
func (s *Scanner) Next() (byte, error) {
	if s.pos >= len(s.src) {
		return 0, ErrExhaustedInput
	}
	b := s.src[s.pos]
	s.pos++
	return b, nil
}

// Peek returns the byte under the cursor without advancing.
func (s *Scanner) Peek() (byte, error) {
	if s.pos >= len(s.src) {
		return 0, ErrExhaustedInput
	}
	return s.src[s.pos], nil
}

// Pushback retreats the cursor one byte, so that the next Next returns the
// byte most recently consumed. A tokenizer that read one byte too many to
// detect its end condition pushes it back for the next tokenizer to see.
func (s *Scanner) Pushback() error {
	if s.pos == 0 {
		return ErrInvalidPushback
	}
	s.pos--
	return nil
}

// Checkpoint pushes the current position onto the checkpoint stack.
// A tokenizer trying a hypothesis it may abandon brackets it with
// Checkpoint and Restore or Commit.
func (s *Scanner) Checkpoint() {
	s.marks = append(s.marks, s.pos)
}

// Restore pops the most recent checkpoint and rewinds the cursor to it.
// It panics if no checkpoint is pending.
func (s *Scanner) Restore() {
	n := len(s.marks) - 1
	s.pos = s.marks[n]
	s.marks = s.marks[:n]
}

// Commit pops the most recent checkpoint without moving the cursor,
// accepting whatever was scanned since the matching Checkpoint.
// It panics if no checkpoint is pending.
func (s *Scanner) Commit() {
	s.marks = s.marks[:len(s.marks)-1]
}

// Offset reports the cursor position as a byte offset from the start of the
// text.
func (s *Scanner) Offset() int {
	return s.pos
}
