// Copyright (c) 2025, The mkparse Authors
// See LICENSE for licensing information

package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestScannerNextPeek(t *testing.T) {
	t.Parallel()

	sc := NewScanner("ab")

	b, err := sc.Peek()
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, b, qt.Equals, byte('a'))
	qt.Assert(t, sc.Offset(), qt.Equals, 0)

	b, err = sc.Next()
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, b, qt.Equals, byte('a'))

	b, err = sc.Next()
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, b, qt.Equals, byte('b'))

	_, err = sc.Next()
	qt.Assert(t, err, qt.ErrorIs, ErrExhaustedInput)
	_, err = sc.Peek()
	qt.Assert(t, err, qt.ErrorIs, ErrExhaustedInput)
}

func TestScannerPushback(t *testing.T) {
	t.Parallel()

	sc := NewScanner("xy")
	qt.Assert(t, sc.Pushback(), qt.ErrorIs, ErrInvalidPushback)

	sc.Next()
	qt.Assert(t, sc.Pushback(), qt.IsNil)

	b, err := sc.Next()
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, b, qt.Equals, byte('x'))

	// an exhausted scanner can still unget its last byte
	sc.Next()
	_, err = sc.Next()
	qt.Assert(t, err, qt.ErrorIs, ErrExhaustedInput)
	qt.Assert(t, sc.Pushback(), qt.IsNil)
	b, err = sc.Next()
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, b, qt.Equals, byte('y'))
}

func TestScannerCheckpoints(t *testing.T) {
	t.Parallel()

	sc := NewScanner("abcdef")
	sc.Next()
	sc.Checkpoint() // at 1
	sc.Next()
	sc.Next()
	sc.Checkpoint() // at 3
	sc.Next()

	sc.Restore()
	qt.Assert(t, sc.Offset(), qt.Equals, 3)
	b, _ := sc.Next()
	qt.Assert(t, b, qt.Equals, byte('d'))

	sc.Restore()
	qt.Assert(t, sc.Offset(), qt.Equals, 1)
	b, _ = sc.Next()
	qt.Assert(t, b, qt.Equals, byte('b'))
}

func TestScannerCommit(t *testing.T) {
	t.Parallel()

	sc := NewScanner("abc")
	sc.Checkpoint()
	sc.Next()
	sc.Next()
	sc.Commit()
	qt.Assert(t, sc.Offset(), qt.Equals, 2)

	// committing must not disturb an outer checkpoint
	sc.Checkpoint()
	sc.Checkpoint()
	sc.Next()
	sc.Commit()
	sc.Restore()
	qt.Assert(t, sc.Offset(), qt.Equals, 2)
}
