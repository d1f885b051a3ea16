// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frame

import "testing"

func TestCounterBeginEndCyclesIndex(t *testing.T) {
	c := NewCounter(2)
	for i, want := range []uint32{0, 1, 0, 1, 0} {
		tok := c.Begin()
		if tok.Index() != want {
			t.Errorf("iteration %d: Index() = %d, want %d", i, tok.Index(), want)
		}
		c.End(tok)
	}
}

func TestCounterBeginTwicePanics(t *testing.T) {
	c := NewCounter(2)
	c.Begin()
	defer func() {
		v := recover()
		if v == nil {
			t.Fatal("expected panic calling Begin twice without End")
		}
		// Misuse panics carry a typed payload, not a bare string, so a
		// recovering caller can tell them apart from unrelated panics.
		if _, ok := v.(error); !ok {
			t.Fatalf("panic payload is %T, want an error value", v)
		}
	}()
	c.Begin()
}

func TestCounterEndWithoutBeginPanics(t *testing.T) {
	c := NewCounter(2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling End without a matching Begin")
		}
	}()
	c.End(Token{counter: c, value: 1})
}

func TestCounterEndStaleTokenPanics(t *testing.T) {
	c := NewCounter(2)
	stale := c.Begin()
	c.End(stale)
	c.Begin()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic ending with a stale token")
		}
	}()
	c.End(stale)
}

func TestCounterEndForeignTokenPanics(t *testing.T) {
	a := NewCounter(2)
	b := NewCounter(2)
	tok := a.Begin()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic ending a token on the wrong counter")
		}
	}()
	b.End(tok)
}

func TestCounterFramesInFlight(t *testing.T) {
	c := NewCounter(3)
	if c.FramesInFlight() != 3 {
		t.Errorf("FramesInFlight() = %d, want 3", c.FramesInFlight())
	}
}
