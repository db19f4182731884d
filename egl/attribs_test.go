// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package egl

import (
	"slices"
	"testing"
)

func TestWithNone(t *testing.T) {
	tests := []struct {
		name string
		in   []Int
		want []Int
	}{
		{"nil", nil, nil},
		{"empty", []Int{}, nil},
		{"unterminated", []Int{Width, 4}, []Int{Width, 4, None}},
		{"terminated", []Int{Width, 4, None}, []Int{Width, 4, None}},
		{"none as value", []Int{Width, None}, []Int{Width, None, None}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withNone(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("withNone(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithNoneDoesNotAlias(t *testing.T) {
	in := make([]Int, 2, 8)
	in[0], in[1] = Width, 4
	out := withNone(in)
	out[0] = Height
	if in[0] != Width {
		t.Error("withNone wrote through to its input")
	}
}

func TestLookup(t *testing.T) {
	attribs := []Int{Width, 800, Height, 600, None, RedSize, 8}

	if v, ok := Lookup(attribs, Height); !ok || v != 600 {
		t.Errorf("Lookup(Height) = %d, %v; want 600, true", v, ok)
	}
	if _, ok := Lookup(attribs, RedSize); ok {
		t.Error("Lookup found a key after EGL_NONE")
	}
	if _, ok := Lookup(attribs, 600); ok {
		t.Error("Lookup matched a value as a key")
	}
	if _, ok := Lookup(nil, Width); ok {
		t.Error("Lookup(nil) found a key")
	}
}
